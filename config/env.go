// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"os"
	"strings"
	"unicode"

	"github.com/z5labs/utilityhub/config/key"
)

// Env represents a Source where its underlying values
// are extracted from environment variables.
type Env struct {
	keys   []string
	lookup func(string) (string, bool)
}

// FromEnv returns a Source which applies a value for each of the
// given flattened keys whose corresponding environment variable,
// derived via [EnvName], is set in the current process environment.
func FromEnv(keys ...string) Env {
	return Env{
		keys:   keys,
		lookup: os.LookupEnv,
	}
}

// Apply implements the Source interface.
func (src Env) Apply(store Store) error {
	for _, k := range src.keys {
		v, ok := src.lookup(EnvName(k))
		if !ok {
			continue
		}

		err := store.Set(fieldKey(k), v)
		if err != nil {
			return err
		}
	}
	return nil
}

// EnvName derives the environment variable name for a flattened config
// key. Letters are uppercased and any character which is not a letter
// or digit becomes an underscore, so "server.port" maps to "SERVER_PORT".
func EnvName(key string) string {
	var sb strings.Builder
	sb.Grow(len(key))
	for _, r := range key {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(unicode.ToUpper(r))
			continue
		}
		sb.WriteRune('_')
	}
	return sb.String()
}

// fieldKey turns a flattened key like "server.port" into the
// equivalent nested key chain.
func fieldKey(name string) key.Keyer {
	if !strings.Contains(name, ".") {
		return key.Name(name)
	}

	parts := strings.Split(name, ".")
	chain := make(key.Chain, 0, len(parts))
	for _, part := range parts {
		chain = append(chain, key.Name(part))
	}
	return chain
}
