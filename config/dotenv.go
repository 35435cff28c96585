// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"bytes"
	"fmt"
	"io"

	"github.com/z5labs/utilityhub/internal/try"

	"github.com/subosito/gotenv"
)

// Dotenv represents a Source where its underlying values are parsed
// from dotenv formatted text, such as the contents of a ".env" file.
type Dotenv struct {
	r    io.Reader
	keys []string
}

// FromDotenv returns a Source which parses dotenv pairs from the given
// io.Reader and applies a value for each of the given flattened keys
// whose corresponding variable name, derived via [EnvName], appears in
// the parsed pairs. Pairs with unrecognized names are ignored and the
// process environment is never modified.
func FromDotenv(r io.Reader, keys ...string) Dotenv {
	return Dotenv{
		r:    r,
		keys: keys,
	}
}

// InvalidDotenvError occurs if the underlying io.Reader contains
// malformed dotenv text.
type InvalidDotenvError struct {
	cause error
}

// Error implements the error interface.
func (e InvalidDotenvError) Error() string {
	return fmt.Sprintf("invalid dotenv: %s", e.cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e InvalidDotenvError) Unwrap() error {
	return e.cause
}

// Apply implements the Source interface.
func (src Dotenv) Apply(store Store) (err error) {
	c, _ := src.r.(io.Closer)
	defer try.Close(&err, c)

	b, err := io.ReadAll(src.r)
	if err != nil {
		return err
	}

	env, err := gotenv.StrictParse(bytes.NewReader(b))
	if err != nil {
		return InvalidDotenvError{cause: err}
	}

	for _, k := range src.keys {
		v, ok := env[EnvName(k)]
		if !ok {
			continue
		}

		err = store.Set(fieldKey(k), v)
		if err != nil {
			return err
		}
	}
	return nil
}
