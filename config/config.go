// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"encoding"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	"github.com/z5labs/utilityhub/config/key"
	"github.com/z5labs/utilityhub/internal/try"

	"github.com/go-viper/mapstructure/v2"
)

// Store represents a general key value structure.
type Store interface {
	Set(key.Keyer, any) error
}

// Source defines valid config sources as those who can
// serialize themselves into a key value like structure.
type Source interface {
	Apply(Store) error
}

// Manager holds the merged result of one or more [Source]s.
type Manager struct {
	store *memStore
}

// Read merges the given sources into a single [Manager].
// Subsequent sources override previous sources.
func Read(srcs ...Source) (*Manager, error) {
	store := newMemStore()
	for _, src := range srcs {
		err := src.Apply(store)
		if err != nil {
			return nil, err
		}
	}
	m := &Manager{
		store: store,
	}
	return m, nil
}

// applyParsed reads everything from r, parses it into a nested map
// with unmarshal and applies the result to store. If r is an
// [io.Closer] it is closed even when reading or parsing fails.
func applyParsed(store Store, r io.Reader, unmarshal func([]byte, any) error) (err error) {
	c, _ := r.(io.Closer)
	defer try.Close(&err, c)

	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	m := make(map[string]any)
	err = unmarshal(b, &m)
	if err != nil {
		return err
	}
	return Map(m).Apply(store)
}

// Has reports whether a value was applied for the given flattened key.
func (m *Manager) Has(key string) bool {
	_, ok := m.store.origins[key]
	return ok
}

// Origin returns the origin recorded for the given flattened key.
// The second return value reports whether any value was applied for
// the key at all.
func (m *Manager) Origin(key string) (Origin, bool) {
	o, ok := m.store.origins[key]
	return o, ok
}

// Origins returns all recorded origins, keyed by flattened key.
func (m *Manager) Origins() map[string]Origin {
	os := make(map[string]Origin, len(m.store.origins))
	for k, o := range m.store.origins {
		os[k] = o
	}
	return os
}

// Unmarshal decodes the merged values into v, which must be a pointer
// to a struct. Map keys are matched to struct fields by the "config"
// tag, falling back to a case and underscore insensitive comparison of
// the field name.
func (m *Manager) Unmarshal(v any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "config",
		Result:           v,
		WeaklyTypedInput: true,
		MatchName:        matchName,
		DecodeHook: composeDecodeHooks(
			textUnmarshalerHookFunc(),
			timeDurationHookFunc(),
		),
	})
	if err != nil {
		return err
	}
	return dec.Decode(m.store.values)
}

func matchName(mapKey, fieldName string) bool {
	if strings.EqualFold(mapKey, fieldName) {
		return true
	}
	return strings.EqualFold(
		strings.ReplaceAll(mapKey, "_", ""),
		strings.ReplaceAll(fieldName, "_", ""),
	)
}

var errInvalidDecodeCondition = errors.New("invalid decode condition")

// TypeCoercionError occurs when attempting to unmarshal a config
// value to a struct field whose type does not match the config
// value type, up to, coercion.
type TypeCoercionError struct {
	from  reflect.Value
	to    reflect.Value
	Cause error
}

// Error implements the error interface.
func (e TypeCoercionError) Error() string {
	return fmt.Sprintf("failed to coerce value from %s to %s: %s", e.from.Type(), e.to.Type(), e.Cause)
}

// Unwrap implements the implicit interface for usage with errors.Is and errors.As.
func (e TypeCoercionError) Unwrap() error {
	return e.Cause
}

func composeDecodeHooks(hs ...mapstructure.DecodeHookFunc) mapstructure.DecodeHookFuncValue {
	return func(f, t reflect.Value) (any, error) {
		for _, h := range hs {
			v, err := mapstructure.DecodeHookExec(h, f, t)
			if err == nil {
				return v, nil
			}
			if err == errInvalidDecodeCondition {
				continue
			}
			return nil, TypeCoercionError{
				from:  f,
				to:    t,
				Cause: err,
			}
		}
		return f.Interface(), nil
	}
}

func textUnmarshalerHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return nil, errInvalidDecodeCondition
		}
		result := reflect.New(t).Interface()
		u, ok := result.(encoding.TextUnmarshaler)
		if !ok {
			return nil, errInvalidDecodeCondition
		}

		s, ok := data.(string)
		if !ok {
			s = reflect.ValueOf(data).String()
		}
		err := u.UnmarshalText([]byte(s))
		if err != nil {
			return nil, err
		}
		return result, nil
	}
}

func timeDurationHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if t != reflect.TypeOf(time.Duration(0)) {
			return nil, errInvalidDecodeCondition
		}

		// data may be of a named type, time.Duration itself included
		v := reflect.ValueOf(data)
		switch f.Kind() {
		case reflect.String:
			return time.ParseDuration(v.String())
		case reflect.Int, reflect.Int64:
			return time.Duration(v.Int()), nil
		case reflect.Float64:
			return time.Duration(v.Float()), nil
		default:
			return nil, errInvalidDecodeCondition
		}
	}
}
