// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"testing"

	"github.com/z5labs/utilityhub/config/key"

	"github.com/stretchr/testify/assert"
)

type storeFunc func(key.Keyer, any) error

func (f storeFunc) Set(k key.Keyer, v any) error {
	return f(k, v)
}

type myKeyer string

func (myKeyer) Key() string {
	return "my key"
}

func TestMemStore_Set(t *testing.T) {
	t.Run("will return an error", func(t *testing.T) {
		t.Run("if an unknown key.Keyer is used", func(t *testing.T) {
			store := newMemStore()
			err := store.Set(myKeyer("hello"), "world")

			var ierr UnknownKeyerError
			if !assert.ErrorAs(t, err, &ierr) {
				return
			}
			if !assert.NotEmpty(t, ierr.Error()) {
				return
			}
		})

		t.Run("if an empty key.Chain is used", func(t *testing.T) {
			store := newMemStore()
			err := store.Set(key.Chain{}, "world")

			var ierr EmptyKeyChainError
			if !assert.ErrorAs(t, err, &ierr) {
				return
			}
			if !assert.NotEmpty(t, ierr.Error()) {
				return
			}
		})

		t.Run("if the value type is attempted to be changed while overriding an existing key", func(t *testing.T) {
			store := newMemStore()
			err := store.Set(key.Name("hello"), "world")
			if !assert.Nil(t, err) {
				return
			}

			err = store.Set(key.Chain{key.Name("hello"), key.Name("bob")}, "world")

			var ierr UnexpectedKeyValueTypeError
			if !assert.ErrorAs(t, err, &ierr) {
				return
			}
			if !assert.NotEmpty(t, ierr.Error()) {
				return
			}
		})
	})

	t.Run("will nest values", func(t *testing.T) {
		t.Run("if a key.Chain is used", func(t *testing.T) {
			store := newMemStore()
			err := store.Set(key.Chain{key.Name("a"), key.Name("b")}, "c")
			if !assert.Nil(t, err) {
				return
			}

			if !assert.Equal(t, Map{"a": map[string]any{"b": "c"}}, store.values) {
				return
			}
		})
	})
}

func TestMemStore_SetWithOrigin(t *testing.T) {
	t.Run("will record the origin", func(t *testing.T) {
		t.Run("if a value is applied with an origin", func(t *testing.T) {
			store := newMemStore()
			err := store.SetWithOrigin(key.Name("hello"), "world", Origin{Source: SourceEnv})
			if !assert.Nil(t, err) {
				return
			}

			if !assert.Equal(t, Origin{Source: SourceEnv}, store.origins["hello"]) {
				return
			}
		})

		t.Run("if a nested value is applied with an origin", func(t *testing.T) {
			store := newMemStore()
			err := store.SetWithOrigin(
				key.Chain{key.Name("server"), key.Name("port")},
				8080,
				Origin{Source: SourceProject, Path: "app.toml"},
			)
			if !assert.Nil(t, err) {
				return
			}

			if !assert.Equal(t, Origin{Source: SourceProject, Path: "app.toml"}, store.origins["server.port"]) {
				return
			}
		})
	})

	t.Run("will overwrite a previously recorded origin", func(t *testing.T) {
		t.Run("if a later source applies the same key", func(t *testing.T) {
			store := newMemStore()
			err := store.SetWithOrigin(key.Name("hello"), "a", Origin{Source: SourceDefaults})
			if !assert.Nil(t, err) {
				return
			}

			err = store.SetWithOrigin(key.Name("hello"), "b", Origin{Source: SourceRuntime})
			if !assert.Nil(t, err) {
				return
			}

			if !assert.Equal(t, Map{"hello": "b"}, store.values) {
				return
			}
			if !assert.Equal(t, Origin{Source: SourceRuntime}, store.origins["hello"]) {
				return
			}
		})
	})

	t.Run("will not record the origin", func(t *testing.T) {
		t.Run("if the underlying set fails", func(t *testing.T) {
			store := newMemStore()
			err := store.SetWithOrigin(key.Chain{}, "world", Origin{Source: SourceEnv})
			if !assert.Error(t, err) {
				return
			}

			if !assert.Empty(t, store.origins) {
				return
			}
		})
	})
}
