// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/z5labs/utilityhub/config/key"

	"github.com/stretchr/testify/assert"
)

func TestDotenv_Apply(t *testing.T) {
	t.Run("will apply a value", func(t *testing.T) {
		t.Run("if a pair matches the derived name of a given key", func(t *testing.T) {
			r := strings.NewReader("DATABASE_URL=sqlite:///from_dotenv\n")

			m, err := Read(FromDotenv(r, "database_url"))
			if !assert.Nil(t, err) {
				return
			}

			var cfg struct {
				DatabaseURL string `config:"database_url"`
			}
			err = m.Unmarshal(&cfg)
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, "sqlite:///from_dotenv", cfg.DatabaseURL) {
				return
			}
		})

		t.Run("if a pair matches a nested key", func(t *testing.T) {
			r := strings.NewReader("SERVER_PORT=9000\n")

			m, err := Read(FromDotenv(r, "server.port"))
			if !assert.Nil(t, err) {
				return
			}

			var cfg struct {
				Server struct {
					Port int `config:"port"`
				} `config:"server"`
			}
			err = m.Unmarshal(&cfg)
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, 9000, cfg.Server.Port) {
				return
			}
		})
	})

	t.Run("will not apply a value", func(t *testing.T) {
		t.Run("if a pair does not match any given key", func(t *testing.T) {
			r := strings.NewReader("UNRELATED=value\nDATABASE_URL=sqlite:///x\n")

			m, err := Read(FromDotenv(r, "database_url"))
			if !assert.Nil(t, err) {
				return
			}

			if !assert.True(t, m.Has("database_url")) {
				return
			}
			if !assert.False(t, m.Has("unrelated")) {
				return
			}
		})
	})

	t.Run("will return an error", func(t *testing.T) {
		t.Run("if the underlying io.Reader fails", func(t *testing.T) {
			readErr := errors.New("failed to read")
			r := readFunc(func(b []byte) (int, error) {
				return 0, readErr
			})

			src := FromDotenv(r, "hello")
			err := src.Apply(newMemStore())
			if !assert.ErrorIs(t, err, readErr) {
				return
			}
		})

		t.Run("if the io.Reader contains malformed dotenv text", func(t *testing.T) {
			r := strings.NewReader("not a valid line\n")

			src := FromDotenv(r, "hello")
			err := src.Apply(newMemStore())

			var ierr InvalidDotenvError
			if !assert.ErrorAs(t, err, &ierr) {
				return
			}
			if !assert.NotEmpty(t, ierr.Error()) {
				return
			}
			if !assert.NotNil(t, ierr.Unwrap()) {
				return
			}
		})

		t.Run("if the underlying store fails to set a key", func(t *testing.T) {
			r := strings.NewReader("HELLO=world\n")

			setErr := errors.New("failed to set key")
			store := storeFunc(func(k key.Keyer, v any) error {
				return setErr
			})

			src := FromDotenv(r, "hello")
			err := src.Apply(store)
			if !assert.ErrorIs(t, err, setErr) {
				return
			}
		})
	})
}
