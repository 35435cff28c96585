// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"errors"
	"testing"

	"github.com/z5labs/utilityhub/config/key"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvName(t *testing.T) {
	testCases := []struct {
		name     string
		key      string
		expected string
	}{
		{
			name:     "lowercase word",
			key:      "port",
			expected: "PORT",
		},
		{
			name:     "snake case key",
			key:      "database_url",
			expected: "DATABASE_URL",
		},
		{
			name:     "flattened nested key",
			key:      "server.port",
			expected: "SERVER_PORT",
		},
		{
			name:     "key with dashes",
			key:      "no-color",
			expected: "NO_COLOR",
		},
		{
			name:     "key with digits",
			key:      "s3_bucket",
			expected: "S3_BUCKET",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, EnvName(tc.key))
		})
	}
}

func TestEnv_Apply(t *testing.T) {
	t.Run("will apply a value", func(t *testing.T) {
		t.Run("if the derived environment variable is set", func(t *testing.T) {
			src := Env{
				keys: []string{"database_url"},
				lookup: func(name string) (string, bool) {
					if name == "DATABASE_URL" {
						return "sqlite:///prod", true
					}
					return "", false
				},
			}

			m, err := Read(src)
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
			if !assert.Equal(t, "sqlite:///prod", cfg.DatabaseURL) {
				return
			}
		})

		t.Run("if the key refers to a nested value", func(t *testing.T) {
			src := Env{
				keys: []string{"server.port"},
				lookup: func(name string) (string, bool) {
					if name == "SERVER_PORT" {
						return "8080", true
					}
					return "", false
				},
			}

			m, err := Read(src)
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
			if !assert.Equal(t, 8080, cfg.Server.Port) {
				return
			}
		})

		t.Run("if the process environment has the variable set", func(t *testing.T) {
			t.Setenv("HELLO", "world")

			m, err := Read(FromEnv("hello"))
			if !assert.Nil(t, err) {
				return
			}

			var cfg struct {
				Hello string `config:"hello"`
			}
			err = m.Unmarshal(&cfg)
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, "world", cfg.Hello) {
				return
			}
		})
	})

	t.Run("will not apply a value", func(t *testing.T) {
		t.Run("if the derived environment variable is unset", func(t *testing.T) {
			src := Env{
				keys: []string{"database_url"},
				lookup: func(name string) (string, bool) {
					return "", false
				},
			}

			m, err := Read(src)
			if !assert.Nil(t, err) {
				return
			}
			if !assert.False(t, m.Has("database_url")) {
				return
			}
		})

		t.Run("if the variable is set for a key the source was not given", func(t *testing.T) {
			src := Env{
				keys: []string{"port"},
				lookup: func(name string) (string, bool) {
					return "anything", true
				},
			}

			m, err := Read(src)
			if !assert.Nil(t, err) {
				return
			}
			if !assert.True(t, m.Has("port")) {
				return
			}
			if !assert.False(t, m.Has("database_url")) {
				return
			}
		})
	})

	t.Run("will return an error", func(t *testing.T) {
		t.Run("if the underlying store fails to set a key", func(t *testing.T) {
			setErr := errors.New("failed to set key")
			store := storeFunc(func(k key.Keyer, v any) error {
				return setErr
			})

			src := Env{
				keys: []string{"hello"},
				lookup: func(name string) (string, bool) {
					return "world", true
				},
			}

			err := src.Apply(store)
			if !assert.ErrorIs(t, err, setErr) {
				return
			}
		})
	})
}
