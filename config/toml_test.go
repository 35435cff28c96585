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

func TestToml_Apply(t *testing.T) {
	t.Run("will apply nested values", func(t *testing.T) {
		t.Run("if the TOML contains tables", func(t *testing.T) {
			r := strings.NewReader(`service = "hub"

[server]
port = 8080
`)

			m, err := Read(FromToml(r))
			if !assert.Nil(t, err) {
				return
			}

			var cfg struct {
				Service string `config:"service"`
				Server  struct {
					Port int `config:"port"`
				} `config:"server"`
			}
			err = m.Unmarshal(&cfg)
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, "hub", cfg.Service) {
				return
			}
			if !assert.Equal(t, 8080, cfg.Server.Port) {
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

			store := storeFunc(func(k key.Keyer, a any) error {
				return nil
			})

			src := FromToml(r)
			err := src.Apply(store)
			if !assert.ErrorIs(t, err, readErr) {
				return
			}
		})

		t.Run("if the io.Reader contains invalid TOML", func(t *testing.T) {
			r := strings.NewReader(`hello =`)

			store := storeFunc(func(k key.Keyer, a any) error {
				return nil
			})

			src := FromToml(r)
			err := src.Apply(store)

			var ierr InvalidTomlError
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
			r := strings.NewReader(`hello = "world"`)

			storeErr := errors.New("failed to set key")
			store := storeFunc(func(k key.Keyer, a any) error {
				return storeErr
			})

			src := FromToml(r)
			err := src.Apply(store)
			if !assert.ErrorIs(t, err, storeErr) {
				return
			}
		})
	})
}
