// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
)

// Toml is a [Source] backed by a TOML document.
type Toml struct {
	r io.Reader
}

// FromToml returns a [Toml] source which reads its document
// from the given [io.Reader].
func FromToml(r io.Reader) Toml {
	return Toml{r: r}
}

// InvalidTomlError occurs when a TOML document can not be parsed.
type InvalidTomlError struct {
	cause error
}

// Error implements the [builtin.error] interface.
func (e InvalidTomlError) Error() string {
	return fmt.Sprintf("invalid toml: %s", e.cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e InvalidTomlError) Unwrap() error {
	return e.cause
}

// Apply implements the [Source] interface.
func (src Toml) Apply(store Store) error {
	return applyParsed(store, src.r, func(b []byte, v any) error {
		err := toml.Unmarshal(b, v)
		if err != nil {
			return InvalidTomlError{cause: err}
		}
		return nil
	})
}
