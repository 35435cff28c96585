// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Yaml is a [Source] backed by a YAML document.
type Yaml struct {
	r io.Reader
}

// FromYaml returns a [Yaml] source which reads its document
// from the given [io.Reader].
func FromYaml(r io.Reader) Yaml {
	return Yaml{r: r}
}

// InvalidYamlError occurs when a YAML document can not be parsed.
type InvalidYamlError struct {
	cause error
}

// Error implements the [builtin.error] interface.
func (e InvalidYamlError) Error() string {
	return fmt.Sprintf("invalid yaml: %s", e.cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e InvalidYamlError) Unwrap() error {
	return e.cause
}

// Apply implements the [Source] interface.
func (src Yaml) Apply(store Store) error {
	return applyParsed(store, src.r, func(b []byte, v any) error {
		err := yaml.Unmarshal(b, v)
		if err != nil {
			return InvalidYamlError{cause: err}
		}
		return nil
	})
}
