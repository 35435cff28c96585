// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"encoding/json"
	"fmt"
	"io"
)

// Json is a [Source] backed by a JSON document.
type Json struct {
	r io.Reader
}

// FromJson returns a [Json] source which reads its document
// from the given [io.Reader].
func FromJson(r io.Reader) Json {
	return Json{r: r}
}

// InvalidJsonError occurs when a JSON document can not be parsed.
type InvalidJsonError struct {
	cause error
}

// Error implements the [builtin.error] interface.
func (e InvalidJsonError) Error() string {
	return fmt.Sprintf("invalid json: %s", e.cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e InvalidJsonError) Unwrap() error {
	return e.cause
}

// Apply implements the [Source] interface.
func (src Json) Apply(store Store) error {
	return applyParsed(store, src.r, func(b []byte, v any) error {
		err := json.Unmarshal(b, v)
		if err != nil {
			return InvalidJsonError{cause: err}
		}
		return nil
	})
}
