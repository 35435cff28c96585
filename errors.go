// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package utilityhub

import (
	"fmt"
	"strings"

	"github.com/z5labs/utilityhub/internal/try"
)

// PanicError signals that a panic was recovered during a [Load] call
// and carries the recovered value.
type PanicError = try.PanicError

// SchemaError occurs when no settings schema can be derived from the
// caller's type.
type SchemaError struct {
	Cause error
}

// Error implements the [builtin.error] interface.
func (e SchemaError) Error() string {
	return fmt.Sprintf("failed to derive settings schema: %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e SchemaError) Unwrap() error {
	return e.Cause
}

// UnsupportedConfigFormatError occurs when a config file extension
// matches none of the supported formats.
type UnsupportedConfigFormatError struct {
	Path string
}

// Error implements the [builtin.error] interface.
func (e UnsupportedConfigFormatError) Error() string {
	return fmt.Sprintf("unsupported config file format: %s", e.Path)
}

// MissingFieldError occurs when no source provides a value for a
// required field.
type MissingFieldError struct {
	Name string
}

// Error implements the [builtin.error] interface.
func (e MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Name)
}

// ValidationError aggregates every field failure from a single [Load]
// call together with the project config files that were checked and
// the source precedence order. One message carries everything needed
// to diagnose a misconfigured environment.
type ValidationError struct {
	// Fields holds one error per failed field.
	Fields []error

	// FilesChecked lists the project config file candidates in the
	// order they were checked.
	FilesChecked []string

	// Precedence lists the source names from highest to lowest
	// precedence.
	Precedence []string
}

// Error implements the [builtin.error] interface.
func (e ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("Validation errors:\n")
	for _, err := range e.Fields {
		sb.WriteString("  - ")
		sb.WriteString(err.Error())
		sb.WriteString("\n")
	}

	sb.WriteString("Files checked (in order):\n")
	if len(e.FilesChecked) == 0 {
		sb.WriteString("  (none)\n")
	}
	for _, name := range e.FilesChecked {
		sb.WriteString("  - ")
		sb.WriteString(name)
		sb.WriteString("\n")
	}

	sb.WriteString("Precedence (highest wins): ")
	sb.WriteString(strings.Join(e.Precedence, " > "))
	return sb.String()
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e ValidationError) Unwrap() []error {
	return e.Fields
}
