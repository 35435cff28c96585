// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"fmt"

	"github.com/z5labs/utilityhub/config/key"
)

// Well known origin source names, ordered from lowest to highest
// precedence when layered by [Read].
const (
	SourceDefaults = "defaults"
	SourceProject  = "project"
	SourceDotenv   = "dotenv"
	SourceEnv      = "env"
	SourceRuntime  = "runtime"
)

// Origin identifies where a config value was applied from.
type Origin struct {
	// Source is the name of the config layer, for example [SourceEnv].
	Source string

	// Path is the file backing the layer, if there is one.
	Path string
}

// String implements the [fmt.Stringer] interface.
func (o Origin) String() string {
	if o.Path == "" {
		return o.Source
	}
	return fmt.Sprintf("%s (%s)", o.Source, o.Path)
}

// OriginStore is a [Store] which can also record the origin
// of each value applied to it.
type OriginStore interface {
	Store

	SetWithOrigin(key.Keyer, any, Origin) error
}

// Tag wraps src so every value it applies is recorded with the given
// origin, if the underlying store supports origin recording. Stores
// without origin support observe the source unchanged.
func Tag(o Origin, src Source) Source {
	return taggedSource{
		origin: o,
		src:    src,
	}
}

type taggedSource struct {
	origin Origin
	src    Source
}

// Apply implements the [Source] interface.
func (s taggedSource) Apply(store Store) error {
	target := store
	if os, ok := store.(OriginStore); ok {
		target = originWriter{origin: s.origin, store: os}
	}

	err := s.src.Apply(target)
	if err != nil {
		return SourceError{
			Origin: s.origin,
			Cause:  err,
		}
	}
	return nil
}

type originWriter struct {
	origin Origin
	store  OriginStore
}

// Set implements the [Store] interface.
func (w originWriter) Set(k key.Keyer, v any) error {
	return w.store.SetWithOrigin(k, v, w.origin)
}

// SourceError occurs when a tagged source fails to apply. It carries
// the origin of the failing source so errors from file backed layers
// name the file they came from.
type SourceError struct {
	Origin Origin
	Cause  error
}

// Error implements the error interface.
func (e SourceError) Error() string {
	return fmt.Sprintf("failed to apply %s config: %s", e.Origin, e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e SourceError) Unwrap() error {
	return e.Cause
}
