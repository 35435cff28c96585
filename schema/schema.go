// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package schema derives config metadata from settings struct types.
//
// A settings struct declares its config surface through struct tags:
//
//	type Settings struct {
//	    DatabaseURL string        `default:"sqlite:///app.db"`
//	    LogLevel    string        `config:"log_level" default:"INFO"`
//	    APIToken    string        `config:"api_token,secret"`
//	    Timeout     time.Duration `config:"timeout,optional"`
//	    Server      struct {
//	        Port int `config:"port" default:"8080"`
//	    } `config:"server"`
//	}
//
// The "config" tag names the field's flattened key, falling back to the
// snake case form of the Go field name. The "default" tag supplies the
// value used when no config source provides one. Fields without a
// default are required unless they are pointers or carry the
// ",optional" tag option. The ",secret" option marks values which
// should be redacted when displayed.
package schema

import (
	"encoding"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// Field describes a single settable field of a settings struct.
type Field struct {
	// Name is the flattened config key, for example "server.port".
	Name string

	// Type is the declared Go type of the struct field.
	Type reflect.Type

	// Default is the raw value of the "default" struct tag.
	Default string

	// HasDefault reports whether a "default" struct tag was present.
	HasDefault bool

	// Required reports whether some config source must provide a value.
	Required bool

	// Secret reports whether the value should be redacted when displayed.
	Secret bool

	index []int
}

// Mask returns the string form of v for display, replaced with a
// placeholder when the field is marked secret.
func (f Field) Mask(v any) string {
	if f.Secret {
		return "******"
	}
	return fmt.Sprint(v)
}

// Schema is the config surface derived from a settings struct type.
type Schema struct {
	fields []Field
	byName map[string]int
}

// InvalidSchemaTypeError occurs when a settings type is not a struct.
type InvalidSchemaTypeError struct {
	Type reflect.Type
}

// Error implements the error interface.
func (e InvalidSchemaTypeError) Error() string {
	return fmt.Sprintf("settings type must be a struct: %s", e.Type)
}

// RecursiveSchemaError occurs when a settings type nests itself.
type RecursiveSchemaError struct {
	Type reflect.Type
}

// Error implements the error interface.
func (e RecursiveSchemaError) Error() string {
	return fmt.Sprintf("settings type nests itself: %s", e.Type)
}

// Of builds the [Schema] for the settings type T.
func Of[T any]() (*Schema, error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() != reflect.Struct {
		return nil, InvalidSchemaTypeError{Type: t}
	}

	var fields []Field
	err := walkStruct(t, "", nil, false, make(map[reflect.Type]bool), &fields)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]int, len(fields))
	for i, f := range fields {
		byName[f.Name] = i
	}
	return &Schema{
		fields: fields,
		byName: byName,
	}, nil
}

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

func walkStruct(t reflect.Type, prefix string, index []int, optional bool, seen map[reflect.Type]bool, fields *[]Field) error {
	if seen[t] {
		return RecursiveSchemaError{Type: t}
	}
	seen[t] = true
	defer delete(seen, t)

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		name, opts := parseTag(sf.Tag.Get("config"))
		if name == "-" {
			continue
		}
		if name == "" {
			name = Snake(sf.Name)
		}
		if prefix != "" {
			name = prefix + "." + name
		}

		idx := make([]int, len(index)+1)
		copy(idx, index)
		idx[len(index)] = i

		ft := sf.Type
		fieldOptional := optional || opts.optional
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
			fieldOptional = true
		}

		if isSection(ft) {
			err := walkStruct(ft, name, idx, fieldOptional, seen, fields)
			if err != nil {
				return err
			}
			continue
		}

		defaultVal, hasDefault := sf.Tag.Lookup("default")
		*fields = append(*fields, Field{
			Name:       name,
			Type:       sf.Type,
			Default:    defaultVal,
			HasDefault: hasDefault,
			Required:   !hasDefault && !fieldOptional,
			Secret:     opts.secret,
			index:      idx,
		})
	}
	return nil
}

// isSection reports whether a field type introduces a nested group of
// keys rather than a single value. Structs which unmarshal themselves
// from text, along with time.Time, decode as single values.
func isSection(t reflect.Type) bool {
	if t.Kind() != reflect.Struct {
		return false
	}
	if t == reflect.TypeOf((*time.Time)(nil)).Elem() {
		return false
	}
	return !reflect.PointerTo(t).Implements(textUnmarshalerType)
}

type tagOptions struct {
	optional bool
	secret   bool
}

func parseTag(tag string) (string, tagOptions) {
	name, rest, _ := strings.Cut(tag, ",")

	var opts tagOptions
	for rest != "" {
		var opt string
		opt, rest, _ = strings.Cut(rest, ",")
		switch opt {
		case "optional":
			opts.optional = true
		case "secret":
			opts.secret = true
		}
	}
	return name, opts
}

// Fields returns every field of the schema, in declaration order.
func (s *Schema) Fields() []Field {
	fields := make([]Field, len(s.fields))
	copy(fields, s.fields)
	return fields
}

// Keys returns the flattened key of every field, in declaration order.
func (s *Schema) Keys() []string {
	keys := make([]string, 0, len(s.fields))
	for _, f := range s.fields {
		keys = append(keys, f.Name)
	}
	return keys
}

// Required returns the fields which some config source must provide
// a value for.
func (s *Schema) Required() []Field {
	var fields []Field
	for _, f := range s.fields {
		if f.Required {
			fields = append(fields, f)
		}
	}
	return fields
}

// Lookup returns the field with the given flattened key.
func (s *Schema) Lookup(name string) (Field, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Defaults returns the nested value map declared by "default" struct
// tags. Default values stay raw strings and rely on the same coercion
// applied to environment variable values.
func (s *Schema) Defaults() map[string]any {
	m := make(map[string]any)
	for _, f := range s.fields {
		if !f.HasDefault {
			continue
		}
		insertDefault(m, strings.Split(f.Name, "."), f.Default)
	}
	return m
}

func insertDefault(m map[string]any, path []string, v string) {
	if len(path) == 1 {
		m[path[0]] = v
		return
	}

	sub, ok := m[path[0]].(map[string]any)
	if !ok {
		sub = make(map[string]any)
		m[path[0]] = sub
	}
	insertDefault(sub, path[1:], v)
}

// Value returns the value of the named field within v, which must be
// a settings struct, or a pointer to one, of the type the schema was
// built from.
func (s *Schema) Value(v any, name string) (any, bool) {
	i, ok := s.byName[name]
	if !ok {
		return nil, false
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	for _, idx := range s.fields[i].index {
		for rv.Kind() == reflect.Pointer {
			if rv.IsNil() {
				return nil, false
			}
			rv = rv.Elem()
		}
		if rv.Kind() != reflect.Struct || idx >= rv.NumField() {
			return nil, false
		}
		rv = rv.Field(idx)
	}
	return rv.Interface(), true
}
