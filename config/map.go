// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"slices"
	"strings"

	"github.com/z5labs/utilityhub/config/key"
)

// Map is an ordinary map[string]any but implements the [Source] interface.
// Nested map[string]any values are walked so their keys are set with the
// full [key.Chain] leading to them. Values of any other type, including
// slices of maps, are set as-is.
type Map map[string]any

// Apply implements the [Source] interface.
func (m Map) Apply(store Store) error {
	return m.set(store, nil)
}

func (m Map) set(store Store, chain key.Chain) error {
	for k, v := range m {
		switch x := v.(type) {
		case map[string]any:
			err := Map(x).set(store, append(chain, key.Name(k)))
			if err != nil {
				return err
			}
		default:
			err := store.Set(append(chain, key.Name(k)), x)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// NestedMap splits the dotted keys of the given flat map into nested
// maps. It lets callers address nested values with keys like
// "server.port" while still merging like the naturally nested sources.
//
// Keys are processed in sorted order so a dotted key sharing a prefix
// with a plain valued key deterministically replaces the plain value.
// A dotted key sharing a prefix with a map valued key merges into that
// map instead.
func NestedMap(flat map[string]any) Map {
	m := make(Map, len(flat))
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		parts := strings.Split(k, ".")

		cur := map[string]any(m)
		for _, part := range parts[:len(parts)-1] {
			next, ok := cur[part].(map[string]any)
			if !ok {
				next = make(map[string]any)
				cur[part] = next
			}
			cur = next
		}
		cur[parts[len(parts)-1]] = flat[k]
	}
	return m
}
