// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package utilityhub

import (
	"slices"

	"github.com/z5labs/utilityhub/config"
)

// Metadata records, per settings field, which source supplied the
// winning value. It is built once per [Load] call and never modified
// afterwards.
type Metadata struct {
	origins map[string]config.Origin
}

// Source returns the provenance of the named field. The second return
// value reports whether any source provided a value for the field at
// all, which an optional field without a default may lack.
func (m *Metadata) Source(field string) (config.Origin, bool) {
	o, ok := m.origins[field]
	return o, ok
}

// Fields returns the name of every field with recorded provenance,
// sorted for stable iteration.
func (m *Metadata) Fields() []string {
	names := make([]string, 0, len(m.origins))
	for name := range m.origins {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
