// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package schema

import (
	"strings"
	"unicode"
)

// Snake converts a Go field name to its snake case config key, so
// "DatabaseURL" becomes "database_url" and "APIKey" becomes "api_key".
// Runs of upper case letters are treated as a single word.
func Snake(name string) string {
	runes := []rune(name)

	var sb strings.Builder
	sb.Grow(len(runes) + 2)
	for i, r := range runes {
		if !unicode.IsUpper(r) {
			sb.WriteRune(r)
			continue
		}

		if i > 0 && (!unicode.IsUpper(runes[i-1]) || nextIsLower(runes, i)) {
			sb.WriteRune('_')
		}
		sb.WriteRune(unicode.ToLower(r))
	}
	return sb.String()
}

// nextIsLower reports whether the rune after i exists and is lower
// case, which marks the start of a new word at the end of an upper
// case run, as in the "Key" of "APIKey".
func nextIsLower(runes []rune, i int) bool {
	if i+1 >= len(runes) {
		return false
	}
	return unicode.IsLower(runes[i+1])
}
