// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package pathutil expands filesystem paths found in config values.
package pathutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Expand replaces a leading tilde with the current user's home
// directory and substitutes $NAME and ${NAME} environment variable
// references. References to undefined variables are left verbatim so
// the mistake stays visible in the resulting path instead of silently
// collapsing to an empty string. Relative paths stay relative.
func Expand(path string) string {
	return expandVars(expandTilde(path))
}

func expandTilde(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}

func expandVars(path string) string {
	var sb strings.Builder
	sb.Grow(len(path))

	for i := 0; i < len(path); {
		if path[i] != '$' {
			sb.WriteByte(path[i])
			i++
			continue
		}

		if i+1 < len(path) && path[i+1] == '{' {
			end := strings.IndexByte(path[i+2:], '}')
			if end >= 0 {
				name := path[i+2 : i+2+end]
				if v, ok := os.LookupEnv(name); ok {
					sb.WriteString(v)
				} else {
					sb.WriteString(path[i : i+3+end])
				}
				i += 3 + end
				continue
			}
		}

		j := i + 1
		for j < len(path) && isNameByte(path[j], j == i+1) {
			j++
		}
		if j == i+1 {
			sb.WriteByte('$')
			i++
			continue
		}

		name := path[i+1 : j]
		if v, ok := os.LookupEnv(name); ok {
			sb.WriteString(v)
		} else {
			sb.WriteString(path[i:j])
		}
		i = j
	}
	return sb.String()
}

func isNameByte(c byte, first bool) bool {
	if c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') {
		return true
	}
	return !first && '0' <= c && c <= '9'
}

// PathNotFoundError occurs when an expanded path does not exist.
type PathNotFoundError struct {
	Path string
}

// Error implements the error interface.
func (e PathNotFoundError) Error() string {
	return fmt.Sprintf("path does not exist: %s", e.Path)
}

// Is implements the implicit interface used by errors.Is, so the
// error also matches fs.ErrNotExist.
func (e PathNotFoundError) Is(target error) bool {
	return target == fs.ErrNotExist
}

// ExpandExisting expands path via [Expand] and then requires the
// result to name an existing file or directory.
func ExpandExisting(path string) (string, error) {
	expanded := Expand(path)

	_, err := os.Stat(expanded)
	if errors.Is(err, fs.ErrNotExist) {
		return "", PathNotFoundError{Path: expanded}
	}
	if err != nil {
		return "", err
	}
	return expanded, nil
}
