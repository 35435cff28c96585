// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package pathutil

// Path is a string which expands tilde and environment variable
// references when decoded from config text.
type Path string

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (p *Path) UnmarshalText(text []byte) error {
	*p = Path(Expand(string(text)))
	return nil
}

// String implements the fmt.Stringer interface.
func (p Path) String() string {
	return string(p)
}

// ExistingPath is a [Path] which must also name an existing file or
// directory once expanded.
type ExistingPath string

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (p *ExistingPath) UnmarshalText(text []byte) error {
	expanded, err := ExpandExisting(string(text))
	if err != nil {
		return err
	}
	*p = ExistingPath(expanded)
	return nil
}

// String implements the fmt.Stringer interface.
func (p ExistingPath) String() string {
	return string(p)
}
