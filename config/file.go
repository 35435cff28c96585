// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"io"
	"io/fs"
	"sync"
)

// FileReader is an io.Reader that handles opening a file for reading automatically.
type FileReader struct {
	name string

	openOnce sync.Once
	fsys     fs.FS
	file     io.ReadCloser
	openErr  error
}

// NewFileReader configures a FileReader for the named file in fsys.
func NewFileReader(fsys fs.FS, name string) *FileReader {
	return &FileReader{
		name: name,
		fsys: fsys,
	}
}

// Read implements the io.Reader interface. The file is opened on
// first read and any open failure is returned by every subsequent
// read as well.
func (r *FileReader) Read(b []byte) (int, error) {
	r.openOnce.Do(func() {
		r.file, r.openErr = r.fsys.Open(r.name)
	})
	if r.openErr != nil {
		return 0, r.openErr
	}
	return r.file.Read(b)
}

// Close implements the io.Closer interface.
func (r *FileReader) Close() error {
	if r.file == nil {
		return nil
	}

	err := r.file.Close()
	r.file = nil
	return err
}
