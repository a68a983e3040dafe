// Copyright (c) little.freaky
// SPDX-License-Identifier: MPL-2.0

package unzip

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"
)

// Entry is one node in an archive's tree: a directory or a regular file.
// Entries are immutable, owned by the [Session] that produced them, and must
// not be used after the session is closed.
type Entry struct {
	name     string
	path     string
	dir      bool
	size     int64
	mode     fs.FileMode
	modTime  time.Time
	children []*Entry
	open     func() (io.ReadCloser, error)
}

// Name returns the base name of the entry.
func (e *Entry) Name() string {
	return e.name
}

// Path returns the slash separated path of the entry relative to the
// archive root.
func (e *Entry) Path() string {
	return e.path
}

// IsDir returns true if the entry is a directory.
func (e *Entry) IsDir() bool {
	return e.dir
}

// Size returns the uncompressed size of a file entry, and 0 for directories.
func (e *Entry) Size() int64 {
	return e.size
}

// Mode returns the file mode recorded in the archive. Formats that carry no
// mode information report 0; extraction falls back to default modes then.
func (e *Entry) Mode() fs.FileMode {
	return e.mode
}

// ModTime returns the modification time recorded in the archive.
func (e *Entry) ModTime() time.Time {
	return e.modTime
}

// child returns the direct child with the given name, or nil.
func (e *Entry) child(name string) *Entry {
	for _, c := range e.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// Session is an open archive: a navigable, read-only view of the archive's
// internal tree. A session is owned by the extraction run that opened it and
// must be closed exactly once, on every exit path.
type Session struct {
	src       string
	format    string
	inputSize int64
	root      *Entry
	f         *os.File
	cfg       *Config
	closed    bool
}

// Open opens the archive at src and folds its entries into a navigable
// tree. The archive type is detected from the magic bytes, with a file
// extension fallback for types without unique magic bytes. If cfg is nil,
// the default configuration is used.
//
// Open fails with an [OpenError] if the archive does not exist or cannot be
// parsed, with a [ReadError] if a specific entry is malformed, and with a
// [DirectoryCreateError] if two entries of different kind share a path.
func Open(src string, cfg *Config) (*Session, error) {
	if cfg == nil {
		cfg = NewConfig()
	}

	f, err := os.Open(src)
	if err != nil {
		return nil, &OpenError{Path: src, Err: err}
	}

	s, err := newSession(f, src, cfg)
	if err != nil {
		f.Close()

		// entry-level errors keep their type, everything else is a
		// failure to open/parse the archive
		var re *ReadError
		var de *DirectoryCreateError
		if errors.As(err, &re) || errors.As(err, &de) {
			return nil, err
		}
		return nil, &OpenError{Path: src, Err: err}
	}
	return s, nil
}

// newSession detects the archive format of f and builds the session tree.
func newSession(f *os.File, src string, cfg *Config) (*Session, error) {
	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if stat.IsDir() {
		return nil, errors.New("is a directory")
	}
	size := stat.Size()
	if cfg.MaxInputSize() != -1 && size > cfg.MaxInputSize() {
		return nil, ErrMaxInputSizeExceeded
	}

	// peek at the header without moving the read offset
	header := make([]byte, maxHeaderLength)
	n, err := f.ReadAt(header, 0)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("cannot read header: %w", err)
	}
	header = header[:n]

	format, err := detectFormat(header, src, cfg)
	if err != nil {
		return nil, err
	}
	cfg.Logger().Info("opening archive", "type", format.Type, "src", src)

	root, err := format.Builder(f, size, cfg)
	if err != nil {
		return nil, err
	}

	return &Session{
		src:       src,
		format:    format.Type,
		inputSize: size,
		root:      root,
		f:         f,
		cfg:       cfg,
	}, nil
}

// Format returns the detected archive type, e.g. "zip" or "tar.gz".
func (s *Session) Format() string {
	return s.format
}

// RootEntries returns the root entries of the archive tree in archive
// defined order. The roots are directories whose children are the top level
// entries of the archive; an archive without entries yields roots without
// children.
func (s *Session) RootEntries() []*Entry {
	if s.root == nil {
		return nil
	}
	return []*Entry{s.root}
}

// Children returns the direct children of a directory entry in archive
// defined order. It fails with a [ReadError] if e is not a directory.
func (s *Session) Children(e *Entry) ([]*Entry, error) {
	if !e.IsDir() {
		return nil, &ReadError{Path: e.Path(), Err: errors.New("entry is not a directory")}
	}
	return e.children, nil
}

// OpenContent returns a reader for the content of a file entry. It fails
// with a [ReadError] if e is not a file or its content cannot be opened.
// The caller is responsible for closing the reader.
func (s *Session) OpenContent(e *Entry) (io.ReadCloser, error) {
	if e.IsDir() {
		return nil, &ReadError{Path: e.Path(), Err: errors.New("entry is not a file")}
	}
	rc, err := e.open()
	if err != nil {
		return nil, &ReadError{Path: e.Path(), Err: err}
	}
	return rc, nil
}

// Close releases the resources of the session. Close is idempotent; the
// session's entries must not be used afterwards.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.f.Close()
}
