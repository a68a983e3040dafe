// Copyright (c) little.freaky
// SPDX-License-Identifier: MPL-2.0

package unzip

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/nwaples/rardecode"
)

// fileExtensionRar is the file extension for Rar files.
const fileExtensionRar = "rar"

// magicBytesRar are the magic bytes for Rar files.
var magicBytesRar = [][]byte{
	{0x52, 0x61, 0x72, 0x21, 0x1A, 0x07, 0x00},       // Rar 1.5
	{0x52, 0x61, 0x72, 0x21, 0x1A, 0x07, 0x01, 0x00}, // Rar 5.0
}

// IsRar checks if the header matches the magic bytes for Rar files
func IsRar(data []byte) bool {
	return matchesMagicBytes(data, 0, magicBytesRar)
}

// buildRarSession parses src as a rar archive and folds it into a session
// tree. Rar is consumed as a stream, so file content is spooled into the
// tree while folding.
func buildRarSession(src *os.File, size int64, cfg *Config) (*Entry, error) {
	limitedReader := newLimitErrorReader(src, cfg.MaxInputSize())
	a, err := rardecode.NewReader(limitedReader, "")
	if err != nil {
		return nil, fmt.Errorf("cannot create rar decoder: %w", err)
	}
	return buildTree(&rarWalker{r: a}, cfg, true)
}

// rarWalker is a walker for Rar files.
type rarWalker struct {
	r *rardecode.Reader
}

// Type returns the file extension for rar files.
func (rw *rarWalker) Type() string {
	return fileExtensionRar
}

// Next returns the next entry in the rar file.
func (rw *rarWalker) Next() (archiveEntry, error) {
	fh, err := rw.r.Next()
	if err != nil {
		return nil, err
	}
	return &rarEntry{fh, rw.r}, nil
}

// rarEntry is an entry in a rar archive.
type rarEntry struct {
	f *rardecode.FileHeader
	r io.Reader
}

// Name returns the name of the entry.
func (r *rarEntry) Name() string {
	return r.f.Name
}

// Size returns the size of the entry.
func (r *rarEntry) Size() int64 {
	return r.f.UnPackedSize
}

// Mode returns the mode of the entry.
func (r *rarEntry) Mode() fs.FileMode {
	return r.f.Mode()
}

// ModTime returns the modification time of the entry.
func (r *rarEntry) ModTime() time.Time {
	return r.f.ModificationTime
}

// IsRegular returns true if the entry is a regular file.
func (r *rarEntry) IsRegular() bool {
	return !r.f.IsDir
}

// IsDir returns true if the entry is a directory.
func (r *rarEntry) IsDir() bool {
	return r.f.IsDir
}

// Open returns a reader for the entry. The reader is only valid until the
// walker advances, which is why rar sessions spool content while folding.
func (r *rarEntry) Open() (io.ReadCloser, error) {
	return io.NopCloser(r.r), nil
}
