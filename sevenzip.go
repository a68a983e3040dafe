// Copyright (c) little.freaky
// SPDX-License-Identifier: MPL-2.0

package unzip

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/bodgit/sevenzip"
)

// fileExtension7zip is the file extension for 7zip files
const fileExtension7zip = "7z"

// magicBytes7zip are the magic bytes for 7zip files
var magicBytes7zip = [][]byte{
	{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C},
}

// Is7zip checks if the header matches the magic bytes for 7zip files
func Is7zip(data []byte) bool {
	return matchesMagicBytes(data, 0, magicBytes7zip)
}

// buildSevenZipSession parses src as a 7zip archive and folds it into a
// session tree. Entry content is opened lazily from the underlying file.
func buildSevenZipSession(src *os.File, size int64, cfg *Config) (*Entry, error) {
	reader, err := sevenzip.NewReader(src, size)
	if err != nil {
		return nil, fmt.Errorf("cannot create 7zip reader: %w", err)
	}
	return buildTree(&sevenZipWalker{r: reader}, cfg, false)
}

// sevenZipWalker is a walker for 7zip files
type sevenZipWalker struct {
	r  *sevenzip.Reader
	fp int
}

// Type returns the file extension for 7zip files
func (z sevenZipWalker) Type() string {
	return fileExtension7zip
}

// Next returns the next entry in the 7zip archive
func (z *sevenZipWalker) Next() (archiveEntry, error) {
	if z.fp >= len(z.r.File) {
		return nil, io.EOF
	}
	defer func() { z.fp++ }()
	return &sevenZipEntry{z.r.File[z.fp]}, nil
}

// sevenZipEntry is an entry in a 7zip archive
type sevenZipEntry struct {
	f *sevenzip.File
}

// Name returns the name of the entry
func (z *sevenZipEntry) Name() string {
	return z.f.Name
}

// Size returns the size of the entry
func (z *sevenZipEntry) Size() int64 {
	return z.f.FileInfo().Size()
}

// Mode returns the mode of the entry
func (z *sevenZipEntry) Mode() fs.FileMode {
	return z.f.FileInfo().Mode()
}

// ModTime returns the modification time of the entry
func (z *sevenZipEntry) ModTime() time.Time {
	return z.f.FileInfo().ModTime()
}

// IsRegular returns true if the entry is a regular file
func (z *sevenZipEntry) IsRegular() bool {
	return z.f.FileInfo().Mode().IsRegular()
}

// IsDir returns true if the entry is a directory
func (z *sevenZipEntry) IsDir() bool {
	return z.f.FileInfo().Mode().IsDir()
}

// Open returns a reader for the entry
func (z *sevenZipEntry) Open() (io.ReadCloser, error) {
	return z.f.Open()
}
