// Copyright (c) little.freaky
// SPDX-License-Identifier: MPL-2.0

package unzip

import (
	"io"
	"io/fs"
	"time"
)

// archiveWalker is an interface that represents a file walker in an archive.
// Walkers yield entries in archive-defined order; the order is not
// guaranteed to be sorted.
type archiveWalker interface {
	Type() string
	Next() (archiveEntry, error)
}

// archiveEntry is an interface that represents a single entry in an archive.
// An entry that is neither a directory nor a regular file is rejected while
// the session tree is built.
type archiveEntry interface {
	IsDir() bool
	IsRegular() bool
	Mode() fs.FileMode
	ModTime() time.Time
	Name() string
	Open() (io.ReadCloser, error)
	Size() int64
}
