// Copyright (c) little.freaky
// SPDX-License-Identifier: MPL-2.0

package unzip

import (
	"io"
	"io/fs"
	"time"
)

// Target specifies all functions that are needed to mirror an archive tree
// onto a filesystem. The default implementation is [TargetDisk]; a custom
// target can be injected with [WithTarget].
type Target interface {
	// CreateDir creates a directory at the specified path with the specified
	// mode. If the directory already exists, nothing is done.
	CreateDir(path string, mode fs.FileMode) error

	// CreateFile creates a file at the specified path with src as content,
	// replacing an existing file at that path. The size of the file must not
	// exceed maxSize; if maxSize < 0, the file size is not limited. The
	// number of bytes written is returned, along with any error.
	CreateFile(path string, src io.Reader, mode fs.FileMode, maxSize int64) (int64, error)

	// Lstat see docs for os.Lstat. Main purpose is to detect kind conflicts
	// at the destination path before creating directories.
	Lstat(path string) (fs.FileInfo, error)

	// Chtimes see docs for os.Chtimes. Main purpose is the best-effort
	// restoration of modification times.
	Chtimes(name string, atime, mtime time.Time) error
}
