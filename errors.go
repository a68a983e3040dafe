// Copyright (c) little.freaky
// SPDX-License-Identifier: MPL-2.0

package unzip

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned if the archive type cannot be
	// determined from the magic bytes or the file extension.
	ErrUnsupportedFormat = errors.New("archive format not supported")

	// ErrMaxEntriesExceeded is returned if an archive contains more entries
	// than configured with [WithMaxEntries].
	ErrMaxEntriesExceeded = errors.New("maximum number of archive entries exceeded")

	// ErrMaxInputSizeExceeded is returned if the archive is larger than
	// configured with [WithMaxInputSize].
	ErrMaxInputSizeExceeded = errors.New("maximum input size exceeded")

	// ErrMaxExtractionSizeExceeded is returned if the decompressed content
	// exceeds the limit configured with [WithMaxExtractionSize].
	ErrMaxExtractionSizeExceeded = errors.New("maximum extraction size exceeded")

	// ErrMaxRecursionDepthExceeded is returned if the archive tree is nested
	// deeper than configured with [WithMaxRecursionDepth].
	ErrMaxRecursionDepthExceeded = errors.New("maximum recursion depth exceeded")
)

// OpenError is returned if an archive does not exist or cannot be parsed.
type OpenError struct {
	// Path is the path of the archive.
	Path string

	// Err is the underlying error.
	Err error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("cannot open archive %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

// ReadError is returned if the metadata or content of a specific archive
// entry cannot be read. Path identifies the offending entry within the
// archive.
type ReadError struct {
	// Path is the entry path inside the archive.
	Path string

	// Err is the underlying error.
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("cannot read archive entry %q: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// DirectoryCreateError is returned if a destination directory cannot be
// created, or if an entry-kind conflict is detected at the destination path.
type DirectoryCreateError struct {
	// Path is the conflicting destination path.
	Path string

	// Err is the underlying error.
	Err error
}

func (e *DirectoryCreateError) Error() string {
	return fmt.Sprintf("cannot create directory %q: %v", e.Path, e.Err)
}

func (e *DirectoryCreateError) Unwrap() error {
	return e.Err
}

// CopyError is returned if file content cannot be copied to the destination.
// Best-effort attribute restoration failures are logged, not raised.
type CopyError struct {
	// Path is the destination path of the file.
	Path string

	// Err is the underlying error.
	Err error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("cannot copy file %q: %v", e.Path, e.Err)
}

func (e *CopyError) Unwrap() error {
	return e.Err
}
