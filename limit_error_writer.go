// Copyright (c) little.freaky
// SPDX-License-Identifier: MPL-2.0

package unzip

import (
	"io"
)

// limitErrorWriter is a writer that returns an error if the limit is
// exceeded before the input is fully written.
// If the limit is -1, all data is written.
type limitErrorWriter struct {
	W io.Writer // underlying writer
	L int64     // limit
	N int64     // number of bytes written
}

// Write writes p to the underlying writer. It returns an error if the limit
// is exceeded, even if parts of p have already been written.
func (l *limitErrorWriter) Write(p []byte) (int, error) {
	// determine how many bytes can still be written
	m := l.L - l.N
	if l.L == -1 || m > int64(len(p)) {
		m = int64(len(p))
	}

	// check if limit has exceeded
	if m < int64(len(p)) {
		// write the remaining quota so the caller sees the partial write
		n, err := l.W.Write(p[:m])
		l.N += int64(n)
		if err != nil {
			return n, err
		}
		return n, ErrMaxExtractionSizeExceeded
	}

	n, err := l.W.Write(p)
	l.N += int64(n)
	return n, err
}

// limitWriter returns w wrapped in a limitErrorWriter, or w itself if the
// limit is -1.
func limitWriter(w io.Writer, limit int64) io.Writer {
	if limit == -1 {
		return w
	}
	return &limitErrorWriter{W: w, L: limit}
}
