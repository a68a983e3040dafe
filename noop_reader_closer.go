// Copyright (c) little.freaky
// SPDX-License-Identifier: MPL-2.0

package unzip

import "io"

// noopReaderCloser is a struct that implements the io.ReadCloser interface
// with a no-op Close method.
type noopReaderCloser struct {
	io.Reader
}

// Close is a no-op method that satisfies the io.Closer interface.
func (n *noopReaderCloser) Close() error {
	return nil
}
