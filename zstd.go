// Copyright (c) little.freaky
// SPDX-License-Identifier: MPL-2.0

package unzip

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

// fileExtensionZstd is the file extension for zstandard files.
const fileExtensionZstd = "zst"

// magicBytesZstd are the magic bytes for zstandard files.
var magicBytesZstd = [][]byte{
	{0x28, 0xb5, 0x2f, 0xfd},
}

// IsZstd checks if the header matches the magic bytes for zstandard files
func IsZstd(header []byte) bool {
	return matchesMagicBytes(header, 0, magicBytesZstd)
}

// decompressZstdStream returns an io.Reader that decompresses src with the
// zstandard algorithm
func decompressZstdStream(src io.Reader) (io.Reader, error) {
	decoder, err := zstd.NewReader(src)
	if err != nil {
		return nil, err
	}
	return decoder.IOReadCloser(), nil
}
