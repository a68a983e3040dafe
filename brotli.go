// Copyright (c) little.freaky
// SPDX-License-Identifier: MPL-2.0

package unzip

import (
	"io"

	"github.com/andybalholm/brotli"
)

// fileExtensionBrotli is the file extension for brotli files
const fileExtensionBrotli = "br"

// IsBrotli returns always false, because the brotli magic bytes are not
// unique. Brotli archives are detected by the .br/.tbr file extension.
func IsBrotli(header []byte) bool {
	return false
}

// decompressBrotliStream returns an io.Reader that decompresses src with the
// brotli algorithm
func decompressBrotliStream(src io.Reader) (io.Reader, error) {
	return brotli.NewReader(src), nil
}
