// Copyright (c) little.freaky
// SPDX-License-Identifier: MPL-2.0

package unzip

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
)

// decompressionFunc is a function that wraps src in a decompressing reader.
type decompressionFunc func(src io.Reader) (io.Reader, error)

// compressedTarBuilder returns a sessionBuilder that decompresses src with
// decFunc and folds the contained tar archive into a session tree. A
// decompressed stream that is not a tar archive is not a tree structured
// archive and fails the open.
func compressedTarBuilder(decFunc decompressionFunc, fileExt string) sessionBuilder {
	return func(src *os.File, size int64, cfg *Config) (*Entry, error) {
		// limit input size
		limitedReader := newLimitErrorReader(src, cfg.MaxInputSize())

		// start decompression
		decompressedStream, err := decFunc(limitedReader)
		if err != nil {
			return nil, fmt.Errorf("cannot start %s decompression: %w", fileExt, err)
		}
		defer func() {
			if closer, ok := decompressedStream.(io.Closer); ok {
				closer.Close()
			}
		}()

		// peek at the decompressed header to verify it is a tar archive
		headerReader, err := newHeaderReader(decompressedStream, maxHeaderLength)
		if err != nil {
			return nil, fmt.Errorf("cannot read uncompressed header: %w", err)
		}
		if !IsTar(headerReader.PeekHeader()) {
			return nil, fmt.Errorf("decompressed %s stream is not a tar archive", fileExt)
		}

		return buildTree(&tarWalker{tr: tar.NewReader(headerReader)}, cfg, true)
	}
}
