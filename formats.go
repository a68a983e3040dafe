// Copyright (c) little.freaky
// SPDX-License-Identifier: MPL-2.0

package unzip

import (
	"bytes"
	"os"
	"sort"
	"strings"
)

// sessionBuilder is a function that parses an archive from src and folds its
// entries into a session tree. src is positioned at the start of the file.
type sessionBuilder func(src *os.File, size int64, cfg *Config) (*Entry, error)

// headerCheck is a function that checks if the given header matches the
// expected magic bytes.
type headerCheck func([]byte) bool

// availableFormat describes one supported archive format: how to detect it
// and how to build a session tree from it.
type availableFormat struct {
	Builder        sessionBuilder
	HeaderCheck    headerCheck
	MagicBytes     [][]byte
	Offset         int
	FileExtensions []string
	Type           string
}

// availableFormats is the collection of supported archive formats with the
// required magic bytes and potential offset. Compressed formats are expected
// to hold a tar archive; their session type reflects that.
var availableFormats = map[string]availableFormat{
	fileExtensionZip: {
		Builder:     buildZipSession,
		HeaderCheck: IsZip,
		MagicBytes:  magicBytesZip,
		Type:        fileExtensionZip,
	},
	fileExtensionTar: {
		Builder:     buildTarSession,
		HeaderCheck: IsTar,
		MagicBytes:  magicBytesTar,
		Offset:      offsetTar,
		Type:        fileExtensionTar,
	},
	fileExtension7zip: {
		Builder:     buildSevenZipSession,
		HeaderCheck: Is7zip,
		MagicBytes:  magicBytes7zip,
		Type:        fileExtension7zip,
	},
	fileExtensionRar: {
		Builder:     buildRarSession,
		HeaderCheck: IsRar,
		MagicBytes:  magicBytesRar,
		Type:        fileExtensionRar,
	},
	fileExtensionGZip: {
		Builder:     compressedTarBuilder(decompressGZipStream, fileExtensionGZip),
		HeaderCheck: IsGZip,
		MagicBytes:  magicBytesGZip,
		Type:        "tar." + fileExtensionGZip,
	},
	fileExtensionBzip2: {
		Builder:     compressedTarBuilder(decompressBz2Stream, fileExtensionBzip2),
		HeaderCheck: IsBzip2,
		MagicBytes:  magicBytesBzip2,
		Type:        "tar." + fileExtensionBzip2,
	},
	fileExtensionXz: {
		Builder:     compressedTarBuilder(decompressXzStream, fileExtensionXz),
		HeaderCheck: IsXz,
		MagicBytes:  magicBytesXz,
		Type:        "tar." + fileExtensionXz,
	},
	fileExtensionZstd: {
		Builder:     compressedTarBuilder(decompressZstdStream, fileExtensionZstd),
		HeaderCheck: IsZstd,
		MagicBytes:  magicBytesZstd,
		Type:        "tar." + fileExtensionZstd,
	},
	fileExtensionLZ4: {
		Builder:     compressedTarBuilder(decompressLZ4Stream, fileExtensionLZ4),
		HeaderCheck: IsLZ4,
		MagicBytes:  magicBytesLZ4,
		Type:        "tar." + fileExtensionLZ4,
	},
	fileExtensionSnappy: {
		Builder:     compressedTarBuilder(decompressSnappyStream, fileExtensionSnappy),
		HeaderCheck: IsSnappy,
		MagicBytes:  magicBytesSnappy,
		Type:        "tar." + fileExtensionSnappy,
	},
	fileExtensionZlib: {
		Builder:     compressedTarBuilder(decompressZlibStream, fileExtensionZlib),
		HeaderCheck: IsZlib,
		MagicBytes:  magicBytesZlib,
		Type:        "tar." + fileExtensionZlib,
	},
	fileExtensionBrotli: {
		Builder:        compressedTarBuilder(decompressBrotliStream, fileExtensionBrotli),
		HeaderCheck:    IsBrotli,
		FileExtensions: []string{".br", ".tbr"},
		Type:           "tar." + fileExtensionBrotli,
	},
}

// maxHeaderLength is the maximum header length of all formats
var maxHeaderLength int

// init calculates the maximum header length
func init() {
	for _, f := range availableFormats {
		needs := f.Offset
		for _, mb := range f.MagicBytes {
			if len(mb)+f.Offset > needs {
				needs = len(mb) + f.Offset
			}
		}
		if needs > maxHeaderLength {
			maxHeaderLength = needs
		}
	}
}

// matchesMagicBytes checks if data matches one of the provided magic byte
// sequences at the given offset.
func matchesMagicBytes(data []byte, offset int, magicBytes [][]byte) bool {
	// check all possible magic bytes until a match is found
	for _, mb := range magicBytes {
		// check if header is long enough
		if offset+len(mb) > len(data) {
			continue
		}

		// check for byte match
		if bytes.Equal(mb, data[offset:offset+len(mb)]) {
			return true
		}
	}

	// no match found
	return false
}

// formatNames returns the names of all supported formats in sorted order,
// so detection is deterministic.
func formatNames() []string {
	names := make([]string, 0, len(availableFormats))
	for name := range availableFormats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// detectFormat identifies the archive format of src based on the header
// magic bytes, with a file extension fallback for formats whose magic bytes
// are not unique. The forced extraction type from cfg takes precedence.
func detectFormat(header []byte, src string, cfg *Config) (availableFormat, error) {
	// honor forced extraction type
	if want := cfg.ExtractionType(); want != "" {
		f, ok := availableFormats[want]
		if !ok {
			return availableFormat{}, ErrUnsupportedFormat
		}
		return f, nil
	}

	// check magic bytes
	for _, name := range formatNames() {
		f := availableFormats[name]
		if f.HeaderCheck(header) {
			return f, nil
		}
	}

	// fall back to file extensions
	lower := strings.ToLower(src)
	for _, name := range formatNames() {
		for _, ext := range availableFormats[name].FileExtensions {
			if strings.HasSuffix(lower, ext) {
				return availableFormats[name], nil
			}
		}
	}

	return availableFormat{}, ErrUnsupportedFormat
}
