package unzip_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/andybalholm/brotli"

	"github.com/littlefreaky/unzip"
)

// compressBrotli compresses data with brotli
func compressBrotli(t *testing.T, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := brotli.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		t.Fatalf("brotli compression failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing brotli writer failed: %v", err)
	}
	return buf.Bytes()
}

// brotli has no unique magic bytes, so header based detection must never
// claim a match
func TestIsBrotli(t *testing.T) {
	if unzip.IsBrotli(compressBrotli(t, []byte("data"))) {
		t.Error("IsBrotli() = true, want false")
	}
	if unzip.IsBrotli(nil) {
		t.Error("IsBrotli(nil) = true, want false")
	}
}

func TestBrotliUnpackByExtension(t *testing.T) {
	payload := compressBrotli(t, createTestTarBytes(t, scenarioEntries()))

	for _, name := range []string{"test.tar.br", "test.tbr"} {
		t.Run(name, func(t *testing.T) {
			archive := writeTestFile(t, name, payload)
			dst := t.TempDir()

			if err := unzip.Unpack(context.Background(), archive, dst, unzip.NewConfig()); err != nil {
				t.Fatalf("Unpack() failed: %v", err)
			}
			checkScenario(t, dst)
		})
	}
}

func TestBrotliForcedType(t *testing.T) {
	// no usable extension, the type is forced instead
	archive := writeTestFile(t, "payload.bin", compressBrotli(t, createTestTarBytes(t, scenarioEntries())))
	dst := t.TempDir()

	cfg := unzip.NewConfig(unzip.WithExtractionType("br"))
	if err := unzip.Unpack(context.Background(), archive, dst, cfg); err != nil {
		t.Fatalf("Unpack() failed: %v", err)
	}
	checkScenario(t, dst)
}
