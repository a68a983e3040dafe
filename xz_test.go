package unzip_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/ulikunitz/xz"

	"github.com/littlefreaky/unzip"
)

// compressXz compresses data with xz
func compressXz(t *testing.T, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		t.Fatalf("creating xz writer failed: %v", err)
	}
	if _, err := w.Write(data); err != nil {
		t.Fatalf("xz compression failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing xz writer failed: %v", err)
	}
	return buf.Bytes()
}

func TestIsXz(t *testing.T) {
	tests := []struct {
		name   string
		header []byte
		want   bool
	}{
		{
			name:   "Valid xz header",
			header: []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
			want:   true,
		},
		{
			name:   "Invalid xz header",
			header: []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x01},
			want:   false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := unzip.IsXz(test.header); got != test.want {
				t.Errorf("IsXz() = %v, want %v", got, test.want)
			}
		})
	}
}

func TestXzUnpack(t *testing.T) {
	archive := writeTestFile(t, "test.tar.xz", compressXz(t, createTestTarBytes(t, scenarioEntries())))
	dst := t.TempDir()

	if err := unzip.Unpack(context.Background(), archive, dst, unzip.NewConfig()); err != nil {
		t.Fatalf("Unpack() failed: %v", err)
	}
	checkScenario(t, dst)
}
