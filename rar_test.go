package unzip_test

import (
	"errors"
	"testing"

	"github.com/littlefreaky/unzip"
)

func TestIsRar(t *testing.T) {
	tests := []struct {
		name   string
		header []byte
		want   bool
	}{
		{
			name:   "Valid Rar 1.5 header",
			header: []byte{0x52, 0x61, 0x72, 0x21, 0x1a, 0x07, 0x00},
			want:   true,
		},
		{
			name:   "Valid Rar 5.0 header",
			header: []byte{0x52, 0x61, 0x72, 0x21, 0x1a, 0x07, 0x01, 0x00},
			want:   true,
		},
		{
			name:   "Invalid Rar header",
			header: []byte{0x52, 0x61, 0x72, 0x20, 0x1a, 0x07, 0x00},
			want:   false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := unzip.IsRar(test.header); got != test.want {
				t.Errorf("IsRar() = %v, want %v", got, test.want)
			}
		})
	}
}

func TestOpenTruncatedRar(t *testing.T) {
	// valid magic bytes, truncated body
	archive := writeTestFile(t, "broken.rar", []byte{0x52, 0x61, 0x72, 0x21, 0x1a, 0x07, 0x00, 0x00})

	_, err := unzip.Open(archive, unzip.NewConfig())
	var oe *unzip.OpenError
	if !errors.As(err, &oe) {
		t.Fatalf("Open() = %v, want OpenError", err)
	}
}
