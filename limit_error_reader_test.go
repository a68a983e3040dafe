package unzip

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestLimitErrorReader(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		limit   int64
		wantN   int
		wantErr error
	}{
		{
			name:  "read within limit",
			input: "1234567890",
			limit: 20,
			wantN: 10,
		},
		{
			name:  "unlimited",
			input: "1234567890",
			limit: -1,
			wantN: 10,
		},
		{
			name:    "limit exceeded",
			input:   "1234567890",
			limit:   5,
			wantN:   5,
			wantErr: ErrMaxInputSizeExceeded,
		},
		{
			name:  "empty input",
			input: "",
			limit: 5,
			wantN: 0,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			l := newLimitErrorReader(strings.NewReader(test.input), test.limit)
			data, err := io.ReadAll(l)

			if test.wantErr != nil {
				if !errors.Is(err, test.wantErr) {
					t.Fatalf("ReadAll() = %v, want %v", err, test.wantErr)
				}
			} else if err != nil {
				t.Fatalf("ReadAll() failed: %v", err)
			}
			if len(data) != test.wantN {
				t.Errorf("read %d bytes, want %d", len(data), test.wantN)
			}
			if l.ReadBytes() != test.wantN {
				t.Errorf("ReadBytes() = %d, want %d", l.ReadBytes(), test.wantN)
			}
		})
	}
}
