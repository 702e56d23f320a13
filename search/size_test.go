package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSize(t *testing.T) {
	size := func(n int64) *int64 { return &n }

	tests := []struct {
		name string
		in   *int64
		want string
	}{
		{"nil", nil, "0B"},
		{"zero", size(0), "0B"},
		{"below one KB", size(1023), "1023B"},
		{"one KB", size(1024), "1.0KB"},
		{"fraction", size(1536), "1.5KB"},
		{"two KB", size(2048), "2.0KB"},
		{"rounds to two places", size(1130), "1.1KB"},
		{"rounding carries", size(1048575), "1024.0KB"},
		{"one MB", size(1 << 20), "1.0MB"},
		{"one GB and a quarter", size(5 << 28), "1.25GB"},
		{"one PB", size(1 << 50), "1.0PB"},
		{"past PB", size(1 << 60), "File too large"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatSize(tc.in))
		})
	}
}
