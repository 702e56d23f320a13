package search

import (
	"math"
	"strconv"
	"strings"
)

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB", "PB"}

// FormatSize renders a byte count as a human readable string such as
// "2.0KB". A nil size renders as "0B"; sizes past the petabyte range render
// as "File too large".
func FormatSize(size *int64) string {
	if size == nil {
		return "0B"
	}
	if *size < 1024 {
		return strconv.FormatInt(*size, 10) + sizeUnits[0]
	}

	v := float64(*size)
	i := 0
	for v >= 1024 {
		v /= 1024
		i++
	}
	if i >= len(sizeUnits) {
		return "File too large"
	}

	s := strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s + sizeUnits[i]
}
