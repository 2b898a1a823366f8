// Package versionx compares dotted version strings the way the dashboard
// validates them: sanitize, split on dots, compare numeric segments.
package versionx

import (
	"strconv"
	"strings"
)

// Clean strips every character that is not a digit or '.' from s, so inputs
// like "v1.2.3" or "1.2.3-rc1" compare on their numeric part only.
func Clean(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Compare returns 1 if a is numerically greater than b, -1 if lower and 0 if
// equal. Missing segments count as zero, so "1.2" equals "1.2.0".
//
// An empty input on either side means the version is unknown, not older or
// newer; Compare returns 0 and callers must not treat that as an ordering
// signal.
func Compare(a, b string) int {
	if a == "" || b == "" {
		return 0
	}

	as := strings.Split(Clean(a), ".")
	bs := strings.Split(Clean(b), ".")

	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}

	for i := 0; i < n; i++ {
		av := segment(as, i)
		bv := segment(bs, i)
		if av > bv {
			return 1
		}
		if av < bv {
			return -1
		}
	}
	return 0
}

// segment parses the i-th segment as a non-negative integer. Out-of-range or
// unparsable segments (e.g. the empty string between two dots) count as 0.
func segment(parts []string, i int) int {
	if i >= len(parts) {
		return 0
	}
	v, err := strconv.Atoi(parts[i])
	if err != nil || v < 0 {
		return 0
	}
	return v
}
