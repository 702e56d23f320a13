package search

import (
	"regexp"
	"strings"
)

// isDelimiter reports whether r separates query tokens.
func isDelimiter(r rune) bool {
	switch r {
	case ' ', '.', '_', ',', '-', '[', ']':
		return true
	}
	return false
}

// ParseQuery turns a raw query into a QueryFilter.
//
// A leading "-d " or "-f " (any case) restricts the search to folders or files.
// A stray single-letter article ("a " or "x ") is dropped when the remaining
// query is longer than two characters. A query with no tokens yields a pattern
// that matches every name.
func ParseQuery(raw string) QueryFilter {
	q := raw
	typ := EntityAny
	if len(q) >= 3 && q[2] == ' ' {
		switch strings.ToLower(q[:2]) {
		case "-d":
			typ = EntityFolder
			q = q[3:]
		case "-f":
			typ = EntityFile
			q = q[3:]
		}
	}

	if len(q) > 2 && q[1] == ' ' {
		switch q[0] {
		case 'a', 'A', 'x', 'X':
			q = q[2:]
		}
	}

	tokens := strings.FieldsFunc(q, isDelimiter)

	var sb strings.Builder
	sb.WriteString("(?is)")
	for _, t := range tokens {
		sb.WriteString(".*")
		sb.WriteString(regexp.QuoteMeta(t))
	}

	return QueryFilter{
		Query:   strings.TrimSpace(q),
		Type:    typ,
		Tokens:  tokens,
		Pattern: regexp.MustCompile(sb.String()),
	}
}
