package search

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	// listPageSize is the largest page the Drive files.list call accepts.
	listPageSize = 1000
	// listOrder puts folders first, then the most recently modified entities.
	listOrder = "folder, modifiedTime desc"
)

// RootSearcher issues one filtered listing per configured root.
type RootSearcher struct {
	storage     Storage
	callTimeout time.Duration
}

// NewRootSearcher creates a RootSearcher backed by storage.
func NewRootSearcher(storage Storage, callTimeout time.Duration) *RootSearcher {
	return &RootSearcher{storage: storage, callTimeout: callTimeout}
}

// Search lists the entities of root that pass the coarse backend filter,
// in backend order.
func (s *RootSearcher) Search(ctx context.Context, root Root, f QueryFilter) ([]*Entity, error) {
	ctx, cancel := withTimeout(ctx, s.callTimeout)
	defer cancel()

	entities, err := s.storage.List(ctx, ListRequest{
		RootID:   root.ID,
		Query:    BuildQuery(root, f),
		PageSize: listPageSize,
		OrderBy:  listOrder,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to search %s: %w", ErrBackendQuery, root.Name, err)
	}
	return entities, nil
}

// BuildQuery returns the Drive search expression for f within root.
// Every token must appear in the name; ordering is checked later by the
// renderer's pattern.
func BuildQuery(root Root, f QueryFilter) string {
	var clauses []string
	switch f.Type {
	case EntityFolder:
		clauses = append(clauses, fmt.Sprintf("mimeType = '%s'", FolderMimeType))
	case EntityFile:
		clauses = append(clauses, fmt.Sprintf("mimeType != '%s'", FolderMimeType))
	}
	for _, t := range f.Tokens {
		clauses = append(clauses, fmt.Sprintf("name contains '%s'", escapeQuery(t)))
	}
	clauses = append(clauses, "trashed = false")
	if root.ID == RootSentinel {
		clauses = append(clauses, "'me' in owners")
	}
	return strings.Join(clauses, " and ")
}

// escapeQuery escapes a literal for use inside a single-quoted Drive query string.
func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "'", `\'`)
}
