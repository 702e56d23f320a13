package search

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"
)

// DefaultMaxDepth bounds the ancestry walk when no depth is configured.
const DefaultMaxDepth = 64

// AncestryResolver walks an entity's parent chain up to its root.
// A resolver caches the real id behind RootSentinel, so it should live for
// a single search only.
type AncestryResolver struct {
	storage     Storage
	maxDepth    int
	callTimeout time.Duration
	resolved    map[string]string
}

// NewAncestryResolver creates a resolver. A maxDepth below one uses DefaultMaxDepth.
func NewAncestryResolver(storage Storage, maxDepth int, callTimeout time.Duration) *AncestryResolver {
	if maxDepth < 1 {
		maxDepth = DefaultMaxDepth
	}
	return &AncestryResolver{
		storage:     storage,
		maxDepth:    maxDepth,
		callTimeout: callTimeout,
		resolved:    make(map[string]string),
	}
}

// Resolve returns the names from just below rootID down to e itself.
// An empty rootID falls back to the entity's shared drive.
func (r *AncestryResolver) Resolve(ctx context.Context, e *Entity, rootID string) ([]string, error) {
	if rootID == "" {
		rootID = e.DriveID
	}
	if rootID == RootSentinel {
		id, err := r.resolveSentinel(ctx)
		if err != nil {
			return nil, err
		}
		rootID = id
	}
	if rootID == "" {
		return nil, fmt.Errorf("%w: %q has no root", ErrPathUnresolvable, e.Name)
	}

	var names []string
	visited := make(map[string]bool)
	cur := e
	for cur.ID != rootID {
		if len(names) >= r.maxDepth {
			return nil, fmt.Errorf("%w: %q deeper than %d levels", ErrPathUnresolvable, e.Name, r.maxDepth)
		}
		if visited[cur.ID] {
			return nil, fmt.Errorf("%w: cycle at %q", ErrPathUnresolvable, cur.ID)
		}
		visited[cur.ID] = true
		names = append(names, cur.Name)

		if len(cur.ParentIDs) == 0 {
			return nil, fmt.Errorf("%w: %q has no parent", ErrPathUnresolvable, cur.Name)
		}
		parent, err := r.get(ctx, cur.ParentIDs[0])
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrPathUnresolvable, err)
		}
		if err != nil {
			return nil, err
		}
		cur = parent
	}

	slices.Reverse(names)
	return names, nil
}

func (r *AncestryResolver) resolveSentinel(ctx context.Context) (string, error) {
	if id, ok := r.resolved[RootSentinel]; ok {
		return id, nil
	}
	root, err := r.get(ctx, RootSentinel)
	if errors.Is(err, ErrNotFound) {
		return "", fmt.Errorf("%w: %w", ErrPathUnresolvable, err)
	}
	if err != nil {
		return "", err
	}
	r.resolved[RootSentinel] = root.ID
	return root.ID, nil
}

func (r *AncestryResolver) get(ctx context.Context, id string) (*Entity, error) {
	ctx, cancel := withTimeout(ctx, r.callTimeout)
	defer cancel()

	e, err := r.storage.Get(ctx, id)
	if err == nil {
		return e, nil
	}
	if errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return nil, fmt.Errorf("%w: failed to get %s: %w", ErrBackendQuery, id, err)
}

// withTimeout derives a context bounded by d. A zero d only adds cancellation.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
