package search

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"
)

// Paginator publishes page buffers and stitches them together with
// Previous/Next links.
type Paginator struct {
	publisher   Publisher
	title       string
	callTimeout time.Duration
}

// NewPaginator creates a Paginator publishing pages under title.
func NewPaginator(publisher Publisher, title string, callTimeout time.Duration) *Paginator {
	return &Paginator{publisher: publisher, title: title, callTimeout: callTimeout}
}

// Publish creates one page per buffer, in order. When there is more than one
// page, every page is then rewritten with links to its neighbours.
func (p *Paginator) Publish(ctx context.Context, pages []PageBuffer) ([]PublishedPage, error) {
	published := make([]PublishedPage, 0, len(pages))
	for i, page := range pages {
		id, err := p.create(ctx, page.HTML())
		if err != nil {
			return nil, fmt.Errorf("%w: failed to create page %d: %w", ErrPublish, i+1, err)
		}
		published = append(published, PublishedPage{ID: id, Index: i})
	}

	if len(published) < 2 {
		return published, nil
	}

	for i, page := range pages {
		content := page.HTML() + p.navigation(published, i)
		if err := p.edit(ctx, published[i].ID, content); err != nil {
			return nil, fmt.Errorf("%w: failed to edit page %d: %w", ErrPublish, i+1, err)
		}
	}
	return published, nil
}

// navigation returns the link fragment for page i. Targets come from i-1 and
// i+1 only, independent of the order pages are edited in.
func (p *Paginator) navigation(published []PublishedPage, i int) string {
	var sb strings.Builder
	if prev := i - 1; prev >= 0 {
		fmt.Fprintf(&sb, `<b><a href="%s">Previous</a></b>`, html.EscapeString(p.publisher.PageURL(published[prev].ID)))
	}
	if next := i + 1; next < len(published) {
		sep := ""
		if sb.Len() > 0 {
			sep = " | "
		}
		fmt.Fprintf(&sb, `<b>%s<a href="%s">Next</a></b>`, sep, html.EscapeString(p.publisher.PageURL(published[next].ID)))
	}
	return sb.String()
}

func (p *Paginator) create(ctx context.Context, content string) (string, error) {
	ctx, cancel := withTimeout(ctx, p.callTimeout)
	defer cancel()
	return p.publisher.CreatePage(ctx, p.title, content)
}

func (p *Paginator) edit(ctx context.Context, id, content string) error {
	ctx, cancel := withTimeout(ctx, p.callTimeout)
	defer cancel()
	return p.publisher.EditPage(ctx, id, p.title, content)
}
