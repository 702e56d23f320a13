package search

import (
	"strings"

	"github.com/google/uuid"
)

// State is a step of the search state machine.
type State int

const (
	StateNormalizing State = iota
	StateSearching
	StateRendering
	StateCeilingReached
	StateExhausted
	StatePublishing
	StateDone
)

func (s State) String() string {
	switch s {
	case StateNormalizing:
		return "normalizing"
	case StateSearching:
		return "searching"
	case StateRendering:
		return "rendering"
	case StateCeilingReached:
		return "ceiling-reached"
	case StateExhausted:
		return "exhausted"
	case StatePublishing:
		return "publishing"
	case StateDone:
		return "done"
	}
	return "unknown"
}

// Block is the rendered HTML for one matched entity. Header carries any
// title or root-section headers that precede it.
type Block struct {
	Header string
	Body   string
}

// HTML returns the block as it appears on a page.
func (b Block) HTML() string {
	return b.Header + b.Body
}

// PageBuffer is a batch of blocks destined for one published page.
type PageBuffer struct {
	Blocks []Block
}

// HTML concatenates the page's blocks in order.
func (p PageBuffer) HTML() string {
	var sb strings.Builder
	for _, b := range p.Blocks {
		sb.WriteString(b.HTML())
	}
	return sb.String()
}

// PublishedPage is a page accepted by the publisher.
type PublishedPage struct {
	ID    string
	Index int
}

// Session is the mutable state of one search. It is created per call and
// never shared between calls.
type Session struct {
	ID         string
	Filter     QueryFilter
	State      State
	Pages      []PageBuffer
	Published  []PublishedPage
	Count      int
	CeilingHit bool
	Reply      Reply

	current  PageBuffer
	titled   bool
	resolver *AncestryResolver
}

func newSession(resolver *AncestryResolver) *Session {
	return &Session{
		ID:       uuid.NewString(),
		State:    StateNormalizing,
		resolver: resolver,
	}
}

// Blocks returns every block of every closed page, in page order.
func (s *Session) Blocks() []Block {
	var blocks []Block
	for _, p := range s.Pages {
		blocks = append(blocks, p.Blocks...)
	}
	return blocks
}
