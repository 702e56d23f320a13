package types

import (
	"strings"

	"github.com/iamLiquidX/SearchX/search"
)

// DriveSearchArgs contains arguments for a Drive search.
type DriveSearchArgs struct {
	Query string `json:"query"` // free text, optionally prefixed with "-d " or "-f "
}

// SearchResponse is the reply to a search, as returned to tool callers.
type SearchResponse struct {
	Text   string         `json:"text"`
	Action *search.Action `json:"action,omitempty"`
}

// NewSearchResponse wraps a pipeline reply.
func NewSearchResponse(r search.Reply) SearchResponse {
	return SearchResponse{Text: r.Text, Action: r.Action}
}

// MarshalCompact returns the reply text followed by "label: url" when the
// reply carries a link.
func (r SearchResponse) MarshalCompact() string {
	var sb strings.Builder
	sb.WriteString(r.Text)
	if r.Action != nil {
		sb.WriteString("\n")
		sb.WriteString(r.Action.Label)
		sb.WriteString(": ")
		sb.WriteString(r.Action.URL)
	}
	return sb.String()
}
