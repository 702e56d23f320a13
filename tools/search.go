package tools

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/iamLiquidX/SearchX/search"
	"github.com/iamLiquidX/SearchX/types"
)

// Searcher runs one search and returns its reply.
type Searcher interface {
	Search(ctx context.Context, query string) (search.Reply, error)
}

// SearchTools provides the Drive search tool.
type SearchTools struct {
	searcher Searcher
	logger   *slog.Logger
}

// NewSearchTools creates a new SearchTools instance.
func NewSearchTools(searcher Searcher, logger *slog.Logger) *SearchTools {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchTools{searcher: searcher, logger: logger}
}

// SearchTool returns the tool definition for searching the configured Drive roots.
func (s *SearchTools) SearchTool() mcp.Tool {
	return mcp.NewTool("drive_search",
		mcp.WithDescription(`Searches every configured Google Drive root for files and folders whose names contain the query words in order.

Results are published as linked Telegraph pages.

Returns:
    str: A short summary and a link to the first results page, a "nothing found" message, or a request to narrow the query when there are too many matches.`),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description(`Words to find in file or folder names. Prefix with "-d " for folders only or "-f " for files only.`),
		),
	)
}

// SearchHandler handles drive_search tool calls.
func (s *SearchTools) SearchHandler(ctx context.Context, request mcp.CallToolRequest, args types.DriveSearchArgs) (*mcp.CallToolResult, error) {
	if args.Query == "" {
		return mcp.NewToolResultError("query is required"), nil
	}

	reply, err := s.searcher.Search(ctx, args.Query)
	if err != nil {
		s.logger.Error("drive_search failed", "query", args.Query, "error", err)
		return mcp.NewToolResultError(FailureMessage(err)), nil
	}

	data, err := types.MarshalResponse(types.NewSearchResponse(reply))
	if err != nil {
		return mcp.NewToolResultError("failed to marshal response: " + err.Error()), nil
	}
	return mcp.NewToolResultText(data), nil
}

// FailureMessage returns the generic user-facing text for a failed search.
func FailureMessage(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "search timed out, please try again later"
	case errors.Is(err, search.ErrPublish):
		return "failed to publish search results, please try again later"
	default:
		return "failed to search drive, please try again later"
	}
}
