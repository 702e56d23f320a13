package search

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net/url"
	"strings"
)

// Renderer turns listed entities into page-sized batches of HTML blocks.
type Renderer struct {
	presentation Presentation
	strategy     MatchStrategy
	pageSize     int
	maxResults   int
	logger       *slog.Logger
}

// NewRenderer creates a Renderer. pageSize is the number of blocks per page
// and maxResults the accepted-count ceiling.
func NewRenderer(p Presentation, strategy MatchStrategy, pageSize, maxResults int, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		presentation: p,
		strategy:     strategy,
		pageSize:     pageSize,
		maxResults:   maxResults,
		logger:       logger,
	}
}

// Render appends the accepted entities of one root to the session.
// It returns true once the ceiling has been hit; the caller must stop feeding
// entities from any root after that.
func (r *Renderer) Render(ctx context.Context, s *Session, root Root, entities []*Entity) (bool, error) {
	rootTitled := false
	for _, e := range entities {
		if r.strategy != MatchCoarse && !s.Filter.Match(e.Name) {
			continue
		}

		s.Count++
		if s.Count >= r.maxResults {
			s.CeilingHit = true
			return true, nil
		}

		body, err := r.renderEntity(ctx, s, root, e)
		if err != nil {
			return false, err
		}

		var header strings.Builder
		if !s.titled {
			header.WriteString(r.title(s.Filter.Query))
			s.titled = true
		}
		if !rootTitled {
			fmt.Fprintf(&header, "<br><b>%s</b><br><br>", html.EscapeString(root.Name))
			rootTitled = true
		}

		s.current.Blocks = append(s.current.Blocks, Block{Header: header.String(), Body: body})
		if len(s.current.Blocks) >= r.pageSize {
			r.Flush(s)
		}
	}
	return false, nil
}

// Flush closes the session's open page buffer, if it holds any blocks.
func (r *Renderer) Flush(s *Session) {
	if len(s.current.Blocks) == 0 {
		return
	}
	s.Pages = append(s.Pages, s.current)
	s.current = PageBuffer{}
}

func (r *Renderer) title(query string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<h3>%s %s</h3>", html.EscapeString(r.presentation.Header), html.EscapeString(query))
	if repo := r.presentation.repoURL(); repo != "" {
		fmt.Fprintf(&sb, `<br><b><a href="%s"> %s </a></b>`,
			html.EscapeString(repo), html.EscapeString(r.presentation.RepoLabel))
	}
	return sb.String()
}

func (r *Renderer) renderEntity(ctx context.Context, s *Session, root Root, e *Entity) (string, error) {
	var sb strings.Builder
	name := html.EscapeString(e.Name)
	if e.IsFolder {
		fmt.Fprintf(&sb, "🗃️<code>%s</code> <b>(folder)</b><br>", name)
		fmt.Fprintf(&sb, `<b><a href="%s">Google Drive link</a></b>`, FolderURL(e.ID))
	} else {
		fmt.Fprintf(&sb, "<code>%s</code> <b>(%s)</b><br>", name, FormatSize(e.Size))
		fmt.Fprintf(&sb, `<b><a href="%s">Google Drive link</a></b>`, html.EscapeString(DownloadURL(e.ID)))
	}

	if root.IndexURL != "" {
		link, err := r.indexLink(ctx, s, root, e)
		switch {
		case errors.Is(err, ErrPathUnresolvable):
			r.logger.Warn("omitting index link", "session", s.ID, "entity", e.ID, "error", err)
		case err != nil:
			return "", err
		default:
			fmt.Fprintf(&sb, `<b> | <a href="%s">Index link</a></b>`, html.EscapeString(link))
		}
	}

	sb.WriteString("<br><br>")
	return sb.String(), nil
}

func (r *Renderer) indexLink(ctx context.Context, s *Session, root Root, e *Entity) (string, error) {
	names, err := s.resolver.Resolve(ctx, e, root.ID)
	if err != nil {
		return "", err
	}
	return IndexURL(root.IndexURL, names, e.IsFolder), nil
}

// IndexURL joins percent-encoded path segments onto base. Folder links end
// with a slash.
func IndexURL(base string, segments []string, folder bool) string {
	escaped := make([]string, len(segments))
	for i, seg := range segments {
		escaped[i] = escapeSegment(seg)
	}
	u := strings.TrimSuffix(base, "/") + "/" + strings.Join(escaped, "/")
	if folder {
		u += "/"
	}
	return u
}

// escapeSegment percent-encodes everything except unreserved characters.
func escapeSegment(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// FolderURL returns the Drive browse link for a folder id.
func FolderURL(id string) string {
	return "https://drive.google.com/drive/folders/" + url.PathEscape(id)
}

// DownloadURL returns the Drive direct-download link for a file id.
func DownloadURL(id string) string {
	return "https://drive.google.com/uc?id=" + url.QueryEscape(id) + "&export=download"
}
