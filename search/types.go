package search

import (
	"context"
	"regexp"
)

// FolderMimeType is the Drive MIME type that marks an entity as a folder.
const FolderMimeType = "application/vnd.google-apps.folder"

// RootSentinel is the alias Drive accepts for the caller's own My Drive root.
const RootSentinel = "root"

// EntityType restricts a search to folders, files, or both.
type EntityType int

const (
	EntityAny EntityType = iota
	EntityFolder
	EntityFile
)

func (t EntityType) String() string {
	switch t {
	case EntityFolder:
		return "folder"
	case EntityFile:
		return "file"
	default:
		return "any"
	}
}

// Entity is a file or folder record returned by the storage backend.
type Entity struct {
	ID        string
	Name      string
	MimeType  string
	IsFolder  bool
	Size      *int64   // nil for folders and for files without a reported size
	ParentIDs []string // first element is the effective parent
	DriveID   string   // shared drive the entity belongs to, empty for My Drive
}

// Root is one configured storage location. Roots are identified by their
// position in the configured list.
type Root struct {
	ID       string `yaml:"id" json:"id"`
	Name     string `yaml:"name" json:"name"`
	IndexURL string `yaml:"index_url,omitempty" json:"index_url,omitempty"`
}

// ListRequest describes one filtered listing call against a root.
type ListRequest struct {
	RootID   string
	Query    string
	PageSize int
	OrderBy  string
}

// Storage is the read-only storage capability consumed by the pipeline.
type Storage interface {
	// Get returns the entity with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (*Entity, error)
	// List returns the entities matching req in backend order.
	List(ctx context.Context, req ListRequest) ([]*Entity, error)
}

// Publisher hosts rendered result pages.
type Publisher interface {
	CreatePage(ctx context.Context, title, html string) (string, error)
	EditPage(ctx context.Context, id, title, html string) error
	// PageURL returns the public URL for a page id returned by CreatePage.
	PageURL(id string) string
}

// QueryFilter is the normalized form of a raw query.
type QueryFilter struct {
	Query   string // cleaned query text, shown in the page header
	Type    EntityType
	Tokens  []string
	Pattern *regexp.Regexp
}

// Match reports whether name satisfies the ordered-substring pattern.
func (f QueryFilter) Match(name string) bool {
	return f.Pattern.MatchString(name)
}

// Action is the single "open results" link returned with a reply.
type Action struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Reply is what a search produces for the chat layer.
type Reply struct {
	Text   string  `json:"text"`
	Action *Action `json:"action,omitempty"`
}
