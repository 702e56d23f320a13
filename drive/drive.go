// Package drive implements search.Storage on top of the Google Drive v3 API.
package drive

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"github.com/iamLiquidX/SearchX/search"
)

const (
	getFields  = "id, name, mimeType, size, parents, driveId"
	listFields = "files(id, name, mimeType, size, parents, driveId)"
)

// Storage reads files and folders through a Drive service.
type Storage struct {
	service *drive.Service
}

// New creates a Storage from an authorized Drive service.
func New(service *drive.Service) *Storage {
	return &Storage{service: service}
}

// Get fetches one file by id. The "root" alias resolves to the caller's
// My Drive root folder.
func (s *Storage) Get(ctx context.Context, id string) (*search.Entity, error) {
	f, err := s.service.Files.Get(id).
		Context(ctx).
		Fields(getFields).
		SupportsAllDrives(true).
		Do()
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", search.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get file %s: %w", id, err)
	}
	return toEntity(f), nil
}

// List runs one files.list call. My Drive is searched in the user corpus,
// every other root is treated as a shared drive id.
func (s *Storage) List(ctx context.Context, req search.ListRequest) ([]*search.Entity, error) {
	call := s.service.Files.List().
		Context(ctx).
		Q(req.Query).
		Spaces("drive").
		Fields(listFields)

	if req.PageSize > 0 {
		call = call.PageSize(int64(req.PageSize))
	}
	if req.OrderBy != "" {
		call = call.OrderBy(req.OrderBy)
	}
	if req.RootID != search.RootSentinel {
		call = call.
			Corpora("drive").
			DriveId(req.RootID).
			SupportsAllDrives(true).
			IncludeItemsFromAllDrives(true)
	}

	fileList, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	entities := make([]*search.Entity, 0, len(fileList.Files))
	for _, f := range fileList.Files {
		entities = append(entities, toEntity(f))
	}
	return entities, nil
}

func toEntity(f *drive.File) *search.Entity {
	e := &search.Entity{
		ID:        f.Id,
		Name:      f.Name,
		MimeType:  f.MimeType,
		IsFolder:  f.MimeType == search.FolderMimeType,
		ParentIDs: f.Parents,
		DriveID:   f.DriveId,
	}
	if !e.IsFolder {
		size := f.Size
		e.Size = &size
	}
	return e
}

func isNotFound(err error) bool {
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && gerr.Code == http.StatusNotFound
}
