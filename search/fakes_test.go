package search

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

type fakeStorage struct {
	mu       sync.Mutex
	entities map[string]*Entity
	lists    map[string][]*Entity
	listErr  error
	hang     bool // List blocks until its context is done
	getErr   error
	gets     int
	requests []ListRequest
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		entities: make(map[string]*Entity),
		lists:    make(map[string][]*Entity),
	}
}

func (f *fakeStorage) add(e *Entity) *Entity {
	f.entities[e.ID] = e
	return e
}

func (f *fakeStorage) Get(_ context.Context, id string) (*Entity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.getErr != nil {
		return nil, f.getErr
	}
	e, ok := f.entities[id]
	if !ok {
		return nil, ErrNotFound
	}
	return e, nil
}

func (f *fakeStorage) List(ctx context.Context, req ListRequest) ([]*Entity, error) {
	if f.hang {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.lists[req.RootID], nil
}

type fakePublisher struct {
	mu        sync.Mutex
	created   []string
	edits     map[string]string
	editOrder []string
	createErr error
	hang      bool // CreatePage blocks until its context is done
	editErr   error
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{edits: make(map[string]string)}
}

func (f *fakePublisher) CreatePage(ctx context.Context, _, html string) (string, error) {
	if f.hang {
		<-ctx.Done()
		return "", ctx.Err()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = append(f.created, html)
	return fmt.Sprintf("page-%d", len(f.created)), nil
}

func (f *fakePublisher) EditPage(_ context.Context, id, _, html string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.editErr != nil {
		return f.editErr
	}
	f.edits[id] = html
	f.editOrder = append(f.editOrder, id)
	return nil
}

func (f *fakePublisher) PageURL(id string) string {
	return "https://telegra.ph/" + id
}

var errBoom = errors.New("boom")

func file(id, name string, size int64, parents ...string) *Entity {
	return &Entity{ID: id, Name: name, Size: &size, ParentIDs: parents}
}

func folder(id, name string, parents ...string) *Entity {
	return &Entity{ID: id, Name: name, IsFolder: true, MimeType: FolderMimeType, ParentIDs: parents}
}
