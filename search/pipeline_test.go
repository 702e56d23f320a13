package search

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeline_SingleMatch(t *testing.T) {
	st := newFakeStorage()
	st.lists["d"] = []*Entity{file("x1", "Report_2024.pdf", 2048)}
	pub := newFakePublisher()

	p := New(st, pub, Config{Roots: []Root{{ID: "d", Name: "Drive"}}}, nil)
	s, err := p.Run(context.Background(), "report")
	require.NoError(t, err)

	assert.Equal(t, StateDone, s.State)
	assert.Equal(t, 1, s.Count)
	require.Len(t, s.Blocks(), 1)
	body := s.Blocks()[0].Body
	assert.Contains(t, body, "(2.0KB)")
	assert.Contains(t, body, "https://drive.google.com/uc?id=x1&amp;export=download")
	assert.NotContains(t, body, "Index link")

	assert.Equal(t, "Found 1 result", s.Reply.Text)
	require.NotNil(t, s.Reply.Action)
	assert.Equal(t, "Click Here for results", s.Reply.Action.Label)
	assert.Equal(t, "https://telegra.ph/page-1", s.Reply.Action.URL)
	assert.Len(t, pub.created, 1)
	assert.Empty(t, pub.edits)
}

func TestPipeline_NothingFound(t *testing.T) {
	st := newFakeStorage()
	st.lists["d"] = []*Entity{file("x1", "unrelated", 1)}
	pub := newFakePublisher()

	reply, err := New(st, pub, Config{Roots: []Root{{ID: "d", Name: "Drive"}}}, nil).
		Search(context.Background(), "report")
	require.NoError(t, err)

	assert.Equal(t, DefaultPresentation().NotFound, reply.Text)
	assert.Nil(t, reply.Action)
	assert.Empty(t, pub.created)
}

func TestPipeline_CeilingPublishesNothing(t *testing.T) {
	st := newFakeStorage()
	st.lists["a"] = []*Entity{file("1", "foo 1", 1), file("2", "foo 2", 1)}
	st.lists["b"] = []*Entity{file("3", "foo 3", 1)}
	pub := newFakePublisher()

	p := New(st, pub, Config{
		Roots:      []Root{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}, {ID: "c", Name: "C"}},
		PageSize:   1,
		MaxResults: 2,
	}, nil)
	s, err := p.Run(context.Background(), "foo")
	require.NoError(t, err)

	assert.True(t, s.CeilingHit)
	assert.Equal(t, StateDone, s.State)
	assert.Empty(t, s.Pages)
	assert.Equal(t, DefaultPresentation().TooMany, s.Reply.Text)
	assert.Nil(t, s.Reply.Action)
	assert.Empty(t, pub.created)
	assert.Empty(t, pub.edits)
	// the remaining roots are never searched
	require.Len(t, st.requests, 1)
	assert.Equal(t, "a", st.requests[0].RootID)
}

func TestPipeline_CeilingAcrossRoots(t *testing.T) {
	st := newFakeStorage()
	st.lists["a"] = []*Entity{file("1", "foo 1", 1), file("2", "foo 2", 1)}
	st.lists["b"] = []*Entity{file("3", "foo 3", 1), file("4", "foo 4", 1)}
	pub := newFakePublisher()

	p := New(st, pub, Config{
		Roots:      []Root{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}, {ID: "c", Name: "C"}},
		MaxResults: 3,
	}, nil)
	reply, err := p.Search(context.Background(), "foo")
	require.NoError(t, err)

	assert.Equal(t, DefaultPresentation().TooMany, reply.Text)
	assert.Nil(t, reply.Action)
	assert.Len(t, st.requests, 2)
	assert.Empty(t, pub.created)
}

func TestPipeline_MultiRootPagination(t *testing.T) {
	st := newFakeStorage()
	st.lists["a"] = []*Entity{folder("1", "foo dir"), file("2", "foo.mkv", 1<<30)}
	st.lists["b"] = []*Entity{file("3", "bar", 1), file("4", "foo.srt", 100), file("5", "Foo.txt", 5)}
	pub := newFakePublisher()

	p := New(st, pub, Config{
		Roots:    []Root{{ID: "a", Name: "Alpha"}, {ID: "b", Name: "Beta"}},
		PageSize: 2,
	}, nil)
	s, err := p.Run(context.Background(), "foo")
	require.NoError(t, err)

	assert.Equal(t, 4, s.Count)
	require.Len(t, s.Published, 2)
	assert.Equal(t, "Found 4 results", s.Reply.Text)
	assert.Equal(t, "https://telegra.ph/page-1", s.Reply.Action.URL)

	require.Len(t, pub.created, 2)
	assert.Contains(t, pub.created[0], "<b>Alpha</b>")
	assert.Contains(t, pub.created[0], "foo.mkv")
	assert.Contains(t, pub.created[1], "<b>Beta</b>")
	assert.Contains(t, pub.created[1], "Foo.txt")
	assert.NotContains(t, pub.created[1], "<h3>")

	assert.Contains(t, pub.edits["page-1"], `https://telegra.ph/page-2">Next`)
	assert.Contains(t, pub.edits["page-2"], `https://telegra.ph/page-1">Previous`)
}

func TestPipeline_Failures(t *testing.T) {
	roots := []Root{{ID: "d", Name: "Drive"}}

	t.Run("backend", func(t *testing.T) {
		st := newFakeStorage()
		st.listErr = errBoom
		pub := newFakePublisher()
		_, err := New(st, pub, Config{Roots: roots}, nil).Search(context.Background(), "foo")
		assert.ErrorIs(t, err, ErrBackendQuery)
		assert.Empty(t, pub.created)
	})

	t.Run("publish", func(t *testing.T) {
		st := newFakeStorage()
		st.lists["d"] = []*Entity{file("1", "foo", 1)}
		pub := newFakePublisher()
		pub.createErr = errBoom
		_, err := New(st, pub, Config{Roots: roots}, nil).Search(context.Background(), "foo")
		assert.ErrorIs(t, err, ErrPublish)
	})
}

func TestPipeline_SessionsAreIndependent(t *testing.T) {
	st := newFakeStorage()
	var entities []*Entity
	for i := range 3 {
		entities = append(entities, file(fmt.Sprint(i), fmt.Sprintf("foo %d", i), 1))
	}
	st.lists["d"] = entities
	pub := newFakePublisher()
	p := New(st, pub, Config{Roots: []Root{{ID: "d", Name: "Drive"}}}, nil)

	first, err := p.Run(context.Background(), "foo")
	require.NoError(t, err)
	second, err := p.Run(context.Background(), "foo")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 3, first.Count)
	assert.Equal(t, 3, second.Count)
	assert.Equal(t, "Found 3 results", second.Reply.Text)
	assert.Equal(t, "https://telegra.ph/page-2", second.Reply.Action.URL)
}

func TestPipeline_ConcurrentSearches(t *testing.T) {
	st := newFakeStorage()
	st.lists["d"] = []*Entity{file("1", "foo 1", 1), file("2", "foo 2", 1), file("3", "bar", 1)}
	pub := newFakePublisher()
	p := New(st, pub, Config{Roots: []Root{{ID: "d", Name: "Drive"}}, PageSize: 1}, nil)

	var wg sync.WaitGroup
	replies := make([]Reply, 8)
	errs := make([]error, 8)
	for i := range replies {
		wg.Add(1)
		go func() {
			defer wg.Done()
			replies[i], errs[i] = p.Search(context.Background(), "foo")
		}()
	}
	wg.Wait()

	for i := range replies {
		require.NoError(t, errs[i])
		assert.Equal(t, "Found 2 results", replies[i].Text)
		require.NotNil(t, replies[i].Action)
	}
	assert.Len(t, pub.created, 16)
	assert.Len(t, pub.edits, 16)
}

func TestPipeline_ConfiguredPresentation(t *testing.T) {
	st := newFakeStorage()
	st.lists["d"] = []*Entity{file("x1", "Report.pdf", 1)}
	roots := []Root{{ID: "d", Name: "Drive"}}

	t.Run("repo link filled from defaults", func(t *testing.T) {
		pub := newFakePublisher()
		_, err := New(st, pub, Config{Roots: roots, Presentation: Presentation{PageTitle: "Finder"}}, nil).
			Run(context.Background(), "report")
		require.NoError(t, err)
		require.Len(t, pub.created, 1)
		assert.Contains(t, pub.created[0], `<a href="https://github.com/iamLiquidX/SearchX"> Bot Repo </a>`)
	})

	t.Run("repo link disabled", func(t *testing.T) {
		pub := newFakePublisher()
		_, err := New(st, pub, Config{Roots: roots, Presentation: Presentation{RepoURL: NoRepoLink}}, nil).
			Run(context.Background(), "report")
		require.NoError(t, err)
		require.Len(t, pub.created, 1)
		assert.NotContains(t, pub.created[0], "Bot Repo")
		assert.True(t, strings.HasPrefix(pub.created[0], "<h3>I found these results for your search query: report</h3><br><b>Drive</b>"))
	})
}

func TestPipeline_Deadlines(t *testing.T) {
	roots := []Root{{ID: "d", Name: "Drive"}}

	tests := []struct {
		name    string
		cfg     Config
		hangs   func(*fakeStorage, *fakePublisher)
		wantErr error
	}{
		{
			name:    "storage call timeout",
			cfg:     Config{Roots: roots, CallTimeout: 20 * time.Millisecond, Timeout: time.Minute},
			hangs:   func(st *fakeStorage, _ *fakePublisher) { st.hang = true },
			wantErr: ErrBackendQuery,
		},
		{
			name:    "whole search timeout",
			cfg:     Config{Roots: roots, CallTimeout: time.Minute, Timeout: 20 * time.Millisecond},
			hangs:   func(st *fakeStorage, _ *fakePublisher) { st.hang = true },
			wantErr: ErrBackendQuery,
		},
		{
			name:    "publisher call timeout",
			cfg:     Config{Roots: roots, CallTimeout: 20 * time.Millisecond, Timeout: time.Minute},
			hangs:   func(_ *fakeStorage, pub *fakePublisher) { pub.hang = true },
			wantErr: ErrPublish,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			st := newFakeStorage()
			st.lists["d"] = []*Entity{file("1", "foo", 1)}
			pub := newFakePublisher()
			tc.hangs(st, pub)

			start := time.Now()
			_, err := New(st, pub, tc.cfg, nil).Search(context.Background(), "foo")
			require.Error(t, err)
			assert.ErrorIs(t, err, context.DeadlineExceeded)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Less(t, time.Since(start), 5*time.Second)
		})
	}
}
