package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pages(contents ...string) []PageBuffer {
	var out []PageBuffer
	for _, c := range contents {
		out = append(out, PageBuffer{Blocks: []Block{{Body: c}}})
	}
	return out
}

func TestPaginator_SinglePageIsNotEdited(t *testing.T) {
	pub := newFakePublisher()
	published, err := NewPaginator(pub, "SearchX", 0).Publish(context.Background(), pages("one"))
	require.NoError(t, err)

	assert.Equal(t, []PublishedPage{{ID: "page-1", Index: 0}}, published)
	assert.Equal(t, []string{"one"}, pub.created)
	assert.Empty(t, pub.edits)
}

func TestPaginator_ThreePageNavigation(t *testing.T) {
	pub := newFakePublisher()
	published, err := NewPaginator(pub, "SearchX", 0).Publish(context.Background(), pages("one", "two", "three"))
	require.NoError(t, err)

	require.Len(t, published, 3)
	for i, p := range published {
		assert.Equal(t, i, p.Index)
	}
	assert.Equal(t, []string{"one", "two", "three"}, pub.created)
	assert.Equal(t, []string{"page-1", "page-2", "page-3"}, pub.editOrder)

	assert.Equal(t,
		`one<b><a href="https://telegra.ph/page-2">Next</a></b>`,
		pub.edits["page-1"])
	assert.Equal(t,
		`two<b><a href="https://telegra.ph/page-1">Previous</a></b><b> | <a href="https://telegra.ph/page-3">Next</a></b>`,
		pub.edits["page-2"])
	assert.Equal(t,
		`three<b><a href="https://telegra.ph/page-2">Previous</a></b>`,
		pub.edits["page-3"])
}

func TestPaginator_NavigationBeyondSecondPage(t *testing.T) {
	pub := newFakePublisher()
	_, err := NewPaginator(pub, "SearchX", 0).Publish(context.Background(), pages("1", "2", "3", "4", "5"))
	require.NoError(t, err)

	for i, id := range []string{"page-2", "page-3", "page-4"} {
		prev := []string{"page-1", "page-2", "page-3"}[i]
		next := []string{"page-3", "page-4", "page-5"}[i]
		assert.Contains(t, pub.edits[id], `href="https://telegra.ph/`+prev+`">Previous`, id)
		assert.Contains(t, pub.edits[id], `href="https://telegra.ph/`+next+`">Next`, id)
	}
	assert.NotContains(t, pub.edits["page-5"], "Next")
	assert.NotContains(t, pub.edits["page-1"], "Previous")
}

func TestPaginator_Failures(t *testing.T) {
	t.Run("create", func(t *testing.T) {
		pub := newFakePublisher()
		pub.createErr = errBoom
		_, err := NewPaginator(pub, "SearchX", 0).Publish(context.Background(), pages("one", "two"))
		assert.ErrorIs(t, err, ErrPublish)
		assert.ErrorIs(t, err, errBoom)
	})

	t.Run("edit", func(t *testing.T) {
		pub := newFakePublisher()
		pub.editErr = errBoom
		_, err := NewPaginator(pub, "SearchX", 0).Publish(context.Background(), pages("one", "two"))
		assert.ErrorIs(t, err, ErrPublish)
	})
}
