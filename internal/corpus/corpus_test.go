package corpus

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorpus_BucketsMatchFlatList(t *testing.T) {
	docs := []Document{
		NewDocument(CategoryTours, "a", "", "a"),
		NewDocument(CategoryHotels, "b", "", "b"),
		NewDocument(CategoryTours, "c", "", "c"),
	}

	c := New(docs)

	total := 0
	for _, cat := range Categories {
		total += len(c.Category(cat))
	}
	assert.Equal(t, c.Len(), total)
	assert.Equal(t, []Document{docs[0], docs[2]}, c.Category(CategoryTours))
}

func TestCorpus_DocumentsReturnsCopy(t *testing.T) {
	c := New([]Document{NewDocument(CategoryTours, "a", "", "original")})

	docs := c.Documents()
	docs[0].Text = "changed"

	assert.Equal(t, "original", c.Documents()[0].Text)
}

func TestCorpus_NilSafe(t *testing.T) {
	var c *Corpus

	assert.Equal(t, 0, c.Len())
	assert.True(t, c.IsEmpty())
	assert.Empty(t, c.Documents())
	assert.Equal(t, 0, c.Stats().TotalDocuments)
}

func TestHolder(t *testing.T) {
	t.Run("nil store publishes empty corpus", func(t *testing.T) {
		h := NewHolder(nil)

		require.NotNil(t, h.Snapshot())
		assert.True(t, h.Snapshot().IsEmpty())
	})

	t.Run("store swaps snapshot", func(t *testing.T) {
		first := New([]Document{NewDocument(CategoryTours, "a", "", "a")})
		h := NewHolder(first)
		old := h.Snapshot()

		h.Store(Empty())

		assert.Same(t, first, old)
		assert.Equal(t, 1, old.Len())
		assert.True(t, h.Snapshot().IsEmpty())
	})
}

func TestWatcher_ReloadsOnChange(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "tours/a.txt", []byte("first tour"))

	holder := NewHolder(Load(root, Categories, nil))
	reloaded := make(chan *Corpus, 4)

	w, err := NewWatcher(WatcherConfig{
		Root:       root,
		Categories: Categories,
		Debounce:   20 * time.Millisecond,
		OnReload:   func(c *Corpus) { reloaded <- c },
	}, holder, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(root, "tours", "b.txt"), []byte("second tour"), 0o644))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case c := <-reloaded:
			if c.Len() != 2 {
				continue
			}
			assert.Equal(t, 2, holder.Snapshot().Len())
			return
		case <-deadline:
			t.Fatal("watcher did not reload the corpus")
		}
	}
}
