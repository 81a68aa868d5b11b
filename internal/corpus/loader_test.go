package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root string, rel string, content []byte) {
	t.Helper()
	full := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, content, 0o644))
}

func TestLoad(t *testing.T) {
	t.Run("loads documents per category in file name order", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "tours/b.txt", []byte("Da Nang beach tour $500"))
		writeFile(t, root, "tours/a.txt", []byte("Hanoi street food tour"))
		writeFile(t, root, "hotels/h.txt", []byte("Nha Trang resort"))
		writeFile(t, root, "general/company_info.txt", []byte("CMP Travel"))

		c := Load(root, Categories, nil)

		require.Equal(t, 4, c.Len())
		docs := c.Documents()
		assert.Equal(t, "a.txt", docs[0].Name)
		assert.Equal(t, "b.txt", docs[1].Name)
		assert.Equal(t, CategoryHotels, docs[2].Category)
		assert.Equal(t, CategoryGeneral, docs[3].Category)
		assert.Len(t, c.Category(CategoryTours), 2)
	})

	t.Run("missing root yields empty corpus", func(t *testing.T) {
		c := Load(filepath.Join(t.TempDir(), "nope"), Categories, nil)

		require.NotNil(t, c)
		assert.True(t, c.IsEmpty())
		assert.Equal(t, 0, c.Stats().TotalDocuments)
	})

	t.Run("skips empty, whitespace, hidden, invalid and non-text files", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "blogs/empty.txt", []byte(""))
		writeFile(t, root, "blogs/blank.txt", []byte("  \n\t "))
		writeFile(t, root, "blogs/.hidden", []byte("secret"))
		writeFile(t, root, "blogs/latin1.txt", []byte{0xff, 0xfe, 0x41})
		writeFile(t, root, "blogs/ok.txt", []byte("Phu Quoc in December"))
		writeFile(t, root, "blogs/notes.md", []byte("Phu Quoc draft"))
		writeFile(t, root, "blogs/raw.json", []byte(`{"title": "Phu Quoc"}`))
		writeFile(t, root, "blogs/ok.txt~", []byte("Phu Quoc backup"))
		require.NoError(t, os.MkdirAll(filepath.Join(root, "blogs", "nested"), 0o755))

		c := Load(root, Categories, nil)

		require.Equal(t, 1, c.Len())
		assert.Equal(t, "ok.txt", c.Documents()[0].Name)
	})

	t.Run("ignores directories outside the category list", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "misc/x.txt", []byte("unused"))
		writeFile(t, root, "SUMMARY.txt", []byte("summary"))

		c := Load(root, Categories, nil)

		assert.True(t, c.IsEmpty())
	})

	t.Run("reports existing empty category directories", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, "guides"), 0o755))
		writeFile(t, root, "tours/t.txt", []byte("tour"))

		stats := Load(root, Categories, nil).Stats()

		assert.Equal(t, map[Category]int{CategoryTours: 1, CategoryGuides: 0}, stats.Categories)
	})
}

func TestLoad_Idempotent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "tours/1.txt", []byte("tour one"))
	writeFile(t, root, "tours/2.txt", []byte("tour two"))
	writeFile(t, root, "hotels/1.txt", []byte("hotel"))

	first := Load(root, Categories, nil)
	second := Load(root, Categories, nil)

	assert.NotSame(t, first, second)
	assert.Equal(t, first.Stats(), second.Stats())
	assert.Equal(t, first.Documents(), second.Documents())
}

func TestDocumentID_Stable(t *testing.T) {
	a := DocumentID(CategoryTours, "tour_1.txt")
	b := DocumentID(CategoryTours, "tour_1.txt")
	c := DocumentID(CategoryHotels, "tour_1.txt")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
