// Package corpus loads the travel knowledge base from disk into an immutable,
// category-tagged in-memory collection. A Corpus is built once and shared
// read-only; reloading always produces a fresh value.
package corpus

import (
	"path"

	"github.com/google/uuid"
)

// Category tags a document with the knowledge-base section it was loaded from.
type Category string

const (
	CategoryTours   Category = "tours"
	CategoryHotels  Category = "hotels"
	CategoryBlogs   Category = "blogs"
	CategoryGuides  Category = "guides"
	CategoryGeneral Category = "general"
)

// Categories lists every known category in load order.
var Categories = []Category{
	CategoryTours,
	CategoryHotels,
	CategoryBlogs,
	CategoryGuides,
	CategoryGeneral,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// documentNamespace scopes document IDs so they are stable across loads.
var documentNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("travelrag/corpus"))

// Document is one loaded text file. Documents are never mutated after load.
type Document struct {
	// ID is stable for a given category and file name.
	ID string `json:"id"`

	Category Category `json:"category"`

	// Name is the file name within the category directory.
	Name string `json:"name"`

	// Path is the location the document was read from.
	Path string `json:"path"`

	Text string `json:"-"`
}

// NewDocument builds a Document and derives its stable ID.
func NewDocument(category Category, name, filePath, text string) Document {
	return Document{
		ID:       DocumentID(category, name),
		Category: category,
		Name:     name,
		Path:     filePath,
		Text:     text,
	}
}

// DocumentID returns the UUIDv5 identifier for a category/file-name pair.
func DocumentID(category Category, name string) string {
	return uuid.NewSHA1(documentNamespace, []byte(path.Join(string(category), name))).String()
}
