package corpus

import "sync/atomic"

// Source hands out the corpus snapshot a request should read from.
type Source interface {
	Snapshot() *Corpus
}

// Corpus is the ordered collection of loaded documents plus per-category buckets.
// Every document appears in exactly one bucket and in the flat list.
type Corpus struct {
	documents []Document
	buckets   map[Category][]Document
}

// New builds a Corpus from documents in load order. Buckets are created for
// every document category and for any extra categories passed in (so that
// existing-but-empty directories are still reported).
func New(documents []Document, categories ...Category) *Corpus {
	c := &Corpus{
		documents: make([]Document, len(documents)),
		buckets:   make(map[Category][]Document),
	}
	copy(c.documents, documents)

	for _, cat := range categories {
		if _, ok := c.buckets[cat]; !ok {
			c.buckets[cat] = []Document{}
		}
	}
	for _, doc := range c.documents {
		c.buckets[doc.Category] = append(c.buckets[doc.Category], doc)
	}
	return c
}

// Empty returns a corpus with no documents.
func Empty() *Corpus {
	return New(nil)
}

// Snapshot implements Source; a Corpus is its own snapshot.
func (c *Corpus) Snapshot() *Corpus {
	return c
}

// Len returns the number of documents.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.documents)
}

// IsEmpty reports whether the corpus has no documents.
func (c *Corpus) IsEmpty() bool {
	return c.Len() == 0
}

// Documents returns a copy of the documents in load order.
func (c *Corpus) Documents() []Document {
	if c == nil {
		return nil
	}
	out := make([]Document, len(c.documents))
	copy(out, c.documents)
	return out
}

// Each calls fn for every document in load order without copying the slice.
func (c *Corpus) Each(fn func(i int, doc Document)) {
	if c == nil {
		return
	}
	for i, doc := range c.documents {
		fn(i, doc)
	}
}

// Category returns a copy of the documents in one category.
func (c *Corpus) Category(cat Category) []Document {
	if c == nil {
		return nil
	}
	docs := c.buckets[cat]
	out := make([]Document, len(docs))
	copy(out, docs)
	return out
}

// Stats is a read-only snapshot of corpus counts for health and status reporting.
type Stats struct {
	TotalDocuments int              `json:"total_documents"`
	Categories     map[Category]int `json:"categories"`
}

// Stats returns document counts overall and per category.
func (c *Corpus) Stats() Stats {
	s := Stats{Categories: make(map[Category]int)}
	if c == nil {
		return s
	}
	s.TotalDocuments = len(c.documents)
	for cat, docs := range c.buckets {
		s.Categories[cat] = len(docs)
	}
	return s
}

// Holder publishes the current corpus to concurrent readers. Replacing the
// corpus swaps the pointer; published corpora are never modified.
type Holder struct {
	current atomic.Pointer[Corpus]
}

// NewHolder creates a holder publishing c (or an empty corpus when c is nil).
func NewHolder(c *Corpus) *Holder {
	h := &Holder{}
	h.Store(c)
	return h
}

// Snapshot implements Source.
func (h *Holder) Snapshot() *Corpus {
	return h.current.Load()
}

// Store publishes a new corpus.
func (h *Holder) Store(c *Corpus) {
	if c == nil {
		c = Empty()
	}
	h.current.Store(c)
}
