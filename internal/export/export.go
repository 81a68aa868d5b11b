package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/hquocmanh0502/cmp-travel-ai-web/internal/corpus"
)

const (
	companyInfoFile = "company_info.txt"
	summaryFile     = "SUMMARY.txt"
)

var aggregateSeparator = "\n\n" + strings.Repeat("=", 80) + "\n\n"

// Options configures an export run.
type Options struct {
	// Source supplies the collections. Nil reads export files from InputDir.
	// Missing collections are skipped.
	Source Source

	// InputDir holds tours.json, hotels.json, blogs.json and guides.json
	// (or the .jsonl/.ndjson variants).
	InputDir string

	// OutputDir is the knowledge base root to write.
	OutputDir string

	// Aggregate also writes all_<category>.txt per category.
	Aggregate bool

	Now    func() time.Time
	Logger *slog.Logger
}

// Summary reports what an export run wrote.
type Summary struct {
	Tours     int
	Hotels    int
	Blogs     int
	Guides    int
	OutputDir string
	CreatedAt time.Time
}

// Total is the number of record documents written.
func (s Summary) Total() int {
	return s.Tours + s.Hotels + s.Blogs + s.Guides
}

type collection[T any] struct {
	category corpus.Category
	inputs   []string
	prefix   string
	id       func(T) ObjectID
	render   func(T, int) string
}

var (
	tours = collection[Tour]{
		category: corpus.CategoryTours,
		inputs:   []string{"tours"},
		prefix:   "tour",
		id:       func(t Tour) ObjectID { return t.ID },
		render:   RenderTour,
	}
	hotels = collection[Hotel]{
		category: corpus.CategoryHotels,
		inputs:   []string{"hotels"},
		prefix:   "hotel",
		id:       func(h Hotel) ObjectID { return h.ID },
		render:   RenderHotel,
	}
	blogs = collection[Blog]{
		category: corpus.CategoryBlogs,
		inputs:   []string{"blogs"},
		prefix:   "blog",
		id:       func(b Blog) ObjectID { return b.ID },
		render:   func(b Blog, _ int) string { return RenderBlog(b) },
	}
	guides = collection[Guide]{
		category: corpus.CategoryGuides,
		inputs:   []string{"guides", "tourguides"},
		prefix:   "guide",
		id:       func(g Guide) ObjectID { return g.ID },
		render:   func(g Guide, _ int) string { return RenderGuide(g) },
	}
)

// Run converts the source collections into a knowledge base at
// opts.OutputDir that corpus.Load can read.
func Run(ctx context.Context, opts Options) (Summary, error) {
	if opts.OutputDir == "" {
		return Summary{}, errors.New("export: output directory is required")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Source == nil {
		opts.Source = DirSource{Dir: opts.InputDir}
	}

	for _, cat := range corpus.Categories {
		if err := os.MkdirAll(filepath.Join(opts.OutputDir, string(cat)), 0o755); err != nil {
			return Summary{}, fmt.Errorf("export: creating %s directory: %w", cat, err)
		}
	}

	summary := Summary{OutputDir: opts.OutputDir, CreatedAt: opts.Now()}
	var err error

	if summary.Tours, err = writeCollection(ctx, opts, tours); err != nil {
		return summary, err
	}
	if summary.Hotels, err = writeCollection(ctx, opts, hotels); err != nil {
		return summary, err
	}
	if summary.Blogs, err = writeCollection(ctx, opts, blogs); err != nil {
		return summary, err
	}
	if summary.Guides, err = writeCollection(ctx, opts, guides); err != nil {
		return summary, err
	}

	general := filepath.Join(opts.OutputDir, string(corpus.CategoryGeneral), companyInfoFile)
	if err := os.WriteFile(general, []byte(CompanyInfo), 0o644); err != nil {
		return summary, fmt.Errorf("export: writing company info: %w", err)
	}

	if err := os.WriteFile(filepath.Join(opts.OutputDir, summaryFile), []byte(summary.Render()), 0o644); err != nil {
		return summary, fmt.Errorf("export: writing summary: %w", err)
	}

	opts.Logger.Info("knowledge base exported",
		"output", opts.OutputDir,
		"tours", summary.Tours,
		"hotels", summary.Hotels,
		"blogs", summary.Blogs,
		"guides", summary.Guides)
	return summary, nil
}

// Render formats the summary as the SUMMARY.txt document.
func (s Summary) Render() string {
	var b strings.Builder
	b.WriteString("KNOWLEDGE BASE SUMMARY\n")
	b.WriteString("======================\n\n")
	fmt.Fprintf(&b, "Created: %s\n\n", s.CreatedAt.Format(time.DateTime))
	b.WriteString("Extracted records:\n")
	fmt.Fprintf(&b, "- Tours: %d items\n", s.Tours)
	fmt.Fprintf(&b, "- Hotels: %d items\n", s.Hotels)
	fmt.Fprintf(&b, "- Blogs: %d items\n", s.Blogs)
	fmt.Fprintf(&b, "- Guides: %d items\n\n", s.Guides)
	fmt.Fprintf(&b, "Total: %d documents\n\n", s.Total())
	b.WriteString("Directory layout:\n")
	fmt.Fprintf(&b, "- %s/tours/ - Tour packages\n", s.OutputDir)
	fmt.Fprintf(&b, "- %s/hotels/ - Hotels\n", s.OutputDir)
	fmt.Fprintf(&b, "- %s/blogs/ - Travel articles\n", s.OutputDir)
	fmt.Fprintf(&b, "- %s/guides/ - Tour guides\n", s.OutputDir)
	fmt.Fprintf(&b, "- %s/general/ - Company information\n", s.OutputDir)
	return b.String()
}

func writeCollection[T any](ctx context.Context, opts Options, c collection[T]) (int, error) {
	coll, err := opts.Source.Collection(ctx, c.inputs)
	if errors.Is(err, ErrCollectionNotFound) {
		opts.Logger.Warn("collection not found", "category", c.category, "names", c.inputs)
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("export: %s: %w", c.category, err)
	}

	records, err := decodeAll[T](coll.Docs)
	if err != nil {
		return 0, fmt.Errorf("export: decoding %s: %w", coll.Name, err)
	}

	dir := filepath.Join(opts.OutputDir, string(c.category))
	taken := make(map[string]bool, len(records))
	texts := make([]string, 0, len(records))
	for i, rec := range records {
		text := strings.TrimSpace(c.render(rec, i))
		name := uniqueName(taken, c.prefix+"_"+fileID(c.id(rec), i)) + corpus.DocumentExt
		if err := os.WriteFile(filepath.Join(dir, name), []byte(text), 0o644); err != nil {
			return 0, fmt.Errorf("export: writing %s: %w", name, err)
		}
		texts = append(texts, text)
	}

	if opts.Aggregate && len(texts) > 0 {
		name := fmt.Sprintf("all_%s%s", c.category, corpus.DocumentExt)
		if err := os.WriteFile(filepath.Join(dir, name), []byte(strings.Join(texts, aggregateSeparator)), 0o644); err != nil {
			return 0, fmt.Errorf("export: writing %s: %w", name, err)
		}
	}

	opts.Logger.Info("collection exported", "category", c.category, "source", coll.Name, "documents", len(texts))
	return len(texts), nil
}

func decodeAll[T any](docs []bson.Raw) ([]T, error) {
	records := make([]T, 0, len(docs))
	for i, doc := range docs {
		var rec T
		if err := bson.Unmarshal(doc, &rec); err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// uniqueName returns base, or base_2, base_3 and so on when an earlier
// record of the run already took it.
func uniqueName(taken map[string]bool, base string) string {
	name := base
	for n := 2; taken[name]; n++ {
		name = fmt.Sprintf("%s_%d", base, n)
	}
	taken[name] = true
	return name
}

// fileID makes id safe for a file name; records without one get unknown_<index>.
func fileID(id ObjectID, index int) string {
	s := strings.TrimSpace(string(id))
	if s == "" {
		return fmt.Sprintf("unknown_%d", index)
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}
