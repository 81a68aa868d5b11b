package rag

import (
	"strings"
	"testing"

	"github.com/hquocmanh0502/cmp-travel-ai-web/internal/corpus"
	"github.com/hquocmanh0502/cmp-travel-ai-web/internal/textutil"
)

func doc(cat corpus.Category, name, text string) corpus.Document {
	return corpus.NewDocument(cat, name, "", text)
}

func TestScore(t *testing.T) {
	d := doc(corpus.CategoryTours, "t", "Da Nang beach tour $500. Da Nang is lovely.")

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{name: "no match", query: "hotel paris", want: 0},
		{name: "empty query", query: "   ", want: 0},
		{name: "case folded", query: "DA NANG", want: 4},
		{name: "repeated terms amplify", query: "tour tour", want: 2},
		{name: "substring match", query: "be", want: 1},
		{name: "scenario A", query: "Da Nang tour", want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.query, d)
			if got != tt.want {
				t.Errorf("Score(%q) = %d, want %d", tt.query, got, tt.want)
			}
		})
	}
}

func TestScore_NeverNegativeAndZeroWithoutMatch(t *testing.T) {
	docs := []corpus.Document{
		doc(corpus.CategoryHotels, "h", "Nha Trang resort with infinity pool"),
		doc(corpus.CategoryBlogs, "b", ""),
		doc(corpus.CategoryGuides, "g", "English-speaking guide in Hanoi"),
	}
	queries := []string{"", "xyz", "pool", "hanoi guide", "ĐÀ NẴNG"}

	for _, d := range docs {
		for _, q := range queries {
			s := Score(q, d)
			if s < 0 {
				t.Fatalf("negative score %d for %q", s, q)
			}
			matched := false
			for _, term := range Terms(q) {
				if strings.Contains(strings.ToLower(d.Text), term) {
					matched = true
				}
			}
			if !matched && s != 0 {
				t.Errorf("expected zero score for %q against %q, got %d", q, d.Text, s)
			}
		}
	}
}

func TestRank_StableOnTies(t *testing.T) {
	c := corpus.New([]corpus.Document{
		doc(corpus.CategoryTours, "first", "beach"),
		doc(corpus.CategoryTours, "second", "beach beach"),
		doc(corpus.CategoryHotels, "third", "beach"),
		doc(corpus.CategoryHotels, "none", "mountain"),
	})

	ranked := Rank("beach", c, 10)

	if len(ranked) != 3 {
		t.Fatalf("expected 3 ranked documents, got %d", len(ranked))
	}
	want := []string{"second", "first", "third"}
	for i, name := range want {
		if ranked[i].Document.Name != name {
			t.Errorf("position %d: expected %s, got %s", i, name, ranked[i].Document.Name)
		}
	}
}

func TestRank_MaxCandidates(t *testing.T) {
	c := corpus.New([]corpus.Document{
		doc(corpus.CategoryTours, "a", "tour"),
		doc(corpus.CategoryTours, "b", "tour"),
		doc(corpus.CategoryTours, "c", "tour"),
		doc(corpus.CategoryTours, "d", "tour"),
	})

	if got := len(Rank("tour", c, 3)); got != 3 {
		t.Errorf("expected 3 candidates, got %d", got)
	}
}

func TestAssemble_NoMatchReturnsEmpty(t *testing.T) {
	c := corpus.New([]corpus.Document{
		doc(corpus.CategoryTours, "a", "Da Nang beach tour"),
		doc(corpus.CategoryHotels, "b", "Hanoi hotel"),
	})

	for _, q := range []string{"paris", "", "  ", "zzz qqq"} {
		if got := Assemble(q, c, DefaultOptions()); got != "" {
			t.Errorf("Assemble(%q) = %q, want empty", q, got)
		}
	}
}

func TestAssemble_ScenarioA(t *testing.T) {
	c := corpus.New([]corpus.Document{
		doc(corpus.CategoryTours, "dn", "Da Nang beach tour $500"),
	})

	got := Assemble("Da Nang tour", c, DefaultOptions())

	if got != "Da Nang beach tour $500" {
		t.Errorf("expected document verbatim, got %q", got)
	}
}

func TestAssemble_ScenarioC(t *testing.T) {
	long := strings.Repeat("Hoi An lantern night. ", 250)[:5000]
	c := corpus.New([]corpus.Document{doc(corpus.CategoryBlogs, "long", long)})

	opts := Options{MaxCandidates: 3, PerDocChars: 1200, MaxTotalChars: 1200}
	got := Assemble("lantern", c, opts)

	if textutil.Len(got) > 1200 {
		t.Fatalf("context too long: %d", textutil.Len(got))
	}
	if got == "" {
		t.Fatal("expected a non-empty context")
	}
	if !strings.HasPrefix(long, got) {
		t.Error("context is not a prefix of the document")
	}
}

func TestAssemble_JoinsInRankOrderAndDropsLowerRanked(t *testing.T) {
	c := corpus.New([]corpus.Document{
		doc(corpus.CategoryTours, "low", "tour"),
		doc(corpus.CategoryTours, "high", "tour tour tour"),
		doc(corpus.CategoryTours, "mid", "tour tour"),
	})

	all := Assemble("tour", c, Options{MaxCandidates: 3, PerDocChars: 100, MaxTotalChars: 1000})
	want := "tour tour tour" + DefaultSeparator + "tour tour" + DefaultSeparator + "tour"
	if all != want {
		t.Errorf("unexpected join:\n got %q\nwant %q", all, want)
	}

	// Room for the best snippet and one separator plus "tour tour" only.
	tight := Assemble("tour", c, Options{MaxCandidates: 3, PerDocChars: 100, MaxTotalChars: 14 + 7 + 9})
	if tight != "tour tour tour"+DefaultSeparator+"tour tour" {
		t.Errorf("expected lowest-ranked snippet dropped, got %q", tight)
	}
}

func TestAssemble_NeverExceedsMaxTotal(t *testing.T) {
	var docs []corpus.Document
	for i := 0; i < 10; i++ {
		docs = append(docs, doc(corpus.CategoryTours, string(rune('a'+i)), strings.Repeat("beach ", 50+i*40)))
	}
	c := corpus.New(docs)

	for _, limit := range []int{1, 50, 299, 300, 1000, 2500} {
		got := Assemble("beach", c, Options{MaxCandidates: 5, PerDocChars: 700, MaxTotalChars: limit})
		if textutil.Len(got) > limit {
			t.Errorf("limit %d: got %d characters", limit, textutil.Len(got))
		}
	}
}

func TestAssemble_StopsAtFirstSnippetThatDoesNotFit(t *testing.T) {
	c := corpus.New([]corpus.Document{
		doc(corpus.CategoryTours, "big", strings.Repeat("x tour ", 20)),
		doc(corpus.CategoryTours, "small", "tour"),
	})

	got := Assemble("tour", c, Options{MaxCandidates: 3, PerDocChars: 1000, MaxTotalChars: 50})

	if got != "" {
		t.Errorf("expected accumulation to stop at the oversized best snippet, got %q", got)
	}
}

func TestRetriever_ContextMatchesAssemble(t *testing.T) {
	c := corpus.New([]corpus.Document{
		doc(corpus.CategoryTours, "a", "Hue imperial city tour"),
		doc(corpus.CategoryGuides, "b", "Hue food guide, Hue street tour"),
	})
	r := NewRetriever(Options{MaxCandidates: 3, PerDocChars: 10, MaxTotalChars: 100})

	got := r.Context(r.Retrieve("hue tour", c))

	if got != r.Assemble("hue tour", c) {
		t.Errorf("Context and Assemble disagree: %q", got)
	}
	if !strings.HasPrefix(got, "Hue food g") {
		t.Errorf("expected best match first, got %q", got)
	}
}

func TestRetriever_Defaults(t *testing.T) {
	r := NewRetriever(Options{MaxCandidates: 2, PerDocChars: 10, MaxTotalChars: 10})

	if r.Options().MaxCandidates != 2 {
		t.Errorf("expected MaxCandidates 2, got %d", r.Options().MaxCandidates)
	}
	if r.Options().Separator != DefaultSeparator {
		t.Errorf("expected default separator, got %q", r.Options().Separator)
	}
}

func TestAssemble_ZeroLimitsAdmitNothing(t *testing.T) {
	long := strings.Repeat("Da Nang beach, ", 340)
	c := corpus.New([]corpus.Document{doc(corpus.CategoryTours, "dn", long)})

	tests := []struct {
		name string
		opts Options
	}{
		{name: "zero total", opts: Options{MaxCandidates: 3, PerDocChars: 1200, MaxTotalChars: 0}},
		{name: "zero per doc", opts: Options{MaxCandidates: 3, PerDocChars: 0, MaxTotalChars: 6000}},
		{name: "zero candidates", opts: Options{MaxCandidates: 0, PerDocChars: 1200, MaxTotalChars: 6000}},
		{name: "all zero", opts: Options{}},
		{name: "negative total", opts: Options{MaxCandidates: 3, PerDocChars: 1200, MaxTotalChars: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Assemble("da nang", c, tt.opts); got != "" {
				t.Errorf("expected empty context, got %d characters", textutil.Len(got))
			}
			r := NewRetriever(tt.opts)
			if got := r.Context(r.Retrieve("da nang", c)); got != "" {
				t.Errorf("expected empty retriever context, got %d characters", textutil.Len(got))
			}
		})
	}

	if got := Rank("da nang", c, 0); len(got) != 0 {
		t.Errorf("expected no candidates for maxCandidates 0, got %d", len(got))
	}
}
