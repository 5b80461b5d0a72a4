package normalize

import (
	"bytes"
	"fmt"
	"reflect"
	"testing"

	"github.com/lysyi3m/bib-comb/app/bibtex"
)

func commentsEntry() bibtex.RawEntry {
	return bibtex.RawEntry{
		Key:    bibtex.CommentsKey,
		Fields: []bibtex.Field{{Name: bibtex.CommentsField, Value: "free text"}},
	}
}

func TestPipeline_FullEntry(t *testing.T) {
	pipeline := NewPipeline(defaultTables(t))

	raw := bibtex.RawEntry{
		Key:  "smith2010",
		Type: "inproceedings",
		Fields: []bibtex.Field{
			{Name: bibtex.TypeField, Value: "inproceedings"},
			{Name: "AUTHOR", Value: `Schr{\"o}der, Anna and Doe, Jane`},
			{Name: "TITLE", Value: "attack of the 3d clones"},
			{Name: "BOOKTITLE", Value: "Proceedings of Graphics Interface 2010"},
			{Name: "YEAR", Value: "2010"},
			{Name: "MONTH", Value: "february"},
			{Name: "PAGES", Value: "12--20"},
			{Name: "KEYWORDS", Value: "clones, attack"},
			{Name: "URL", Value: "https://example.com"},
		},
	}

	entries := pipeline.Run([]bibtex.RawEntry{raw, commentsEntry()})
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	entry := entries[0]

	if entry.Key != "smith2010" {
		t.Errorf("Expected key 'smith2010', got %s", entry.Key)
	}

	expectedNames := []string{
		"entrytype", "author", "title", "booktitle", "year", "month", "pages",
		"keywords", "url", "thumbnail", "award", "quicklinks",
	}
	if !reflect.DeepEqual(entry.Names(), expectedNames) {
		t.Errorf("Expected names %v, got %v", expectedNames, entry.Names())
	}

	stringFields := map[string]string{
		"entrytype": "inproceedings",
		"title":     "Attack of the 3D Clones",
		"booktitle": "Graphics Interface",
		"year":      "2010",
		"month":     "Feb",
		"pages":     "12-20",
		"url":       "MISSING URL",
		"thumbnail": "MISSING THUMBNAIL",
		"award":     "MISSING AWARD",
	}
	for name, expected := range stringFields {
		v, ok := entry.Get(name)
		if !ok {
			t.Errorf("Field %s is missing", name)
			continue
		}
		if v.Kind() != KindString || v.String() != expected {
			t.Errorf("Field %s: expected %q, got %q", name, expected, v.String())
		}
	}

	author, _ := entry.Get("author")
	if author.Kind() != KindList || author.Missing() {
		t.Errorf("Expected author to be a present list, got %+v", author)
	}
	if !reflect.DeepEqual(author.Strings(), []string{"Anna Schröder", "Jane Doe"}) {
		t.Errorf("Unexpected authors: %v", author.Strings())
	}

	keywords, _ := entry.Get("keywords")
	if !reflect.DeepEqual(keywords.Strings(), []string{"clones", "attack"}) {
		t.Errorf("Unexpected keywords: %v", keywords.Strings())
	}
}

func TestPipeline_MissingFields(t *testing.T) {
	pipeline := NewPipeline(defaultTables(t))

	raw := bibtex.RawEntry{
		Key:    "bare",
		Fields: []bibtex.Field{{Name: "TITLE", Value: ""}, {Name: "Note", Value: "x"}},
	}

	entry := pipeline.Normalize(raw)

	title, _ := entry.Get("title")
	if title.String() != "MISSING TITLE" || !title.Missing() {
		t.Errorf("Expected title placeholder, got %+v", title)
	}

	author, _ := entry.Get("author")
	if author.Kind() != KindString || author.String() != "MISSING AUTHORS" || !author.Missing() {
		t.Errorf("Expected author placeholder string, got %+v", author)
	}

	month, _ := entry.Get("month")
	if month.String() != "MISSING MONTH" {
		t.Errorf("Expected month placeholder, got %q", month.String())
	}

	pages, _ := entry.Get("pages")
	if pages.String() != "MISSING PAGES" {
		t.Errorf("Expected pages placeholder, got %q", pages.String())
	}

	keywords, _ := entry.Get("keywords")
	if keywords.Kind() != KindList || !reflect.DeepEqual(keywords.Strings(), []string{"MISSING KEYWORDS"}) {
		t.Errorf("Expected keywords placeholder list, got %+v", keywords)
	}

	note, ok := entry.Get("note")
	if !ok || note.String() != "x" {
		t.Errorf("Expected lowercased pass-through field 'note', got %+v", note)
	}
}

func TestPipeline_UnrecognizedValuesPassThrough(t *testing.T) {
	pipeline := NewPipeline(defaultTables(t))

	entry := pipeline.Normalize(bibtex.RawEntry{
		Key: "k",
		Fields: []bibtex.Field{
			{Name: "MONTH", Value: "Q1"},
			{Name: "PAGES", Value: "12"},
		},
	})

	if month, _ := entry.Get("month"); month.String() != "Q1" || month.Missing() {
		t.Errorf("Expected month to pass through, got %+v", month)
	}
	if pages, _ := entry.Get("pages"); pages.String() != "12" {
		t.Errorf("Expected pages to pass through, got %q", pages.String())
	}
}

func TestPipeline_NormalizesEveryField(t *testing.T) {
	pipeline := NewPipeline(defaultTables(t))

	entry := pipeline.Normalize(bibtex.RawEntry{
		Key: "k",
		Fields: []bibtex.Field{
			{Name: "Journal", Value: "Comput. Graph. Forum"},
			{Name: "NOTE", Value: `Extended from Graphics Interface \& more`},
			{Name: "Publisher", Value: `Springer \& Co`},
		},
	})

	expected := map[string]string{
		"journal":   "Computer Graphics Forum (EGSR)",
		"note":      "Graphics Interface",
		"publisher": "Springer & Co",
	}
	for name, value := range expected {
		if v, _ := entry.Get(name); v.String() != value {
			t.Errorf("Field %s: expected %q, got %q", name, value, v.String())
		}
	}
}

func TestPipeline_PreservesOrderAndSkipsComments(t *testing.T) {
	pipeline := NewPipeline(defaultTables(t))

	for n := 0; n <= 4; n++ {
		for at := 0; at <= n; at++ {
			var raw []bibtex.RawEntry
			for i := 0; i < n; i++ {
				raw = append(raw, bibtex.RawEntry{
					Key:    fmt.Sprintf("entry%d", i),
					Fields: []bibtex.Field{{Name: "TITLE", Value: "same title"}},
				})
			}
			raw = append(raw[:at], append([]bibtex.RawEntry{commentsEntry()}, raw[at:]...)...)

			entries := pipeline.Run(raw)
			if len(entries) != n {
				t.Fatalf("n=%d at=%d: expected %d entries, got %d", n, at, n, len(entries))
			}
			for i, entry := range entries {
				if expected := fmt.Sprintf("entry%d", i); entry.Key != expected {
					t.Errorf("n=%d at=%d: expected %s at %d, got %s", n, at, expected, i, entry.Key)
				}
			}
		}
	}
}

func TestPipeline_DuplicateFieldNamesCollapse(t *testing.T) {
	pipeline := NewPipeline(defaultTables(t))

	entry := pipeline.Normalize(bibtex.RawEntry{
		Key: "k",
		Fields: []bibtex.Field{
			{Name: "NOTE", Value: "first"},
			{Name: "note", Value: "second"},
		},
	})

	if note, _ := entry.Get("note"); note.String() != "second" {
		t.Errorf("Expected the later field to win, got %q", note.String())
	}
}

func TestRender(t *testing.T) {
	pipeline := NewPipeline(defaultTables(t))

	entries := pipeline.Run([]bibtex.RawEntry{
		{
			Key: "k",
			Fields: []bibtex.Field{
				{Name: bibtex.TypeField, Value: "article"},
				{Name: "AUTHOR", Value: "Smith, John"},
				{Name: "TITLE", Value: `Tom \& Jerry`},
			},
		},
		commentsEntry(),
	})

	var buf bytes.Buffer
	if err := Render(&buf, entries, 4); err != nil {
		t.Fatal(err)
	}

	expected := `[
    {
        "entrytype": "article",
        "author": [
            "John Smith"
        ],
        "title": "Tom & Jerry",
        "month": "MISSING MONTH",
        "pages": "MISSING PAGES",
        "keywords": [
            "MISSING KEYWORDS"
        ],
        "url": "MISSING URL",
        "thumbnail": "MISSING THUMBNAIL",
        "award": "MISSING AWARD",
        "quicklinks": [
            {
                "type": "MISSING QLINK",
                "url": "MISSING QLINK"
            }
        ]
    }
]
`
	if buf.String() != expected {
		t.Errorf("Unexpected rendering:\n%s", buf.String())
	}
}

func TestRender_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, nil, 4); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "[]\n" {
		t.Errorf("Expected empty array, got %q", buf.String())
	}
}

func TestEntry_MarshalJSON(t *testing.T) {
	entry := NewEntry("k")
	entry.Set("b", Text("<b> & \"q\""))
	entry.Set("a", List([]string{"x", "y"}))
	entry.Set("b", Text("replaced"))
	entry.Set("c", List(nil))

	data, err := entry.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}

	expected := `{"b":"replaced","a":["x","y"],"c":[]}`
	if string(data) != expected {
		t.Errorf("Expected %s, got %s", expected, data)
	}

	escaped, err := Text(`<b> & "q"`).MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(escaped) != `"<b> & \"q\""` {
		t.Errorf("Expected HTML characters to stay literal, got %s", escaped)
	}
}
