package tables

import (
	"cmp"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yml
var defaultsYAML []byte

type Loader struct {
	path string
}

// NewLoader returns a loader for the given override file. An empty path
// loads the built-in tables only.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

func (l *Loader) Run() (*Tables, error) {
	t, err := Default()
	if err != nil {
		return nil, err
	}

	if l.path == "" {
		return t, nil
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tables file: %w", err)
	}

	var o overlay
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("failed to parse tables YAML %s: %w", l.path, err)
	}

	t.apply(&o)

	if err := t.validate(); err != nil {
		return nil, fmt.Errorf("invalid tables %s: %w", l.path, err)
	}

	slog.Debug("Tables loaded",
		"path", l.path,
		"chars", len(t.Chars),
		"venues", len(t.Venues),
		"months", len(t.Months))

	return t, nil
}

// Default decodes the tables compiled into the binary.
func Default() (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(defaultsYAML, &t); err != nil {
		return nil, fmt.Errorf("failed to parse default tables: %w", err)
	}
	if err := t.validate(); err != nil {
		return nil, fmt.Errorf("invalid default tables: %w", err)
	}
	return &t, nil
}

func (t *Tables) apply(o *overlay) {
	if o.Chars != nil {
		t.Chars = *o.Chars
	}
	if o.Venues != nil {
		t.Venues = *o.Venues
	}
	if o.Months != nil {
		t.Months = *o.Months
	}

	if o.Title != nil {
		if o.Title.MinorWords != nil {
			t.Title.MinorWords = *o.Title.MinorWords
		}
		if o.Title.Overrides != nil {
			t.Title.Overrides = *o.Title.Overrides
		}
		if o.Title.Acronyms != nil {
			t.Title.Acronyms = *o.Title.Acronyms
		}
	}

	p := &t.Placeholders
	p.Title = cmp.Or(o.Placeholders.Title, p.Title)
	p.Authors = cmp.Or(o.Placeholders.Authors, p.Authors)
	p.Month = cmp.Or(o.Placeholders.Month, p.Month)
	p.Pages = cmp.Or(o.Placeholders.Pages, p.Pages)
	p.Keywords = cmp.Or(o.Placeholders.Keywords, p.Keywords)
	p.URL = cmp.Or(o.Placeholders.URL, p.URL)
	p.Thumbnail = cmp.Or(o.Placeholders.Thumbnail, p.Thumbnail)
	p.Award = cmp.Or(o.Placeholders.Award, p.Award)
	p.QuickLink = cmp.Or(o.Placeholders.QuickLink, p.QuickLink)
}

func (t *Tables) validate() error {
	pairTables := []struct {
		name  string
		pairs []Pair
	}{
		{"chars", t.Chars},
		{"venues", t.Venues},
		{"months", t.Months},
		{"title overrides", t.Title.Overrides},
	}

	for _, table := range pairTables {
		for i, pair := range table.pairs {
			if pair.From == "" {
				return fmt.Errorf("%s entry at index %d has an empty 'from'", table.name, i)
			}
		}
	}

	wordLists := []struct {
		name  string
		words []string
	}{
		{"minor words", t.Title.MinorWords},
		{"acronyms", t.Title.Acronyms},
	}

	for _, list := range wordLists {
		for i, word := range list.words {
			if word == "" || strings.ContainsAny(word, " \t\r\n") {
				return fmt.Errorf("invalid word in %s at index %d: %q", list.name, i, word)
			}
		}
	}

	// Ordered so the first missing placeholder is reported deterministically.
	requiredPlaceholders := []struct {
		name  string
		value string
	}{
		{"title", t.Placeholders.Title},
		{"authors", t.Placeholders.Authors},
		{"month", t.Placeholders.Month},
		{"pages", t.Placeholders.Pages},
		{"keywords", t.Placeholders.Keywords},
		{"url", t.Placeholders.URL},
		{"thumbnail", t.Placeholders.Thumbnail},
		{"award", t.Placeholders.Award},
		{"quicklink", t.Placeholders.QuickLink},
	}

	for _, placeholder := range requiredPlaceholders {
		if placeholder.value == "" {
			return fmt.Errorf("%s placeholder is required", placeholder.name)
		}
	}

	return nil
}
