package normalize

import (
	"log/slog"
	"strings"

	"github.com/lysyi3m/bib-comb/app/bibtex"
	"github.com/lysyi3m/bib-comb/app/tables"
)

type Stage string

const (
	StageCopyFields        Stage = "COPY_FIELDS"
	StageNormalizeTitle    Stage = "NORMALIZE_TITLE"
	StageNormalizeAuthor   Stage = "NORMALIZE_AUTHOR"
	StageNormalizeMonth    Stage = "NORMALIZE_MONTH"
	StageNormalizePages    Stage = "NORMALIZE_PAGES"
	StageNormalizeKeywords Stage = "NORMALIZE_KEYWORDS"
	StageFillPlaceholders  Stage = "FILL_PLACEHOLDERS"
	StageEmit              Stage = "EMIT"
)

type stage struct {
	name Stage
	run  func(*Entry)
}

// Pipeline turns parsed BibTeX entries into normalized entries. It keeps
// no state between entries and is safe for concurrent use.
type Pipeline struct {
	chars    *CharNormalizer
	venues   *VenueCanonicalizer
	titles   *TitleCaser
	authors  *AuthorNormalizer
	months   *MonthNormalizer
	pages    *PageRangeNormalizer
	keywords *KeywordNormalizer
	filler   *PlaceholderFiller

	placeholders tables.Placeholders
	stages       []stage
}

func NewPipeline(t *tables.Tables) *Pipeline {
	p := &Pipeline{
		chars:        NewCharNormalizer(t.Chars),
		venues:       NewVenueCanonicalizer(t.Venues),
		titles:       NewTitleCaser(t.Title),
		authors:      NewAuthorNormalizer(),
		months:       NewMonthNormalizer(t.Months),
		pages:        NewPageRangeNormalizer(),
		keywords:     NewKeywordNormalizer(),
		filler:       NewPlaceholderFiller(t.Placeholders),
		placeholders: t.Placeholders,
	}

	p.stages = []stage{
		{StageNormalizeTitle, p.normalizeTitle},
		{StageNormalizeAuthor, p.normalizeAuthor},
		{StageNormalizeMonth, p.normalizeMonth},
		{StageNormalizePages, p.normalizePages},
		{StageNormalizeKeywords, p.normalizeKeywords},
		{StageFillPlaceholders, p.filler.Run},
	}

	return p
}

// Run normalizes entries in input order, skipping the comments entry.
func (p *Pipeline) Run(raw []bibtex.RawEntry) []*Entry {
	result := make([]*Entry, 0, len(raw))
	for _, r := range raw {
		if r.IsComments() {
			continue
		}

		entry := p.Normalize(r)
		result = append(result, entry)
		slog.Debug("Entry normalized", "key", entry.Key, "stage", StageEmit, "fields", entry.Len())
	}

	slog.Debug("Pipeline finished", "input", len(raw), "output", len(result))

	return result
}

func (p *Pipeline) Normalize(raw bibtex.RawEntry) *Entry {
	entry := NewEntry(raw.Key)

	slog.Debug("Normalizing entry", "key", raw.Key, "stage", StageCopyFields)
	p.copyFields(entry, raw)

	for _, s := range p.stages {
		slog.Debug("Normalizing entry", "key", raw.Key, "stage", s.name)
		s.run(entry)
	}

	return entry
}

func (p *Pipeline) copyFields(entry *Entry, raw bibtex.RawEntry) {
	for _, field := range raw.Fields {
		value := p.chars.Run(field.Value)
		value = p.venues.Run(value)
		entry.Set(strings.ToLower(field.Name), Text(value))
	}
}

func (p *Pipeline) normalizeTitle(entry *Entry) {
	title, ok := textField(entry, "title")
	if !ok {
		entry.Set("title", MissingText(p.placeholders.Title))
		return
	}
	entry.Set("title", Text(p.titles.Run(title)))
}

func (p *Pipeline) normalizeAuthor(entry *Entry) {
	authors, ok := textField(entry, "author")
	if !ok {
		entry.Set("author", MissingText(p.placeholders.Authors))
		return
	}
	entry.Set("author", List(p.authors.Run(authors)))
}

func (p *Pipeline) normalizeMonth(entry *Entry) {
	month, ok := textField(entry, "month")
	if !ok {
		entry.Set("month", MissingText(p.placeholders.Month))
		return
	}
	entry.Set("month", Text(p.months.Run(month)))
}

func (p *Pipeline) normalizePages(entry *Entry) {
	pages, ok := textField(entry, "pages")
	if !ok {
		entry.Set("pages", MissingText(p.placeholders.Pages))
		return
	}
	entry.Set("pages", Text(p.pages.Run(pages)))
}

func (p *Pipeline) normalizeKeywords(entry *Entry) {
	keywords, ok := textField(entry, "keywords")
	if !ok {
		entry.Set("keywords", MissingList(p.placeholders.Keywords))
		return
	}
	entry.Set("keywords", List(p.keywords.Run(keywords)))
}

// textField returns a copied string field; empty values count as absent.
func textField(entry *Entry, name string) (string, bool) {
	v, ok := entry.Get(name)
	if !ok || v.Kind() != KindString || v.String() == "" {
		return "", false
	}
	return v.String(), true
}
