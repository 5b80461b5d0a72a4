package normalize

import "github.com/lysyi3m/bib-comb/app/tables"

// PlaceholderFiller overwrites the curation fields of every entry with
// placeholders. Existing values under those names are discarded.
type PlaceholderFiller struct {
	placeholders tables.Placeholders
}

func NewPlaceholderFiller(placeholders tables.Placeholders) *PlaceholderFiller {
	return &PlaceholderFiller{placeholders: placeholders}
}

func (f *PlaceholderFiller) Run(entry *Entry) {
	entry.Set("url", MissingText(f.placeholders.URL))
	entry.Set("thumbnail", MissingText(f.placeholders.Thumbnail))
	entry.Set("award", MissingText(f.placeholders.Award))
	entry.Set("quicklinks", Links(QuickLink{
		Type: f.placeholders.QuickLink,
		URL:  f.placeholders.QuickLink,
	}))
}
