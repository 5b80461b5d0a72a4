package normalize

import (
	"github.com/lysyi3m/bib-comb/app/tables"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type MonthNormalizer struct {
	lookup map[string]string
}

// NewMonthNormalizer indexes the month table. A spelling listed twice
// resolves to its last mapping.
func NewMonthNormalizer(table []tables.Pair) *MonthNormalizer {
	lookup := make(map[string]string, len(table))
	for _, pair := range table {
		lookup[pair.From] = pair.To
	}
	return &MonthNormalizer{lookup: lookup}
}

// Run maps a month name in any case to its abbreviation. Unknown values
// are returned unchanged.
func (n *MonthNormalizer) Run(month string) string {
	if abbr, ok := n.lookup[cases.Upper(language.Und).String(month)]; ok {
		return abbr
	}
	return month
}
