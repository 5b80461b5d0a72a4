package normalize

import (
	"strings"

	"github.com/lysyi3m/bib-comb/app/tables"
)

// VenueCanonicalizer replaces a value with a canonical venue name when the
// value contains one of the known venue fragments.
type VenueCanonicalizer struct {
	table []tables.Pair
}

func NewVenueCanonicalizer(table []tables.Pair) *VenueCanonicalizer {
	return &VenueCanonicalizer{table: table}
}

// Run checks the whole table against the original value. When several
// fragments match, the one listed last wins.
func (c *VenueCanonicalizer) Run(value string) string {
	result := value
	for _, pair := range c.table {
		if strings.Contains(value, pair.From) {
			result = pair.To
		}
	}
	return result
}
