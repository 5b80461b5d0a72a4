package normalize

import (
	"strings"

	"github.com/lysyi3m/bib-comb/app/tables"
)

// CharNormalizer rewrites LaTeX escapes to their Unicode characters.
type CharNormalizer struct {
	table []tables.Pair
}

func NewCharNormalizer(table []tables.Pair) *CharNormalizer {
	return &CharNormalizer{table: table}
}

// Run replaces every literal occurrence of each escape, table order first.
func (n *CharNormalizer) Run(value string) string {
	for _, pair := range n.table {
		value = strings.ReplaceAll(value, pair.From, pair.To)
	}
	return value
}
