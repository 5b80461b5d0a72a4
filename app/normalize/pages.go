package normalize

import "strings"

type PageRangeNormalizer struct{}

func NewPageRangeNormalizer() *PageRangeNormalizer {
	return &PageRangeNormalizer{}
}

// Run turns "12--20" into "12-20". Only the first two parts of the range
// are kept.
func (n *PageRangeNormalizer) Run(pages string) string {
	parts := strings.Split(pages, "--")
	if len(parts) < 2 {
		return pages
	}
	return parts[0] + "-" + parts[1]
}
