package normalize

import "strings"

type AuthorNormalizer struct{}

func NewAuthorNormalizer() *AuthorNormalizer {
	return &AuthorNormalizer{}
}

// Run splits an author list on " and " and turns "Last, First" names into
// "First Last". Names with more than one ", " are rebuilt from their first
// two parts; the rest is dropped.
func (n *AuthorNormalizer) Run(authors string) []string {
	names := strings.Split(authors, " and ")

	result := make([]string, 0, len(names))
	for _, name := range names {
		parts := strings.Split(name, ", ")
		if len(parts) >= 2 {
			name = parts[1] + " " + parts[0]
		}
		result = append(result, name)
	}

	return result
}
