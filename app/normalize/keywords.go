package normalize

import "strings"

type KeywordNormalizer struct{}

func NewKeywordNormalizer() *KeywordNormalizer {
	return &KeywordNormalizer{}
}

func (n *KeywordNormalizer) Run(keywords string) []string {
	return strings.Split(keywords, ", ")
}
