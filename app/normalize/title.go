package normalize

import (
	"regexp"
	"strings"

	"github.com/lysyi3m/bib-comb/app/tables"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// A word starts at an ASCII letter or digit and runs up to the next space
// or hyphen, so "quick-brown" is cased as two words.
var titleWordPattern = regexp.MustCompile(`[A-Za-z0-9]+[^\s-]* *`)

type acronymRule struct {
	pattern *regexp.Regexp
	upper   string
}

type TitleCaser struct {
	minorWords []*regexp.Regexp
	overrides  []tables.Pair
	acronyms   []acronymRule
}

func NewTitleCaser(rules tables.TitleRules) *TitleCaser {
	tc := &TitleCaser{overrides: rules.Overrides}

	for _, word := range rules.MinorWords {
		tc.minorWords = append(tc.minorWords,
			regexp.MustCompile(`\s`+regexp.QuoteMeta(word)+`\s`))
	}

	upper := cases.Upper(language.Und)
	for _, word := range rules.Acronyms {
		tc.acronyms = append(tc.acronyms, acronymRule{
			pattern: regexp.MustCompile(`\b` + regexp.QuoteMeta(word) + `\b`),
			upper:   upper.String(word),
		})
	}

	return tc
}

// TitleCase capitalizes a title with the given word rules.
func TitleCase(title string, rules tables.TitleRules) string {
	return NewTitleCaser(rules).Run(title)
}

// Run capitalizes every word, lowers minor words that sit between two
// spaces, applies the literal overrides and restores acronyms.
//
// Minor words at either end of the title lack one of the surrounding
// spaces and therefore stay capitalized.
func (tc *TitleCaser) Run(title string) string {
	lower := cases.Lower(language.Und)

	s := titleWordPattern.ReplaceAllStringFunc(title, func(word string) string {
		return strings.ToUpper(word[:1]) + lower.String(word[1:])
	})

	for _, pattern := range tc.minorWords {
		s = pattern.ReplaceAllStringFunc(s, lower.String)
	}

	for _, pair := range tc.overrides {
		s = strings.Replace(s, pair.From, pair.To, 1)
	}

	for _, rule := range tc.acronyms {
		s = rule.pattern.ReplaceAllLiteralString(s, rule.upper)
	}

	return s
}
