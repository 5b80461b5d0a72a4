package bibtex

import (
	"fmt"
	"strings"
)

// CommentsKey is the reserved key of the pseudo-entry that collects free
// text found outside of any record. It is always the last parsed entry.
const CommentsKey = "@comments"

const (
	TypeField     = "entryType"
	CommentsField = "COMMENTS"
)

type Field struct {
	Name  string
	Value string
}

// RawEntry is one record as reported by the parser. Field names are
// upper-cased; values are kept as written apart from whitespace folding.
type RawEntry struct {
	Key    string
	Type   string
	Fields []Field
}

func (e RawEntry) IsComments() bool {
	return e.Key == CommentsKey
}

// Get looks a field up by name, ignoring case.
func (e RawEntry) Get(name string) (string, bool) {
	for _, f := range e.Fields {
		if strings.EqualFold(f.Name, name) {
			return f.Value, true
		}
	}
	return "", false
}

// ParseError reports malformed BibTeX input.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("bibtex: line %d: %s", e.Line, e.Msg)
}
