package bibtex

import (
	"log/slog"
	"strings"
	"unicode"
)

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Run parses BibTeX source into entries in source order, followed by the
// comments pseudo-entry. Nothing is returned when the input is malformed.
func (p *Parser) Run(data []byte) ([]RawEntry, error) {
	s := &scanner{
		src:    string(data),
		macros: make(map[string]string),
	}

	if err := s.scan(); err != nil {
		return nil, err
	}

	entries := append(s.entries, RawEntry{
		Key: CommentsKey,
		Fields: []Field{
			{Name: CommentsField, Value: strings.Join(s.comments, "\n")},
		},
	})

	slog.Debug("BibTeX parsed",
		"entries", len(s.entries),
		"macros", len(s.macros),
		"comments", len(s.comments))

	return entries, nil
}

type scanner struct {
	src      string
	pos      int
	macros   map[string]string
	entries  []RawEntry
	comments []string
}

func (s *scanner) scan() error {
	for s.pos < len(s.src) {
		at := strings.IndexByte(s.src[s.pos:], '@')
		if at < 0 {
			s.addComment(s.src[s.pos:])
			s.pos = len(s.src)
			return nil
		}

		s.addComment(s.src[s.pos : s.pos+at])
		s.pos += at

		start := s.pos
		s.pos++
		kind := strings.ToLower(s.readIdent())
		s.skipSpace()

		if kind == "" || s.eof() || (s.peek() != '{' && s.peek() != '(') {
			// A stray '@' outside of a record, e.g. an e-mail address.
			s.addComment(s.src[start:s.pos])
			continue
		}

		var err error
		switch kind {
		case "comment":
			var body string
			body, err = s.readDelimited()
			s.addComment(body)
		case "preamble":
			_, err = s.readDelimited()
		case "string":
			err = s.readMacro()
		default:
			err = s.readEntry(kind)
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (s *scanner) readEntry(kind string) error {
	start := s.pos
	closing := closerFor(s.next())

	s.skipSpace()
	keyStart := s.pos
	for !s.eof() {
		c := s.peek()
		if c == ',' || c == closing || isSpace(c) {
			break
		}
		s.pos++
	}
	key := s.src[keyStart:s.pos]
	if key == "" {
		return s.errorAt(keyStart, "missing entry key")
	}

	entry := RawEntry{
		Key:    key,
		Type:   kind,
		Fields: []Field{{Name: TypeField, Value: kind}},
	}

	s.skipSpace()
	if s.eof() {
		return s.errorAt(start, "unterminated entry "+key)
	}
	if s.peek() == closing {
		s.pos++
		s.entries = append(s.entries, entry)
		return nil
	}
	if s.peek() != ',' {
		return s.errorAt(s.pos, "expected ',' after entry key "+key)
	}
	s.pos++

	for {
		s.skipSpace()
		if s.eof() {
			return s.errorAt(start, "unterminated entry "+key)
		}
		if s.peek() == closing {
			s.pos++
			break
		}

		name, value, err := s.readAssignment()
		if err != nil {
			return err
		}
		entry.Fields = append(entry.Fields, Field{Name: strings.ToUpper(name), Value: value})

		s.skipSpace()
		if s.eof() {
			return s.errorAt(start, "unterminated entry "+key)
		}
		switch s.peek() {
		case ',':
			s.pos++
		case closing:
			s.pos++
			s.entries = append(s.entries, entry)
			return nil
		default:
			return s.errorAt(s.pos, "expected ',' or end of entry after field "+name)
		}
	}

	s.entries = append(s.entries, entry)
	return nil
}

func (s *scanner) readMacro() error {
	start := s.pos
	closing := closerFor(s.next())

	s.skipSpace()
	name, value, err := s.readAssignment()
	if err != nil {
		return err
	}

	s.skipSpace()
	if s.eof() || s.peek() != closing {
		return s.errorAt(start, "unterminated @string definition")
	}
	s.pos++

	s.macros[strings.ToLower(name)] = value
	return nil
}

func (s *scanner) readAssignment() (string, string, error) {
	nameStart := s.pos
	name := s.readIdent()
	if name == "" {
		return "", "", s.errorAt(nameStart, "expected field name")
	}

	s.skipSpace()
	if s.eof() || s.peek() != '=' {
		return "", "", s.errorAt(s.pos, "expected '=' after "+name)
	}
	s.pos++

	value, err := s.readValue()
	if err != nil {
		return "", "", err
	}

	return name, value, nil
}

func (s *scanner) readValue() (string, error) {
	var b strings.Builder

	for {
		s.skipSpace()
		if s.eof() {
			return "", s.errorAt(s.pos, "unexpected end of input, expected a value")
		}

		c := s.peek()
		switch {
		case c == '{':
			part, err := s.readDelimited()
			if err != nil {
				return "", err
			}
			b.WriteString(part)
		case c == '"':
			part, err := s.readQuoted()
			if err != nil {
				return "", err
			}
			b.WriteString(part)
		case c >= '0' && c <= '9':
			start := s.pos
			for !s.eof() && s.peek() >= '0' && s.peek() <= '9' {
				s.pos++
			}
			b.WriteString(s.src[start:s.pos])
		case isIdentStart(c):
			ident := s.readIdent()
			if value, ok := s.macros[strings.ToLower(ident)]; ok {
				b.WriteString(value)
			} else {
				b.WriteString(ident)
			}
		default:
			return "", s.errorAt(s.pos, "unexpected character '"+string(c)+"' in value")
		}

		s.skipSpace()
		if s.eof() || s.peek() != '#' {
			break
		}
		s.pos++
	}

	return foldSpace(b.String()), nil
}

// readDelimited consumes a '{...}' or '(...)' group starting at the
// current position and returns its inner text with nested braces kept.
func (s *scanner) readDelimited() (string, error) {
	start := s.pos
	opening := s.next()
	closing := closerFor(opening)

	depth := 1
	bodyStart := s.pos
	for !s.eof() {
		c := s.next()
		switch c {
		case opening:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return s.src[bodyStart : s.pos-1], nil
			}
		}
	}

	return "", s.errorAt(start, "unbalanced braces")
}

func (s *scanner) readQuoted() (string, error) {
	start := s.pos
	s.pos++

	depth := 0
	bodyStart := s.pos
	for !s.eof() {
		c := s.next()
		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return "", s.errorAt(s.pos-1, "unbalanced braces in quoted value")
			}
		case '"':
			if depth == 0 {
				return s.src[bodyStart : s.pos-1], nil
			}
		}
	}

	return "", s.errorAt(start, "unterminated quoted value")
}

func (s *scanner) readIdent() string {
	start := s.pos
	for !s.eof() && isIdentChar(s.peek()) {
		s.pos++
	}
	return s.src[start:s.pos]
}

func (s *scanner) addComment(text string) {
	text = strings.TrimSpace(text)
	if text != "" {
		s.comments = append(s.comments, text)
	}
}

func (s *scanner) skipSpace() {
	for !s.eof() && isSpace(s.peek()) {
		s.pos++
	}
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.src)
}

func (s *scanner) peek() byte {
	return s.src[s.pos]
}

func (s *scanner) next() byte {
	c := s.src[s.pos]
	s.pos++
	return c
}

func (s *scanner) errorAt(pos int, msg string) error {
	return &ParseError{
		Line: 1 + strings.Count(s.src[:pos], "\n"),
		Msg:  msg,
	}
}

func closerFor(opening byte) byte {
	if opening == '(' {
		return ')'
	}
	return '}'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isIdentStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9') || c == '-' || c == ':' || c == '.' || c == '+' || c == '/'
}

// foldSpace collapses line breaks and runs of whitespace into single
// spaces, the way BibTeX itself reads multi-line values.
func foldSpace(v string) string {
	return strings.Join(strings.FieldsFunc(v, unicode.IsSpace), " ")
}
