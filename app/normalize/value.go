package normalize

import (
	"bytes"
	"encoding/json"
)

type Kind int

const (
	KindString Kind = iota
	KindList
	KindLinks
)

type QuickLink struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// Value is a normalized field value. Fields such as author are a list
// when present and a placeholder string when absent, so the kind and the
// missing flag travel with the value instead of being guessed from JSON.
type Value struct {
	kind    Kind
	text    string
	list    []string
	links   []QuickLink
	missing bool
}

func Text(s string) Value {
	return Value{kind: KindString, text: s}
}

func List(items []string) Value {
	return Value{kind: KindList, list: items}
}

func Links(links ...QuickLink) Value {
	return Value{kind: KindLinks, links: links}
}

// MissingText is a placeholder string standing in for an absent field.
func MissingText(placeholder string) Value {
	return Value{kind: KindString, text: placeholder, missing: true}
}

// MissingList is a one-element list holding a placeholder.
func MissingList(placeholder string) Value {
	return Value{kind: KindList, list: []string{placeholder}, missing: true}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) Missing() bool {
	return v.missing
}

func (v Value) String() string {
	return v.text
}

func (v Value) Strings() []string {
	return v.list
}

func (v Value) QuickLinks() []QuickLink {
	return v.links
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return encodeJSON(v.list)
	case KindLinks:
		if v.links == nil {
			return []byte("[]"), nil
		}
		return encodeJSON(v.links)
	default:
		return encodeJSON(v.text)
	}
}

// encodeJSON marshals without HTML escaping so '&' and '<' stay literal.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
