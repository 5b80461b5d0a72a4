package normalize

import (
	"bytes"
	"fmt"
)

// Entry is one normalized record: lowercase field names mapped to values,
// kept in the order the fields were first set.
type Entry struct {
	Key string // cite key, not part of the rendered object

	names  []string
	values map[string]Value
}

func NewEntry(key string) *Entry {
	return &Entry{
		Key:    key,
		values: make(map[string]Value),
	}
}

// Set stores a value. Replacing an existing field keeps its position.
func (e *Entry) Set(name string, v Value) {
	if _, ok := e.values[name]; !ok {
		e.names = append(e.names, name)
	}
	e.values[name] = v
}

func (e *Entry) Get(name string) (Value, bool) {
	v, ok := e.values[name]
	return v, ok
}

func (e *Entry) Names() []string {
	return append([]string(nil), e.names...)
}

func (e *Entry) Len() int {
	return len(e.names)
}

func (e *Entry) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, name := range e.names {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := encodeJSON(name)
		if err != nil {
			return nil, err
		}
		value, err := e.values[name].MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("failed to encode field %s of %s: %w", name, e.Key, err)
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
