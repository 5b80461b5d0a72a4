package normalize

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Render writes entries as one indented JSON array followed by a newline.
func Render(w io.Writer, entries []*Entry, indent int) error {
	if entries == nil {
		entries = []*Entry{}
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", strings.Repeat(" ", max(indent, 0)))

	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("failed to render entries: %w", err)
	}

	return nil
}
