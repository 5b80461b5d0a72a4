package database

import (
	"encoding/json"
	"time"
)

// Publication is one stored normalized entry. Document holds the rendered
// JSON object exactly as it was emitted.
type Publication struct {
	ID        int64
	CiteKey   string
	Position  int
	Document  json.RawMessage
	CreatedAt time.Time
}
