package meeting

import (
	"encoding/json"
	"fmt"
)

// CurrentSchema stamps every persisted document so future readers can
// migrate old shapes.
const CurrentSchema = "huddle/v1"

// Document is the single durable record: the whole meeting collection
// wrapped in a version-stamped envelope. Every write replaces the entire
// document; there are no per-meeting records.
type Document struct {
	Schema   string     `json:"schema"`
	Meetings []*Meeting `json:"meetings"`
}

// MarshalDocument serialises the meeting collection as one document.
func MarshalDocument(meetings []*Meeting) ([]byte, error) {
	doc := Document{Schema: CurrentSchema, Meetings: meetings}
	return json.MarshalIndent(doc, "", "  ")
}

// UnmarshalDocument deserialises a persisted document, upgrading the legacy
// shape (a bare meeting array without an envelope).
func UnmarshalDocument(data []byte) ([]*Meeting, error) {
	if len(data) == 0 {
		return []*Meeting{}, nil
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err == nil && doc.Schema != "" {
		return doc.Meetings, nil
	}
	// Fallback for the legacy format (bare array of meetings).
	var legacy []*Meeting
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, fmt.Errorf("meeting: decode document: %w", err)
	}
	return legacy, nil
}
