// Package export reads and writes the portable forms of a meeting
// collection: the versioned JSON document for backup and transfer, and a
// Markdown minutes rendering for sharing.
package export

import (
	"fmt"
	"io"

	"github.com/huddlenotes/huddle/pkg/meeting"
)

// WriteJSON writes the collection as the versioned document envelope.
func WriteJSON(w io.Writer, meetings []*meeting.Meeting) error {
	data, err := meeting.MarshalDocument(meetings)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// ReadJSON reads a document envelope (or a legacy bare array) and validates
// it before handing the meetings back.
func ReadJSON(r io.Reader) ([]*meeting.Meeting, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	meetings, err := meeting.UnmarshalDocument(data)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	if err := Validate(meetings); err != nil {
		return nil, err
	}
	return meetings, nil
}

// Validate checks the structural invariants an imported collection must
// hold: unique meeting and block ids, block topic references that resolve,
// and non-empty sort keys.
func Validate(meetings []*meeting.Meeting) error {
	seenMeeting := map[string]bool{}
	for _, m := range meetings {
		if m == nil {
			return fmt.Errorf("export: nil meeting in collection")
		}
		if m.ID == "" {
			return fmt.Errorf("export: meeting %q has no id", m.Title)
		}
		if seenMeeting[m.ID] {
			return fmt.Errorf("export: duplicate meeting id %s", m.ID)
		}
		seenMeeting[m.ID] = true

		topics := map[string]bool{}
		for _, t := range m.Topics {
			if t.ID == "" {
				return fmt.Errorf("export: meeting %s: topic %q has no id", m.ID, t.Name)
			}
			if topics[t.ID] {
				return fmt.Errorf("export: meeting %s: duplicate topic id %s", m.ID, t.ID)
			}
			topics[t.ID] = true
		}

		seenBlock := map[string]bool{}
		for _, b := range m.Blocks {
			if b == nil {
				return fmt.Errorf("export: meeting %s: nil block", m.ID)
			}
			if b.ID == "" {
				return fmt.Errorf("export: meeting %s: block %q has no id", m.ID, b.Text)
			}
			if seenBlock[b.ID] {
				return fmt.Errorf("export: meeting %s: duplicate block id %s", m.ID, b.ID)
			}
			seenBlock[b.ID] = true
			if b.SortKey == "" {
				return fmt.Errorf("export: block %s has no sort key", b.ID)
			}
			if !b.Kind.Valid() {
				return fmt.Errorf("export: block %s has unknown kind %q", b.ID, b.Kind)
			}
			if b.TopicID != "" && !topics[b.TopicID] {
				return fmt.Errorf("export: block %s references missing topic %s", b.ID, b.TopicID)
			}
		}
	}
	return nil
}
