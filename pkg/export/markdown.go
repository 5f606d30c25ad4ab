package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/huddlenotes/huddle/pkg/block"
	"github.com/huddlenotes/huddle/pkg/meeting"
)

// WriteMarkdown renders one meeting as shareable minutes. Topics become
// sections in board order, blocks are listed by sort key, and actions with
// an owner get the owner appended.
func WriteMarkdown(w io.Writer, m *meeting.Meeting) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n", m.Title)
	if !m.When.IsZero() {
		fmt.Fprintf(&b, "\n%s\n", m.When.Format("Monday, January 2 2006"))
	}
	if len(m.Attendees) > 0 {
		fmt.Fprintf(&b, "\nAttendees: %s\n", strings.Join(m.Attendees, ", "))
	}

	if ungrouped := m.TopicBlocks(""); len(ungrouped) > 0 {
		b.WriteString("\n## Notes\n\n")
		writeBlocks(&b, ungrouped)
	}
	for _, t := range m.Topics {
		blocks := m.TopicBlocks(t.ID)
		if len(blocks) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n## %s\n\n", t.Name)
		writeBlocks(&b, blocks)
	}

	if actions := collectActions(m); len(actions) > 0 {
		b.WriteString("\n## Action Items\n\n")
		for _, a := range actions {
			if a.Owner != "" {
				fmt.Fprintf(&b, "- [ ] %s (%s)\n", a.Text, a.Owner)
			} else {
				fmt.Fprintf(&b, "- [ ] %s\n", a.Text)
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

func writeBlocks(b *strings.Builder, blocks []*block.Block) {
	for _, blk := range blocks {
		line := blk.Text
		switch blk.Kind {
		case block.Decision:
			line = "**Decision:** " + line
		case block.Action:
			line = "**Action:** " + line
			if blk.Owner != "" {
				line += " (" + blk.Owner + ")"
			}
		case block.Question:
			line = "**Question:** " + line
		}
		fmt.Fprintf(b, "- %s\n", line)
	}
}

// collectActions gathers every action block in board order so the minutes
// end with a single consolidated list.
func collectActions(m *meeting.Meeting) []*block.Block {
	var actions []*block.Block
	for _, blk := range m.TopicBlocks("") {
		if blk.Kind == block.Action {
			actions = append(actions, blk)
		}
	}
	for _, t := range m.Topics {
		for _, blk := range m.TopicBlocks(t.ID) {
			if blk.Kind == block.Action {
				actions = append(actions, blk)
			}
		}
	}
	return actions
}
