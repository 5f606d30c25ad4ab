package printers

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/huddlenotes/huddle/pkg/meeting"
)

// MeetingList prints the collection as a table, one meeting per row, with
// per-kind block counts.
func (pp *PrettyPrint) MeetingList(meetings ...*meeting.Meeting) {
	if len(meetings) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Println("no meetings")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	if pp.ShowID {
		tbl.AddRow("ID", "WHEN", "TITLE", "TOPICS", "BLOCKS")
	} else {
		tbl.AddRow("WHEN", "TITLE", "TOPICS", "BLOCKS")
	}

	for _, m := range meetings {
		when := ""
		if !m.When.IsZero() {
			when = m.When.Local().Format("2006-01-02 15:04")
		}
		if pp.ShowID {
			tbl.AddRow(shortID(m.ID), when, m.Title, len(m.Topics), len(m.Blocks))
		} else {
			tbl.AddRow(when, m.Title, len(m.Topics), len(m.Blocks))
		}
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}
