package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/huddlenotes/huddle/pkg/block"
	"github.com/huddlenotes/huddle/pkg/meeting"
)

type PrettyPrint struct {
	ShowID bool
}

var (
	spacing = strings.Repeat(" ", len("171dff69  "))
)

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Println(title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Print(title)
	_, _ = c.Printf(" - %d", count)

	switch count {
	case 1:
		_, _ = c.Println(" block")
	default:
		_, _ = c.Println(" blocks")
	}
}

// Blocks prints one topic's blocks in board order.
func (pp *PrettyPrint) Blocks(blocks ...*block.Block) {
	if len(blocks) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Print(spacing)
		}
		_, _ = f.Print(" none\n\n")
		return
	}

	t := color.New()
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	for _, b := range blocks {
		if pp.ShowID {
			id := shortID(b.ID)
			_, _ = y.Print(id)
			_, _ = y.Print(strings.Repeat(" ", len(spacing)-len(id)))
		}
		_, _ = kindColor(b.Kind).Printf("%s ", b.Kind.Symbol())
		_, _ = t.Print(b.Text)
		if b.Owner != "" {
			f := color.New(color.Faint)
			_, _ = f.Printf("  (%s)", b.Owner)
		}
		_, _ = t.Println("")
	}
	_, _ = t.Println("")
}

// Meeting prints a whole meeting, ungrouped bucket first, then each topic
// column in board order.
func (pp *PrettyPrint) Meeting(m *meeting.Meeting) {
	pp.Title(m.Title)
	if len(m.Attendees) > 0 {
		f := color.New(color.Faint)
		if pp.ShowID {
			_, _ = f.Print(spacing)
		}
		_, _ = f.Printf("with %s\n", strings.Join(m.Attendees, ", "))
	}
	pp.NewLine()

	if ungrouped := m.TopicBlocks(""); len(ungrouped) > 0 {
		pp.TitleWithCount("Ungrouped", len(ungrouped))
		pp.Blocks(ungrouped...)
	}
	for _, t := range m.Topics {
		blocks := m.TopicBlocks(t.ID)
		pp.TitleWithCount(t.Name, len(blocks))
		pp.Blocks(blocks...)
	}
}

// Legend prints the block kinds with their symbols and meanings.
func (pp *PrettyPrint) Legend() {
	pp.Title("Key")
	t := color.New()
	f := color.New(color.Faint, color.Italic)
	for _, k := range block.Kinds() {
		_, _ = kindColor(k).Printf(" %s ", k.Symbol())
		_, _ = t.Printf(" %-10s", k)
		_, _ = f.Printf("%s\n", k.Meaning())
	}
	_, _ = t.Println("")
}

func kindColor(k block.Kind) *color.Color {
	switch k {
	case block.Decision:
		return color.New(color.FgHiGreen)
	case block.Action:
		return color.New(color.FgHiYellow)
	case block.Question:
		return color.New(color.FgHiCyan)
	default:
		return color.New()
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
