// Package board renders one meeting as a column-per-topic kanban board and
// drives block movement with keyboard gestures: space grabs the block under
// the cursor, arrows carry it, enter drops it, esc puts it back.
package board

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/huddlenotes/huddle/pkg/app"
	"github.com/huddlenotes/huddle/pkg/block"
	"github.com/huddlenotes/huddle/pkg/drag"
	"github.com/huddlenotes/huddle/pkg/store"
	"github.com/huddlenotes/huddle/pkg/tui/theme"
)

// Notifier streams document-change events raised by another process
// writing the same store. The board subscribes so external edits show up
// without reopening the screen.
type Notifier interface {
	Watch(ctx context.Context) (<-chan store.Event, error)
}

// externalChangeMsg reports that the durable document changed on disk.
type externalChangeMsg struct{}

// column is one rendered lane: the ungrouped bucket first, then each topic
// in board order.
type column struct {
	topicID string
	title   string
	blocks  []*block.Block
}

// Model is the Bubble Tea model for the board screen.
type Model struct {
	service   *app.Service
	meetingID string
	styles    theme.Theme

	width  int
	height int

	columns []column
	col     int
	row     int

	grabbing bool
	status   string

	events <-chan store.Event
}

// New constructs a board model for the given meeting.
func New(service *app.Service, meetingID string) *Model {
	m := &Model{
		service:   service,
		meetingID: meetingID,
		styles:    theme.Default(),
		status:    "Ready",
	}
	m.reload()
	return m
}

// Run launches the Bubble Tea program for the board, and flushes pending
// writes when the screen closes. A non-nil notifier keeps the board in
// sync with writes from other processes while the screen is open.
func Run(service *app.Service, meetingID string, n Notifier) error {
	m := New(service, meetingID)

	if n != nil {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		events, err := n.Watch(ctx)
		if err != nil {
			return err
		}
		m.events = events
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return service.Flush()
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.nextEvent()
}

// nextEvent waits for one store change event and turns it into a message.
// The command re-arms from Update after each delivery.
func (m *Model) nextEvent() tea.Cmd {
	if m.events == nil {
		return nil
	}
	events := m.events
	return func() tea.Msg {
		if _, ok := <-events; !ok {
			return nil
		}
		return externalChangeMsg{}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height

	case externalChangeMsg:
		// Ignore concurrent writes mid-drag so the carried block stays put.
		if !m.grabbing {
			if err := m.service.Reload(); err != nil {
				m.status = err.Error()
			} else {
				m.reload()
			}
		}
		return m, m.nextEvent()

	case tea.KeyMsg:
		switch v.String() {
		case "ctrl+c", "q":
			if m.grabbing {
				m.cancelGrab()
				return m, nil
			}
			return m, tea.Quit

		case "esc":
			if m.grabbing {
				m.cancelGrab()
			} else {
				return m, tea.Quit
			}

		case "up", "k":
			m.moveCursor(0, -1)

		case "down", "j":
			m.moveCursor(0, 1)

		case "left", "h":
			m.moveCursor(-1, 0)

		case "right", "l":
			m.moveCursor(1, 0)

		case " ", "space":
			m.startGrab()

		case "enter":
			m.drop()
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() (string, *tea.Cursor) {
	meeting, err := m.service.Meeting(m.meetingID)
	if err != nil {
		return fmt.Sprintf("board unavailable: %v", err), nil
	}

	lanes := make([]string, 0, len(m.columns))
	for ci, c := range m.columns {
		lanes = append(lanes, m.renderColumn(ci, c))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, lanes...)
	title := m.styles.Footer.Title.Render(meeting.Title)
	footer := m.footer()
	return lipgloss.JoinVertical(lipgloss.Left, title, body, footer), nil
}

func (m *Model) renderColumn(ci int, c column) string {
	var b strings.Builder
	b.WriteString(m.styles.Board.ColumnTitle.Render(c.title))
	b.WriteString("\n")

	if len(c.blocks) == 0 {
		b.WriteString(m.styles.Board.Empty.Render("empty"))
		b.WriteString("\n")
	}
	for ri, blk := range c.blocks {
		line := fmt.Sprintf("%s %s", blk.Kind.Symbol(), blk.Text)
		if blk.Owner != "" {
			line += m.styles.Board.Owner.Render("  (" + blk.Owner + ")")
		}
		style := m.styles.Board.Block
		switch {
		case m.grabbing && ci == m.col && ri == m.row:
			style = m.styles.Board.BlockGrabbed
			line = "≡ " + line
		case ci == m.col && ri == m.row:
			style = m.styles.Board.BlockCursor
			line = "> " + line
		default:
			line = "  " + line
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	// The row past the last block is the drop-on-column zone.
	if ci == m.col && m.row == len(c.blocks) {
		marker := "> end"
		if m.grabbing {
			marker = "≡ here"
		}
		b.WriteString(m.styles.Board.BlockDropZone.Render(marker))
		b.WriteString("\n")
	}

	style := m.styles.Board.Column
	if ci == m.col {
		style = m.styles.Board.ColumnHover
	}
	return style.Width(m.columnWidth()).Render(b.String())
}

func (m *Model) footer() string {
	help := "space grab · enter drop · esc back · q quit"
	if m.grabbing {
		help = "arrows carry · enter drop · esc put back"
	}
	return m.styles.Footer.Status.Render(m.status) + "  " + m.styles.Footer.Help.Render(help)
}

func (m *Model) columnWidth() int {
	if m.width <= 0 || len(m.columns) == 0 {
		return 28
	}
	w := m.width/len(m.columns) - 2
	if w < 16 {
		w = 16
	}
	return w
}

// reload rebuilds the column snapshot from the service.
func (m *Model) reload() {
	meeting, err := m.service.Meeting(m.meetingID)
	if err != nil {
		m.columns = nil
		m.status = err.Error()
		return
	}

	cols := []column{{topicID: "", title: "Notes", blocks: meeting.TopicBlocks("")}}
	for _, t := range meeting.Topics {
		cols = append(cols, column{topicID: t.ID, title: t.Name, blocks: meeting.TopicBlocks(t.ID)})
	}
	m.columns = cols
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if len(m.columns) == 0 {
		m.col, m.row = 0, 0
		return
	}
	if m.col < 0 {
		m.col = 0
	}
	if m.col >= len(m.columns) {
		m.col = len(m.columns) - 1
	}
	max := len(m.columns[m.col].blocks)
	if m.row < 0 {
		m.row = 0
	}
	if m.row > max {
		m.row = max
	}
}

func (m *Model) moveCursor(dc, dr int) {
	m.col += dc
	m.row += dr
	m.clampCursor()
	if m.grabbing {
		m.service.DragOver(m.hoverTarget())
	}
}

// hoverTarget maps the cursor position to a drop target: a block when the
// cursor sits on one, otherwise the column itself.
func (m *Model) hoverTarget() drag.Target {
	if len(m.columns) == 0 {
		return drag.Target{Kind: drag.TargetNone}
	}
	c := m.columns[m.col]
	if m.row < len(c.blocks) {
		return drag.Target{
			Kind:    drag.TargetItem,
			BlockID: c.blocks[m.row].ID,
			TopicID: c.topicID,
			Index:   m.row,
		}
	}
	return drag.Target{Kind: drag.TargetContainer, TopicID: c.topicID}
}

func (m *Model) startGrab() {
	if m.grabbing || len(m.columns) == 0 {
		return
	}
	c := m.columns[m.col]
	if m.row >= len(c.blocks) {
		m.status = "nothing to grab here"
		return
	}
	if err := m.service.DragStart(m.meetingID, c.blocks[m.row].ID); err != nil {
		m.status = err.Error()
		return
	}
	m.grabbing = true
	m.status = "carrying " + c.blocks[m.row].Text
}

func (m *Model) cancelGrab() {
	m.service.DragCancel()
	m.grabbing = false
	m.status = "put back"
	m.reload()
}

func (m *Model) drop() {
	if !m.grabbing {
		return
	}
	m.grabbing = false

	changed, err := m.service.DragEnd(m.hoverTarget())
	if err != nil {
		m.status = err.Error()
		m.reload()
		return
	}
	if changed {
		m.status = "moved"
	} else {
		m.status = "no change"
	}
	m.reload()
}
