package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the Bubble Tea board.
type Theme struct {
	Board  BoardTheme
	Footer FooterTheme
}

// BoardTheme styles topic columns and the blocks inside them.
type BoardTheme struct {
	Column        lipgloss.Style
	ColumnHover   lipgloss.Style
	ColumnTitle   lipgloss.Style
	Block         lipgloss.Style
	BlockCursor   lipgloss.Style
	BlockGrabbed  lipgloss.Style
	BlockDropZone lipgloss.Style
	Owner         lipgloss.Style
	Empty         lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Title  lipgloss.Style
}

// Default returns the built-in theme used across the board UI.
func Default() Theme {
	column := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("241")).
		Padding(0, 1)

	return Theme{
		Board: BoardTheme{
			Column: column,
			ColumnHover: column.
				BorderForeground(lipgloss.Color("212")),
			ColumnTitle: lipgloss.NewStyle().Bold(true).Underline(true),
			Block:       lipgloss.NewStyle(),
			BlockCursor: lipgloss.NewStyle().
				Foreground(lipgloss.Color("212")).
				Bold(true),
			BlockGrabbed: lipgloss.NewStyle().
				Foreground(lipgloss.Color("212")).
				Italic(true).
				Reverse(true),
			BlockDropZone: lipgloss.NewStyle().
				Foreground(lipgloss.Color("212")),
			Owner: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Empty: lipgloss.NewStyle().
				Foreground(lipgloss.Color("241")).
				Italic(true),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Title:  lipgloss.NewStyle().Bold(true),
		},
	}
}
