package block

// Kind classifies a discussion block on the board.
type Kind string

const (
	Note     Kind = "note"
	Decision Kind = "decision"
	Action   Kind = "action"
	Question Kind = "question"
)

// Kinds lists every valid block kind in display order.
func Kinds() []Kind {
	return []Kind{Note, Decision, Action, Question}
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case Note, Decision, Action, Question:
		return true
	}
	return false
}

// Symbol returns the glyph used when rendering a block of this kind.
func (k Kind) Symbol() string {
	switch k {
	case Decision:
		return "◆"
	case Action:
		return "●"
	case Question:
		return "?"
	default:
		return "–"
	}
}

// Meaning returns the human description shown by the key legend.
func (k Kind) Meaning() string {
	switch k {
	case Decision:
		return "decision taken"
	case Action:
		return "action item"
	case Question:
		return "open question"
	default:
		return "discussion note"
	}
}

func (k Kind) String() string {
	return string(k)
}
