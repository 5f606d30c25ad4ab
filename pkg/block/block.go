package block

import (
	"strings"

	"github.com/google/uuid"
)

// Block is a single discussion item on a meeting board. A block belongs to
// exactly one topic column; an empty TopicID means the ungrouped bucket. Its
// position inside the column is determined by SortKey, an opaque string
// compared lexicographically. Ties on equal keys break by ID, which only
// matters for determinism, never for correctness.
type Block struct {
	ID      string    `json:"id"`
	TopicID string    `json:"topicId,omitempty"`
	SortKey string    `json:"sortKey"`
	Kind    Kind      `json:"kind"`
	Text    string    `json:"text"`
	Owner   string    `json:"owner,omitempty"`
	Created Timestamp `json:"created,omitempty"`
	Updated Timestamp `json:"updated,omitempty"`
}

// New creates a block with a fresh id. The caller supplies the sort key,
// normally an engine-generated append key for the target topic.
func New(topicID string, kind Kind, text, sortKey string) *Block {
	now := Now()
	return &Block{
		ID:      uuid.NewString(),
		TopicID: topicID,
		SortKey: sortKey,
		Kind:    kind,
		Text:    text,
		Created: now,
		Updated: now,
	}
}

// Clone returns a deep copy of the block.
func (b *Block) Clone() *Block {
	if b == nil {
		return nil
	}
	cp := *b
	return &cp
}

// Less orders blocks by sort key, breaking ties by id.
func (b *Block) Less(other *Block) bool {
	if other == nil {
		return b != nil
	}
	if b.SortKey == other.SortKey {
		return b.ID < other.ID
	}
	return b.SortKey < other.SortKey
}

// Row returns the printable columns for this block.
func (b *Block) Row() (string, string, string) {
	owner := ""
	if strings.TrimSpace(b.Owner) != "" {
		owner = "@" + b.Owner
	}
	return b.Kind.Symbol(), b.Text, owner
}
