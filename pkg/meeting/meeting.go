package meeting

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/huddlenotes/huddle/pkg/block"
)

// Topic is a named column on a meeting board. Blocks reference topics by id;
// blocks with no topic live in the ungrouped bucket, which is not a Topic.
type Topic struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Meeting is one meeting's notes: its topics and the blocks distributed
// across them. The set of meetings is persisted as a single document; see
// Document.
type Meeting struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	When      block.Timestamp `json:"when,omitempty"`
	Attendees []string        `json:"attendees,omitempty"`
	Topics    []Topic         `json:"topics,omitempty"`
	Blocks    []*block.Block  `json:"blocks,omitempty"`
}

// New creates a meeting with a fresh id.
func New(title string) *Meeting {
	return &Meeting{
		ID:    uuid.NewString(),
		Title: title,
		When:  block.Now(),
	}
}

// Clone returns a deep copy of the meeting.
func (m *Meeting) Clone() *Meeting {
	if m == nil {
		return nil
	}
	cp := *m
	if len(m.Attendees) > 0 {
		cp.Attendees = append([]string(nil), m.Attendees...)
	}
	if len(m.Topics) > 0 {
		cp.Topics = append([]Topic(nil), m.Topics...)
	}
	if len(m.Blocks) > 0 {
		cp.Blocks = make([]*block.Block, len(m.Blocks))
		for i, b := range m.Blocks {
			cp.Blocks[i] = b.Clone()
		}
	}
	return &cp
}

// Topic looks up a topic by id.
func (m *Meeting) Topic(id string) (Topic, bool) {
	for _, t := range m.Topics {
		if t.ID == id {
			return t, true
		}
	}
	return Topic{}, false
}

// TopicByName looks up a topic by case-insensitive name.
func (m *Meeting) TopicByName(name string) (Topic, bool) {
	for _, t := range m.Topics {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return Topic{}, false
}

// AddTopic appends a new named column and returns it.
func (m *Meeting) AddTopic(name string) Topic {
	t := Topic{ID: uuid.NewString(), Name: name}
	m.Topics = append(m.Topics, t)
	return t
}

// Block looks up a block by id.
func (m *Meeting) Block(id string) (*block.Block, bool) {
	for _, b := range m.Blocks {
		if b != nil && b.ID == id {
			return b, true
		}
	}
	return nil, false
}

// TopicBlocks returns the blocks of one topic (empty id for the ungrouped
// bucket) sorted by sort key ascending. The returned slice is freshly
// allocated but shares the block pointers.
func (m *Meeting) TopicBlocks(topicID string) []*block.Block {
	out := make([]*block.Block, 0, len(m.Blocks))
	for _, b := range m.Blocks {
		if b != nil && b.TopicID == topicID {
			out = append(out, b)
		}
	}
	SortBlocks(out)
	return out
}

// Grouped returns every topic's blocks keyed by topic id, each list sorted
// by sort key. The ungrouped bucket appears under the empty key.
func (m *Meeting) Grouped() map[string][]*block.Block {
	out := make(map[string][]*block.Block)
	for _, b := range m.Blocks {
		if b == nil {
			continue
		}
		out[b.TopicID] = append(out[b.TopicID], b)
	}
	for id := range out {
		SortBlocks(out[id])
	}
	return out
}

// RemoveBlock deletes the block with the given id. Sibling keys are left
// untouched; deletion never requires renumbering.
func (m *Meeting) RemoveBlock(id string) bool {
	for i, b := range m.Blocks {
		if b != nil && b.ID == id {
			m.Blocks = append(m.Blocks[:i], m.Blocks[i+1:]...)
			return true
		}
	}
	return false
}

// SortBlocks orders blocks by sort key ascending, ties broken by id.
func SortBlocks(blocks []*block.Block) {
	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].Less(blocks[j])
	})
}
