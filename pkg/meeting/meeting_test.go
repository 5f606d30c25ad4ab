package meeting

import (
	"testing"

	"github.com/huddlenotes/huddle/pkg/block"
)

func boardMeeting() *Meeting {
	m := New("Design review")
	api := m.AddTopic("API")
	m.Blocks = append(m.Blocks,
		&block.Block{ID: "n2", TopicID: api.ID, SortKey: "m", Kind: block.Note, Text: "later"},
		&block.Block{ID: "n1", TopicID: api.ID, SortKey: "c", Kind: block.Decision, Text: "earlier"},
		&block.Block{ID: "u1", TopicID: "", SortKey: "a", Kind: block.Question, Text: "ungrouped"},
	)
	return m
}

func TestTopicBlocksSortedByKey(t *testing.T) {
	m := boardMeeting()
	api := m.Topics[0]
	got := m.TopicBlocks(api.ID)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != "n1" || got[1].ID != "n2" {
		t.Fatalf("order = [%s %s], want [n1 n2]", got[0].ID, got[1].ID)
	}
	if un := m.TopicBlocks(""); len(un) != 1 || un[0].ID != "u1" {
		t.Fatal("ungrouped bucket lookup broken")
	}
}

func TestEqualKeysBreakTiesByID(t *testing.T) {
	m := New("Tie")
	m.Blocks = append(m.Blocks,
		&block.Block{ID: "b", SortKey: "m"},
		&block.Block{ID: "a", SortKey: "m"},
	)
	got := m.TopicBlocks("")
	if got[0].ID != "a" || got[1].ID != "b" {
		t.Fatalf("tie-break order = [%s %s], want [a b]", got[0].ID, got[1].ID)
	}
}

func TestDocumentRoundTripPreservesOrder(t *testing.T) {
	m := boardMeeting()
	data, err := MarshalDocument([]*Meeting{m})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	back, err := UnmarshalDocument(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(back) != 1 {
		t.Fatalf("meetings = %d, want 1", len(back))
	}
	api := back[0].Topics[0]
	got := back[0].TopicBlocks(api.ID)
	if len(got) != 2 || got[0].ID != "n1" || got[1].ID != "n2" {
		t.Fatal("per-topic order changed across round-trip")
	}
}

func TestUnmarshalLegacyArray(t *testing.T) {
	data := []byte(`[{"id":"m1","title":"Old shape"}]`)
	back, err := UnmarshalDocument(data)
	if err != nil {
		t.Fatalf("unmarshal legacy: %v", err)
	}
	if len(back) != 1 || back[0].Title != "Old shape" {
		t.Fatalf("legacy upgrade broken: %+v", back)
	}
}

func TestCloneIsDeep(t *testing.T) {
	m := boardMeeting()
	cp := m.Clone()
	cp.Blocks[0].Text = "tampered"
	cp.Topics[0].Name = "tampered"
	if m.Blocks[0].Text == "tampered" || m.Topics[0].Name == "tampered" {
		t.Fatal("clone shares state with original")
	}
}

func TestRemoveBlockLeavesSiblingsUntouched(t *testing.T) {
	m := boardMeeting()
	api := m.Topics[0]
	if !m.RemoveBlock("n1") {
		t.Fatal("remove failed")
	}
	rest := m.TopicBlocks(api.ID)
	if len(rest) != 1 || rest[0].SortKey != "m" {
		t.Fatal("sibling keys must not change on deletion")
	}
	if m.RemoveBlock("n1") {
		t.Fatal("double remove reported success")
	}
}
