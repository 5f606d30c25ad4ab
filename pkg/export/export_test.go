package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/huddlenotes/huddle/pkg/block"
	"github.com/huddlenotes/huddle/pkg/meeting"
)

func sprint(t *testing.T) *meeting.Meeting {
	t.Helper()
	m := meeting.New("Sprint Review")
	m.Attendees = []string{"ada", "lin"}
	demo := m.AddTopic("Demo")
	risks := m.AddTopic("Risks")
	m.Blocks = append(m.Blocks,
		block.New("", block.Note, "quick intro", "5"),
		block.New(demo.ID, block.Note, "shipped search", "a0"),
		block.New(demo.ID, block.Decision, "ship to all users Friday", "a2"),
		block.New(risks.ID, block.Question, "capacity for rollout week?", "b"),
	)
	action := block.New(risks.ID, block.Action, "load test the new index", "c")
	action.Owner = "lin"
	m.Blocks = append(m.Blocks, action)
	return m
}

func TestJSONRoundTrip(t *testing.T) {
	m := sprint(t)

	var buf bytes.Buffer
	if err := WriteJSON(&buf, []*meeting.Meeting{m}); err != nil {
		t.Fatalf("WriteJSON() = %v", err)
	}
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len(got) = %d, want 1", len(got))
	}
	if got[0].Title != m.Title {
		t.Errorf("Title = %q, want %q", got[0].Title, m.Title)
	}
	if len(got[0].Blocks) != len(m.Blocks) {
		t.Errorf("len(Blocks) = %d, want %d", len(got[0].Blocks), len(m.Blocks))
	}
}

func TestReadJSONRejectsDanglingTopic(t *testing.T) {
	m := meeting.New("Broken")
	m.Blocks = append(m.Blocks, block.New("missing-topic", block.Note, "orphan", "5"))

	var buf bytes.Buffer
	if err := WriteJSON(&buf, []*meeting.Meeting{m}); err != nil {
		t.Fatalf("WriteJSON() = %v", err)
	}
	if _, err := ReadJSON(&buf); err == nil {
		t.Fatal("ReadJSON() = nil, want validation error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*meeting.Meeting)
		wantErr bool
	}{{
		name:   "valid collection",
		mutate: func(*meeting.Meeting) {},
	}, {
		name: "duplicate block id",
		mutate: func(m *meeting.Meeting) {
			clone := m.Blocks[0].Clone()
			m.Blocks = append(m.Blocks, clone)
		},
		wantErr: true,
	}, {
		name: "empty sort key",
		mutate: func(m *meeting.Meeting) {
			m.Blocks[0].SortKey = ""
		},
		wantErr: true,
	}, {
		name: "unknown kind",
		mutate: func(m *meeting.Meeting) {
			m.Blocks[0].Kind = block.Kind("sticky")
		},
		wantErr: true,
	}, {
		name: "missing meeting id",
		mutate: func(m *meeting.Meeting) {
			m.ID = ""
		},
		wantErr: true,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := sprint(t)
			tt.mutate(m)
			err := Validate([]*meeting.Meeting{m})
			if tt.wantErr && err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("Validate() = %v", err)
			}
		})
	}
}

func TestWriteMarkdown(t *testing.T) {
	m := sprint(t)
	var buf bytes.Buffer
	if err := WriteMarkdown(&buf, m); err != nil {
		t.Fatalf("WriteMarkdown() = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# Sprint Review",
		"Attendees: ada, lin",
		"## Notes",
		"- quick intro",
		"## Demo",
		"**Decision:** ship to all users Friday",
		"## Risks",
		"**Question:** capacity for rollout week?",
		"## Action Items",
		"- [ ] load test the new index (lin)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q\n%s", want, out)
		}
	}

	// Topic sections follow board order.
	if strings.Index(out, "## Demo") > strings.Index(out, "## Risks") {
		t.Error("topic sections out of board order")
	}
}

func TestWriteMarkdownSkipsEmptyTopics(t *testing.T) {
	m := meeting.New("Quiet")
	m.AddTopic("Nothing Here")
	var buf bytes.Buffer
	if err := WriteMarkdown(&buf, m); err != nil {
		t.Fatalf("WriteMarkdown() = %v", err)
	}
	if strings.Contains(buf.String(), "Nothing Here") {
		t.Errorf("empty topic rendered:\n%s", buf.String())
	}
}
