package app

import (
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/huddlenotes/huddle/pkg/block"
	"github.com/huddlenotes/huddle/pkg/drag"
	"github.com/huddlenotes/huddle/pkg/meeting"
	"github.com/huddlenotes/huddle/pkg/queue"
)

type memoryStore struct {
	mu     sync.Mutex
	data   map[string][]byte
	writes int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: map[string][]byte{}}
}

func (s *memoryStore) Put(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *memoryStore) Get(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *memoryStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *memoryStore) writeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func newService(t *testing.T) (*Service, *memoryStore) {
	t.Helper()
	store := newMemoryStore()
	q := queue.New(store, queue.WithDelay(time.Hour))
	t.Cleanup(q.Destroy)
	return New(q), store
}

// standup seeds a meeting with one topic and two grouped blocks plus one
// ungrouped block, and returns it through the service.
func standup(t *testing.T, svc *Service) (*meeting.Meeting, meeting.Topic) {
	t.Helper()
	m, err := svc.CreateMeeting("Standup", []string{"ada", "lin"})
	if err != nil {
		t.Fatalf("CreateMeeting() = %v", err)
	}
	topic, err := svc.AddTopic(m.ID, "Planning")
	if err != nil {
		t.Fatalf("AddTopic() = %v", err)
	}
	for _, text := range []string{"first", "second"} {
		if _, err := svc.AddBlock(m.ID, topic.ID, block.Note, text, ""); err != nil {
			t.Fatalf("AddBlock(%q) = %v", text, err)
		}
	}
	if _, err := svc.AddBlock(m.ID, "", block.Question, "parking lot", ""); err != nil {
		t.Fatalf("AddBlock(ungrouped) = %v", err)
	}
	got, err := svc.Meeting(m.ID)
	if err != nil {
		t.Fatalf("Meeting() = %v", err)
	}
	return got, topic
}

func TestCreateMeetingReadYourWrites(t *testing.T) {
	svc, store := newService(t)

	m, err := svc.CreateMeeting("Retro", nil)
	if err != nil {
		t.Fatalf("CreateMeeting() = %v", err)
	}
	got, err := svc.Meeting(m.ID)
	if err != nil {
		t.Fatalf("Meeting() = %v", err)
	}
	if got.Title != "Retro" {
		t.Errorf("Title = %q, want %q", got.Title, "Retro")
	}
	if store.writeCount() != 0 {
		t.Errorf("writes before flush = %d, want 0", store.writeCount())
	}
}

func TestCreateMeetingRejectsBlankTitle(t *testing.T) {
	svc, _ := newService(t)
	if _, err := svc.CreateMeeting("   ", nil); err == nil {
		t.Fatal("CreateMeeting(blank) = nil, want error")
	}
}

func TestAddBlockAppendsInOrder(t *testing.T) {
	svc, _ := newService(t)
	m, topic := standup(t, svc)

	blocks := m.TopicBlocks(topic.ID)
	if len(blocks) != 2 {
		t.Fatalf("len(blocks) = %d, want 2", len(blocks))
	}
	if blocks[0].Text != "first" || blocks[1].Text != "second" {
		t.Errorf("order = %q, %q", blocks[0].Text, blocks[1].Text)
	}
	if blocks[0].SortKey >= blocks[1].SortKey {
		t.Errorf("keys not increasing: %q >= %q", blocks[0].SortKey, blocks[1].SortKey)
	}
}

func TestAddBlockUnknownTopic(t *testing.T) {
	svc, _ := newService(t)
	m, _ := standup(t, svc)
	if _, err := svc.AddBlock(m.ID, "missing", block.Note, "x", ""); !errors.Is(err, ErrTopicNotFound) {
		t.Fatalf("AddBlock(unknown topic) = %v, want ErrTopicNotFound", err)
	}
}

func TestEditBlockKeepsSortKey(t *testing.T) {
	svc, _ := newService(t)
	m, topic := standup(t, svc)
	b := m.TopicBlocks(topic.ID)[0]

	edited, err := svc.EditBlock(m.ID, b.ID, "amended")
	if err != nil {
		t.Fatalf("EditBlock() = %v", err)
	}
	if edited.Text != "amended" {
		t.Errorf("Text = %q, want %q", edited.Text, "amended")
	}
	if edited.SortKey != b.SortKey {
		t.Errorf("SortKey changed on edit: %q -> %q", b.SortKey, edited.SortKey)
	}
}

func TestRemoveTopicOrphansBlocksToUngrouped(t *testing.T) {
	svc, _ := newService(t)
	m, topic := standup(t, svc)
	keys := map[string]string{}
	for _, b := range m.TopicBlocks(topic.ID) {
		keys[b.ID] = b.SortKey
	}

	if err := svc.RemoveTopic(m.ID, topic.ID); err != nil {
		t.Fatalf("RemoveTopic() = %v", err)
	}
	got, err := svc.Meeting(m.ID)
	if err != nil {
		t.Fatalf("Meeting() = %v", err)
	}
	if len(got.Topics) != 0 {
		t.Fatalf("len(Topics) = %d, want 0", len(got.Topics))
	}
	for id, key := range keys {
		b, ok := got.Block(id)
		if !ok {
			t.Fatalf("block %s dropped with its topic", id)
		}
		if b.TopicID != "" {
			t.Errorf("block %s TopicID = %q, want ungrouped", id, b.TopicID)
		}
		if b.SortKey != key {
			t.Errorf("block %s key rewritten: %q -> %q", id, key, b.SortKey)
		}
	}
}

func TestRenameTopic(t *testing.T) {
	svc, _ := newService(t)
	m, topic := standup(t, svc)

	if err := svc.RenameTopic(m.ID, topic.ID, "Roadmap"); err != nil {
		t.Fatalf("RenameTopic() = %v", err)
	}
	got, err := svc.Meeting(m.ID)
	if err != nil {
		t.Fatalf("Meeting() = %v", err)
	}
	if renamed, ok := got.Topic(topic.ID); !ok || renamed.Name != "Roadmap" {
		t.Errorf("topic name = %q, want Roadmap", renamed.Name)
	}
	if err := svc.RenameTopic(m.ID, "missing", "X"); !errors.Is(err, ErrTopicNotFound) {
		t.Errorf("RenameTopic(missing) = %v, want ErrTopicNotFound", err)
	}
}

func TestMoveBlockAcrossTopics(t *testing.T) {
	svc, _ := newService(t)
	m, topic := standup(t, svc)
	var parked *block.Block
	for _, b := range m.TopicBlocks("") {
		parked = b
	}

	if err := svc.MoveBlock(m.ID, parked.ID, topic.ID, 0); err != nil {
		t.Fatalf("MoveBlock() = %v", err)
	}
	got, err := svc.Meeting(m.ID)
	if err != nil {
		t.Fatalf("Meeting() = %v", err)
	}
	blocks := got.TopicBlocks(topic.ID)
	if len(blocks) != 3 {
		t.Fatalf("len(blocks) = %d, want 3", len(blocks))
	}
	if blocks[0].ID != parked.ID {
		t.Errorf("moved block at index %d, want 0", indexOfBlock(blocks, parked.ID))
	}
	if len(got.TopicBlocks("")) != 0 {
		t.Errorf("ungrouped still holds %d blocks", len(got.TopicBlocks("")))
	}
}

func TestMoveBlockWithinTopic(t *testing.T) {
	svc, _ := newService(t)
	m, topic := standup(t, svc)
	blocks := m.TopicBlocks(topic.ID)
	second := blocks[1]

	if err := svc.MoveBlock(m.ID, second.ID, topic.ID, 0); err != nil {
		t.Fatalf("MoveBlock() = %v", err)
	}
	got, err := svc.Meeting(m.ID)
	if err != nil {
		t.Fatalf("Meeting() = %v", err)
	}
	reordered := got.TopicBlocks(topic.ID)
	if reordered[0].ID != second.ID {
		t.Errorf("blocks[0] = %q, want %q", reordered[0].Text, second.Text)
	}
}

func TestDragEndMovesBlock(t *testing.T) {
	svc, _ := newService(t)
	m, topic := standup(t, svc)
	blocks := m.TopicBlocks(topic.ID)
	first, second := blocks[0], blocks[1]

	if err := svc.DragStart(m.ID, first.ID); err != nil {
		t.Fatalf("DragStart() = %v", err)
	}
	svc.DragOver(drag.Target{Kind: drag.TargetItem, BlockID: second.ID, TopicID: topic.ID, Index: 1})
	changed, err := svc.DragEnd(drag.Target{Kind: drag.TargetItem, BlockID: second.ID, TopicID: topic.ID, Index: 1})
	if err != nil {
		t.Fatalf("DragEnd() = %v", err)
	}
	if !changed {
		t.Fatal("DragEnd() changed = false, want true")
	}
	got, err := svc.Meeting(m.ID)
	if err != nil {
		t.Fatalf("Meeting() = %v", err)
	}
	reordered := got.TopicBlocks(topic.ID)
	if reordered[0].ID != second.ID || reordered[1].ID != first.ID {
		t.Errorf("order after drag = %q, %q", reordered[0].Text, reordered[1].Text)
	}
}

func TestDragEndOnSelfIsNoOp(t *testing.T) {
	svc, store := newService(t)
	m, topic := standup(t, svc)
	first := m.TopicBlocks(topic.ID)[0]

	if err := svc.DragStart(m.ID, first.ID); err != nil {
		t.Fatalf("DragStart() = %v", err)
	}
	changed, err := svc.DragEnd(drag.Target{Kind: drag.TargetItem, BlockID: first.ID, TopicID: topic.ID, Index: 0})
	if err != nil {
		t.Fatalf("DragEnd() = %v", err)
	}
	if changed {
		t.Error("DragEnd(self) changed = true, want false")
	}
	if err := svc.Flush(); err != nil {
		t.Fatalf("Flush() = %v", err)
	}
	writes := store.writeCount()
	if err := svc.Flush(); err != nil {
		t.Fatalf("Flush() = %v", err)
	}
	if store.writeCount() != writes+1 {
		t.Errorf("writes = %d, want %d", store.writeCount(), writes+1)
	}
}

func TestDragCancelLeavesBoardUntouched(t *testing.T) {
	svc, _ := newService(t)
	m, topic := standup(t, svc)
	before := m.TopicBlocks(topic.ID)

	if err := svc.DragStart(m.ID, before[0].ID); err != nil {
		t.Fatalf("DragStart() = %v", err)
	}
	svc.DragCancel()
	changed, err := svc.DragEnd(drag.Target{Kind: drag.TargetItem, BlockID: before[1].ID, TopicID: topic.ID, Index: 1})
	if err != nil {
		t.Fatalf("DragEnd() = %v", err)
	}
	if changed {
		t.Error("DragEnd after cancel changed = true, want false")
	}
}

func TestDragEndAppliesSiblingRewrites(t *testing.T) {
	svc, _ := newService(t)
	m, err := svc.CreateMeeting("Crowded", nil)
	if err != nil {
		t.Fatalf("CreateMeeting() = %v", err)
	}
	topic, err := svc.AddTopic(m.ID, "Dense")
	if err != nil {
		t.Fatalf("AddTopic() = %v", err)
	}

	// Adjacent keys with no room between them force the fallback path.
	full, err := svc.Meeting(m.ID)
	if err != nil {
		t.Fatalf("Meeting() = %v", err)
	}
	b1 := block.New(topic.ID, block.Note, "one", "x")
	b2 := block.New(topic.ID, block.Note, "two", "x0")
	b3 := block.New(topic.ID, block.Note, "three", "z")
	full.Blocks = append(full.Blocks, b1, b2, b3)
	if err := svc.Import([]*meeting.Meeting{full}); err != nil {
		t.Fatalf("Import() = %v", err)
	}

	if err := svc.DragStart(m.ID, b3.ID); err != nil {
		t.Fatalf("DragStart() = %v", err)
	}
	changed, err := svc.DragEnd(drag.Target{Kind: drag.TargetItem, BlockID: b2.ID, TopicID: topic.ID, Index: 1})
	if err != nil {
		t.Fatalf("DragEnd() = %v", err)
	}
	if !changed {
		t.Fatal("DragEnd() changed = false, want true")
	}

	got, err := svc.Meeting(m.ID)
	if err != nil {
		t.Fatalf("Meeting() = %v", err)
	}
	blocks := got.TopicBlocks(topic.ID)
	order := make([]string, len(blocks))
	for i, b := range blocks {
		order[i] = b.Text
	}
	want := []string{"one", "three", "two"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
	if !sort.SliceIsSorted(blocks, func(i, j int) bool { return blocks[i].SortKey < blocks[j].SortKey }) {
		t.Errorf("keys not sorted after rewrites")
	}
}

func TestExportFlushesPendingEdits(t *testing.T) {
	svc, store := newService(t)
	m, topic := standup(t, svc)
	b := m.TopicBlocks(topic.ID)[0]
	if _, err := svc.EditBlock(m.ID, b.ID, "late edit"); err != nil {
		t.Fatalf("EditBlock() = %v", err)
	}
	if store.writeCount() != 0 {
		t.Fatalf("writes before Export = %d, want 0", store.writeCount())
	}

	meetings, err := svc.Export()
	if err != nil {
		t.Fatalf("Export() = %v", err)
	}
	if store.writeCount() == 0 {
		t.Error("Export() left edits unflushed")
	}
	got, ok := meetings[0].Block(b.ID)
	if !ok {
		t.Fatalf("block %s missing from export", b.ID)
	}
	if got.Text != "late edit" {
		t.Errorf("exported Text = %q, want %q", got.Text, "late edit")
	}
}

func TestImportReplacesCollection(t *testing.T) {
	svc, store := newService(t)
	standup(t, svc)

	replacement := meeting.New("Offsite")
	if err := svc.Import([]*meeting.Meeting{replacement}); err != nil {
		t.Fatalf("Import() = %v", err)
	}
	meetings, err := svc.Meetings()
	if err != nil {
		t.Fatalf("Meetings() = %v", err)
	}
	if len(meetings) != 1 || meetings[0].Title != "Offsite" {
		t.Fatalf("collection after import = %d meetings", len(meetings))
	}
	if store.writeCount() == 0 {
		t.Error("Import() did not persist immediately")
	}
}

func TestMeetingByTitle(t *testing.T) {
	svc, _ := newService(t)
	m, _ := standup(t, svc)

	got, err := svc.MeetingByTitle("standup")
	if err != nil {
		t.Fatalf("MeetingByTitle() = %v", err)
	}
	if got.ID != m.ID {
		t.Errorf("ID = %s, want %s", got.ID, m.ID)
	}
	if _, err := svc.MeetingByTitle("nope"); !errors.Is(err, ErrMeetingNotFound) {
		t.Errorf("MeetingByTitle(missing) = %v, want ErrMeetingNotFound", err)
	}
}
