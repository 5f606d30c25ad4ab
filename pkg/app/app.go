// Package app provides high-level operations for meetings, topics, and
// blocks. It wraps the update queue, the sort-key engine, and the drag
// reconciler so CLIs and UIs can share logic.
package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/huddlenotes/huddle/pkg/block"
	"github.com/huddlenotes/huddle/pkg/drag"
	"github.com/huddlenotes/huddle/pkg/meeting"
	"github.com/huddlenotes/huddle/pkg/queue"
	"github.com/huddlenotes/huddle/pkg/sortkey"
)

var (
	ErrMeetingNotFound = errors.New("app: meeting not found")
	ErrTopicNotFound   = errors.New("app: topic not found")
	ErrBlockNotFound   = errors.New("app: block not found")
)

// Service provides the operation surface the command and UI layers consume.
// All reads come from the queue's in-memory collection, so a caller always
// observes its own writes regardless of persistence timing.
type Service struct {
	Queue *queue.Queue

	rec           drag.Reconciler
	dragMeetingID string
}

// New constructs a service over the given queue.
func New(q *queue.Queue) *Service {
	return &Service{Queue: q}
}

// Meetings returns all meetings.
func (s *Service) Meetings() ([]*meeting.Meeting, error) {
	if s.Queue == nil {
		return nil, errors.New("app: no queue configured")
	}
	return s.Queue.Meetings(), nil
}

// Meeting returns one meeting by id.
func (s *Service) Meeting(id string) (*meeting.Meeting, error) {
	if s.Queue == nil {
		return nil, errors.New("app: no queue configured")
	}
	m, ok := s.Queue.Meeting(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMeetingNotFound, id)
	}
	return m, nil
}

// MeetingByTitle returns the first meeting whose title matches
// case-insensitively, for CLI convenience.
func (s *Service) MeetingByTitle(title string) (*meeting.Meeting, error) {
	meetings, err := s.Meetings()
	if err != nil {
		return nil, err
	}
	for _, m := range meetings {
		if strings.EqualFold(m.Title, title) {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrMeetingNotFound, title)
}

// CreateMeeting creates and queues a new meeting.
func (s *Service) CreateMeeting(title string, attendees []string) (*meeting.Meeting, error) {
	if s.Queue == nil {
		return nil, errors.New("app: no queue configured")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.New("app: meeting title required")
	}
	m := meeting.New(title)
	m.Attendees = attendees
	s.Queue.QueueAdd(m)
	return m, nil
}

// RenameMeeting sets a meeting's title.
func (s *Service) RenameMeeting(id, title string) error {
	m, err := s.Meeting(id)
	if err != nil {
		return err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return errors.New("app: meeting title required")
	}
	m.Title = title
	s.Queue.QueueUpdate(id, m)
	return nil
}

// RemoveMeeting deletes a meeting permanently.
func (s *Service) RemoveMeeting(id string) error {
	if _, err := s.Meeting(id); err != nil {
		return err
	}
	s.Queue.QueueRemove(id)
	return nil
}

// AddTopic appends a new topic column to a meeting.
func (s *Service) AddTopic(meetingID, name string) (meeting.Topic, error) {
	m, err := s.Meeting(meetingID)
	if err != nil {
		return meeting.Topic{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return meeting.Topic{}, errors.New("app: topic name required")
	}
	if _, exists := m.TopicByName(name); exists {
		return meeting.Topic{}, fmt.Errorf("app: topic %q already exists", name)
	}
	t := m.AddTopic(name)
	s.Queue.QueueUpdate(meetingID, m)
	return t, nil
}

// RenameTopic sets a topic column's name.
func (s *Service) RenameTopic(meetingID, topicID, name string) error {
	m, err := s.Meeting(meetingID)
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("app: topic name required")
	}
	if t, exists := m.TopicByName(name); exists && t.ID != topicID {
		return fmt.Errorf("app: topic %q already exists", name)
	}
	for i, t := range m.Topics {
		if t.ID == topicID {
			m.Topics[i].Name = name
			s.Queue.QueueUpdate(meetingID, m)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrTopicNotFound, topicID)
}

// RemoveTopic deletes a topic column. Its blocks keep their sort keys and
// fall back to the ungrouped bucket rather than being destroyed.
func (s *Service) RemoveTopic(meetingID, topicID string) error {
	m, err := s.Meeting(meetingID)
	if err != nil {
		return err
	}
	found := false
	for i, t := range m.Topics {
		if t.ID == topicID {
			m.Topics = append(m.Topics[:i], m.Topics[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrTopicNotFound, topicID)
	}
	for _, b := range m.Blocks {
		if b.TopicID == topicID {
			b.TopicID = ""
		}
	}
	s.Queue.QueueUpdate(meetingID, m)
	return nil
}

// AddBlock creates a block at the end of the given topic (empty topicID
// for the ungrouped bucket) with a freshly generated append key.
func (s *Service) AddBlock(meetingID, topicID string, kind block.Kind, text, owner string) (*block.Block, error) {
	m, err := s.Meeting(meetingID)
	if err != nil {
		return nil, err
	}
	if topicID != "" {
		if _, ok := m.Topic(topicID); !ok {
			return nil, fmt.Errorf("%w: %s", ErrTopicNotFound, topicID)
		}
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("app: unknown block kind %q", kind)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("app: block text required")
	}

	siblings := m.TopicBlocks(topicID)
	last := ""
	if len(siblings) > 0 {
		last = siblings[len(siblings)-1].SortKey
	}
	key, err := sortkey.Append(last)
	if err != nil {
		return nil, fmt.Errorf("app: generate append key: %w", err)
	}

	b := block.New(topicID, kind, text, key)
	b.Owner = strings.TrimSpace(owner)
	m.Blocks = append(m.Blocks, b)
	s.Queue.QueueUpdate(meetingID, m)
	return b, nil
}

// EditBlock replaces a block's text. The sort key is untouched: editing
// content never reorders.
func (s *Service) EditBlock(meetingID, blockID, text string) (*block.Block, error) {
	m, err := s.Meeting(meetingID)
	if err != nil {
		return nil, err
	}
	b, ok := m.Block(blockID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBlockNotFound, blockID)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("app: block text required")
	}
	b.Text = text
	b.Updated = block.Now()
	s.Queue.QueueUpdate(meetingID, m)
	return b.Clone(), nil
}

// RemoveBlock deletes a block. Sibling keys are untouched.
func (s *Service) RemoveBlock(meetingID, blockID string) error {
	m, err := s.Meeting(meetingID)
	if err != nil {
		return err
	}
	if !m.RemoveBlock(blockID) {
		return fmt.Errorf("%w: %s", ErrBlockNotFound, blockID)
	}
	s.Queue.QueueUpdate(meetingID, m)
	return nil
}

// MoveBlock places a block at position index within the given topic (empty
// for the ungrouped bucket), for non-gesture callers like the move command.
func (s *Service) MoveBlock(meetingID, blockID, topicID string, index int) error {
	m, err := s.Meeting(meetingID)
	if err != nil {
		return err
	}
	b, ok := m.Block(blockID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrBlockNotFound, blockID)
	}
	if topicID != "" {
		if _, ok := m.Topic(topicID); !ok {
			return fmt.Errorf("%w: %s", ErrTopicNotFound, topicID)
		}
	}

	siblings := m.TopicBlocks(topicID)
	var p sortkey.Placement
	if topicID == b.TopicID {
		keys := blockKeys(siblings)
		from := indexOfBlock(siblings, blockID)
		if from < 0 {
			return fmt.Errorf("%w: %s", ErrBlockNotFound, blockID)
		}
		p, err = sortkey.WithinGroup(keys, from, index)
	} else {
		p, err = sortkey.Place(blockKeys(siblings), index)
	}
	if err != nil {
		return fmt.Errorf("app: move block: %w", err)
	}

	b.SortKey = p.Key
	b.TopicID = topicID
	b.Updated = block.Now()
	for i, key := range p.Rewrites {
		if i >= 0 && i < len(siblings) {
			siblings[i].SortKey = key
		}
	}
	s.Queue.QueueUpdate(meetingID, m)
	return nil
}

// DragStart begins a drag gesture for a block on the given meeting's board.
func (s *Service) DragStart(meetingID, blockID string) error {
	m, err := s.Meeting(meetingID)
	if err != nil {
		return err
	}
	b, ok := m.Block(blockID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrBlockNotFound, blockID)
	}
	siblings := m.TopicBlocks(b.TopicID)
	s.rec.Start(drag.Item{ID: b.ID, TopicID: b.TopicID, SortKey: b.SortKey}, indexOfBlock(siblings, blockID))
	s.dragMeetingID = meetingID
	return nil
}

// DragOver forwards hover feedback to the reconciler.
func (s *Service) DragOver(target drag.Target) {
	s.rec.Over(target)
}

// DragCancel aborts the in-flight gesture, if any.
func (s *Service) DragCancel() {
	s.rec.Cancel()
	s.dragMeetingID = ""
}

// DragEnd completes the in-flight gesture against the drop target, applies
// the resulting intent (if any) through the queue, and reports whether the
// board changed.
func (s *Service) DragEnd(target drag.Target) (bool, error) {
	meetingID := s.dragMeetingID
	s.dragMeetingID = ""
	if meetingID == "" {
		s.rec.Cancel()
		return false, nil
	}
	m, err := s.Meeting(meetingID)
	if err != nil {
		s.rec.Cancel()
		return false, err
	}

	groups := make(map[string][]drag.Item)
	for topicID, blocks := range m.Grouped() {
		items := make([]drag.Item, len(blocks))
		for i, b := range blocks {
			items[i] = drag.Item{ID: b.ID, TopicID: b.TopicID, SortKey: b.SortKey}
		}
		groups[topicID] = items
	}

	intent, err := s.rec.End(target, groups)
	if err != nil {
		return false, err
	}
	if intent == nil {
		return false, nil
	}
	return true, s.applyIntent(meetingID, m, intent)
}

func (s *Service) applyIntent(meetingID string, m *meeting.Meeting, intent *drag.Intent) error {
	b, ok := m.Block(intent.BlockID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrBlockNotFound, intent.BlockID)
	}
	b.SortKey = intent.SortKey
	if intent.MoveTopic {
		b.TopicID = intent.TopicID
	}
	b.Updated = block.Now()
	for id, key := range intent.Rewrites {
		if sibling, ok := m.Block(id); ok {
			sibling.SortKey = key
		}
	}
	s.Queue.QueueUpdate(meetingID, m)
	return nil
}

// Import replaces the whole collection and persists it immediately.
func (s *Service) Import(meetings []*meeting.Meeting) error {
	if s.Queue == nil {
		return errors.New("app: no queue configured")
	}
	return s.Queue.SetMeetings(meetings)
}

// Export flushes any pending debounce and returns the durable snapshot, so
// an export never misses edits still inside the debounce window.
func (s *Service) Export() ([]*meeting.Meeting, error) {
	if s.Queue == nil {
		return nil, errors.New("app: no queue configured")
	}
	if err := s.Queue.FlushAll(); err != nil {
		return nil, err
	}
	return s.Queue.Meetings(), nil
}

// Reload refreshes the in-memory collection from the durable document so
// writes made by another process become visible. Local edits still inside
// the debounce window win; see Queue.Reload.
func (s *Service) Reload() error {
	if s.Queue == nil {
		return errors.New("app: no queue configured")
	}
	return s.Queue.Reload()
}

// Flush forces an immediate durable write of the current state.
func (s *Service) Flush() error {
	if s.Queue == nil {
		return errors.New("app: no queue configured")
	}
	return s.Queue.FlushAll()
}

func blockKeys(blocks []*block.Block) []string {
	keys := make([]string, len(blocks))
	for i, b := range blocks {
		keys[i] = b.SortKey
	}
	return keys
}

func indexOfBlock(blocks []*block.Block, id string) int {
	for i, b := range blocks {
		if b.ID == id {
			return i
		}
	}
	return -1
}
