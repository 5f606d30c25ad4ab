// Package queue owns the in-memory meeting collection and coalesces its
// mutations into debounced whole-document writes. Every mutation applies to
// memory synchronously, so reads issued right after a write observe it;
// only the persistence side effect is deferred. One Queue instance owns one
// durable document; nothing else may mutate the collection.
package queue

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/huddlenotes/huddle/pkg/meeting"
)

// DefaultDelay is the trailing-edge debounce window: the write fires this
// long after the most recent mutation.
const DefaultDelay = 500 * time.Millisecond

// DefaultKey names the durable record holding the meeting document.
const DefaultKey = "meetings"

// Store is the injected persistence backend: whole-document values under
// string keys. The queue treats writes as opaque blocking calls and makes
// no assumption about the backing medium.
type Store interface {
	Put(key string, data []byte) error
	Get(key string) ([]byte, bool, error)
	Remove(key string) error
}

// Option configures a Queue.
type Option func(*Queue)

// WithDelay overrides the debounce window.
func WithDelay(d time.Duration) Option {
	return func(q *Queue) { q.delay = d }
}

// WithKey overrides the durable record key.
func WithKey(key string) Option {
	return func(q *Queue) { q.key = key }
}

// WithLogWriter redirects persistence-failure logging (default os.Stderr).
func WithLogWriter(w io.Writer) Option {
	return func(q *Queue) { q.logw = w }
}

// Queue is the single point of truth for one meeting collection. All
// operations are safe for concurrent use; mutations apply in call order.
type Queue struct {
	mu       sync.Mutex
	store    Store
	key      string
	delay    time.Duration
	logw     io.Writer
	timer    *time.Timer
	meetings []*meeting.Meeting
}

// New creates an empty queue in front of store.
func New(store Store, opts ...Option) *Queue {
	q := &Queue{
		store: store,
		key:   DefaultKey,
		delay: DefaultDelay,
		logw:  os.Stderr,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Load creates a queue seeded from the durable document, or empty when no
// record exists yet.
func Load(store Store, opts ...Option) (*Queue, error) {
	q := New(store, opts...)
	data, ok, err := store.Get(q.key)
	if err != nil {
		return nil, fmt.Errorf("queue: load document: %w", err)
	}
	if ok {
		meetings, err := meeting.UnmarshalDocument(data)
		if err != nil {
			return nil, fmt.Errorf("queue: load document: %w", err)
		}
		q.meetings = meetings
	}
	return q, nil
}

// QueueUpdate replaces the meeting with the matching id in memory and
// schedules a debounced write. Unknown ids are a silent no-op; callers are
// expected to have validated existence.
func (q *Queue) QueueUpdate(id string, m *meeting.Meeting) {
	if m == nil {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, existing := range q.meetings {
		if existing != nil && existing.ID == id {
			q.meetings[i] = m.Clone()
			q.scheduleLocked()
			return
		}
	}
}

// QueueAdd appends a meeting in memory and schedules a debounced write.
func (q *Queue) QueueAdd(m *meeting.Meeting) {
	if m == nil {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.meetings = append(q.meetings, m.Clone())
	q.scheduleLocked()
}

// QueueRemove deletes the meeting with the given id in memory and schedules
// a debounced write. Unknown ids are a no-op.
func (q *Queue) QueueRemove(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, existing := range q.meetings {
		if existing != nil && existing.ID == id {
			q.meetings = append(q.meetings[:i], q.meetings[i+1:]...)
			q.scheduleLocked()
			return
		}
	}
}

// SetMeetings replaces the whole collection and writes it out immediately,
// bypassing the debounce. Used by imports, where losing a bulk replace to a
// pending debounce window is unacceptable.
func (q *Queue) SetMeetings(all []*meeting.Meeting) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.meetings = cloneAll(all)
	q.cancelLocked()
	return q.persistLocked()
}

// Reload replaces the in-memory collection with the durable document,
// picking up writes made by another process. While a debounced write is
// still pending, memory is ahead of disk, so Reload is a no-op until the
// queue is idle.
func (q *Queue) Reload() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.timer != nil {
		return nil
	}
	data, ok, err := q.store.Get(q.key)
	if err != nil {
		return fmt.Errorf("queue: reload document: %w", err)
	}
	if !ok {
		q.meetings = nil
		return nil
	}
	meetings, err := meeting.UnmarshalDocument(data)
	if err != nil {
		return fmt.Errorf("queue: reload document: %w", err)
	}
	q.meetings = meetings
	return nil
}

// Meetings returns a deep copy of the current in-memory collection. It
// never touches storage: the memory copy is authoritative, including
// changes whose debounce timer has not fired yet.
func (q *Queue) Meetings() []*meeting.Meeting {
	q.mu.Lock()
	defer q.mu.Unlock()
	return cloneAll(q.meetings)
}

// Meeting returns a deep copy of one meeting by id.
func (q *Queue) Meeting(id string) (*meeting.Meeting, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, m := range q.meetings {
		if m != nil && m.ID == id {
			return m.Clone(), true
		}
	}
	return nil, false
}

// FlushAll cancels any pending debounce and writes the current state now,
// returning once the write finished. Safe to call with nothing pending.
func (q *Queue) FlushAll() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.cancelLocked()
	return q.persistLocked()
}

// FlushMeeting flushes with the same guarantee as FlushAll. The durable
// record is the whole collection in one document, so a narrower write does
// not exist; the method is a named alias for call-site clarity.
func (q *Queue) FlushMeeting(id string) error {
	return q.FlushAll()
}

// ClearAll empties the collection and removes the durable record entirely,
// bypassing the debounce.
func (q *Queue) ClearAll() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.meetings = nil
	q.cancelLocked()
	if err := q.store.Remove(q.key); err != nil {
		return fmt.Errorf("queue: clear document: %w", err)
	}
	return nil
}

// Destroy cancels any pending write without flushing. Only for teardown
// paths that are about to overwrite storage by other means.
func (q *Queue) Destroy() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.cancelLocked()
}

// scheduleLocked resets the trailing-edge debounce: any outstanding timer
// is cancelled and a fresh one started, so only the last call in a burst
// triggers a write, and that write sees the latest state.
func (q *Queue) scheduleLocked() {
	q.cancelLocked()
	q.timer = time.AfterFunc(q.delay, q.flushTimer)
}

func (q *Queue) cancelLocked() {
	if q.timer != nil {
		q.timer.Stop()
		q.timer = nil
	}
}

// flushTimer runs on the debounce timer. A write failure here is logged
// and absorbed: memory stays the most recent truth and any further
// mutation (or an explicit FlushAll) retries the write.
func (q *Queue) flushTimer() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.timer = nil
	if err := q.persistLocked(); err != nil {
		fmt.Fprintf(q.logw, "queue: deferred persist: %v\n", err)
	}
}

func (q *Queue) persistLocked() error {
	if q.store == nil {
		return errors.New("queue: no store configured")
	}
	data, err := meeting.MarshalDocument(q.meetings)
	if err != nil {
		return fmt.Errorf("queue: encode document: %w", err)
	}
	if err := q.store.Put(q.key, data); err != nil {
		return fmt.Errorf("queue: write document: %w", err)
	}
	return nil
}

func cloneAll(meetings []*meeting.Meeting) []*meeting.Meeting {
	out := make([]*meeting.Meeting, len(meetings))
	for i, m := range meetings {
		out[i] = m.Clone()
	}
	return out
}
