// Package drag turns a drag lifecycle (start, hover, end) into at most one
// mutation intent against the board. The reconciler is a small state
// machine: Idle until Start, Dragging until End or Cancel, then Idle again.
// It never reads or writes storage; the owning screen feeds it the current
// grouped snapshot and forwards the produced intent to the update queue.
package drag

import (
	"fmt"

	"github.com/huddlenotes/huddle/pkg/sortkey"
)

// Item is the slice of a block the reconciler needs: identity, owning topic
// (empty for the ungrouped bucket) and current sort key.
type Item struct {
	ID      string
	TopicID string
	SortKey string
}

// TargetKind classifies what the pointer was released over.
type TargetKind int

const (
	// TargetNone: released outside any valid drop zone.
	TargetNone TargetKind = iota
	// TargetItem: released on another block.
	TargetItem
	// TargetContainer: released on a topic column itself.
	TargetContainer
)

// Target describes the drop location reported by the board layer. For
// TargetItem, BlockID/TopicID/Index identify the block dropped on and its
// position within its topic. For TargetContainer only TopicID is read.
type Target struct {
	Kind    TargetKind
	BlockID string
	TopicID string
	Index   int
}

// Intent is the single mutation a completed drag resolves to: set the
// moving block's sort key, and possibly its topic. Rewrites carries
// replacement keys for sibling blocks on the key-exhaustion fallback path
// and is nil otherwise.
type Intent struct {
	BlockID   string
	SortKey   string
	TopicID   string
	MoveTopic bool
	Rewrites  map[string]string
}

// Reconciler drives one drag gesture at a time.
type Reconciler struct {
	dragging    bool
	moving      Item
	sourceIndex int
}

// Dragging reports whether a gesture is in flight.
func (r *Reconciler) Dragging() bool {
	return r.dragging
}

// Moving returns the item captured by Start while a gesture is in flight.
func (r *Reconciler) Moving() (Item, bool) {
	return r.moving, r.dragging
}

// Start begins a gesture for item, currently at index within its topic.
// Starting over an in-flight gesture replaces it; the older gesture emits
// nothing, same as a cancel.
func (r *Reconciler) Start(item Item, index int) {
	r.dragging = true
	r.moving = item
	r.sourceIndex = index
}

// Over provides hover feedback only. The state machine does not change;
// highlighting the hovered zone is the board layer's concern.
func (r *Reconciler) Over(Target) {}

// Cancel aborts the gesture with no mutation.
func (r *Reconciler) Cancel() {
	r.dragging = false
	r.moving = Item{}
	r.sourceIndex = 0
}

// End completes the gesture against the given drop target and grouped
// snapshot (topic id to blocks sorted by key, moving item included). It
// returns exactly one intent, or nil for the no-op cases: no gesture in
// flight, no valid target, dropping on the moving block itself, or dropping
// on the source topic's container. The reconciler is Idle afterwards
// regardless of outcome.
func (r *Reconciler) End(target Target, groups map[string][]Item) (*Intent, error) {
	if !r.dragging {
		return nil, nil
	}
	moving := r.moving
	sourceIndex := r.sourceIndex
	r.Cancel()

	switch target.Kind {
	case TargetNone:
		return nil, nil

	case TargetItem:
		if target.BlockID == moving.ID {
			return nil, nil
		}
		if target.TopicID == moving.TopicID {
			return r.moveWithinTopic(moving, sourceIndex, target, groups[target.TopicID])
		}
		return r.moveOntoItem(moving, target, groups[target.TopicID])

	case TargetContainer:
		if target.TopicID == moving.TopicID {
			return nil, nil
		}
		return r.appendToTopic(moving, target, groups[target.TopicID])

	default:
		return nil, fmt.Errorf("drag: unknown target kind %d", target.Kind)
	}
}

func (r *Reconciler) moveWithinTopic(moving Item, sourceIndex int, target Target, siblings []Item) (*Intent, error) {
	keys := itemKeys(siblings)
	if sourceIndex < 0 || sourceIndex >= len(keys) {
		sourceIndex = indexOf(siblings, moving.ID)
		if sourceIndex < 0 {
			return nil, fmt.Errorf("drag: moving block %s missing from its topic", moving.ID)
		}
	}
	if target.Index == sourceIndex {
		return nil, nil
	}
	p, err := sortkey.WithinGroup(keys, sourceIndex, target.Index)
	if err != nil {
		return nil, fmt.Errorf("drag: reorder within topic: %w", err)
	}
	return intentFor(moving, p, siblings, false, ""), nil
}

func (r *Reconciler) moveOntoItem(moving Item, target Target, destination []Item) (*Intent, error) {
	p, err := sortkey.IntoGroup(itemKeys(destination), target.Index)
	if err != nil {
		return nil, fmt.Errorf("drag: move across topics: %w", err)
	}
	return intentFor(moving, p, destination, true, target.TopicID), nil
}

func (r *Reconciler) appendToTopic(moving Item, target Target, destination []Item) (*Intent, error) {
	last := ""
	if len(destination) > 0 {
		last = destination[len(destination)-1].SortKey
	}
	key, err := sortkey.Append(last)
	if err != nil {
		return nil, fmt.Errorf("drag: append to topic: %w", err)
	}
	return &Intent{
		BlockID:   moving.ID,
		SortKey:   key,
		TopicID:   target.TopicID,
		MoveTopic: true,
	}, nil
}

func intentFor(moving Item, p sortkey.Placement, siblings []Item, moveTopic bool, topicID string) *Intent {
	intent := &Intent{
		BlockID:   moving.ID,
		SortKey:   p.Key,
		TopicID:   topicID,
		MoveTopic: moveTopic,
	}
	if p.Rewrites != nil {
		intent.Rewrites = make(map[string]string, len(p.Rewrites))
		for i, key := range p.Rewrites {
			if i >= 0 && i < len(siblings) {
				intent.Rewrites[siblings[i].ID] = key
			}
		}
	}
	return intent
}

func itemKeys(items []Item) []string {
	keys := make([]string, len(items))
	for i, it := range items {
		keys[i] = it.SortKey
	}
	return keys
}

func indexOf(items []Item, id string) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
