package sortkey

import (
	"errors"
	"fmt"
)

// Placement is the outcome of a position-targeted key computation. Key is
// the moving item's new key. Rewrites is non-nil only on the exhaustion
// fallback path and maps indexes of the caller's key slice to replacement
// keys for the minimal run of siblings that had to be renumbered.
type Placement struct {
	Key      string
	Rewrites map[int]string
}

// Place computes the key that puts the moving item at target (0-based)
// within keys, the group's current keys sorted ascending with the moving
// item excluded. Targets outside [0, len(keys)] clamp to the boundaries.
// When the would-be neighbors cannot be subdivided, the smallest contiguous
// run of colliding keys is renumbered and reported through Rewrites.
func Place(keys []string, target int) (Placement, error) {
	for _, k := range keys {
		if err := Validate(k); err != nil {
			return Placement{}, err
		}
	}
	if target < 0 {
		target = 0
	}
	if target > len(keys) {
		target = len(keys)
	}
	prev, next := "", ""
	if target > 0 {
		prev = keys[target-1]
	}
	if target < len(keys) {
		next = keys[target]
	}
	key, err := Between(prev, next)
	if err == nil {
		return Placement{Key: key}, nil
	}
	if !errors.Is(err, ErrNoRoom) {
		return Placement{}, err
	}
	return renumber(keys, target)
}

// WithinGroup computes the key moving the item at from to final position to
// inside the same group. keys is the group's keys sorted ascending with the
// moving item still present at from; to addresses the resulting arrangement.
// Rewrites indexes refer to the input slice, from excluded.
func WithinGroup(keys []string, from, to int) (Placement, error) {
	if from < 0 || from >= len(keys) {
		return Placement{}, fmt.Errorf("%w: source index %d out of range", ErrInvalidKey, from)
	}
	stripped := make([]string, 0, len(keys)-1)
	stripped = append(stripped, keys[:from]...)
	stripped = append(stripped, keys[from+1:]...)
	p, err := Place(stripped, to)
	if err != nil {
		return Placement{}, err
	}
	if p.Rewrites != nil {
		remapped := make(map[int]string, len(p.Rewrites))
		for i, k := range p.Rewrites {
			if i >= from {
				remapped[i+1] = k
			} else {
				remapped[i] = k
			}
		}
		p.Rewrites = remapped
	}
	return p, nil
}

// IntoGroup computes the key inserting the moving item into a different
// group directly after insertAfter (-1 prepends). keys are the target
// group's keys sorted ascending; the old group's keys are irrelevant.
func IntoGroup(keys []string, insertAfter int) (Placement, error) {
	return Place(keys, insertAfter+1)
}

// renumber is the exhaustion fallback: rewrite the smallest contiguous run
// of keys around the blocked gap at target, at just enough fresh precision
// for the whole run plus the moving item. The run starts as the two blocked
// neighbors and widens one key at a time only while the enclosing bounds
// still cannot host the run.
func renumber(keys []string, target int) (Placement, error) {
	lo := target - 1
	if lo < 0 {
		lo = 0
	}
	hi := target
	if hi > len(keys)-1 {
		hi = len(keys) - 1
	}
	for {
		outerPrev, outerNext := "", ""
		if lo > 0 {
			outerPrev = keys[lo-1]
		}
		if hi < len(keys)-1 {
			outerNext = keys[hi+1]
		}
		count := hi - lo + 2 // run keys plus the moving item
		fresh, err := spread(outerPrev, outerNext, count)
		if err == nil {
			rewrites := make(map[int]string, count-1)
			offset := target - lo
			pos := 0
			for i := lo; i <= hi; i++ {
				if pos == offset {
					pos++
				}
				rewrites[i] = fresh[pos]
				pos++
			}
			return Placement{Key: fresh[offset], Rewrites: rewrites}, nil
		}
		if !errors.Is(err, ErrNoRoom) {
			return Placement{}, err
		}
		switch {
		case lo > 0:
			lo--
		case hi < len(keys)-1:
			hi++
		default:
			// Both bounds already open; the key set is beyond repair.
			return Placement{}, err
		}
	}
}

// spread generates n keys strictly between a and b in ascending order by
// recursive bisection.
func spread(a, b string, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	mid, err := Between(a, b)
	if err != nil {
		return nil, err
	}
	left := (n - 1) / 2
	right := n - 1 - left
	ls, err := spread(a, mid, left)
	if err != nil {
		return nil, err
	}
	rs, err := spread(mid, b, right)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, n)
	out = append(out, ls...)
	out = append(out, mid)
	out = append(out, rs...)
	return out, nil
}
