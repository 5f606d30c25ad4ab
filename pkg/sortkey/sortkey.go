// Package sortkey generates the lexicographic order keys that position
// blocks inside a topic column. Keys are arbitrary-precision base-36 digit
// strings: inserting between any two neighbors extends precision instead of
// renumbering siblings, so an untouched key stays valid forever. The only
// exception is key exhaustion (neighbors that cannot be subdivided), which
// falls back to rewriting the smallest contiguous run of colliding keys.
package sortkey

import (
	"errors"
	"fmt"
	"strings"
)

// Alphabet is the ordered digit set keys are drawn from. Byte comparison of
// two keys equals digit-wise numeric comparison because the alphabet is in
// ascending ASCII order. A shorter key never sorts after an extension of
// itself ("a" < "a1"), which is exactly the fractional reading 0.a < 0.a1.
const Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// MaxDigits caps generated key length. Reaching it counts as exhaustion and
// triggers the renumbering fallback instead of growing keys without bound.
const MaxDigits = 64

var (
	// ErrInvalidKey marks keys containing bytes outside Alphabet, or
	// neighbor pairs in reversed order. These are caller bugs and are
	// rejected before they can corrupt ordering.
	ErrInvalidKey = errors.New("sortkey: invalid key")

	// ErrNoRoom reports that no key exists strictly between two neighbors.
	// Place and friends translate it into the renumbering fallback; it only
	// escapes to callers that use Between directly.
	ErrNoRoom = errors.New("sortkey: no room between keys")
)

// Validate rejects keys that are empty or contain bytes outside Alphabet.
func Validate(key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	}
	for i := 0; i < len(key); i++ {
		if strings.IndexByte(Alphabet, key[i]) < 0 {
			return fmt.Errorf("%w: %q has foreign digit %q", ErrInvalidKey, key, key[i])
		}
	}
	return nil
}

// Between returns a key strictly between prev and next. An empty prev means
// unbounded below, an empty next unbounded above; with both empty it returns
// the initial key for an empty group. Returns ErrNoRoom when the neighbors
// cannot be subdivided (equal keys, a zero-digit boundary, or MaxDigits
// exceeded).
func Between(prev, next string) (string, error) {
	if prev != "" {
		if err := Validate(prev); err != nil {
			return "", err
		}
	}
	if next != "" {
		if err := Validate(next); err != nil {
			return "", err
		}
		if prev > next {
			return "", fmt.Errorf("%w: reversed neighbors %q > %q", ErrInvalidKey, prev, next)
		}
		if prev == next {
			return "", fmt.Errorf("%w: %q equals %q", ErrNoRoom, prev, next)
		}
	}
	key, err := midpoint(prev, next)
	if err != nil {
		return "", err
	}
	if len(key) > MaxDigits {
		return "", fmt.Errorf("%w: key precision limit", ErrNoRoom)
	}
	return key, nil
}

// Append returns a key sorting after last, or the initial key when last is
// empty. Unlike Between, it prefers the shortest key strictly above last
// (incrementing the first non-top digit) so a long run of appends grows key
// length logarithmically rather than per call.
func Append(last string) (string, error) {
	if last == "" {
		return Between("", "")
	}
	if err := Validate(last); err != nil {
		return "", err
	}
	for i := 0; i < len(last); i++ {
		if last[i] != Alphabet[len(Alphabet)-1] {
			d := strings.IndexByte(Alphabet, last[i])
			return last[:i] + string(Alphabet[d+1]), nil
		}
	}
	// Every digit is the top digit; extend.
	if len(last) >= MaxDigits {
		return "", fmt.Errorf("%w: key precision limit", ErrNoRoom)
	}
	return last + string(Alphabet[1]), nil
}

// midpoint finds a digit string strictly between a and b, where empty a is
// the lower bound of the key space and empty b the upper bound. Assumes
// a < b (checked by Between). Extends precision only when the bounds are
// adjacent at the current length.
func midpoint(a, b string) (string, error) {
	if b != "" {
		n := 0
		for n < len(a) && n < len(b) && a[n] == b[n] {
			n++
		}
		if n > 0 {
			rest, err := midpoint(a[n:], b[n:])
			if err != nil {
				return "", err
			}
			return b[:n] + rest, nil
		}
	}

	da := 0
	if a != "" {
		da = strings.IndexByte(Alphabet, a[0])
	}
	db := len(Alphabet)
	if b != "" {
		db = strings.IndexByte(Alphabet, b[0])
	}

	if db-da > 1 {
		return string(Alphabet[(da+db)/2]), nil
	}

	// First digits are adjacent, or b starts with the zero digit against an
	// empty lower bound. A multi-digit b's first digit alone is a proper
	// prefix of b and already sorts strictly between the bounds.
	if len(b) > 1 {
		return b[:1], nil
	}
	if db == da {
		// b is the bare zero digit; no key sorts below it.
		return "", fmt.Errorf("%w: %q against %q", ErrNoRoom, a, b)
	}
	// Keep a's leading digit and bisect its remainder against the upper
	// bound of that digit band, e.g. midpoint("49", "5") -> "4m".
	var rest string
	if a != "" {
		rest = a[1:]
	}
	tail, err := midpoint(rest, "")
	if err != nil {
		return "", err
	}
	return string(Alphabet[da]) + tail, nil
}
