package timeutil

import (
	"testing"
	"time"
)

func TestParseWindowDefault(t *testing.T) {
	dur, label, err := ParseWindow("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 14 * 24 * time.Hour
	if dur != want {
		t.Fatalf("expected %v, got %v", want, dur)
	}
	if label != "2w" {
		t.Fatalf("expected label 2w, got %s", label)
	}
}

func TestParseWindowComposite(t *testing.T) {
	dur, label, err := ParseWindow("1w2d6h30m")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := (7*24+2*24+6)*time.Hour + 30*time.Minute
	if dur != want {
		t.Fatalf("expected %v, got %v", want, dur)
	}
	if label != "1w2d6h30m" {
		t.Fatalf("unexpected label: %s", label)
	}
}

func TestParseWindowLongUnits(t *testing.T) {
	dur, label, err := ParseWindow("2 weeks")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dur != 14*24*time.Hour {
		t.Fatalf("expected two weeks, got %v", dur)
	}
	if label != "2w" {
		t.Fatalf("expected canonical 2w, got %s", label)
	}
}

func TestParseWindowInvalid(t *testing.T) {
	for _, input := range []string{"noop", "w", "3y", "0s"} {
		if _, _, err := ParseWindow(input); err == nil {
			t.Errorf("ParseWindow(%q) = nil, want error", input)
		}
	}
}

func TestSince(t *testing.T) {
	window := 24 * time.Hour
	if !Since(time.Now().Add(-time.Hour), window) {
		t.Error("one hour ago should fall inside a one day window")
	}
	if Since(time.Now().Add(-48*time.Hour), window) {
		t.Error("two days ago should fall outside a one day window")
	}
	if Since(time.Time{}, window) {
		t.Error("zero time should never match")
	}
}
