package ids

import (
	"strings"
	"testing"
)

func TestNewHasPrefix(t *testing.T) {
	id := New(PrefixFigure)
	if !strings.HasPrefix(id, PrefixFigure+"_") {
		t.Fatalf("id %q lacks prefix", id)
	}
	if err := Validate(id, PrefixFigure); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got := Prefix(id); got != PrefixFigure {
		t.Errorf("Prefix = %q, want %q", got, PrefixFigure)
	}
}

func TestNewIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := New(PrefixObject)
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestValidateRejects(t *testing.T) {
	if err := Validate(New(PrefixView), PrefixLayer); err == nil {
		t.Error("wrong prefix accepted")
	}
	if err := Validate("not an id", PrefixLayer); err == nil {
		t.Error("garbage accepted")
	}
	if got := Prefix("nope"); got != "" {
		t.Errorf("Prefix(garbage) = %q", got)
	}
}
