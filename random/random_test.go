package random

import (
	"strings"
	"testing"
)

func TestStrings(t *testing.T) {
	s := String(10)
	if len(s) != 10 {
		t.Fatalf("expected 10 chars, got %q", s)
	}

	p, err := StringSecure(16)
	if err != nil {
		t.Fatal(err)
	}
	if len(p) != 16 {
		t.Fatalf("expected 16 chars, got %q", p)
	}

	for _, c := range s + p {
		if !strings.ContainsRune(charset, c) {
			t.Fatalf("unexpected char %q", c)
		}
	}
}
