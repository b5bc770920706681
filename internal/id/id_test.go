package id_test

import (
	"testing"

	"github.com/chatprobe/backend/internal/id"
)

func TestGenerateID_Length(t *testing.T) {
	got := id.GenerateID()
	if len(got) != 16 {
		t.Errorf("expected 16 characters, got %d (%q)", len(got), got)
	}
}

func TestGenerateID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		v := id.GenerateID()
		if seen[v] {
			t.Fatalf("duplicate id %q", v)
		}
		seen[v] = true
	}
}
