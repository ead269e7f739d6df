package generator

import (
	"context"
	"strings"
	"testing"

	"kindwords/internal/moods"
)

func TestGenerateInterpolatesRecipient(t *testing.T) {
	g := NewTemplate()
	for _, th := range moods.All() {
		text, err := g.Generate(context.Background(), "Alex", th.Key)
		if err != nil {
			t.Fatalf("Generate(%s): %v", th.Key, err)
		}
		if !strings.Contains(text, "Alex") {
			t.Errorf("Generate(%s) missing recipient: %q", th.Key, text)
		}
	}
}

func TestGenerateUnknownMoodFallsBack(t *testing.T) {
	g := NewTemplate()
	text, err := g.Generate(context.Background(), "Sam", "grumpy")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(text, "Sam") {
		t.Fatalf("fallback message missing recipient: %q", text)
	}
	// Both templates in the default (uplift) pool mention positivity.
	if !strings.Contains(text, "positive energy") && !strings.Contains(text, "silver linings") {
		t.Fatalf("fallback message not from default pool: %q", text)
	}
}

func TestGenerateCoversWholePool(t *testing.T) {
	g := NewTemplate()
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		text, err := g.Generate(context.Background(), "Kim", "congrats")
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		seen[text] = true
	}
	if len(seen) != 2 {
		t.Fatalf("expected both congrats templates over 200 draws, got %d distinct", len(seen))
	}
}
