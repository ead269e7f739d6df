package moods

import "testing"

func TestCatalogHasSixThemes(t *testing.T) {
	all := All()
	if len(all) != 6 {
		t.Fatalf("expected 6 themes, got %d", len(all))
	}
	seen := map[string]bool{}
	for _, th := range all {
		if th.Key == "" || th.Name == "" || th.Emoji == "" {
			t.Errorf("incomplete theme: %+v", th)
		}
		if seen[th.Key] {
			t.Errorf("duplicate theme key %q", th.Key)
		}
		seen[th.Key] = true
	}
}

func TestGet(t *testing.T) {
	th, ok := Get("congrats")
	if !ok || th.Name != "Congratulations" {
		t.Fatalf("Get(congrats) = %+v, %v", th, ok)
	}
	if _, ok := Get("nonsense"); ok {
		t.Fatal("Get(nonsense) should not resolve")
	}
}

func TestResolveFallsBackToDefault(t *testing.T) {
	th := Resolve("nonsense")
	if th.Key != DefaultKey {
		t.Fatalf("Resolve(nonsense) = %q, want %q", th.Key, DefaultKey)
	}
}

func TestLabel(t *testing.T) {
	if got := Label("support"); got != "🤗 Support" {
		t.Fatalf("Label(support) = %q", got)
	}
	if got := Label("nonsense"); got != "" {
		t.Fatalf("Label(nonsense) = %q, want empty", got)
	}
}
