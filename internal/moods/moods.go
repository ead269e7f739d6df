package moods

// Theme is a named tone category used both to pick a message template and to
// tag analytics.
type Theme struct {
	Key   string
	Name  string
	Emoji string
}

// DefaultKey is the theme used when an unknown mood key is supplied.
const DefaultKey = "uplift"

var themes = []Theme{
	{Key: "uplift", Name: "Uplift", Emoji: "🌸"},
	{Key: "congrats", Name: "Congratulations", Emoji: "🎉"},
	{Key: "thanks", Name: "Thank You", Emoji: "🙏"},
	{Key: "motivation", Name: "Motivation", Emoji: "💪"},
	{Key: "support", Name: "Support", Emoji: "🤗"},
	{Key: "celebration", Name: "Celebration", Emoji: "🎊"},
}

var byKey = func() map[string]Theme {
	m := make(map[string]Theme, len(themes))
	for _, t := range themes {
		m[t.Key] = t
	}
	return m
}()

// All returns the catalog in display order.
func All() []Theme {
	out := make([]Theme, len(themes))
	copy(out, themes)
	return out
}

func Get(key string) (Theme, bool) {
	t, ok := byKey[key]
	return t, ok
}

// Resolve returns the theme for key, falling back to the default theme for
// unknown keys.
func Resolve(key string) Theme {
	if t, ok := byKey[key]; ok {
		return t
	}
	return byKey[DefaultKey]
}

// Label returns "<emoji> <name>" for a known key and empty string otherwise.
// Reports show raw keys for moods that are no longer in the catalog.
func Label(key string) string {
	t, ok := byKey[key]
	if !ok {
		return ""
	}
	return t.Emoji + " " + t.Name
}
