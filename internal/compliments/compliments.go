package compliments

import (
	"encoding/json"
	"log"
	"math/rand"
	"os"
	"sync"
	"time"
)

// Used when the catalog file is missing or unparsable.
var fallback = []string{
	"You have an incredible ability to make others feel valued and appreciated.",
	"Your kindness radiates warmth that brightens everyone's day.",
	"The way you listen with such genuine care is truly a gift.",
}

// Catalog holds the canned compliments, loaded once at startup.
type Catalog struct {
	compliments []string
	mu          sync.Mutex
	rand        *rand.Rand
}

// Load reads a JSON array of strings from path. A missing or malformed file
// falls back to the built-in list instead of failing.
func Load(path string) *Catalog {
	c := &Catalog{rand: rand.New(rand.NewSource(time.Now().UnixNano()))}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("compliments file not found at %s, using built-in list: %v", path, err)
		c.compliments = fallback
		return c
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil || len(list) == 0 {
		log.Printf("failed to parse compliments file %s, using built-in list: %v", path, err)
		c.compliments = fallback
		return c
	}
	log.Printf("loaded %d compliments from %s", len(list), path)
	c.compliments = list
	return c
}

func (c *Catalog) Len() int { return len(c.compliments) }

// Random returns a uniformly chosen compliment.
func (c *Catalog) Random() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.compliments[c.rand.Intn(len(c.compliments))]
}
