package generator

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"kindwords/internal/moods"
)

// Two canned templates per mood, interpolated with the recipient name.
var templates = map[string][]string{
	"uplift": {
		"Hey %s! Just wanted to remind you that your positive energy lights up every room you enter. Your resilience and strength inspire everyone around you. Keep being amazing! 🌟",
		"%s, you have this incredible ability to find silver linings in any situation. Your optimism is contagious and makes the world a brighter place. Thank you for being you! ✨",
	},
	"congrats": {
		"Congratulations, %s! Your hard work and dedication have truly paid off. You've achieved something amazing and you should be incredibly proud! 🎉",
		"%s, what an incredible achievement! Your perseverance and talent have led you to this moment. You've inspired so many people with your journey! 🏆",
	},
	"thanks": {
		"Thank you, %s, for being such an incredible friend. Your support, kindness, and genuine care mean the world to me. I'm so grateful to have you in my life! 🙏",
		"%s, I can't thank you enough for everything you do. Your thoughtfulness and generosity never cease to amaze me. You make life so much better! 💕",
	},
	"motivation": {
		"%s, you have incredible strength within you that can overcome any challenge. Your potential is limitless, and I believe in you completely. You've got this! 💪",
		"Hey %s! Remember that every expert was once a beginner, and every champion was once a contender. Your journey is just beginning, and greatness awaits! 🚀",
	},
	"support": {
		"%s, I want you to know that you're not alone in this journey. You're stronger than you realize, and you have people who care about you deeply. Take it one day at a time. 🤗",
		"Dear %s, remember that it's okay not to be okay sometimes. Your feelings are valid, and your courage to keep going is admirable. You're braver than you believe! 💙",
	},
	"celebration": {
		"It's party time, %s! Your joy and enthusiasm are absolutely infectious. You know how to make every moment special and memorable. Let's celebrate life together! 🎊",
		"%s, you bring such vibrant energy to everything you do! Your zest for life and ability to find joy in the little things makes every day an adventure. Keep shining! ✨",
	},
}

// Template picks uniformly from the pool for the requested mood. Unknown mood
// keys fall back to the default mood's pool rather than failing.
type Template struct {
	mu   sync.Mutex
	rand *rand.Rand
}

func NewTemplate() *Template {
	return &Template{rand: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (t *Template) Generate(_ context.Context, recipient, mood string) (string, error) {
	pool, ok := templates[mood]
	if !ok {
		pool = templates[moods.DefaultKey]
	}
	t.mu.Lock()
	idx := t.rand.Intn(len(pool))
	t.mu.Unlock()
	return fmt.Sprintf(pool[idx], recipient), nil
}
