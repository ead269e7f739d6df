// Package conversation implements the per-user state machine behind the
// create-message flow: collect a recipient name, collect a mood, produce a
// message. Every transition is recorded through the interaction recorder.
package conversation

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"kindwords/internal/analytics"
	"kindwords/internal/generator"
	"kindwords/internal/moods"
)

var (
	// ErrNoSession: free text arrived with no active session.
	ErrNoSession = errors.New("no active session")
	// ErrSessionExpired: a mood or regenerate callback arrived with no
	// active session (typically after a restart).
	ErrSessionExpired = errors.New("session expired")
	// ErrUnexpectedInput: free text arrived at a step that takes buttons.
	ErrUnexpectedInput = errors.New("unexpected input for current step")
)

// Recorder is the fire-and-forget recording seam. Implementations must not
// surface failures to the controller.
type Recorder interface {
	Record(user analytics.User, action string, opts analytics.RecordOpts)
}

// Result is a produced message plus the theme metadata shown with it.
type Result struct {
	Text      string
	Recipient string
	Mood      string
	Theme     moods.Theme
}

// Controller owns the session map and drives the flow. Sessions are keyed by
// user id; a new StartSession overwrites any prior one.
type Controller struct {
	mu       sync.RWMutex
	sessions map[int64]*Session

	gen generator.Generator
	rec Recorder
}

func New(gen generator.Generator, rec Recorder) *Controller {
	return &Controller{
		sessions: make(map[int64]*Session),
		gen:      gen,
		rec:      rec,
	}
}

// StartSession resets the user's session to the start of the flow, clearing
// any prior recipient and mood.
func (c *Controller) StartSession(user analytics.User) *Session {
	s := &Session{
		UserID:    user.ID,
		Step:      StepAwaitingName,
		StartedAt: time.Now().UTC(),
	}
	c.mu.Lock()
	c.sessions[user.ID] = s
	c.mu.Unlock()

	c.rec.Record(user, analytics.ActionCreateCommand, analytics.RecordOpts{
		SessionSnapshot: s.Snapshot(),
	})
	return s
}

// Session returns the user's current session, nil when none exists.
func (c *Controller) Session(userID int64) *Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sessions[userID]
}

// SubmitText feeds free text into the flow. At AwaitingName the trimmed text
// becomes the recipient and the session advances to AwaitingMood. Any other
// step leaves the session untouched and returns ErrUnexpectedInput; with no
// session it returns ErrNoSession.
func (c *Controller) SubmitText(user analytics.User, text string) (*Session, error) {
	c.mu.Lock()
	s, ok := c.sessions[user.ID]
	if !ok {
		c.mu.Unlock()
		c.rec.Record(user, analytics.ActionNoSession, analytics.RecordOpts{})
		return nil, ErrNoSession
	}
	if s.Step != StepAwaitingName {
		c.mu.Unlock()
		c.rec.Record(user, analytics.ActionUnexpectedMessage, analytics.RecordOpts{})
		return nil, ErrUnexpectedInput
	}
	s.Recipient = strings.TrimSpace(text)
	s.Step = StepAwaitingMood
	c.mu.Unlock()

	c.rec.Record(user, analytics.ActionNameEntered, analytics.RecordOpts{
		RecipientName:   s.Recipient,
		SessionSnapshot: s.Snapshot(),
	})
	return s, nil
}

// SelectMood records the chosen mood, completes the session and produces the
// message. Unknown mood keys are recorded literally but resolve to the
// default theme's template pool. With no session it returns
// ErrSessionExpired.
func (c *Controller) SelectMood(ctx context.Context, user analytics.User, mood string) (*Result, error) {
	c.mu.Lock()
	s, ok := c.sessions[user.ID]
	if !ok {
		c.mu.Unlock()
		return nil, ErrSessionExpired
	}
	s.Mood = mood
	s.Step = StepComplete
	c.mu.Unlock()

	c.rec.Record(user, analytics.ActionMoodSelected, analytics.RecordOpts{
		RecipientName:   s.Recipient,
		MoodChoice:      mood,
		SessionSnapshot: s.Snapshot(),
	})
	return c.generate(ctx, user, s)
}

// Regenerate produces a new message from a completed session's recipient and
// mood.
func (c *Controller) Regenerate(ctx context.Context, user analytics.User) (*Result, error) {
	c.mu.RLock()
	s, ok := c.sessions[user.ID]
	c.mu.RUnlock()
	if !ok || s.Step != StepComplete {
		return nil, ErrSessionExpired
	}

	c.rec.Record(user, analytics.ActionMessageRegenerated, analytics.RecordOpts{
		RecipientName:   s.Recipient,
		MoodChoice:      s.Mood,
		SessionSnapshot: s.Snapshot(),
	})
	return c.generate(ctx, user, s)
}

func (c *Controller) generate(ctx context.Context, user analytics.User, s *Session) (*Result, error) {
	text, err := c.gen.Generate(ctx, s.Recipient, s.Mood)
	if err != nil {
		c.rec.Record(user, analytics.ActionGenerationError, analytics.RecordOpts{
			RecipientName:   s.Recipient,
			MoodChoice:      s.Mood,
			SessionSnapshot: s.Snapshot(),
		})
		return nil, err
	}

	c.rec.Record(user, analytics.ActionMessageGenerated, analytics.RecordOpts{
		RecipientName:    s.Recipient,
		MoodChoice:       s.Mood,
		MessageGenerated: true,
		SessionSnapshot:  s.Snapshot(),
	})
	return &Result{
		Text:      text,
		Recipient: s.Recipient,
		Mood:      s.Mood,
		Theme:     moods.Resolve(s.Mood),
	}, nil
}
