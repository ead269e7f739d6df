package analytics

import (
	"log"
	"time"
)

// Logger is the interaction recorder: one call writes the record to the
// SQLite store and to the CSV export file. Both writes are best-effort; a
// failure in either is logged and never reaches the caller or the other
// write.
type Logger struct {
	store  *Store
	export *CSVExport
}

func NewLogger(store *Store, export *CSVExport) *Logger {
	return &Logger{store: store, export: export}
}

// Record writes one interaction for user/action at the current time.
func (l *Logger) Record(user User, action string, opts RecordOpts) {
	rec := Interaction{
		UserID:           user.ID,
		Username:         user.Username,
		FirstName:        user.FirstName,
		LastName:         user.LastName,
		Timestamp:        time.Now().UTC(),
		Action:           action,
		RecipientName:    opts.RecipientName,
		MoodChoice:       opts.MoodChoice,
		MessageGenerated: opts.MessageGenerated,
		SessionSnapshot:  string(opts.SessionSnapshot),
	}

	if l.store != nil {
		if err := l.store.Append(rec); err != nil {
			log.Printf("failed to store interaction (user=%d action=%s): %v", rec.UserID, action, err)
		}
		if rec.MoodChoice != "" {
			if err := l.store.IncrementMood(rec.MoodChoice, rec.Timestamp); err != nil {
				log.Printf("failed to update mood stats (mood=%s): %v", rec.MoodChoice, err)
			}
		}
	}
	if l.export != nil {
		if err := l.export.Append(rec); err != nil {
			log.Printf("failed to append interaction to csv (user=%d action=%s): %v", rec.UserID, action, err)
		}
	}
	log.Printf("logged interaction: user_id=%d action=%s", rec.UserID, action)
}
