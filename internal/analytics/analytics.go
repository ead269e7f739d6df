// Package analytics records user interactions to a SQLite store and a CSV
// export file, and computes the aggregate reports the bot and the offline
// viewer display.
package analytics

import "time"

// Action tags written with each interaction record. The column itself is
// free-form text; these are the tags the bot emits.
const (
	ActionStartCommand       = "start_command"
	ActionHelpCommand        = "help_command"
	ActionAboutCommand       = "about_command"
	ActionStatsCommand       = "stats_command"
	ActionComplimentCommand  = "compliment_command"
	ActionComplimentCallback = "compliment_callback"
	ActionCreateCommand      = "create_command"
	ActionNameEntered        = "recipient_name_entered"
	ActionNoSession          = "message_without_session"
	ActionUnexpectedMessage  = "unexpected_message"
	ActionMoodSelected       = "mood_selected"
	ActionMessageGenerated   = "message_generated"
	ActionMessageRegenerated = "message_regenerated"
	ActionGenerationError    = "message_generation_error"
)

// User identifies the acting chat user on a record.
type User struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
}

// Interaction is one append-only row describing a single user action.
type Interaction struct {
	ID               int64
	UserID           int64
	Username         string
	FirstName        string
	LastName         string
	Timestamp        time.Time
	Action           string
	RecipientName    string
	MoodChoice       string
	MessageGenerated bool
	SessionSnapshot  string
}

// RecordOpts carries the optional fields of a record.
type RecordOpts struct {
	RecipientName    string
	MoodChoice       string
	MessageGenerated bool
	SessionSnapshot  []byte
}

// DailySnapshot aggregates one day's activity.
type DailySnapshot struct {
	Date              string
	TotalInteractions int
	UniqueUsers       int
	MessagesGenerated int
	MostPopularMood   string
}

// Overview aggregates the whole store.
type Overview struct {
	TotalUsers           int
	TotalInteractions    int
	MessagesGenerated    int
	MostActiveDay        string
	MostActiveDayCount   int
	MostPopularMood      string
	MostPopularMoodCount int
}

// ConversionRate is messages generated per record, in percent. Zero when the
// store is empty.
func (o Overview) ConversionRate() float64 {
	if o.TotalInteractions == 0 {
		return 0
	}
	return float64(o.MessagesGenerated) / float64(o.TotalInteractions) * 100
}

// DayActivity is one row of the trailing-days report.
type DayActivity struct {
	Date              string
	TotalInteractions int
	UniqueUsers       int
	MessagesGenerated int
}

// MoodCount is one row of the mood popularity report.
type MoodCount struct {
	Mood  string
	Count int
}

// UserActivity is one row of the most-active-users report.
type UserActivity struct {
	UserID          int64
	FirstName       string
	Interactions    int
	MessagesCreated int
	FirstSeen       time.Time
	LastSeen        time.Time
}

// UserOverview is the per-user slice shown by the /stats command.
type UserOverview struct {
	TotalInteractions int
	MessagesCreated   int
	FirstSeen         time.Time
	FavoriteMood      string
	FavoriteMoodCount int
}

// CSVHeader is the fixed column set of the flat export, shared by the live
// side-writer and the offline export.
var CSVHeader = []string{
	"timestamp", "user_id", "username", "first_name", "last_name",
	"action", "recipient_name", "mood_choice", "message_generated",
}
