package analytics

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS interaction_records (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	username TEXT,
	first_name TEXT,
	last_name TEXT,
	timestamp DATETIME NOT NULL,
	action TEXT NOT NULL,
	recipient_name TEXT,
	mood_choice TEXT,
	message_generated BOOLEAN DEFAULT FALSE,
	session_snapshot TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS daily_stats (
	date DATE PRIMARY KEY,
	total_users INTEGER DEFAULT 0,
	total_messages INTEGER DEFAULT 0,
	unique_users INTEGER DEFAULT 0,
	most_popular_mood TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS mood_stats (
	mood TEXT PRIMARY KEY,
	count INTEGER DEFAULT 0,
	last_used DATETIME,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// Timestamps are stored as RFC 3339 UTC text so SQLite's date functions and
// lexicographic ordering agree with chronological order.
const tsFormat = time.RFC3339

// Store is the SQLite-backed interaction record store. Records are
// append-only; the daily_stats and mood_stats tables are derived caches.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and ensures the
// schema exists. The parent directory is created when absent.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Append inserts one interaction record. Optional fields go in as NULL so
// the mood and recipient aggregations can filter on IS NOT NULL.
func (s *Store) Append(rec Interaction) error {
	_, err := s.db.Exec(`
		INSERT INTO interaction_records
			(user_id, username, first_name, last_name, timestamp, action,
			 recipient_name, mood_choice, message_generated, session_snapshot)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.UserID, rec.Username, rec.FirstName, rec.LastName,
		rec.Timestamp.UTC().Format(tsFormat), rec.Action,
		nullable(rec.RecipientName), nullable(rec.MoodChoice),
		rec.MessageGenerated, nullable(rec.SessionSnapshot),
	)
	if err != nil {
		return fmt.Errorf("insert interaction: %w", err)
	}
	return nil
}

// IncrementMood bumps the derived per-mood usage counter.
func (s *Store) IncrementMood(mood string, at time.Time) error {
	ts := at.UTC().Format(tsFormat)
	_, err := s.db.Exec(`
		INSERT INTO mood_stats (mood, count, last_used, updated_at)
		VALUES (?, 1, ?, ?)
		ON CONFLICT(mood) DO UPDATE SET
			count = count + 1,
			last_used = excluded.last_used,
			updated_at = excluded.updated_at`,
		mood, ts, ts,
	)
	if err != nil {
		return fmt.Errorf("increment mood %q: %w", mood, err)
	}
	return nil
}

// MoodUsage returns the derived counter for a mood, zero when never used.
func (s *Store) MoodUsage(mood string) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT count FROM mood_stats WHERE mood = ?`, mood).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("query mood usage: %w", err)
	}
	return count, nil
}

// DailyStats aggregates raw records for one date (YYYY-MM-DD).
func (s *Store) DailyStats(date string) (DailySnapshot, error) {
	snap := DailySnapshot{Date: date}
	err := s.db.QueryRow(`
		SELECT COUNT(*),
		       COUNT(DISTINCT user_id),
		       COUNT(CASE WHEN message_generated = 1 THEN 1 END)
		FROM interaction_records
		WHERE DATE(timestamp) = ?`, date,
	).Scan(&snap.TotalInteractions, &snap.UniqueUsers, &snap.MessagesGenerated)
	if err != nil {
		return DailySnapshot{}, fmt.Errorf("query daily stats: %w", err)
	}

	var mood string
	err = s.db.QueryRow(`
		SELECT mood_choice FROM interaction_records
		WHERE DATE(timestamp) = ? AND mood_choice IS NOT NULL
		GROUP BY mood_choice
		ORDER BY COUNT(*) DESC
		LIMIT 1`, date,
	).Scan(&mood)
	if err != nil && err != sql.ErrNoRows {
		return DailySnapshot{}, fmt.Errorf("query daily mood: %w", err)
	}
	snap.MostPopularMood = mood
	return snap, nil
}

// SaveDailySnapshot upserts the optional daily_stats cache row. No reader
// depends on this table; all reports compute from raw records.
func (s *Store) SaveDailySnapshot(snap DailySnapshot) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO daily_stats
			(date, total_users, total_messages, unique_users, most_popular_mood)
		VALUES (?, ?, ?, ?, ?)`,
		snap.Date, snap.UniqueUsers, snap.MessagesGenerated, snap.UniqueUsers,
		nullable(snap.MostPopularMood),
	)
	if err != nil {
		return fmt.Errorf("save daily snapshot: %w", err)
	}
	return nil
}

// UserOverview aggregates one user's history for the /stats command.
func (s *Store) UserOverview(userID int64) (UserOverview, error) {
	var (
		o     UserOverview
		first sql.NullString
	)
	err := s.db.QueryRow(`
		SELECT COUNT(*),
		       COUNT(CASE WHEN message_generated = 1 THEN 1 END),
		       MIN(timestamp)
		FROM interaction_records
		WHERE user_id = ?`, userID,
	).Scan(&o.TotalInteractions, &o.MessagesCreated, &first)
	if err != nil {
		return UserOverview{}, fmt.Errorf("query user overview: %w", err)
	}
	if first.Valid {
		o.FirstSeen, _ = time.Parse(tsFormat, first.String)
	}

	err = s.db.QueryRow(`
		SELECT mood_choice, COUNT(*)
		FROM interaction_records
		WHERE user_id = ? AND mood_choice IS NOT NULL
		GROUP BY mood_choice
		ORDER BY COUNT(*) DESC
		LIMIT 1`, userID,
	).Scan(&o.FavoriteMood, &o.FavoriteMoodCount)
	if err != nil && err != sql.ErrNoRows {
		return UserOverview{}, fmt.Errorf("query favorite mood: %w", err)
	}
	return o, nil
}

// StoreOverview aggregates the whole store.
func (s *Store) StoreOverview() (Overview, error) {
	var o Overview
	err := s.db.QueryRow(`
		SELECT COUNT(DISTINCT user_id),
		       COUNT(*),
		       COUNT(CASE WHEN message_generated = 1 THEN 1 END)
		FROM interaction_records`,
	).Scan(&o.TotalUsers, &o.TotalInteractions, &o.MessagesGenerated)
	if err != nil {
		return Overview{}, fmt.Errorf("query overview: %w", err)
	}

	err = s.db.QueryRow(`
		SELECT DATE(timestamp), COUNT(*)
		FROM interaction_records
		GROUP BY DATE(timestamp)
		ORDER BY COUNT(*) DESC
		LIMIT 1`,
	).Scan(&o.MostActiveDay, &o.MostActiveDayCount)
	if err != nil && err != sql.ErrNoRows {
		return Overview{}, fmt.Errorf("query most active day: %w", err)
	}

	err = s.db.QueryRow(`
		SELECT mood_choice, COUNT(*)
		FROM interaction_records
		WHERE mood_choice IS NOT NULL
		GROUP BY mood_choice
		ORDER BY COUNT(*) DESC
		LIMIT 1`,
	).Scan(&o.MostPopularMood, &o.MostPopularMoodCount)
	if err != nil && err != sql.ErrNoRows {
		return Overview{}, fmt.Errorf("query most popular mood: %w", err)
	}
	return o, nil
}

// DailyActivity returns per-date counts for the trailing N days, ascending.
// Dates with no records are omitted.
func (s *Store) DailyActivity(days int) ([]DayActivity, error) {
	rows, err := s.db.Query(`
		SELECT DATE(timestamp),
		       COUNT(*),
		       COUNT(DISTINCT user_id),
		       COUNT(CASE WHEN message_generated = 1 THEN 1 END)
		FROM interaction_records
		WHERE DATE(timestamp) >= DATE('now', ?)
		GROUP BY DATE(timestamp)
		ORDER BY DATE(timestamp)`,
		fmt.Sprintf("-%d days", days),
	)
	if err != nil {
		return nil, fmt.Errorf("query daily activity: %w", err)
	}
	defer rows.Close()

	var out []DayActivity
	for rows.Next() {
		var d DayActivity
		if err := rows.Scan(&d.Date, &d.TotalInteractions, &d.UniqueUsers, &d.MessagesGenerated); err != nil {
			return nil, fmt.Errorf("scan daily activity: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily activity: %w", err)
	}
	return out, nil
}

// MoodPopularity returns per-mood counts over all mood-bearing records,
// descending by count.
func (s *Store) MoodPopularity() ([]MoodCount, error) {
	rows, err := s.db.Query(`
		SELECT mood_choice, COUNT(*)
		FROM interaction_records
		WHERE mood_choice IS NOT NULL
		GROUP BY mood_choice
		ORDER BY COUNT(*) DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query mood popularity: %w", err)
	}
	defer rows.Close()

	var out []MoodCount
	for rows.Next() {
		var m MoodCount
		if err := rows.Scan(&m.Mood, &m.Count); err != nil {
			return nil, fmt.Errorf("scan mood popularity: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mood popularity: %w", err)
	}
	return out, nil
}

// TopUsers returns the most active users by record count. Ties keep the
// store's natural order.
func (s *Store) TopUsers(limit int) ([]UserActivity, error) {
	rows, err := s.db.Query(`
		SELECT user_id,
		       COALESCE(first_name, ''),
		       COUNT(*),
		       COUNT(CASE WHEN message_generated = 1 THEN 1 END),
		       MIN(timestamp),
		       MAX(timestamp)
		FROM interaction_records
		GROUP BY user_id
		ORDER BY COUNT(*) DESC
		LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query top users: %w", err)
	}
	defer rows.Close()

	var out []UserActivity
	for rows.Next() {
		var (
			u           UserActivity
			first, last string
		)
		if err := rows.Scan(&u.UserID, &u.FirstName, &u.Interactions, &u.MessagesCreated, &first, &last); err != nil {
			return nil, fmt.Errorf("scan top users: %w", err)
		}
		u.FirstSeen, _ = time.Parse(tsFormat, first)
		u.LastSeen, _ = time.Parse(tsFormat, last)
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate top users: %w", err)
	}
	return out, nil
}

// AllInteractions returns every record ordered by timestamp ascending, for
// the flat export.
func (s *Store) AllInteractions() ([]Interaction, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, COALESCE(username, ''), COALESCE(first_name, ''),
		       COALESCE(last_name, ''), timestamp, action,
		       COALESCE(recipient_name, ''), COALESCE(mood_choice, ''),
		       message_generated, COALESCE(session_snapshot, '')
		FROM interaction_records
		ORDER BY timestamp, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query interactions: %w", err)
	}
	defer rows.Close()

	var out []Interaction
	for rows.Next() {
		var (
			rec Interaction
			ts  string
		)
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Username, &rec.FirstName,
			&rec.LastName, &ts, &rec.Action, &rec.RecipientName, &rec.MoodChoice,
			&rec.MessageGenerated, &rec.SessionSnapshot); err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		rec.Timestamp, _ = time.Parse(tsFormat, ts)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interactions: %w", err)
	}
	return out, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
