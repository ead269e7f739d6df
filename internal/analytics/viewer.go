package analytics

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"kindwords/internal/moods"
)

// Viewer renders the offline reports over an interaction store. It never
// writes records; store errors are reported inline instead of propagating.
type Viewer struct {
	store *Store
	out   io.Writer
}

func NewViewer(store *Store, out io.Writer) *Viewer {
	return &Viewer{store: store, out: out}
}

func (v *Viewer) printf(format string, args ...any) {
	fmt.Fprintf(v.out, format, args...)
}

// Overview prints whole-store statistics.
func (v *Viewer) Overview() {
	o, err := v.store.StoreOverview()
	if err != nil {
		v.printf("❌ Error getting overview stats: %v\n", err)
		return
	}

	v.printf("📊 KindWords Bot Analytics Overview\n")
	v.printf("%s\n", strings.Repeat("=", 40))
	v.printf("👥 Total Users: %d\n", o.TotalUsers)
	v.printf("💬 Total Interactions: %d\n", o.TotalInteractions)
	v.printf("💌 Messages Generated: %d\n", o.MessagesGenerated)
	if o.MostActiveDay != "" {
		v.printf("📈 Most Active Day: %s (%d interactions)\n", o.MostActiveDay, o.MostActiveDayCount)
	} else {
		v.printf("📈 Most Active Day: None yet\n")
	}
	if o.MostPopularMood != "" {
		v.printf("🎭 Most Popular Mood: %s (%d times)\n", o.MostPopularMood, o.MostPopularMoodCount)
	} else {
		v.printf("🎭 Most Popular Mood: None yet\n")
	}
	v.printf("📊 Message Conversion Rate: %.1f%%\n", o.ConversionRate())
}

// DailyActivity prints per-date counts for the trailing N days.
func (v *Viewer) DailyActivity(days int) {
	rows, err := v.store.DailyActivity(days)
	if err != nil {
		v.printf("❌ Error getting daily activity: %v\n", err)
		return
	}
	if len(rows) == 0 {
		v.printf("\n📅 No activity data for the last %d days\n", days)
		return
	}

	v.printf("\n📅 Daily Activity (Last %d days)\n", days)
	v.printf("%s\n", strings.Repeat("=", 60))
	v.printf("%-12s %-8s %-12s %-10s\n", "Date", "Users", "Interactions", "Messages")
	v.printf("%s\n", strings.Repeat("-", 60))
	for _, d := range rows {
		v.printf("%-12s %-8d %-12d %-10d\n", d.Date, d.UniqueUsers, d.TotalInteractions, d.MessagesGenerated)
	}
}

// MoodPopularity prints count and share per mood, descending. Shares are
// computed against mood-bearing records only.
func (v *Viewer) MoodPopularity() {
	counts, err := v.store.MoodPopularity()
	if err != nil {
		v.printf("❌ Error getting mood popularity: %v\n", err)
		return
	}
	if len(counts) == 0 {
		v.printf("\n🎭 No mood data available yet\n")
		return
	}

	total := 0
	for _, m := range counts {
		total += m.Count
	}

	v.printf("\n🎭 Mood Theme Popularity\n")
	v.printf("%s\n", strings.Repeat("=", 30))
	for _, m := range counts {
		share := float64(m.Count) / float64(total) * 100
		label := m.Mood
		if l := moods.Label(m.Mood); l != "" {
			label = l
		}
		v.printf("%-18s %-5d (%.1f%%)\n", label, m.Count, share)
	}
}

// TopUsers prints the K most active users.
func (v *Viewer) TopUsers(limit int) {
	users, err := v.store.TopUsers(limit)
	if err != nil {
		v.printf("❌ Error getting user activity: %v\n", err)
		return
	}
	if len(users) == 0 {
		v.printf("\n👥 No user data available yet\n")
		return
	}

	v.printf("\n👥 Most Active Users (Top %d)\n", limit)
	v.printf("%s\n", strings.Repeat("=", 80))
	v.printf("%-12s %-15s %-12s %-10s %-12s\n", "User ID", "Name", "Interactions", "Messages", "First Seen")
	v.printf("%s\n", strings.Repeat("-", 80))
	for _, u := range users {
		name := u.FirstName
		if name == "" {
			name = fmt.Sprintf("User%d", u.UserID)
		}
		if len(name) > 14 {
			name = name[:14]
		}
		firstSeen := "Unknown"
		if !u.FirstSeen.IsZero() {
			firstSeen = u.FirstSeen.Format("2006-01-02")
		}
		v.printf("%-12d %-15s %-12d %-10d %-12s\n", u.UserID, name, u.Interactions, u.MessagesCreated, firstSeen)
	}
}

// Export dumps all records ordered by timestamp to a CSV at path, creating
// the destination directory when absent. An empty path picks a timestamped
// file under dir.
func (v *Viewer) Export(path, dir string) error {
	if path == "" {
		path = filepath.Join(dir, fmt.Sprintf("analytics_export_%s.csv", time.Now().Format("20060102_150405")))
	}
	if d := filepath.Dir(path); d != "." {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return fmt.Errorf("ensure export dir: %w", err)
		}
	}

	recs, err := v.store.AllInteractions()
	if err != nil {
		return fmt.Errorf("load interactions: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(CSVHeader); err != nil {
		return fmt.Errorf("write export header: %w", err)
	}
	for _, rec := range recs {
		if err := w.Write(csvRow(rec)); err != nil {
			return fmt.Errorf("write export row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush export: %w", err)
	}

	v.printf("✅ Data exported to %s\n", path)
	v.printf("📊 Exported %d records\n", len(recs))
	return nil
}

// Report prints the full report: overview, daily activity, mood popularity
// and top users.
func (v *Viewer) Report(days, userLimit int) {
	v.printf("🤖 KindWords Telegram Bot Analytics Report\n")
	v.printf("%s\n", strings.Repeat("=", 50))
	v.printf("Generated on: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))

	v.Overview()
	v.DailyActivity(days)
	v.MoodPopularity()
	v.TopUsers(userLimit)

	v.printf("\n%s\n", strings.Repeat("=", 50))
	v.printf("💝 Thank you for spreading kindness with KindWords!\n")
}
