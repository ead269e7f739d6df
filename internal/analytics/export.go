package analytics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// CSVExport appends interaction rows to a flat comma-delimited file, the
// second leg of the recorder's dual write.
type CSVExport struct {
	path string
	mu   sync.Mutex
}

// NewCSVExport ensures the directory exists and writes the header row when
// the file is new.
func NewCSVExport(path string) (*CSVExport, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure csv dir: %w", err)
		}
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("create csv: %w", err)
		}
		w := csv.NewWriter(f)
		if err := w.Write(CSVHeader); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("write csv header: %w", err)
		}
		w.Flush()
		if err := w.Error(); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("flush csv header: %w", err)
		}
		if err := f.Close(); err != nil {
			return nil, fmt.Errorf("close csv: %w", err)
		}
	}
	return &CSVExport{path: path}, nil
}

func (e *CSVExport) Append(rec Interaction) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	f, err := os.OpenFile(e.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open csv append: %w", err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write(csvRow(rec)); err != nil {
		return fmt.Errorf("write csv row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv row: %w", err)
	}
	return nil
}

func csvRow(rec Interaction) []string {
	return []string{
		rec.Timestamp.UTC().Format(tsFormat),
		strconv.FormatInt(rec.UserID, 10),
		rec.Username,
		rec.FirstName,
		rec.LastName,
		rec.Action,
		rec.RecipientName,
		rec.MoodChoice,
		strconv.FormatBool(rec.MessageGenerated),
	}
}
