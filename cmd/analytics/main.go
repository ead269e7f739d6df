package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"kindwords/internal/analytics"
)

func main() {
	var (
		overview  = flag.Bool("overview", false, "show overview statistics only")
		daily     = flag.Int("daily", 7, "show daily activity for N days")
		moodsOnly = flag.Bool("moods", false, "show mood popularity only")
		users     = flag.Int("users", 10, "show top N active users")
		export    = flag.String("export", "", "export data to CSV file")
		report    = flag.Bool("report", false, "generate full report")
		dbPath    = flag.String("db", "data/analytics.db", "database path")
		exportDir = flag.String("export-dir", "exports", "directory for exports without an explicit path")
	)
	flag.Parse()

	if _, err := os.Stat(*dbPath); err != nil {
		fmt.Printf("❌ Database not found at %s\n", *dbPath)
		fmt.Println("Make sure the bot has been running and logging data.")
		os.Exit(1)
	}

	store, err := analytics.Open(*dbPath)
	if err != nil {
		log.Fatalf("failed to open analytics store: %v", err)
	}
	defer store.Close()

	v := analytics.NewViewer(store, os.Stdout)

	switch {
	case *report:
		v.Report(*daily, *users)
	case *overview:
		v.Overview()
	case *moodsOnly:
		v.MoodPopularity()
	case *export != "":
		if err := v.Export(*export, *exportDir); err != nil {
			log.Fatalf("export failed: %v", err)
		}
	default:
		v.Overview()
		v.DailyActivity(*daily)
		v.TopUsers(*users)
	}
}
