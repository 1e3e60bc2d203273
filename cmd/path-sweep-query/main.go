package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"path-sweep/internal/database"
	"path-sweep/internal/exitcodes"
)

func main() {
	dbPath := flag.String("db", "/var/lib/path-sweep/sweeps.db", "Path to sweep history database")
	recent := flag.Int("recent", 0, "Show N most recent records")
	action := flag.String("action", "", "Filter by action (REMOVED, NOT_FOUND, ERROR)")
	pathPattern := flag.String("path", "", "Filter by path pattern (SQL LIKE syntax)")
	stats := flag.Bool("stats", false, "Show sweep statistics")
	days := flag.Int("days", 30, "Number of days for statistics (default: 30)")
	jsonOutput := flag.Bool("json", false, "Output in JSON format")
	flag.Parse()

	db, err := database.NewSweepDB(*dbPath)
	if err != nil {
		log.Fatalf("ERROR: Failed to open database %s: %v", *dbPath, err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("ERROR: Failed to close database: %v", err)
		}
	}()

	switch {
	case *stats:
		showStats(db, *days, *jsonOutput)
	case *recent > 0:
		showRecent(db, *recent, *jsonOutput)
	case *action != "":
		showByAction(db, *action, *jsonOutput)
	case *pathPattern != "":
		showByPath(db, *pathPattern, *jsonOutput)
	default:
		flag.Usage()
		fmt.Println("\nExamples:")
		fmt.Println("  path-sweep-query --recent 10          # Show 10 most recent records")
		fmt.Println("  path-sweep-query --stats              # Show sweep statistics")
		fmt.Println("  path-sweep-query --action ERROR       # Show only failed deletes")
		fmt.Println("  path-sweep-query --path '/tmp/%'      # Show records from /tmp")
		os.Exit(exitcodes.InvalidConfig)
	}
}

func showStats(db *database.SweepDB, days int, jsonOutput bool) {
	stats, err := db.GetStats(days)
	if err != nil {
		log.Fatalf("ERROR: Failed to get statistics: %v", err)
	}

	if jsonOutput {
		data, _ := json.MarshalIndent(stats, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("Sweep Statistics (Last %d days)\n\n", days)
	if len(stats) == 0 {
		fmt.Println("No records found")
		return
	}
	for _, s := range stats {
		fmt.Printf("  %-12s count=%-8d freed=%s\n", s.Action, s.Count, formatBytes(s.Bytes))
	}
}

func showRecent(db *database.SweepDB, limit int, jsonOutput bool) {
	records, err := db.GetRecentSweeps(limit)
	if err != nil {
		log.Fatalf("ERROR: Failed to get recent records: %v", err)
	}

	if jsonOutput {
		data, _ := json.MarshalIndent(records, "", "  ")
		fmt.Println(string(data))
		return
	}

	printRecords(records)
}

func showByAction(db *database.SweepDB, action string, jsonOutput bool) {
	records, err := db.GetSweepsByAction(action)
	if err != nil {
		log.Fatalf("ERROR: Failed to query by action: %v", err)
	}

	if jsonOutput {
		data, _ := json.MarshalIndent(records, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("Records with action: %s\n\n", action)
	printRecords(records)
}

func showByPath(db *database.SweepDB, pathPattern string, jsonOutput bool) {
	records, err := db.GetSweepsByPath(pathPattern)
	if err != nil {
		log.Fatalf("ERROR: Failed to query by path: %v", err)
	}

	if jsonOutput {
		data, _ := json.MarshalIndent(records, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("Records matching path pattern: %s\n\n", pathPattern)
	printRecords(records)
}

func printRecords(records []database.SweepRecord) {
	if len(records) == 0 {
		fmt.Println("No records found")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tTimestamp\tAction\tType\tSize\tPath")
	_, _ = fmt.Fprintln(w, "--\t---------\t------\t----\t----\t----")

	for _, r := range records {
		timestamp := r.Timestamp.Format("2006-01-02 15:04:05")
		line := fmt.Sprintf("%d\t%s\t%s\t%s\t%s\t%s",
			r.ID, timestamp, r.Action, r.ObjectType, formatBytes(r.Size), r.Path)
		if r.ErrorMessage != "" {
			line += "  (" + r.ErrorMessage + ")"
		}
		_, _ = fmt.Fprintln(w, line)
	}
	_ = w.Flush()
}

func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGT"[exp])
}
