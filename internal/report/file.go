package report

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/harrison/strfind/internal/config"
	"github.com/harrison/strfind/internal/filelock"
	"github.com/harrison/strfind/internal/models"
)

// fileContextLimit truncates per-finding context in the persisted report.
const fileContextLimit = 200

var unsafePatternChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// SanitizePattern maps a pattern to a filesystem-safe token: every character
// outside [A-Za-z0-9_-] becomes an underscore.
func SanitizePattern(pattern string) string {
	return unsafePatternChars.ReplaceAllString(pattern, "_")
}

// ResultsFileName returns the name of the results file for a pattern,
// e.g. "flag{" -> "search_results_flag_.txt".
func ResultsFileName(pattern string) string {
	return fmt.Sprintf("search_results_%s.txt", SanitizePattern(pattern))
}

// Persist writes the plain-text report into the scanned directory and
// returns the path written. The write is serialized with a lock and done
// atomically so concurrent runs over the same directory cannot corrupt
// each other's report.
func Persist(cfg config.Config, summary *models.ScanSummary) (string, error) {
	path := filepath.Join(cfg.RootDirectory, ResultsFileName(cfg.Pattern))

	absDir, err := filepath.Abs(cfg.RootDirectory)
	if err != nil {
		absDir = cfg.RootDirectory
	}

	var b strings.Builder
	b.WriteString("STRING SEARCH RESULTS\n")
	fmt.Fprintf(&b, "Scan ID: %s\n", summary.ScanID)
	fmt.Fprintf(&b, "Pattern: '%s'\n", cfg.Pattern)
	fmt.Fprintf(&b, "Directory: %s\n", absDir)
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	for _, result := range summary.Results {
		fmt.Fprintf(&b, "FILE: %s\n", result.Path)
		fmt.Fprintf(&b, "Size: %d bytes\n", result.SizeBytes)
		fmt.Fprintf(&b, "Matches: %d\n\n", len(result.Findings))

		for i, finding := range result.Findings {
			fmt.Fprintf(&b, "  Match %d:\n", i+1)
			fmt.Fprintf(&b, "    Type: %s\n", finding.Kind)
			fmt.Fprintf(&b, "    Found: '%s'\n", finding.Match)
			fmt.Fprintf(&b, "    Position: %d\n", finding.Offset)
			fmt.Fprintf(&b, "    Context: %s\n", Truncate(finding.Context, fileContextLimit))
			b.WriteString("\n")
		}

		b.WriteString(strings.Repeat("-", 40) + "\n\n")
	}

	if err := filelock.WriteLocked(path, []byte(b.String())); err != nil {
		return "", fmt.Errorf("failed to save results: %w", err)
	}

	return path, nil
}
