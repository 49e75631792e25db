// Package report renders scan results for the console and persists them to
// the plain-text results file in the scanned directory.
package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/harrison/strfind/internal/config"
	"github.com/harrison/strfind/internal/models"
	"github.com/harrison/strfind/internal/scanner"
)

// consoleContextLimit truncates per-finding context lines on screen.
const consoleContextLimit = 100

// suggestionFileLimit caps how many filenames a suggestion lists.
const suggestionFileLimit = 5

// Renderer writes the human-readable report. Color is applied only when
// enabled (the caller decides, typically via TTY detection).
type Renderer struct {
	w           io.Writer
	colorOutput bool
}

// NewRenderer creates a Renderer writing to w.
func NewRenderer(w io.Writer, colorOutput bool) *Renderer {
	return &Renderer{w: w, colorOutput: colorOutput}
}

func (r *Renderer) paint(c *color.Color, format string, args ...interface{}) {
	if r.colorOutput {
		c.Fprintf(r.w, format, args...)
		return
	}
	fmt.Fprintf(r.w, format, args...)
}

// Banner prints the run header: tool name, directory, pattern and mode.
func (r *Renderer) Banner(cfg config.Config) {
	rule := strings.Repeat("=", 60)
	absDir, err := filepath.Abs(cfg.RootDirectory)
	if err != nil {
		absDir = cfg.RootDirectory
	}

	fmt.Fprintln(r.w, rule)
	r.paint(color.New(color.Bold), "GENERIC STRING SEARCH TOOL\n")
	fmt.Fprintln(r.w, rule)
	fmt.Fprintf(r.w, "Directory: %s\n", absDir)
	fmt.Fprintf(r.w, "Pattern: '%s'\n", cfg.Pattern)
	fmt.Fprintf(r.w, "Case sensitive: %v\n", cfg.CaseSensitive)
	fmt.Fprintf(r.w, "Recursive: %v\n", cfg.Recursive)
	fmt.Fprintln(r.w)
}

// ScanStart announces how many files will be scanned.
func (r *Renderer) ScanStart(total int) {
	fmt.Fprintf(r.w, "Scanning %d files...\n", total)
	fmt.Fprintln(r.w, strings.Repeat("-", 40))
}

// NoFiles prints the empty-directory message.
func (r *Renderer) NoFiles() {
	fmt.Fprintln(r.w, "No files found in the specified directory.")
}

// NoMatches prints the not-found message and any fallback suggestions.
func (r *Renderer) NoMatches(pattern string, suggestions []scanner.Suggestion) {
	fmt.Fprintf(r.w, "\nNo files containing '%s' were found.\n", pattern)

	if suggestions == nil {
		return
	}

	fmt.Fprintln(r.w, "\nTrying alternative searches (first 50 files only):")
	for _, s := range suggestions {
		fmt.Fprintf(r.w, "\nSearching for '%s'...\n", s.Pattern)
		fmt.Fprintf(r.w, "  Found in %d files:\n", len(s.Files))

		shown := s.Files
		if len(shown) > suggestionFileLimit {
			shown = shown[:suggestionFileLimit]
		}
		for _, name := range shown {
			fmt.Fprintf(r.w, "    - %s\n", name)
		}
		if rest := len(s.Files) - suggestionFileLimit; rest > 0 {
			fmt.Fprintf(r.w, "    ... and %d more\n", rest)
		}
	}
}

// Results prints the per-file finding blocks.
func (r *Renderer) Results(pattern string, summary *models.ScanSummary) {
	r.paint(color.New(color.FgGreen, color.Bold), "\n🎯 FOUND '%s' in %d files!\n", pattern, summary.MatchedFiles())
	fmt.Fprintln(r.w, strings.Repeat("=", 60))

	for _, result := range summary.Results {
		r.paint(color.New(color.FgCyan), "\n📁 FILE: %s\n", result.Path)
		fmt.Fprintf(r.w, "   Size: %d bytes\n", result.SizeBytes)
		fmt.Fprintf(r.w, "   Matches: %d\n", len(result.Findings))

		for i, finding := range result.Findings {
			fmt.Fprintf(r.w, "\n   Match %d:\n", i+1)
			fmt.Fprintf(r.w, "   Type: %s\n", finding.Kind)
			fmt.Fprintf(r.w, "   Found: '%s'\n", finding.Match)
			fmt.Fprintf(r.w, "   Position: %d\n", finding.Offset)

			if finding.Kind == models.KindText && finding.LineContext != "" {
				fmt.Fprintf(r.w, "   Context (lines):\n")
				for _, line := range strings.Split(finding.LineContext, "\n") {
					fmt.Fprintf(r.w, "     %s\n", line)
				}
			} else {
				fmt.Fprintf(r.w, "   Context: %s\n", Truncate(finding.Context, consoleContextLimit))
				if finding.HexContext != "" {
					fmt.Fprintf(r.w, "   Hex: %s\n", Truncate(finding.HexContext, consoleContextLimit))
				}
			}
		}

		fmt.Fprintln(r.w, strings.Repeat("-", 50))
	}
}

// Summary prints the scanned/matched counts.
func (r *Renderer) Summary(pattern string, summary *models.ScanSummary) {
	fmt.Fprintf(r.w, "\n📋 SUMMARY:\n")
	fmt.Fprintf(r.w, "   Total files scanned: %d\n", summary.TotalFiles)
	fmt.Fprintf(r.w, "   Files containing '%s': %d\n", pattern, summary.MatchedFiles())
}

// Saved prints where the results file was written.
func (r *Renderer) Saved(path string) {
	fmt.Fprintf(r.w, "\n💾 Results saved to: %s\n", path)
}

// Truncate limits s to max runes, marking the cut with a trailing ellipsis.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
