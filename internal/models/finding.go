// Package models defines the value types produced by a scan: individual
// findings, per-file results, and the run summary.
package models

import "fmt"

// FindingKind identifies which pass produced a finding.
type FindingKind string

const (
	// KindText marks a finding from the text pass (decoded content).
	KindText FindingKind = "text"
	// KindBinary marks a finding from the binary pass (raw bytes).
	KindBinary FindingKind = "binary"
)

// Finding represents one located occurrence of the pattern (or a derived
// variant) within a file, with surrounding context for human review.
type Finding struct {
	// Kind is the pass that produced this finding.
	Kind FindingKind

	// Match is the matched text. For binary findings this is the pattern
	// variant that matched, decoded as UTF-8.
	Match string

	// Offset is the position of the match: rune offset into the decoded
	// content for text findings, byte offset into the file for binary.
	Offset int

	// Context is a fixed window around the match (50 units before and after,
	// clamped to file bounds). Text contexts have newlines escaped.
	Context string

	// LineContext is the matched line with up to two lines of context on
	// each side, the matched line prefixed with ">>> ". Text findings only.
	LineContext string

	// HexContext is the hex encoding of the context window. Binary only.
	HexContext string
}

// Key returns the deduplication key for a finding. Two findings with the
// same key are the same occurrence.
func (f Finding) Key() string {
	return fmt.Sprintf("%s:%d:%s", f.Kind, f.Offset, f.Match)
}

// FileResult holds all findings for a single scanned file. Only files with
// at least one finding get a FileResult.
type FileResult struct {
	Path      string
	SizeBytes int64
	Findings  []Finding
}

// ScanSummary is the outcome of a full scan run.
type ScanSummary struct {
	// ScanID uniquely identifies this run in the persisted report.
	ScanID string

	// TotalFiles is the number of files enumerated and scanned.
	TotalFiles int

	// Results contains one entry per file with findings, in scan order.
	Results []FileResult
}

// MatchedFiles returns the number of files that produced findings.
func (s *ScanSummary) MatchedFiles() int {
	return len(s.Results)
}

// DedupFindings removes findings whose Key has already been seen,
// preserving first-seen order.
func DedupFindings(findings []Finding) []Finding {
	seen := make(map[string]bool, len(findings))
	unique := make([]Finding, 0, len(findings))

	for _, f := range findings {
		key := f.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, f)
	}

	return unique
}
