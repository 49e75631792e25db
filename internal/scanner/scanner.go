// Package scanner implements the two-pass pattern search: a text pass over
// permissively decoded content and a binary pass over raw bytes. Every file
// gets both passes; findings are deduplicated by (kind, offset, match).
package scanner

import (
	"os"

	"github.com/google/uuid"
	"github.com/harrison/strfind/internal/config"
	"github.com/harrison/strfind/internal/fileutil"
	"github.com/harrison/strfind/internal/logger"
	"github.com/harrison/strfind/internal/models"
)

// Scanner runs pattern searches according to an immutable per-run Config.
type Scanner struct {
	cfg config.Config
	log *logger.ConsoleLogger
}

// New creates a Scanner. log may be nil-writer backed; it only receives
// diagnostics (read failures, skipped pattern variants).
func New(cfg config.Config, log *logger.ConsoleLogger) *Scanner {
	return &Scanner{cfg: cfg, log: log}
}

// ProgressFunc is called once per file before it is scanned.
type ProgressFunc func(index, total int, path string)

// Run enumerates files under the configured root and scans each one,
// collecting results for files with at least one finding. progress may be
// nil. Returns an error only when the root directory cannot be enumerated.
func (s *Scanner) Run(progress ProgressFunc) (*models.ScanSummary, error) {
	enum, err := fileutil.Enumerate(s.cfg.RootDirectory, fileutil.Options{
		Recursive:   s.cfg.Recursive,
		ExcludeDirs: s.cfg.ExcludeDirs,
	})
	if err != nil {
		return nil, err
	}

	for _, enumErr := range enum.Errors {
		s.log.Debugf("enumeration: %v", enumErr)
	}

	summary := &models.ScanSummary{
		ScanID:     uuid.NewString(),
		TotalFiles: len(enum.Files),
	}

	for i, path := range enum.Files {
		if progress != nil {
			progress(i+1, len(enum.Files), path)
		}

		findings := s.ScanFile(path)
		if len(findings) == 0 {
			continue
		}

		var size int64
		if info, err := os.Stat(path); err == nil {
			size = info.Size()
		}

		summary.Results = append(summary.Results, models.FileResult{
			Path:      path,
			SizeBytes: size,
			Findings:  findings,
		})
	}

	return summary, nil
}

// ScanFile searches a single file with both passes and returns the deduped
// findings. Read errors make the file contribute zero findings; the error
// is logged, never propagated.
func (s *Scanner) ScanFile(path string) []models.Finding {
	data, err := os.ReadFile(path)
	if err != nil {
		s.log.Warnf("error reading %s: %v", path, err)
		return nil
	}

	findings := s.textPass(data)
	findings = append(findings, s.binaryPass(data)...)

	return models.DedupFindings(findings)
}
