package scanner

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/harrison/strfind/internal/config"
	"github.com/harrison/strfind/internal/fileutil"
)

// quickSearchLimit caps how many files the suggestion pass reads. The cap is
// surfaced to the user so partial results are not mistaken for a full scan.
const quickSearchLimit = 50

// AlternatePatterns is the fixed list tried by the fallback suggestion pass
// when a default-pattern scan finds nothing.
var AlternatePatterns = []string{"HTB", "flag{", "FLAG{", "ctf{", "CTF{", "{", "}"}

// Suggestion reports which files contain one alternate pattern.
type Suggestion struct {
	Pattern string
	Files   []string // base filenames, in enumeration order
}

// ShouldSuggest reports whether the fallback suggestion pass applies: the
// run found nothing and the pattern was the default.
func ShouldSuggest(cfg config.Config, matchedFiles int) bool {
	return matchedFiles == 0 && cfg.Pattern == config.DefaultPattern
}

// SuggestAlternates runs QuickSearch for every alternate pattern and
// returns the suggestions that found at least one file.
func (s *Scanner) SuggestAlternates() []Suggestion {
	var suggestions []Suggestion
	for _, alt := range AlternatePatterns {
		files := s.QuickSearch(alt)
		if len(files) == 0 {
			continue
		}
		suggestions = append(suggestions, Suggestion{Pattern: alt, Files: files})
	}
	return suggestions
}

// QuickSearch is a lightweight containment check used only for suggestions:
// case-insensitive substring search over at most the first 50 enumerated
// files, decoded text first, raw bytes as fallback. No context is captured.
func (s *Scanner) QuickSearch(pattern string) []string {
	enum, err := fileutil.Enumerate(s.cfg.RootDirectory, fileutil.Options{
		Recursive:   s.cfg.Recursive,
		ExcludeDirs: s.cfg.ExcludeDirs,
	})
	if err != nil {
		return nil
	}

	files := enum.Files
	if len(files) > quickSearchLimit {
		files = files[:quickSearchLimit]
	}

	lowerPattern := strings.ToLower(pattern)
	var found []string

	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		text := strings.ToValidUTF8(string(data), "")
		if strings.Contains(strings.ToLower(text), lowerPattern) {
			found = append(found, filepath.Base(path))
			continue
		}
		if bytes.Contains(bytes.ToLower(data), []byte(lowerPattern)) {
			found = append(found, filepath.Base(path))
		}
	}

	return found
}
