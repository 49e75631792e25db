package scanner

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/harrison/strfind/internal/models"
)

// contextRadius is how many characters (or bytes, in the binary pass) of
// surrounding content are captured on each side of a match.
const contextRadius = 50

// lineContextRadius is how many whole lines are captured on each side of
// the matched line.
const lineContextRadius = 2

// textPass decodes content permissively and applies the three pattern
// variants: the escaped literal, the literal up to a closing brace, and the
// literal extended by word characters. Matches of all variants are unioned.
// Offsets are rune offsets into the decoded content.
func (s *Scanner) textPass(data []byte) []models.Finding {
	// Invalid byte sequences are dropped, matching a lossy decode. This
	// never fails, so the text pass always runs.
	content := strings.ToValidUTF8(string(data), "")

	var findings []models.Finding
	for _, expr := range patternVariants(s.cfg.Pattern, s.cfg.CaseSensitive) {
		re, err := regexp.Compile(expr)
		if err != nil {
			// A broken derived variant is skipped; the others still apply.
			s.log.Debugf("skipping pattern variant %q: %v", expr, err)
			continue
		}

		for _, loc := range re.FindAllStringIndex(content, -1) {
			findings = append(findings, buildTextFinding(content, loc[0], loc[1]))
		}
	}

	return findings
}

// patternVariants derives the search expressions for a literal pattern.
// The literal is escaped so user input never injects metacharacters; only
// the two extended variants carry deliberate regex syntax.
func patternVariants(pattern string, caseSensitive bool) []string {
	quoted := regexp.QuoteMeta(pattern)

	variants := []string{
		quoted,             // exact literal
		quoted + `[^}]*\}`, // literal followed by content until }
		quoted + `\w*`,     // literal followed by word characters
	}

	if !caseSensitive {
		for i, v := range variants {
			variants[i] = "(?i)" + v
		}
	}

	return variants
}

func buildTextFinding(content string, start, end int) models.Finding {
	runeStart := utf8.RuneCountInString(content[:start])
	runeEnd := runeStart + utf8.RuneCountInString(content[start:end])

	runes := []rune(content)
	winStart := runeStart - contextRadius
	if winStart < 0 {
		winStart = 0
	}
	winEnd := runeEnd + contextRadius
	if winEnd > len(runes) {
		winEnd = len(runes)
	}

	return models.Finding{
		Kind:        models.KindText,
		Match:       content[start:end],
		Offset:      runeStart,
		Context:     escapeNewlines(string(runes[winStart:winEnd])),
		LineContext: lineContext(content, runeStart),
	}
}

// escapeNewlines flattens a context window onto one display line.
func escapeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\n", `\n`)
	return strings.ReplaceAll(s, "\r", `\r`)
}

// lineContext returns the line holding the given rune position with up to
// two lines on each side, the matched line prefixed with ">>> ".
func lineContext(content string, position int) string {
	lines := strings.Split(content, "\n")
	charCount := 0

	for i, line := range lines {
		lineLen := utf8.RuneCountInString(line)
		if charCount <= position && position <= charCount+lineLen {
			start := i - lineContextRadius
			if start < 0 {
				start = 0
			}
			end := i + lineContextRadius + 1
			if end > len(lines) {
				end = len(lines)
			}

			context := make([]string, end-start)
			copy(context, lines[start:end])
			context[i-start] = ">>> " + context[i-start]

			return strings.Join(context, "\n")
		}
		charCount += lineLen + 1 // +1 for the newline
	}

	return "Line context not found"
}
