package scanner

import (
	"bytes"
	"encoding/hex"
	"strings"

	"github.com/harrison/strfind/internal/models"
)

// binaryPass searches the raw bytes for the UTF-8 encoding of the pattern
// in three case variants. The search advances one byte past each hit, so
// overlapping occurrences at different offsets are all reported. Case
// variants are always tried regardless of the case-sensitivity setting;
// identical variants collapse in dedup.
func (s *Scanner) binaryPass(data []byte) []models.Finding {
	patternBytes := []byte(s.cfg.Pattern)
	variants := [][]byte{
		patternBytes,
		bytes.ToLower(patternBytes),
		bytes.ToUpper(patternBytes),
	}

	var findings []models.Finding
	for _, variant := range variants {
		if len(variant) == 0 {
			continue
		}

		offset := 0
		for {
			rel := bytes.Index(data[offset:], variant)
			if rel < 0 {
				break
			}
			pos := offset + rel

			start := pos - contextRadius
			if start < 0 {
				start = 0
			}
			end := pos + contextRadius
			if end > len(data) {
				end = len(data)
			}
			window := data[start:end]

			findings = append(findings, models.Finding{
				Kind:       models.KindBinary,
				Match:      strings.ToValidUTF8(string(variant), ""),
				Offset:     pos,
				Context:    strings.ToValidUTF8(string(window), ""),
				HexContext: hex.EncodeToString(window),
			})

			offset = pos + 1
		}
	}

	return findings
}
