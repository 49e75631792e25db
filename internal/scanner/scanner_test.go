package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/strfind/internal/config"
	"github.com/harrison/strfind/internal/logger"
	"github.com/harrison/strfind/internal/models"
)

func newTestScanner(cfg config.Config) *Scanner {
	return New(cfg, logger.NewConsoleLogger(nil, "error"))
}

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func findingsOfKind(findings []models.Finding, kind models.FindingKind) []models.Finding {
	var out []models.Finding
	for _, f := range findings {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

func TestScanFileNoMatch(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "clean.txt", []byte("nothing interesting here\n"))

	s := newTestScanner(config.Config{Pattern: "HTB{"})
	findings := s.ScanFile(path)

	assert.Empty(t, findings)
}

func TestScanFileTextAndBinaryFindings(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", []byte("xxHTB{abc}yy"))

	s := newTestScanner(config.Config{Pattern: "HTB{"})
	findings := s.ScanFile(path)

	text := findingsOfKind(findings, models.KindText)
	binary := findingsOfKind(findings, models.KindBinary)

	// The literal, the until-} variant and the word-characters variant all
	// hit at offset 2; the binary pass adds one occurrence (upper variant
	// duplicates the literal and collapses in dedup).
	var matches []string
	for _, f := range text {
		assert.Equal(t, 2, f.Offset)
		matches = append(matches, f.Match)
	}
	assert.Contains(t, matches, "HTB{")
	assert.Contains(t, matches, "HTB{abc}")
	assert.Contains(t, matches, "HTB{abc")

	require.Len(t, binary, 1)
	assert.Equal(t, "HTB{", binary[0].Match)
	assert.Equal(t, 2, binary[0].Offset)
	assert.NotEmpty(t, binary[0].HexContext)
}

func TestScanFileKnownTextOffset(t *testing.T) {
	dir := t.TempDir()
	// Pattern starts at character offset 10.
	path := writeFile(t, dir, "offset.txt", []byte("0123456789HTB{x}"))

	s := newTestScanner(config.Config{Pattern: "HTB{"})
	findings := findingsOfKind(s.ScanFile(path), models.KindText)

	require.NotEmpty(t, findings)
	for _, f := range findings {
		assert.Equal(t, 10, f.Offset)
		assert.True(t, len(f.Match) >= len("HTB{"), "match %q should start with the pattern", f.Match)
	}
}

func TestScanFileBinaryLowercaseVariant(t *testing.T) {
	dir := t.TempDir()
	// Invalid UTF-8 prefix: the text pass sees shifted content, the binary
	// pass must still report the true byte offset.
	content := append([]byte{0xff, 0xfe}, []byte("htb{test}")...)
	path := writeFile(t, dir, "b.bin", content)

	s := newTestScanner(config.Config{Pattern: "HTB{"})
	binary := findingsOfKind(s.ScanFile(path), models.KindBinary)

	require.Len(t, binary, 1)
	assert.Equal(t, "htb{", binary[0].Match)
	assert.Equal(t, 2, binary[0].Offset)
}

func TestBinaryPassOverlappingOccurrences(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "overlap.bin", append([]byte{0xff}, []byte("aaaa")...))

	s := newTestScanner(config.Config{Pattern: "aa", CaseSensitive: true})
	binary := findingsOfKind(s.ScanFile(path), models.KindBinary)

	// The search advances one byte past each hit, so "aaaa" holds "aa" at
	// byte offsets 1, 2 and 3.
	var offsets []int
	for _, f := range binary {
		offsets = append(offsets, f.Offset)
	}
	assert.ElementsMatch(t, []int{1, 2, 3}, offsets)
}

func TestCaseSensitiveTextPass(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "lower.txt", []byte("htb{shout}"))

	s := newTestScanner(config.Config{Pattern: "HTB{", CaseSensitive: true})
	findings := s.ScanFile(path)

	// No text findings for the wrong case, but the binary pass always tries
	// the case variants.
	assert.Empty(t, findingsOfKind(findings, models.KindText))
	binary := findingsOfKind(findings, models.KindBinary)
	require.Len(t, binary, 1)
	assert.Equal(t, "htb{", binary[0].Match)
}

func TestCaseInsensitiveTextPass(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "lower.txt", []byte("htb{quiet}"))

	s := newTestScanner(config.Config{Pattern: "HTB{"})
	text := findingsOfKind(s.ScanFile(path), models.KindText)

	require.NotEmpty(t, text)
	assert.Equal(t, 0, text[0].Offset)
}

func TestPatternMetacharactersAreLiteral(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "dots.txt", []byte("axb is not a.b\n"))

	s := newTestScanner(config.Config{Pattern: "a.b"})
	text := findingsOfKind(s.ScanFile(path), models.KindText)

	// "a.b" must match only the literal occurrence at offset 11, never "axb".
	require.NotEmpty(t, text)
	for _, f := range text {
		assert.Equal(t, 11, f.Offset)
	}
}

func TestIdenticalVariantsCollapse(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "brace.bin", append([]byte{0xff}, '{'))

	s := newTestScanner(config.Config{Pattern: "{"})
	binary := findingsOfKind(s.ScanFile(path), models.KindBinary)

	// "{" has no case variants, so the three searches find the same
	// occurrence and dedup keeps one.
	require.Len(t, binary, 1)
	assert.Equal(t, 1, binary[0].Offset)
}

func TestTextContextWindow(t *testing.T) {
	dir := t.TempDir()
	content := "line one\nline two\nxxHTB{ctx}yy\nline four\nline five\nline six\n"
	path := writeFile(t, dir, "ctx.txt", []byte(content))

	s := newTestScanner(config.Config{Pattern: "HTB{"})
	text := findingsOfKind(s.ScanFile(path), models.KindText)
	require.NotEmpty(t, text)

	f := text[0]
	// Newlines in the flat context are escaped for display.
	assert.Contains(t, f.Context, `\n`)
	assert.NotContains(t, f.Context, "\n")

	// The line block marks the matched line and carries two lines on each side.
	assert.Contains(t, f.LineContext, ">>> xxHTB{ctx}yy")
	assert.Contains(t, f.LineContext, "line one")
	assert.Contains(t, f.LineContext, "line two")
	assert.Contains(t, f.LineContext, "line four")
	assert.Contains(t, f.LineContext, "line five")
	assert.NotContains(t, f.LineContext, "line six")
}

func TestLineContextAtFileStart(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "first.txt", []byte("HTB{top}\nsecond\nthird\nfourth\n"))

	s := newTestScanner(config.Config{Pattern: "HTB{"})
	text := findingsOfKind(s.ScanFile(path), models.KindText)
	require.NotEmpty(t, text)

	assert.Contains(t, text[0].LineContext, ">>> HTB{top}")
	assert.Contains(t, text[0].LineContext, "second")
	assert.Contains(t, text[0].LineContext, "third")
	assert.NotContains(t, text[0].LineContext, "fourth")
}

func TestScanFileUnreadable(t *testing.T) {
	s := newTestScanner(config.Config{Pattern: "HTB{"})
	findings := s.ScanFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Empty(t, findings)
}

func TestRunCollectsOnlyMatchingFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "hit.txt", []byte("xxHTB{abc}yy"))
	writeFile(t, dir, "miss.txt", []byte("nothing"))
	writeFile(t, dir, "alsohit.bin", append([]byte{0xff}, []byte("HTB{bin}")...))

	cfg := config.Config{RootDirectory: dir, Pattern: "HTB{", Recursive: true}
	s := newTestScanner(cfg)

	var progressPaths []string
	summary, err := s.Run(func(index, total int, path string) {
		assert.Equal(t, 3, total)
		progressPaths = append(progressPaths, path)
	})
	require.NoError(t, err)

	assert.NotEmpty(t, summary.ScanID)
	assert.Equal(t, 3, summary.TotalFiles)
	assert.Equal(t, 2, summary.MatchedFiles())
	assert.Len(t, progressPaths, 3)

	for _, result := range summary.Results {
		assert.Positive(t, result.SizeBytes)
		assert.NotEmpty(t, result.Findings)
	}
}

func TestRunMissingDirectory(t *testing.T) {
	cfg := config.Config{RootDirectory: filepath.Join(t.TempDir(), "gone"), Pattern: "HTB{"}
	s := newTestScanner(cfg)

	_, err := s.Run(nil)
	assert.Error(t, err)
}

func TestRunNonRecursive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "top.txt", []byte("HTB{top}"))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))
	writeFile(t, filepath.Join(dir, "sub"), "deep.txt", []byte("HTB{deep}"))

	cfg := config.Config{RootDirectory: dir, Pattern: "HTB{", Recursive: false}
	summary, err := newTestScanner(cfg).Run(nil)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.TotalFiles)
	assert.Equal(t, 1, summary.MatchedFiles())
}
