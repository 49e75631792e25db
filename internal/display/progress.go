// Package display renders transient progress output and warning boxes for
// the console. Raw ANSI codes are used here; the persisted report never goes
// through this package.
package display

import (
	"fmt"
	"io"

	"github.com/harrison/strfind/internal/fileutil"
)

// pathDisplayWidth is how much of a path the progress line shows. The tail
// is kept so the filename stays visible.
const pathDisplayWidth = 50

// ScanProgress renders an in-place progress line while files are scanned.
type ScanProgress struct {
	writer     io.Writer
	totalFiles int
	current    int
}

// NewScanProgress creates a progress indicator for total files.
func NewScanProgress(w io.Writer, total int) *ScanProgress {
	return &ScanProgress{
		writer:     w,
		totalFiles: total,
	}
}

// Step advances the indicator and redraws the progress line for path.
// The line is rewritten in place with a carriage return.
func (p *ScanProgress) Step(path string) {
	p.current++
	tail := fileutil.TruncateTail(path, pathDisplayWidth)
	fmt.Fprintf(p.writer, "\r\x1b[36m[%3d/%d] Scanning: %-*s\x1b[0m", p.current, p.totalFiles, pathDisplayWidth, tail)
}

// Finish terminates the in-place line and prints a divider.
func (p *ScanProgress) Finish() {
	fmt.Fprintf(p.writer, "\n%s\n", Divider('-', 40))
}

// Divider returns a horizontal rule of n copies of c.
func Divider(c rune, n int) string {
	line := make([]rune, n)
	for i := range line {
		line[i] = c
	}
	return string(line)
}
