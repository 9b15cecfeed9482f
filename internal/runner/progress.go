package runner

import (
	"fmt"
	"io"
	"strings"
)

const (
	progressPrefix = "Progress: "
	progressWidth  = 60
	progressFilled = '█'
	progressEmpty  = '.'
)

// ProgressBar is a single-line console progress display, redrawn in place
// with a carriage return. It is not safe for concurrent use; the collector
// that owns the report state is its only writer.
type ProgressBar struct {
	total   int
	out     io.Writer
	lastLen int
}

// NewProgressBar builds a bar for total jobs writing to out.
func NewProgressBar(total int, out io.Writer) *ProgressBar {
	return &ProgressBar{total: total, out: out}
}

// Draw renders the bar at current completed jobs.
func (p *ProgressBar) Draw(current int) {
	if current < 0 || current > p.total || p.total == 0 {
		return
	}

	ratio := float64(current) / float64(p.total)
	filled := int(ratio * progressWidth)
	percent := int(ratio * 100)

	var b strings.Builder
	b.WriteString(progressPrefix)
	b.WriteByte('[')
	for i := 0; i < progressWidth; i++ {
		if i < filled {
			b.WriteRune(progressFilled)
		} else {
			b.WriteByte(progressEmpty)
		}
	}
	fmt.Fprintf(&b, "] %3d%% (%d/%d)", percent, current, p.total)

	p.Clear()
	fmt.Fprintf(p.out, "%s\r", b.String())
	p.lastLen = len([]rune(b.String()))
}

// Clear blanks the bar so it no longer shows through subsequent output.
func (p *ProgressBar) Clear() {
	if p.lastLen == 0 {
		return
	}
	fmt.Fprintf(p.out, "%s\r", strings.Repeat(" ", p.lastLen))
	p.lastLen = 0
}
