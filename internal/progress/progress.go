// Package progress renders a single-line terminal progress bar for trash
// batches. Batches are sequential and small, so the bar redraws on every
// update instead of rate-limiting.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Bar is a one-line terminal progress bar.
type Bar struct {
	mu         sync.Mutex
	writer     io.Writer
	width      int
	total      int
	current    int
	message    string
	finished   bool
	lastOutput string
}

// NewBar creates a bar for total items, writing to w (os.Stderr if nil).
func NewBar(total int, w io.Writer) *Bar {
	if w == nil {
		w = os.Stderr
	}
	return &Bar{writer: w, width: 30, total: total}
}

// Update sets the completed count and an item message, then redraws.
func (b *Bar) Update(done int, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.finished {
		return
	}
	b.current = done
	b.message = message
	b.display()
}

// Finish draws the final state and moves off the bar's line.
func (b *Bar) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.finished {
		return
	}
	b.finished = true
	b.current = b.total
	b.message = ""
	b.display()
	fmt.Fprint(b.writer, "\n")
}

func (b *Bar) display() {
	var percent float64
	if b.total > 0 {
		percent = float64(b.current) / float64(b.total) * 100
		if percent > 100 {
			percent = 100
		}
	}
	filled := int(float64(b.width) * percent / 100)
	if filled > b.width {
		filled = b.width
	}
	bar := strings.Repeat("=", filled) + strings.Repeat("-", b.width-filled)

	output := fmt.Sprintf("[%s] %.0f%% | %d/%d recordings", bar, percent, b.current, b.total)
	if b.message != "" {
		output = fmt.Sprintf("%s - %s", output, b.message)
	}
	if output != b.lastOutput {
		fmt.Fprintf(b.writer, "\r\033[K%s", output)
		b.lastOutput = output
	}
}
