package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

const progressWidth = 30

// progressBar redraws a single status line as cards are laid out.
type progressBar struct {
	mu   sync.Mutex
	w    io.Writer
	last int
}

func newProgressBar(w io.Writer) *progressBar {
	return &progressBar{w: w, last: -1}
}

func (p *progressBar) update(done, total int) {
	if total <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	filled := done * progressWidth / total
	if filled == p.last && done != total {
		return
	}
	p.last = filled

	bar := styleIconSuccess.Render(strings.Repeat("█", filled)) + styleDim.Render(strings.Repeat("░", progressWidth-filled))
	fmt.Fprintf(p.w, "\r%s %s", bar, styleDim.Render(fmt.Sprintf("%d/%d", done, total)))
	if done == total {
		fmt.Fprintln(p.w)
	}
}
