package tools

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/golang/glog"
	"github.com/mattn/go-isatty"
)

// Progress renders the completion percentage of a long running step. On a terminal it
// redraws a single line, otherwise it logs every 10%.
type Progress struct {
	mu       sync.Mutex
	label    string
	out      io.Writer
	terminal bool
	last     int
}

// NewProgress returns a Progress writing to stderr.
func NewProgress(label string) *Progress {
	fd := os.Stderr.Fd()
	return newProgress(label, os.Stderr, isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
}

func newProgress(label string, out io.Writer, terminal bool) *Progress {
	return &Progress{label: label, out: out, terminal: terminal, last: -1}
}

// Update reports done out of total units of work.
func (p *Progress) Update(done, total int) {
	if p == nil || !isEnabled {
		return
	}
	percent := 100
	if total > 0 {
		percent = int(100 * int64(done) / int64(total))
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if percent == p.last {
		return
	}
	if p.terminal {
		fmt.Fprintf(p.out, "\r%s... %d%%", p.label, percent)
		if percent == 100 {
			fmt.Fprintln(p.out)
		}
	} else if p.last < 0 || percent/10 != p.last/10 || percent == 100 {
		glog.Infof("%s: %d%%", p.label, percent)
	}
	p.last = percent
}

// Func adapts Update to a callback. A nil Progress yields a nil callback.
func (p *Progress) Func() func(done, total int) {
	if p == nil {
		return nil
	}
	return p.Update
}
