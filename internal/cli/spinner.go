package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner animates a status line on w while a slow step runs, such as
// laying out a large graph with Graphviz. Nothing is drawn unless w is a
// terminal, so piped output stays clean.
type spinner struct {
	w           io.Writer
	message     string
	interactive bool

	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

func newSpinner(w io.Writer, message string) *spinner {
	return &spinner{
		w:           w,
		message:     message,
		interactive: isTerminal(w),
		done:        make(chan struct{}),
		stopped:     make(chan struct{}),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// start draws frames until stop is called or ctx is done.
func (s *spinner) start(ctx context.Context) {
	if !s.interactive {
		close(s.stopped)
		return
	}
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-ctx.Done():
				return
			case <-s.done:
				return
			case <-ticker.C:
				frame := spinnerFrames[i%len(spinnerFrames)]
				fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
			}
		}
	}()
}

// stop ends the animation and clears the line. It may be called more than once.
func (s *spinner) stop() {
	s.once.Do(func() {
		close(s.done)
		<-s.stopped
		if s.interactive {
			fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
		}
	})
}

// spin runs step with a spinner showing message on w.
func spin(ctx context.Context, w io.Writer, message string, step func() error) error {
	s := newSpinner(w, message)
	s.start(ctx)
	defer s.stop()
	return step()
}
