package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/boogie/pkg/observability"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// ruleSpinner animates a status line while a run is in progress. It
// implements observability.PipelineHooks so the line follows the rules as
// they complete; calls are forwarded to the hooks it replaced.
type ruleSpinner struct {
	observability.PipelineHooks

	w     io.Writer
	label string

	mu    sync.Mutex
	msg   string
	frame int
	width int // widest line drawn, for clearing

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// startSpinner draws the first frame immediately and animates until Stop
// or until ctx is done.
func startSpinner(ctx context.Context, w io.Writer, label string) *ruleSpinner {
	s := &ruleSpinner{
		PipelineHooks: observability.Pipeline(),
		w:             w,
		label:         label,
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}
	s.draw()
	go s.loop(ctx)
	return s
}

func (s *ruleSpinner) loop(ctx context.Context) {
	defer close(s.done)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stop:
			return
		case <-ticker.C:
			s.draw()
		}
	}
}

func (s *ruleSpinner) draw() {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := s.label
	if s.msg != "" {
		line += " · " + s.msg
	}
	s.width = max(s.width, len(line)+2)
	fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(spinnerFrames[s.frame%len(spinnerFrames)]), StyleDim.Render(line))
	s.frame++
}

// message returns the current rule status.
func (s *ruleSpinner) message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.msg
}

// OnRuleComplete shows the finished rule and its change count.
func (s *ruleSpinner) OnRuleComplete(ctx context.Context, rule string, changes int, dur time.Duration) {
	s.mu.Lock()
	s.msg = fmt.Sprintf("%s: %d changes", rule, changes)
	s.mu.Unlock()
	s.PipelineHooks.OnRuleComplete(ctx, rule, changes, dur)
}

// Stop ends the animation and clears the line. It is safe to call more
// than once.
func (s *ruleSpinner) Stop() {
	s.once.Do(func() {
		close(s.stop)
		<-s.done
		s.mu.Lock()
		defer s.mu.Unlock()
		fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width))
	})
}
