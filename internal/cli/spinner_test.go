package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/boogie/pkg/observability"
	"github.com/matzehuels/boogie/pkg/rules"
)

// lockedBuffer is a bytes.Buffer safe for the spinner goroutine.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type countingRuleHooks struct {
	observability.NoopPipelineHooks
	mu    sync.Mutex
	rules []string
}

func (h *countingRuleHooks) OnRuleComplete(_ context.Context, rule string, _ int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.rules = append(h.rules, rule)
}

func TestSpinnerShowsRuleProgress(t *testing.T) {
	var out lockedBuffer
	s := startSpinner(context.Background(), &out, "Augmenting scene.json")
	if !strings.Contains(out.String(), "Augmenting scene.json") {
		t.Errorf("first frame not drawn: %q", out.String())
	}

	s.OnRuleComplete(context.Background(), rules.NameDot, 3, time.Millisecond)
	if got, want := s.message(), "dot: 3 changes"; got != want {
		t.Errorf("message = %q, want %q", got, want)
	}
	time.Sleep(3 * spinnerInterval)
	s.Stop()
	s.Stop()

	if !strings.Contains(out.String(), "dot: 3 changes") {
		t.Errorf("rule status never drawn: %q", out.String())
	}
	if !strings.HasSuffix(out.String(), "\r") {
		t.Error("line not cleared after Stop")
	}
}

func TestSpinnerForwardsHooks(t *testing.T) {
	prev := &countingRuleHooks{}
	observability.SetPipelineHooks(prev)
	defer observability.Reset()

	s := startSpinner(context.Background(), &lockedBuffer{}, "x")
	defer s.Stop()
	s.OnRuleComplete(context.Background(), rules.NameColorChange, 1, 0)

	if len(prev.rules) != 1 || prev.rules[0] != rules.NameColorChange {
		t.Errorf("forwarded rules = %v", prev.rules)
	}
}

func TestSpinnerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := startSpinner(ctx, &lockedBuffer{}, "x")
	cancel()

	select {
	case <-s.done:
	case <-time.After(time.Second):
		t.Fatal("spinner still running after cancel")
	}
	s.Stop()
}

func TestAugmentOutputShowsSpinner(t *testing.T) {
	prev := &countingRuleHooks{}
	observability.SetPipelineHooks(prev)
	defer observability.Reset()

	out := filepath.Join(t.TempDir(), "out.json")
	_, status, err := executeStatus(t, "", "augment", sceneFile(t), "-o", out, "--no-cache", "--preset", "nostripes")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(status, "Augmenting scene.json") {
		t.Errorf("status output missing spinner: %q", status)
	}
	if len(prev.rules) != 2 {
		t.Errorf("rules reported through spinner = %v, want 2", prev.rules)
	}
	if observability.Pipeline() != prev {
		t.Error("spinner did not restore the previous hooks")
	}
}

func TestAugmentStdoutHasNoSpinner(t *testing.T) {
	_, status, err := executeStatus(t, sceneJSON, "augment", "--no-cache")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(status, "Augmenting") {
		t.Error("spinner drawn while writing to stdout")
	}
}
