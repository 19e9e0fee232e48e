package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/boogie/pkg/errors"
	"github.com/matzehuels/boogie/pkg/pipeline"
	"github.com/matzehuels/boogie/pkg/rules"
	"github.com/matzehuels/boogie/pkg/scene"
)

const sceneJSON = `{
  "width": 300, "height": 300,
  "shapes": [
    {"type": "rect", "x": 0, "y": 0, "width": 300, "height": 300, "fill": "#EAECEC"},
    {"type": "rect", "x": 0, "y": 0, "width": 100, "height": 100, "fill": "#C53018"},
    {"type": "rect", "x": 100, "y": 0, "width": 100, "height": 100, "fill": "#1A56A4"},
    {"type": "rect", "x": 0, "y": 100, "width": 100, "height": 100, "fill": "#F0CF00"},
    {"type": "path", "d": "M 200 200 L 250 200 L 250 250 Z", "fill": "#131533"}
  ]
}`

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	out, _, err := executeStatus(t, stdin, args...)
	return out, err
}

// executeStatus is execute that also returns the status output.
func executeStatus(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var status bytes.Buffer
	prev := statusOut
	statusOut = &status
	t.Cleanup(func() { statusOut = prev })

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), status.String(), err
}

func sceneFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.json")
	if err := os.WriteFile(path, []byte(sceneJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	dir, err := cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/xdg", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}

	t.Setenv("XDG_CACHE_HOME", "")
	dir, err = cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestLogRun(t *testing.T) {
	res := &pipeline.Result{
		Preset: "victory",
		Seed:   9,
		Reports: []rules.Report{
			{Rule: rules.NameColorChange, Recolored: 2},
			{Rule: rules.NameDot, Decorated: 1},
		},
	}

	var info bytes.Buffer
	logRun(newLogger(&info, log.InfoLevel), "scene.json", res, time.Now())
	if !strings.Contains(info.String(), "augmented scene.json") {
		t.Errorf("info output = %q", info.String())
	}
	if strings.Contains(info.String(), rules.NameDot) {
		t.Error("per-rule lines logged at info level")
	}

	var debug bytes.Buffer
	logRun(newLogger(&debug, log.DebugLevel), "scene.json", res, time.Now())
	for _, r := range res.Reports {
		if !strings.Contains(debug.String(), r.Rule) {
			t.Errorf("debug output missing rule %s", r.Rule)
		}
	}
}

func TestAugmentFile(t *testing.T) {
	in := sceneFile(t)
	dir := t.TempDir()

	run := func(name string) []byte {
		t.Helper()
		out := filepath.Join(dir, name)
		if _, err := execute(t, "", "augment", in, "-o", out, "--no-cache", "--seed", "5"); err != nil {
			t.Fatal(err)
		}
		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatal(err)
		}
		return data
	}

	a, b := run("a.json"), run("b.json")
	if !bytes.Equal(a, b) {
		t.Error("same seed produced different files")
	}
	doc, err := scene.Unmarshal(a)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Shapes) < 5 {
		t.Errorf("shapes = %d, want at least 5", len(doc.Shapes))
	}
}

func TestAugmentStdin(t *testing.T) {
	out, err := execute(t, sceneJSON, "augment", "--no-cache", "--preset", "nostripes", "-q")
	if err != nil {
		t.Fatal(err)
	}
	doc, err := scene.Unmarshal([]byte(out))
	if err != nil {
		t.Fatalf("stdout is not a scene: %v", err)
	}
	for _, s := range doc.Shapes {
		if s.IsControlledStripe {
			t.Error("nostripes preset produced a stripe")
		}
	}
}

func TestAugmentConfigFile(t *testing.T) {
	cfg := rules.DefaultConfig()
	cfg.Rules = []string{rules.NameColorChange}
	data, err := cfg.Encode()
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "boogie.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, sceneJSON, "augment", "-", "--no-cache", "--config", path)
	if err != nil {
		t.Fatal(err)
	}
	doc, err := scene.Unmarshal([]byte(out))
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Shapes) != 5 {
		t.Errorf("color change alone added shapes: %d", len(doc.Shapes))
	}
}

func TestAugmentErrors(t *testing.T) {
	in := sceneFile(t)
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"missing file", []string{"augment", "nope.json", "--no-cache"}, errors.ErrCodeFileNotFound},
		{"unknown preset", []string{"augment", in, "--no-cache", "--preset", "cubist"}, errors.ErrCodeInvalidPreset},
		{"pick with stdin", []string{"augment", "--pick"}, errors.ErrCodeInvalidInput},
		{"pick with config", []string{"augment", in, "--pick", "--config", "x.toml"}, errors.ErrCodeInvalidInput},
		{"missing config", []string{"augment", in, "--no-cache", "--config", "missing.toml"}, errors.ErrCodeFileNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, "", tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}

	if _, err := execute(t, "not json", "augment", "--no-cache"); !errors.Is(err, errors.ErrCodeInvalidScene) {
		t.Errorf("malformed stdin: err = %v", err)
	}
}

func TestCacheCommands(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	out, err := execute(t, "", "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := strings.TrimSpace(out), filepath.Join(xdg, appName); got != want {
		t.Errorf("cache path = %q, want %q", got, want)
	}

	if _, err := execute(t, sceneJSON, "augment", "-q"); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(filepath.Join(xdg, appName))
	if err != nil || len(entries) == 0 {
		t.Fatalf("cache not written: %v", err)
	}

	if _, err := execute(t, "", "cache", "clear"); err != nil {
		t.Fatal(err)
	}
	entries, _ = os.ReadDir(filepath.Join(xdg, appName))
	for _, e := range entries {
		if !e.IsDir() {
			t.Errorf("entry %s survived clear", e.Name())
		}
	}
}

func TestConfigCommand(t *testing.T) {
	out, err := execute(t, "", "config", "--preset", "classic")
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := rules.ParseConfig([]byte(out))
	if err != nil {
		t.Fatalf("printed config does not parse: %v", err)
	}
	want, _ := rules.Preset("classic")
	if cfg.ColorChange.Palette[0] != want.ColorChange.Palette[0] {
		t.Errorf("palette = %v, want %v", cfg.ColorChange.Palette, want.ColorChange.Palette)
	}

	path := filepath.Join(t.TempDir(), "classic.toml")
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "", "config", "check", path); err != nil {
		t.Errorf("config check: %v", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(bad, []byte("grid_unit = -1.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "", "config", "check", bad); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("bad config: err = %v", err)
	}
}

func TestPresetsCommand(t *testing.T) {
	out, err := execute(t, "", "presets")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range rules.PresetNames() {
		if !strings.Contains(out, name) {
			t.Errorf("preset %q missing from listing", name)
		}
	}
}

func TestReportTable(t *testing.T) {
	got := reportTable([]rules.Report{
		{Rule: rules.NameColorChange, Recolored: 2},
		{Rule: rules.NameDot, Decorated: 1, Skipped: 3},
	})
	for _, want := range []string{rules.NameColorChange, rules.NameDot, "Skipped"} {
		if !strings.Contains(got, want) {
			t.Errorf("table missing %q:\n%s", want, got)
		}
	}
}

func TestPresetListModel(t *testing.T) {
	key := func(s string) tea.KeyMsg {
		switch s {
		case "enter":
			return tea.KeyMsg{Type: tea.KeyEnter}
		case "down":
			return tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			return tea.KeyMsg{Type: tea.KeyUp}
		}
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	names := rules.PresetNames()

	m := NewPresetListModel(rules.DefaultPreset)
	if m.Presets[m.Cursor] != rules.DefaultPreset {
		t.Errorf("initial cursor on %q", m.Presets[m.Cursor])
	}

	m = NewPresetListModel("unknown")
	if m.Cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.Cursor)
	}
	next, _ := m.Update(key("up"))
	next, _ = next.Update(key("down"))
	next, cmd := next.Update(key("enter"))
	if got := next.(PresetListModel).Selected; got != names[1] {
		t.Errorf("selected = %q, want %q", got, names[1])
	}
	if cmd == nil {
		t.Error("enter should quit")
	}

	quit, _ := NewPresetListModel("").Update(key("q"))
	if quit.(PresetListModel).Selected != "" {
		t.Error("quitting selected a preset")
	}
	if view := m.View(); !strings.Contains(view, names[0]) {
		t.Errorf("view missing %q", names[0])
	}
}

func TestSwatches(t *testing.T) {
	got := swatches([]string{"#F0CF00", "#131533"})
	for _, hex := range []string{"#F0CF00", "#131533"} {
		if !strings.Contains(got, hex) {
			t.Errorf("swatches missing %s: %q", hex, got)
		}
	}
}
