package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/boogie/pkg/rules"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// PresetListModel - Interactive preset selection
// =============================================================================

// PresetListModel is the bubbletea model for interactive preset selection.
type PresetListModel struct {
	Presets  []string
	Cursor   int
	Selected string
}

// NewPresetListModel creates a preset list with the cursor on initial, or on
// the first preset if initial is unknown.
func NewPresetListModel(initial string) PresetListModel {
	m := PresetListModel{Presets: rules.PresetNames()}
	for i, name := range m.Presets {
		if name == initial {
			m.Cursor = i
		}
	}
	return m
}

func (m PresetListModel) Init() tea.Cmd {
	return nil
}

func (m PresetListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Presets)-1 {
			m.Cursor++
		}
	case "enter":
		if len(m.Presets) > 0 {
			m.Selected = m.Presets[m.Cursor]
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m PresetListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Preset"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	rows := make([][]string, 0, len(m.Presets))
	for i, name := range m.Presets {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		ruleList := ""
		if cfg, err := rules.Preset(name); err == nil {
			ruleList = joinRules(cfg.Rules)
		}
		rows = append(rows, []string{cursor, name, ruleList})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Preset", "Rules").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case row == m.Cursor:
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			return listDimStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	if m.Cursor < len(m.Presets) {
		b.WriteString(listDimStyle.Render("  " + rules.PresetDescription(m.Presets[m.Cursor])))
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Presets))))

	return b.String()
}

// pickPreset runs the preset picker on the terminal. It returns an empty
// name if the user quits without choosing.
func pickPreset(initial string) (string, error) {
	final, err := tea.NewProgram(NewPresetListModel(initial), tea.WithOutput(os.Stderr)).Run()
	if err != nil {
		return "", fmt.Errorf("preset picker: %w", err)
	}
	return final.(PresetListModel).Selected, nil
}
