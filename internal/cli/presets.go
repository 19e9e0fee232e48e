package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/boogie/pkg/rules"
)

func (c *CLI) presetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the built-in rule presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := presetTable()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), t)
			printNextStep("Show a preset's configuration", "boogie config --preset <name>")
			return nil
		},
	}
}

// presetTable renders every preset with its rule order.
func presetTable() (string, error) {
	names := rules.PresetNames()
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		cfg, err := rules.Preset(name)
		if err != nil {
			return "", err
		}
		label := name
		if name == rules.DefaultPreset {
			label += " (default)"
		}
		rows = append(rows, []string{label, joinRules(cfg.Rules), swatches(cfg.ColorChange.Palette), rules.PresetDescription(name)})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Preset", "Rules", "Recolor", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorCyan)
			case col == 3:
				return StyleDim
			}
			return StyleValue
		}).
		Render(), nil
}
