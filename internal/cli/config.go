package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/boogie/pkg/rules"
)

// configCommand prints or checks rule configurations.
func (c *CLI) configCommand() *cobra.Command {
	var preset string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the TOML configuration of a preset",
		Long: `Print the effective TOML configuration of a preset. The output is a
complete starting point for a custom configuration:

  boogie config --preset classic > boogie.toml
  boogie augment scene.json --config boogie.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rules.Preset(preset)
			if err != nil {
				return err
			}
			data, err := cfg.Encode()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&preset, "preset", "p", rules.DefaultPreset, "preset to print")
	cmd.AddCommand(c.configCheckCommand())

	return cmd
}

func (c *CLI) configCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <config.toml>",
		Short: "Validate a TOML rule configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rules.LoadConfig(args[0])
			if err != nil {
				return err
			}
			printSuccess("%s is valid", args[0])
			printKeyValue("rules", joinRules(cfg.Rules))
			printKeyValue("grid", formatFloat(cfg.Grid))
			printKeyValue("stripes", formatInt(len(cfg.Stripe.Specs)))
			printKeyValue("recolor", swatches(cfg.ColorChange.Palette))
			printKeyValue("dots", swatches(cfg.Dot.Palette))
			return nil
		},
	}
}
