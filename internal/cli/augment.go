package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boogie/pkg/errors"
	"github.com/matzehuels/boogie/pkg/observability"
	"github.com/matzehuels/boogie/pkg/pipeline"
	"github.com/matzehuels/boogie/pkg/rules"
	"github.com/matzehuels/boogie/pkg/scene"
)

// stdinName is the file argument that selects standard input.
const stdinName = "-"

// augmentOpts holds the command-line flags for the augment command.
type augmentOpts struct {
	seed    uint64
	preset  string
	config  string // TOML file, overrides preset
	output  string // output file (stdout if empty)
	sort    bool
	noCache bool
	refresh bool
	pick    bool
	quiet   bool
}

func (c *CLI) augmentCommand() *cobra.Command {
	opts := augmentOpts{seed: pipeline.DefaultSeed, preset: rules.DefaultPreset}

	cmd := &cobra.Command{
		Use:   "augment [scene.json]",
		Short: "Apply generative rules to a scene document",
		Long: `Apply the rules of a preset (or a TOML configuration) to a JSON scene
document and write the augmented scene.

The input is read from standard input when the file is "-" or omitted.

Examples:
  boogie augment scene.json -o out.json
  boogie augment scene.json --seed 7 --preset classic
  cat scene.json | boogie augment --config boogie.toml > out.json
  boogie augment scene.json --pick -o out.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := stdinName
			if len(args) == 1 {
				input = args[0]
			}
			return c.runAugment(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), input, &opts)
		},
	}

	cmd.Flags().Uint64Var(&opts.seed, "seed", opts.seed, "random seed (0 is a valid seed)")
	cmd.Flags().StringVarP(&opts.preset, "preset", "p", opts.preset, "rule preset")
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "TOML rule configuration (overrides --preset)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.sort, "sort", false, "sort shapes into paint order before applying rules")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if a cached result exists")
	cmd.Flags().BoolVar(&opts.pick, "pick", false, "choose the preset interactively")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress the run summary")

	cmd.RegisterFlagCompletionFunc("preset", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return rules.PresetNames(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func (c *CLI) runAugment(ctx context.Context, stdin io.Reader, stdout io.Writer, input string, opts *augmentOpts) error {
	if opts.pick {
		if input == stdinName {
			return errors.New(errors.ErrCodeInvalidInput, "--pick needs a file argument, standard input is used by the picker")
		}
		if opts.config != "" {
			return errors.New(errors.ErrCodeInvalidInput, "--pick and --config are mutually exclusive")
		}
		name, err := pickPreset(opts.preset)
		if err != nil {
			return err
		}
		if name == "" {
			printWarning("No preset selected")
			return nil
		}
		opts.preset = name
	}

	doc, err := readScene(stdin, input)
	if err != nil {
		return err
	}

	popts := pipeline.Options{
		Seed:    opts.seed,
		SeedSet: true,
		Preset:  opts.preset,
		Sort:    opts.sort,
		Refresh: opts.refresh,
	}
	if opts.config != "" {
		cfg, err := rules.LoadConfig(opts.config)
		if err != nil {
			return err
		}
		popts.Config = cfg
		popts.Preset = filepath.Base(opts.config)
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	start := time.Now()
	res, err := augmentWithSpinner(ctx, runner, doc, popts, opts.output != "" && !opts.quiet, displayName(input))
	if err != nil {
		return err
	}

	if err := writeScene(stdout, opts.output, res.Document); err != nil {
		return err
	}
	logRun(c.Logger, displayName(input), res, start)

	if !opts.quiet {
		printResult(res, opts.output)
	}
	return nil
}

// augmentWithSpinner runs the pipeline, showing per-rule progress on the
// status output when spin is set.
func augmentWithSpinner(ctx context.Context, runner *pipeline.Runner, doc *scene.Document, opts pipeline.Options, spin bool, name string) (*pipeline.Result, error) {
	if !spin {
		return runner.Augment(ctx, doc, opts)
	}
	s := startSpinner(ctx, statusOut, "Augmenting "+name)
	observability.SetPipelineHooks(s)
	defer func() {
		observability.SetPipelineHooks(s.PipelineHooks)
		s.Stop()
	}()
	return runner.Augment(ctx, doc, opts)
}

// readScene decodes the scene at path, or from stdin when path is "-".
func readScene(stdin io.Reader, path string) (*scene.Document, error) {
	if path == stdinName {
		doc, err := scene.ReadJSON(stdin)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "read scene from stdin")
		}
		return doc, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "scene file not found: %s", path)
	}
	doc, err := scene.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "read scene %s", path)
	}
	return doc, nil
}

// writeScene encodes doc to path, or to stdout when path is empty.
func writeScene(stdout io.Writer, path string, doc *scene.Document) error {
	if path == "" {
		return scene.WriteJSON(stdout, doc)
	}
	if err := scene.WriteFile(path, doc); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func printResult(res *pipeline.Result, output string) {
	printSuccess("Applied %s %s", StyleValue.Render(res.Preset), StyleDim.Render(fmt.Sprintf("(seed %d)", res.Seed)))
	printStats(res.Stats.Before, res.Stats.After, res.CacheHit)
	printReports(res.Reports)
	if output != "" {
		printFile(output)
	}
}

func displayName(input string) string {
	if input == stdinName {
		return "stdin"
	}
	return filepath.Base(input)
}
