package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kpauljoseph/printcards/internal/config"
	"github.com/kpauljoseph/printcards/internal/generator"
	"github.com/kpauljoseph/printcards/internal/scanner"
)

type generateOptions struct {
	layout           layoutFlags
	fontA            int
	fontB            int
	fontTag          int
	output           string
	dir              string
	noMerge          bool
	keepIntermediate bool
	yes              bool
}

func newGenerateCmd(a *app) *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate [deck.csv]",
		Short: "Lay out a deck and write the printable PDF",
		Example: `  printcards generate deck.csv
  printcards generate deck.csv --paper A5 --card-width 5 --card-height 3 -o out/cards.pdf
  printcards generate --dir decks/ --yes`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			opts.apply(cmd, cfg)
			if len(args) == 1 {
				cfg.Input = args[0]
			}

			if opts.dir != "" {
				return a.generateDir(cmd, cfg, opts)
			}
			if cfg.Input == "" {
				return fmt.Errorf("no deck given: pass a CSV file, set input in the config, or use --dir")
			}
			return a.generateOne(cmd, cfg, opts.yes)
		},
	}

	opts.layout.register(cmd)
	cmd.Flags().IntVar(&opts.fontA, "font-a", 0, "side A font size in points")
	cmd.Flags().IntVar(&opts.fontB, "font-b", 0, "side B font size in points")
	cmd.Flags().IntVar(&opts.fontTag, "font-tag", 0, "tag font size in points (default derived from --font-a)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output PDF path")
	cmd.Flags().StringVar(&opts.dir, "dir", "", "generate every CSV deck found under this directory")
	cmd.Flags().BoolVar(&opts.noMerge, "no-merge", false, "keep front and back as separate files")
	cmd.Flags().BoolVar(&opts.keepIntermediate, "keep-intermediate", false, "keep the front and back files after merging")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func (o *generateOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	o.layout.apply(cmd, cfg)
	if cmd.Flags().Changed("font-a") {
		cfg.Fonts.SideA = o.fontA
	}
	if cmd.Flags().Changed("font-b") {
		cfg.Fonts.SideB = o.fontB
	}
	if cmd.Flags().Changed("font-tag") {
		cfg.Fonts.Tag = o.fontTag
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = o.output
	}
	if o.noMerge {
		cfg.Merge = config.Bool(false)
	}
	if o.keepIntermediate {
		cfg.KeepIntermediate = true
	}
}

func (a *app) generateOne(cmd *cobra.Command, cfg *config.Config, yes bool) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	bar := newProgressBar(cmd.ErrOrStderr())
	gen := generator.FromConfig(cfg, a.log, generator.WithProgress(bar.update))

	records, err := gen.Load(ctx, cfg)
	if err != nil {
		fmt.Fprintln(out, renderFieldErrors(err))
		return err
	}

	plan, err := generator.NewPlan(cfg, len(records))
	if err != nil {
		return err
	}
	fmt.Fprintln(out, renderPlan(plan))
	fmt.Fprintln(out, renderGrid(plan.Layout))

	if !yes {
		ok, err := confirm(a.input(cmd), out, "Generate?")
		if err != nil {
			return err
		}
		if !ok {
			printInfo(out, "Cancelled")
			return nil
		}
	}

	report, err := gen.Generate(ctx, cfg, records)
	if err != nil {
		return err
	}
	printReport(out, report)
	return nil
}

// generateDir prints each deck under opts.dir to <output dir>/<deck>.pdf.
func (a *app) generateDir(cmd *cobra.Command, base *config.Config, opts generateOptions) error {
	decks, err := scanner.New(a.log).FindCSVs(cmd.Context(), opts.dir)
	if err != nil {
		return err
	}

	outDir := filepath.Dir(base.Output)
	printInfo(cmd.OutOrStdout(), "Found %d decks in %s", len(decks), opts.dir)

	var failed int
	for _, deck := range decks {
		if err := cmd.Context().Err(); err != nil {
			return err
		}

		cfg := *base
		cfg.Input = deck
		cfg.Output = filepath.Join(outDir, strings.TrimSuffix(filepath.Base(deck), filepath.Ext(deck))+".pdf")

		if err := a.generateOne(cmd, &cfg, opts.yes); err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			printError(cmd.OutOrStdout(), "%s: %v", deck, err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d decks failed", failed, len(decks))
	}
	return nil
}

// confirm asks a yes/no question. An empty line means yes; closed input
// without an answer means no.
func confirm(in *bufio.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s %s ", question, styleDim.Render("[Y/n]"))
	line, err := in.ReadString('\n')
	if err == io.EOF && line == "" {
		return false, nil
	}
	if err != nil && err != io.EOF {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "", "y", "yes":
		return true, nil
	}
	return false, nil
}
