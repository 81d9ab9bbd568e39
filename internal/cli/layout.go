package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kpauljoseph/printcards/internal/generator"
)

func newLayoutCmd(a *app) *cobra.Command {
	var (
		flags   layoutFlags
		records int
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Show how many cards fit on a page",
		Example: `  printcards layout --paper A4 --card-width 6 --card-height 4
  printcards layout --records 120`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			flags.apply(cmd, cfg)

			plan, err := generator.NewPlan(cfg, records)
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), renderFieldErrors(err))
				return err
			}
			plan.Output = ""

			fmt.Fprintln(cmd.OutOrStdout(), renderPlan(plan))
			fmt.Fprintln(cmd.OutOrStdout(), renderGrid(plan.Layout))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVarP(&records, "records", "n", -1, "number of cards, for a page estimate")
	return cmd
}
