package cli

import (
	"github.com/spf13/cobra"

	"github.com/kpauljoseph/printcards/internal/merge"
)

func newMergeCmd(a *app) *cobra.Command {
	var (
		output string
		remove bool
	)

	cmd := &cobra.Command{
		Use:     "merge front.pdf back.pdf",
		Short:   "Interleave separately printed front and back documents",
		Example: `  printcards merge cards_front.pdf cards_back.pdf -o cards.pdf`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := merge.NewPDFMerger(!remove, a.log)
			result, err := m.Merge(cmd.Context(), args[0], args[1], output)
			if err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Merged %d pages", result.Pages)
			printFile(cmd.OutOrStdout(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "merged.pdf", "output PDF path")
	cmd.Flags().BoolVar(&remove, "remove-inputs", false, "delete the input files after merging")
	return cmd
}
