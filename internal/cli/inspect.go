package cli

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/spf13/cobra"

	"github.com/kpauljoseph/printcards/internal/layout"
	"github.com/kpauljoseph/printcards/internal/preview"
)

func newInspectCmd(a *app) *cobra.Command {
	var compare string

	cmd := &cobra.Command{
		Use:   "inspect file.pdf",
		Short: "Show page count and page sizes of a PDF",
		Example: `  printcards inspect cards.pdf
  printcards inspect cards.pdf --compare previous.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			a.log.Debug("Analyzing PDF: %s", args[0])

			dims, err := api.PageDimsFile(args[0])
			if err != nil {
				return fmt.Errorf("error getting page dimensions: %w", err)
			}

			fmt.Fprintln(out, styleTitle.Render(args[0]))
			fmt.Fprintln(out, keyValue("Pages", fmt.Sprint(len(dims))))
			for i, dim := range dims {
				page := layout.PageSize{Width: dim.Width, Height: dim.Height}
				name, ok := layout.MatchPaper(page)
				if !ok {
					name = "custom"
				}
				orientation := "portrait"
				if page.IsLandscape() {
					orientation = "landscape"
				}
				fmt.Fprintln(out, keyValue(fmt.Sprintf("Page %d", i+1),
					fmt.Sprintf("%.3f x %.3f pt  %s %s", dim.Width, dim.Height, name, orientation)))
			}

			if compare == "" {
				return nil
			}

			diffs, err := preview.ComparePages(cmd.Context(), args[0], compare, preview.DefaultDPI)
			if err != nil {
				return err
			}
			var differ int
			for _, d := range diffs {
				if !d.Match() {
					differ++
					printError(out, "Page %d differs", d.PageNum)
				}
			}
			if differ == 0 {
				printSuccess(out, "All %d pages match %s", len(diffs), compare)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&compare, "compare", "", "compare rendered pages with another PDF")
	return cmd
}
