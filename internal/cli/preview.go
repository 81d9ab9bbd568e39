package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kpauljoseph/printcards/internal/layout"
	"github.com/kpauljoseph/printcards/internal/preview"
	"github.com/kpauljoseph/printcards/pkg/models"
	"github.com/kpauljoseph/printcards/pkg/utils"
)

func newPreviewCmd(a *app) *cobra.Command {
	var (
		flags     layoutFlags
		outputDir string
		dpi       float64
		cards     bool
		back      bool
	)

	cmd := &cobra.Command{
		Use:   "preview file.pdf",
		Short: "Render the pages of a generated document to PNG images",
		Long: `Render every page of a document to PNG. With --cards, each card is also cut out
using the layout from the current settings, which must match the ones used to generate it.`,
		Example: `  printcards preview cards.pdf
  printcards preview cards_front.pdf --cards`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputDir == "" {
				outputDir = utils.GetDefaultOutputDir()
			}

			rasterizer, err := preview.NewRasterizer(filepath.Join(outputDir, "pages"), dpi, a.log)
			if err != nil {
				return err
			}
			pages, err := rasterizer.RenderPages(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Rendered %d pages", len(pages))
			printFile(cmd.OutOrStdout(), filepath.Join(outputDir, "pages"))

			if !cards {
				return nil
			}

			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			flags.apply(cmd, cfg)
			geom, err := cfg.Geometry()
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), renderFieldErrors(err))
				return err
			}
			grid, err := geom.Grid()
			if err != nil {
				return err
			}

			splitter, err := preview.NewSplitter(filepath.Join(outputDir, "cards"), a.log)
			if err != nil {
				return err
			}

			seen := make(map[string]bool)
			for _, page := range pages {
				side := models.Front
				if back || mergedBackPage(args[0], page.PageNum) {
					side = models.Back
				}
				if !sameOrientation(page.Size, grid.Page) {
					a.log.Warn("Page %d is %s but the settings give %s", page.PageNum, page.Size, grid.Page)
				}
				crops, err := splitter.SplitCards(page.Path, grid.PagePlacements(side), page.Size)
				if err != nil {
					return err
				}
				for _, c := range crops {
					seen[c.Hash] = true
				}
			}
			printSuccess(cmd.OutOrStdout(), "Cut %d distinct card images", len(seen))
			printFile(cmd.OutOrStdout(), filepath.Join(outputDir, "cards"))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "directory for the images (default: a new temporary directory)")
	cmd.Flags().Float64Var(&dpi, "dpi", preview.DefaultDPI, "rendering resolution")
	cmd.Flags().BoolVar(&cards, "cards", false, "also cut out every card")
	cmd.Flags().BoolVar(&back, "back", false, "treat every page as a back side")
	return cmd
}

// mergedBackPage reports whether page n of a merged document is a back
// side. Separate back documents are named *_back.pdf.
func mergedBackPage(path string, n int) bool {
	if strings.HasSuffix(strings.ToLower(path), "_back.pdf") {
		return true
	}
	if strings.HasSuffix(strings.ToLower(path), "_front.pdf") {
		return false
	}
	return n%2 == 0
}

func sameOrientation(a, b layout.PageSize) bool {
	return a.IsLandscape() == b.IsLandscape()
}
