package cli

import (
	"github.com/spf13/cobra"

	"github.com/kpauljoseph/printcards/internal/config"
)

// layoutFlags override page and card settings from the config file. Only
// flags the user actually set are applied, so an explicit 0 is honoured.
type layoutFlags struct {
	paper       string
	orientation string
	unit        string
	cardWidth   float64
	cardHeight  float64
	marginX     float64
	marginY     float64
	gap         float64
	delimiter   string
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.paper, "paper", "", "paper format (A0-A6, LETTER, LEGAL)")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: auto, portrait or landscape")
	fs.StringVar(&f.unit, "unit", "", "unit for sizes: cm, mm, in or pt")
	fs.Float64Var(&f.cardWidth, "card-width", 0, "card width")
	fs.Float64Var(&f.cardHeight, "card-height", 0, "card height")
	fs.Float64Var(&f.marginX, "margin-x", 0, "left and right page margin")
	fs.Float64Var(&f.marginY, "margin-y", 0, "top and bottom page margin")
	fs.Float64Var(&f.gap, "gap", 0, "space between cards")
	fs.StringVarP(&f.delimiter, "delimiter", "d", "", "CSV field separator")
}

func (f *layoutFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	fs := cmd.Flags()
	if fs.Changed("paper") {
		cfg.Paper = f.paper
	}
	if fs.Changed("orientation") {
		cfg.Orientation = f.orientation
	}
	if fs.Changed("unit") {
		cfg.Unit = f.unit
	}
	if fs.Changed("card-width") {
		cfg.Card.Width = f.cardWidth
	}
	if fs.Changed("card-height") {
		cfg.Card.Height = f.cardHeight
	}
	if fs.Changed("margin-x") {
		cfg.Spacing.MarginX = f.marginX
	}
	if fs.Changed("margin-y") {
		cfg.Spacing.MarginY = f.marginY
	}
	if fs.Changed("gap") {
		cfg.Spacing.Gap = f.gap
	}
	if fs.Changed("delimiter") {
		cfg.Delimiter = f.delimiter
	}
}
