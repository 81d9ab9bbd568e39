package generator

import (
	"github.com/kpauljoseph/printcards/internal/config"
	"github.com/kpauljoseph/printcards/internal/layout"
)

// Plan describes what a run would produce, in the units the user
// configured. Nothing is rendered.
type Plan struct {
	Paper        string
	Orientation  string
	Unit         string
	Page         layout.PageSize
	Card         layout.CardSize
	Spacing      layout.Spacing
	Layout       layout.Layout
	CardsPerPage int
	Records      int
	// Pages is the number of pages per side.
	Pages  int
	Output string
	Merge  bool
}

// TotalPages is the page count of the merged document.
func (p *Plan) TotalPages() int {
	return 2 * p.Pages
}

// NewPlan validates cfg and computes the layout for a deck of records
// cards. A negative count leaves the page estimate out.
func NewPlan(cfg *config.Config, records int) (*Plan, error) {
	geom, err := cfg.Geometry()
	if err != nil {
		return nil, err
	}
	grid, err := geom.Grid()
	if err != nil {
		return nil, err
	}

	inUnit := 1 / float64(geom.Unit)
	plan := &Plan{
		Paper:        geom.Paper,
		Orientation:  orientation(grid.Page),
		Unit:         cfg.Unit,
		Page:         grid.Page.Scale(inUnit),
		Card:         grid.Card.Scale(inUnit),
		Spacing:      grid.Spacing.Scale(inUnit),
		Layout:       grid.Layout,
		CardsPerPage: grid.CardsPerPage(),
		Records:      records,
		Output:       cfg.Output,
		Merge:        cfg.MergeEnabled(),
	}
	if records >= 0 {
		plan.Pages = layout.PageCount(records, plan.CardsPerPage)
	}
	return plan, nil
}
