package layout

import "math"

// Layout is the grid derived once per run. Both counts are at least 1.
type Layout struct {
	Columns int `json:"columns"`
	Rows    int `json:"rows"`
}

func (l Layout) CardsPerPage() int {
	return l.Columns * l.Rows
}

// GridSize returns the footprint of the full grid, gaps included.
func (l Layout) GridSize(card CardSize, sp Spacing) (width, height float64) {
	width = float64(l.Columns)*card.Width + float64(l.Columns-1)*sp.Gap
	height = float64(l.Rows)*card.Height + float64(l.Rows-1)*sp.Gap
	return width, height
}

// Compute works out how many cards fit across and down the page.
//
// One gap is added to the usable extent before dividing by card+gap, since n
// cards only need n-1 gaps between them. A card that does not fit at all still
// yields a 1x1 layout; clipping is left to whoever draws the page.
func Compute(page PageSize, card CardSize, sp Spacing) (Layout, error) {
	if err := Validate(page, card, sp); err != nil {
		return Layout{}, err
	}

	usableW := page.Width - 2*sp.MarginX + sp.Gap
	usableH := page.Height - 2*sp.MarginY + sp.Gap

	return Layout{
		Columns: fit(usableW, card.Width+sp.Gap),
		Rows:    fit(usableH, card.Height+sp.Gap),
	}, nil
}

// fitTolerance absorbs the rounding left over from unit conversion, so an
// exact fit in centimetres is still an exact fit in points.
const fitTolerance = 1e-9

func fit(usable, step float64) int {
	n := int(math.Floor(usable/step + fitTolerance))
	if n < 1 {
		return 1
	}
	return n
}
