package layout

import "github.com/kpauljoseph/printcards/pkg/models"

// Placement is the bounding box of one card on its page, with the origin in
// the lower-left corner of the page.
type Placement struct {
	Column int     `json:"column"`
	Row    int     `json:"row"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Place positions the card at a flat record index. The index wraps every
// page. Back placements mirror the column so that a sheet flipped around its
// vertical axis puts each answer behind its question. Rows are counted from
// the top of the page.
func Place(index int, side models.Side, l Layout, card CardSize, sp Spacing, page PageSize) Placement {
	local := index % l.CardsPerPage()
	row := local / l.Columns
	col := local % l.Columns
	if side == models.Back {
		col = l.Columns - 1 - col
	}

	gridW, gridH := l.GridSize(card, sp)
	offsetX := (page.Width - gridW) / 2
	offsetY := (page.Height - gridH) / 2

	return Placement{
		Column: col,
		Row:    row,
		X:      offsetX + float64(col)*(card.Width+sp.Gap),
		Y:      page.Height - offsetY - float64(row+1)*card.Height - float64(row)*sp.Gap,
		Width:  card.Width,
		Height: card.Height,
	}
}

// Grid is the immutable per-run configuration shared by both passes.
type Grid struct {
	Page    PageSize
	Card    CardSize
	Spacing Spacing
	Layout  Layout
}

// NewGrid validates the inputs and computes the layout once.
func NewGrid(page PageSize, card CardSize, sp Spacing) (Grid, error) {
	l, err := Compute(page, card, sp)
	if err != nil {
		return Grid{}, err
	}
	return Grid{Page: page, Card: card, Spacing: sp, Layout: l}, nil
}

func (g Grid) Place(index int, side models.Side) Placement {
	return Place(index, side, g.Layout, g.Card, g.Spacing, g.Page)
}

func (g Grid) CardsPerPage() int {
	return g.Layout.CardsPerPage()
}

// PagePlacements returns the boxes of a full page in record order.
func (g Grid) PagePlacements(side models.Side) []Placement {
	boxes := make([]Placement, g.CardsPerPage())
	for i := range boxes {
		boxes[i] = g.Place(i, side)
	}
	return boxes
}
