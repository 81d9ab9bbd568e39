// Package layout computes how equally sized cards tile a printed page and
// where each card lands on the front and on the mirrored back of a sheet.
//
// All values share one linear unit chosen by the caller. The package is pure:
// nothing here logs, blocks or keeps state between calls.
package layout

import (
	"fmt"
	"math"
)

// PageSize is the physical page. Orientation is derived from the two sides.
type PageSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Landscape returns the page with its long side horizontal.
func (p PageSize) Landscape() PageSize {
	if p.Width < p.Height {
		return PageSize{Width: p.Height, Height: p.Width}
	}
	return p
}

// Portrait returns the page with its long side vertical.
func (p PageSize) Portrait() PageSize {
	if p.Width > p.Height {
		return PageSize{Width: p.Height, Height: p.Width}
	}
	return p
}

func (p PageSize) IsLandscape() bool {
	return p.Width > p.Height
}

// Scale multiplies both sides, e.g. to convert centimetres to points.
func (p PageSize) Scale(factor float64) PageSize {
	return PageSize{Width: p.Width * factor, Height: p.Height * factor}
}

func (p PageSize) String() string {
	return fmt.Sprintf("%.2f x %.2f", p.Width, p.Height)
}

// CardSize is the size of a single card, fixed for a run.
type CardSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (c CardSize) Scale(factor float64) CardSize {
	return CardSize{Width: c.Width * factor, Height: c.Height * factor}
}

func (c CardSize) String() string {
	return fmt.Sprintf("%.2f x %.2f", c.Width, c.Height)
}

// Spacing holds the page margins and the gap left between adjacent cards.
type Spacing struct {
	MarginX float64 `json:"margin_x"`
	MarginY float64 `json:"margin_y"`
	Gap     float64 `json:"gap"`
}

func (s Spacing) Scale(factor float64) Spacing {
	return Spacing{MarginX: s.MarginX * factor, MarginY: s.MarginY * factor, Gap: s.Gap * factor}
}

// Orient picks the page rotation matching the dominant side of the card:
// wide cards get a landscape page, everything else a portrait one.
func Orient(page PageSize, card CardSize) PageSize {
	if card.Width > card.Height {
		return page.Landscape()
	}
	return page.Portrait()
}

// Validate checks page, card and spacing together and reports every bad value.
func Validate(page PageSize, card CardSize, sp Spacing) error {
	var errs ValidationErrors
	positive(&errs, "page.width", page.Width)
	positive(&errs, "page.height", page.Height)
	positive(&errs, "card.width", card.Width)
	positive(&errs, "card.height", card.Height)
	nonNegative(&errs, "spacing.margin_x", sp.MarginX)
	nonNegative(&errs, "spacing.margin_y", sp.MarginY)
	nonNegative(&errs, "spacing.gap", sp.Gap)
	return errs.Err()
}

func positive(errs *ValidationErrors, field string, v float64) {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		errs.Add(field, "must be a finite number")
	case v <= 0:
		errs.Add(field, fmt.Sprintf("must be greater than zero, got %g", v))
	}
}

func nonNegative(errs *ValidationErrors, field string, v float64) {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		errs.Add(field, "must be a finite number")
	case v < 0:
		errs.Add(field, fmt.Sprintf("must not be negative, got %g", v))
	}
}
