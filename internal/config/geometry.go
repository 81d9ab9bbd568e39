package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kpauljoseph/printcards/internal/layout"
)

// Geometry is a validated configuration converted to PDF points.
type Geometry struct {
	Paper   string
	Unit    layout.Unit
	Page    layout.PageSize
	Card    layout.CardSize
	Spacing layout.Spacing
}

func (g Geometry) Grid() (layout.Grid, error) {
	return layout.NewGrid(g.Page, g.Card, g.Spacing)
}

// Validate checks the fully assembled configuration once and returns every
// problem found as layout.ValidationErrors.
func (c *Config) Validate() error {
	var errs layout.ValidationErrors

	unit, err := layout.ParseUnit(c.Unit)
	if err != nil {
		errs.Add("unit", err.Error())
		unit = layout.Cm
	}
	page, err := layout.Paper(c.Paper, unit)
	if err != nil {
		errs.Add("paper", err.Error())
		page = layout.PageSize{Width: 1, Height: 1}
	}

	switch strings.ToLower(c.Orientation) {
	case OrientationAuto, OrientationPortrait, OrientationLandscape:
	default:
		errs.Add("orientation", fmt.Sprintf("must be auto, portrait or landscape, got %q", c.Orientation))
	}

	var geomErrs layout.ValidationErrors
	if errors.As(layout.Validate(page, c.cardSize(), c.spacing()), &geomErrs) {
		for _, e := range geomErrs {
			// page problems are already reported against "paper"
			if !strings.HasPrefix(e.Field, "page.") {
				errs = append(errs, e)
			}
		}
	}

	if utf8.RuneCountInString(c.Delimiter) != 1 {
		errs.Add("delimiter", fmt.Sprintf("must be a single character, got %q", c.Delimiter))
	}
	if c.Fonts.SideA <= 0 {
		errs.Add("fonts.side_a", "must be greater than zero")
	}
	if c.Fonts.SideB <= 0 {
		errs.Add("fonts.side_b", "must be greater than zero")
	}
	if c.Fonts.Tag < 0 {
		errs.Add("fonts.tag", "must not be negative")
	}
	if c.WrapWidth <= 0 {
		errs.Add("wrap_width", "must be greater than zero")
	}
	if c.Output == "" {
		errs.Add("output", "must not be empty")
	}

	return errs.Err()
}

// Geometry validates the configuration and returns page, card and spacing in
// points, with the page rotated according to the orientation setting.
func (c *Config) Geometry() (Geometry, error) {
	if err := c.Validate(); err != nil {
		return Geometry{}, err
	}

	unit, _ := layout.ParseUnit(c.Unit)
	page, _ := layout.Paper(c.Paper, layout.Pt)
	card := c.cardSize().Scale(float64(unit))

	switch strings.ToLower(c.Orientation) {
	case OrientationPortrait:
		page = page.Portrait()
	case OrientationLandscape:
		page = page.Landscape()
	default:
		page = layout.Orient(page, card)
	}

	return Geometry{
		Paper:   layout.NormalizePaper(c.Paper),
		Unit:    unit,
		Page:    page,
		Card:    card,
		Spacing: c.spacing().Scale(float64(unit)),
	}, nil
}

// DelimiterRune returns the configured field separator as a rune.
func (c *Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}

func (c *Config) cardSize() layout.CardSize {
	return layout.CardSize{Width: c.Card.Width, Height: c.Card.Height}
}

func (c *Config) spacing() layout.Spacing {
	return layout.Spacing{MarginX: c.Spacing.MarginX, MarginY: c.Spacing.MarginY, Gap: c.Spacing.Gap}
}
