package server

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/kpauljoseph/printcards/internal/config"
	"github.com/kpauljoseph/printcards/internal/layout"
)

// applyParams overrides cfg with the request's form or query values. Values
// that are not numbers are reported against the config field they would set.
func applyParams(cfg *config.Config, values url.Values) error {
	var errs layout.ValidationErrors

	setString := func(key string, dst *string) {
		if v := strings.TrimSpace(values.Get(key)); v != "" {
			*dst = v
		}
	}
	setFloat := func(key, field string, dst *float64) {
		v := strings.TrimSpace(values.Get(key))
		if v == "" {
			return
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs.Add(field, "must be a number, got "+strconv.Quote(v))
			return
		}
		*dst = f
	}

	setString("paper", &cfg.Paper)
	setString("orientation", &cfg.Orientation)
	setString("unit", &cfg.Unit)
	if v := values.Get("delimiter"); v != "" {
		cfg.Delimiter = v
	}
	setFloat("card_width", "card.width", &cfg.Card.Width)
	setFloat("card_height", "card.height", &cfg.Card.Height)
	setFloat("margin_x", "spacing.margin_x", &cfg.Spacing.MarginX)
	setFloat("margin_y", "spacing.margin_y", &cfg.Spacing.MarginY)
	setFloat("gap", "spacing.gap", &cfg.Spacing.Gap)

	return errs.Err()
}
