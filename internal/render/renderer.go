package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/kpauljoseph/printcards/internal/layout"
	"github.com/kpauljoseph/printcards/pkg/logger"
	"github.com/kpauljoseph/printcards/pkg/models"
)

// ProgressFunc is called after each card is laid out.
type ProgressFunc func(done, total int)

type Renderer struct {
	opts   Options
	conf   *model.Configuration
	logger *logger.Logger
}

func NewRenderer(opts Options, logger *logger.Logger) *Renderer {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Renderer{
		opts:   opts,
		conf:   conf,
		logger: logger,
	}
}

func (r *Renderer) Options() Options {
	return r.opts
}

// Render lays out one side of the deck and writes it to w as a PDF.
func (r *Renderer) Render(ctx context.Context, records []models.Record, grid layout.Grid, side models.Side, paper string, w io.Writer, progress ProgressFunc) error {
	doc, err := buildDocument(records, grid, side, paper, r.opts, progress)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	description, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode %s page description: %w", side, err)
	}
	r.logger.Trace("%s page description: %d bytes, %d pages", side, len(description), doc.PageCount())

	if err := api.Create(nil, bytes.NewReader(description), w, r.conf); err != nil {
		return fmt.Errorf("failed to write %s document: %w", side, err)
	}

	r.logger.Debug("Rendered %s side: %d cards on %d pages", side, len(records), doc.PageCount())
	return nil
}

func (r *Renderer) RenderFile(ctx context.Context, records []models.Record, grid layout.Grid, side models.Side, paper, path string, progress ProgressFunc) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := r.Render(ctx, records, grid, side, paper, f, progress); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
