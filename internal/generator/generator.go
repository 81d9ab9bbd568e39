// Package generator drives a full run: load the deck, lay it out, render
// both sides and merge them.
package generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/kpauljoseph/printcards/internal/config"
	"github.com/kpauljoseph/printcards/internal/layout"
	"github.com/kpauljoseph/printcards/internal/loader"
	"github.com/kpauljoseph/printcards/internal/merge"
	"github.com/kpauljoseph/printcards/internal/render"
	"github.com/kpauljoseph/printcards/pkg/logger"
	"github.com/kpauljoseph/printcards/pkg/models"
)

var ErrNoRecords = errors.New("no records to print")

type RecordLoader interface {
	Load(ctx context.Context, path string) ([]models.Record, error)
}

type SideRenderer interface {
	RenderFile(ctx context.Context, records []models.Record, grid layout.Grid, side models.Side, paper, path string, progress render.ProgressFunc) error
}

// ProgressFunc receives the combined progress of both sides.
type ProgressFunc func(done, total int)

type Report struct {
	Records     int
	Layout      layout.Layout
	Page        layout.PageSize
	Orientation string
	Pages       int
	Merged      bool
	Artifacts   []string
	Duration    time.Duration
}

type Generator struct {
	loader   RecordLoader
	renderer SideRenderer
	merger   merge.Merger
	logger   *logger.Logger
	progress ProgressFunc
}

type Option func(*Generator)

func WithProgress(fn ProgressFunc) Option {
	return func(g *Generator) {
		g.progress = fn
	}
}

func New(loader RecordLoader, renderer SideRenderer, merger merge.Merger, logger *logger.Logger, options ...Option) *Generator {
	g := &Generator{
		loader:   loader,
		renderer: renderer,
		merger:   merger,
		logger:   logger,
	}
	for _, opt := range options {
		opt(g)
	}
	return g
}

// FromConfig assembles a generator with the collaborators cfg asks for.
func FromConfig(cfg *config.Config, log *logger.Logger, options ...Option) *Generator {
	return New(
		loader.New(log, loader.WithDelimiter(cfg.DelimiterRune())),
		render.NewRenderer(RenderOptions(cfg), log),
		merge.New(cfg.MergeEnabled(), cfg.KeepIntermediate, log),
		log,
		options...,
	)
}

// RenderOptions maps the font and wrapping settings onto renderer options.
func RenderOptions(cfg *config.Config) render.Options {
	opts := render.DefaultOptions()
	opts.FontSizeA = cfg.Fonts.SideA
	opts.FontSizeB = cfg.Fonts.SideB
	opts.TagSize = cfg.TagFont()
	opts.WrapWidth = cfg.WrapWidth
	return opts
}

// Load validates cfg and reads its input file.
func (g *Generator) Load(ctx context.Context, cfg *config.Config) ([]models.Record, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Input == "" {
		return nil, fmt.Errorf("no input file given")
	}
	return g.loader.Load(ctx, cfg.Input)
}

// Run loads the configured input and generates the printable output.
func (g *Generator) Run(ctx context.Context, cfg *config.Config) (*Report, error) {
	records, err := g.Load(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return g.Generate(ctx, cfg, records)
}

// Generate renders records with the settings in cfg. The front and back
// passes run concurrently; both share the same immutable grid.
func (g *Generator) Generate(ctx context.Context, cfg *config.Config, records []models.Record) (*Report, error) {
	start := time.Now()
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	geom, err := cfg.Geometry()
	if err != nil {
		return nil, err
	}
	grid, err := geom.Grid()
	if err != nil {
		return nil, err
	}

	outDir := filepath.Dir(cfg.Output)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	runID := uuid.New().String()
	front := filepath.Join(outDir, fmt.Sprintf(".printcards-%s-front.pdf", runID))
	back := filepath.Join(outDir, fmt.Sprintf(".printcards-%s-back.pdf", runID))

	g.logger.Info("Printing %d cards, %d x %d per page on %s %s",
		len(records), grid.Layout.Columns, grid.Layout.Rows, geom.Paper, orientation(grid.Page))

	counter := g.newCounter(2 * len(records))
	group, gctx := errgroup.WithContext(ctx)
	for side, path := range map[models.Side]string{models.Front: front, models.Back: back} {
		group.Go(func() error {
			g.logger.Debug("Rendering %s side to %s", side, path)
			return g.renderer.RenderFile(gctx, records, grid, side, geom.Paper, path, counter.side())
		})
	}
	if err := group.Wait(); err != nil {
		os.Remove(front)
		os.Remove(back)
		return nil, err
	}

	result, err := g.merger.Merge(ctx, front, back, cfg.Output)
	if err != nil {
		if !cfg.KeepIntermediate {
			os.Remove(front)
			os.Remove(back)
		}
		return nil, err
	}

	if result.Merged && cfg.KeepIntermediate {
		if result.Artifacts, err = keepSides(result.Artifacts, front, back, cfg.Output); err != nil {
			return nil, err
		}
	}

	report := &Report{
		Records:     len(records),
		Layout:      grid.Layout,
		Page:        grid.Page,
		Orientation: orientation(grid.Page),
		Pages:       layout.PageCount(len(records), grid.CardsPerPage()),
		Merged:      result.Merged,
		Artifacts:   result.Artifacts,
		Duration:    time.Since(start),
	}
	g.logger.Info("Done in %v: %v", report.Duration.Round(time.Millisecond), report.Artifacts)
	return report, nil
}

// keepSides moves the kept intermediates next to out under the same names a
// separate-sides run would use.
func keepSides(artifacts []string, front, back, out string) ([]string, error) {
	keptFront, keptBack := merge.SidePaths(out)
	renamed := map[string]string{front: keptFront, back: keptBack}

	kept := make([]string, 0, len(artifacts))
	for _, path := range artifacts {
		if to, ok := renamed[path]; ok {
			if err := os.Rename(path, to); err != nil {
				return nil, fmt.Errorf("failed to keep %s: %w", to, err)
			}
			path = to
		}
		kept = append(kept, path)
	}
	return kept, nil
}

func orientation(page layout.PageSize) string {
	if page.IsLandscape() {
		return config.OrientationLandscape
	}
	return config.OrientationPortrait
}

// counter merges the progress of the two side passes into one callback.
type counter struct {
	mu    sync.Mutex
	done  int
	total int
	fn    ProgressFunc
}

func (g *Generator) newCounter(total int) *counter {
	return &counter{total: total, fn: g.progress}
}

func (c *counter) side() render.ProgressFunc {
	if c.fn == nil {
		return nil
	}
	return func(int, int) {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.done++
		c.fn(c.done, c.total)
	}
}
