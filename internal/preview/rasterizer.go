// Package preview turns generated sheets back into images so a layout can
// be checked before anything is printed.
package preview

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/gen2brain/go-fitz"

	"github.com/kpauljoseph/printcards/internal/layout"
	"github.com/kpauljoseph/printcards/pkg/logger"
)

const DefaultDPI = 96

// PageImage is one rasterized page. Size is the page size in points.
type PageImage struct {
	PageNum int
	Path    string
	Size    layout.PageSize
}

type Rasterizer struct {
	outputDir string
	dpi       float64
	logger    *logger.Logger
}

func NewRasterizer(outputDir string, dpi float64, logger *logger.Logger) (*Rasterizer, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return &Rasterizer{
		outputDir: outputDir,
		dpi:       dpi,
		logger:    logger,
	}, nil
}

// RenderPages writes every page of pdfPath as page_NNN.png, numbered from 1.
func (r *Rasterizer) RenderPages(ctx context.Context, pdfPath string) ([]PageImage, error) {
	r.logger.Debug("Rasterizing PDF: %s", pdfPath)

	doc, err := fitz.New(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var pages []PageImage

	// fitz numbers pages from zero
	for pageNum := 0; pageNum < doc.NumPage(); pageNum++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		bounds, err := doc.Bound(pageNum)
		if err != nil {
			return nil, fmt.Errorf("failed to get bounds for page %d: %w", pageNum+1, err)
		}
		size := layout.PageSize{Width: float64(bounds.Dx()), Height: float64(bounds.Dy())}
		r.logger.Trace("Page %d dimensions: %.2f x %.2f", pageNum+1, size.Width, size.Height)

		img, err := doc.ImageDPI(pageNum, r.dpi)
		if err != nil {
			return nil, fmt.Errorf("failed to render page %d: %w", pageNum+1, err)
		}

		imagePath := filepath.Join(r.outputDir, fmt.Sprintf("page_%03d.png", pageNum+1))
		if err := saveImage(img, imagePath); err != nil {
			return nil, fmt.Errorf("failed to save image for page %d: %w", pageNum+1, err)
		}

		pages = append(pages, PageImage{
			PageNum: pageNum + 1,
			Path:    imagePath,
			Size:    size,
		})
	}

	r.logger.Debug("Rasterized %d pages into %s", len(pages), r.outputDir)
	return pages, nil
}

func saveImage(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, img)
}
