package preview

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/kpauljoseph/printcards/internal/layout"
	"github.com/kpauljoseph/printcards/pkg/logger"
	"github.com/kpauljoseph/printcards/pkg/utils"
)

// CardImage is one card cut out of a page image.
type CardImage struct {
	Column int
	Row    int
	Path   string
	Hash   string
}

type Splitter struct {
	outputDir string
	logger    *logger.Logger
}

func NewSplitter(outputDir string, logger *logger.Logger) (*Splitter, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	return &Splitter{
		outputDir: outputDir,
		logger:    logger,
	}, nil
}

// SplitCards crops each placement out of a rendered page. Placements are in
// points with the origin in the lower left, as laid out for page; the image
// may have any resolution. Identical cards produce the same file name.
func (s *Splitter) SplitCards(pageImagePath string, placements []layout.Placement, page layout.PageSize) ([]CardImage, error) {
	s.logger.Debug("Splitting page image: %s", pageImagePath)

	srcFile, err := os.Open(pageImagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer srcFile.Close()

	src, err := png.Decode(srcFile)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := src.Bounds()
	scaleX := float64(bounds.Dx()) / page.Width
	scaleY := float64(bounds.Dy()) / page.Height

	cards := make([]CardImage, 0, len(placements))
	for _, p := range placements {
		rect := image.Rect(
			int(math.Round(p.X*scaleX)),
			int(math.Round((page.Height-p.Y-p.Height)*scaleY)),
			int(math.Round((p.X+p.Width)*scaleX)),
			int(math.Round((page.Height-p.Y)*scaleY)),
		).Add(bounds.Min).Intersect(bounds)
		if rect.Empty() {
			s.logger.Warn("Card at column %d row %d lies outside the page", p.Column, p.Row)
			continue
		}

		card := crop(src, rect)
		hash, err := utils.GenerateImageHash(card)
		if err != nil {
			return nil, fmt.Errorf("failed to hash card image: %w", err)
		}

		cardPath := filepath.Join(s.outputDir, fmt.Sprintf("card_%s.png", hash[:12]))
		if err := saveImage(card, cardPath); err != nil {
			return nil, fmt.Errorf("failed to save card image: %w", err)
		}
		s.logger.Trace("Created card image: %s", cardPath)

		cards = append(cards, CardImage{
			Column: p.Column,
			Row:    p.Row,
			Path:   cardPath,
			Hash:   hash,
		})
	}

	return cards, nil
}

func crop(src image.Image, rect image.Rectangle) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			dst.Set(x-rect.Min.X, y-rect.Min.Y, src.At(x, y))
		}
	}
	return dst
}
