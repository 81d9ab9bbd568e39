package preview

import (
	"context"

	"github.com/kpauljoseph/printcards/internal/layout"
)

type PageRasterizer interface {
	RenderPages(ctx context.Context, pdfPath string) ([]PageImage, error)
}

type CardSplitter interface {
	SplitCards(pageImagePath string, placements []layout.Placement, page layout.PageSize) ([]CardImage, error)
}
