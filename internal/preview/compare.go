package preview

import (
	"context"
	"fmt"

	"github.com/gen2brain/go-fitz"

	"github.com/kpauljoseph/printcards/pkg/utils"
)

// PageDiff compares one page of two documents by rendered content.
type PageDiff struct {
	PageNum int
	HashA   string
	HashB   string
}

func (d PageDiff) Match() bool {
	return d.HashA != "" && d.HashA == d.HashB
}

// ComparePages renders both documents at dpi and hashes each page. Pages
// missing from the shorter document get an empty hash.
func ComparePages(ctx context.Context, pathA, pathB string, dpi float64) ([]PageDiff, error) {
	if dpi <= 0 {
		dpi = DefaultDPI
	}

	hashesA, err := pageHashes(ctx, pathA, dpi)
	if err != nil {
		return nil, err
	}
	hashesB, err := pageHashes(ctx, pathB, dpi)
	if err != nil {
		return nil, err
	}

	diffs := make([]PageDiff, max(len(hashesA), len(hashesB)))
	for i := range diffs {
		diffs[i].PageNum = i + 1
		if i < len(hashesA) {
			diffs[i].HashA = hashesA[i]
		}
		if i < len(hashesB) {
			diffs[i].HashB = hashesB[i]
		}
	}
	return diffs, nil
}

func pageHashes(ctx context.Context, path string, dpi float64) ([]string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer doc.Close()

	hashes := make([]string, 0, doc.NumPage())
	for pageNum := 0; pageNum < doc.NumPage(); pageNum++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := doc.ImageDPI(pageNum, dpi)
		if err != nil {
			return nil, fmt.Errorf("failed to render page %d of %s: %w", pageNum+1, path, err)
		}
		hash, err := utils.GenerateImageHash(img)
		if err != nil {
			return nil, err
		}
		hashes = append(hashes, hash)
	}
	return hashes, nil
}
