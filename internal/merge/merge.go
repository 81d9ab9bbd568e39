// Package merge combines the front and back documents of a deck into one
// file whose pages alternate front, back, front, back.
package merge

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/kpauljoseph/printcards/pkg/logger"
)

var ErrMergeUnavailable = errors.New("merge unavailable")

// Result lists the files a merge left behind for the user.
type Result struct {
	Merged    bool
	Artifacts []string
	Pages     int
}

type Merger interface {
	Merge(ctx context.Context, front, back, out string) (Result, error)
}

// New returns the merger for this run. The choice is made once, when the
// application is assembled.
func New(enabled, keepIntermediate bool, log *logger.Logger) Merger {
	if !enabled {
		return &SeparateMerger{logger: log}
	}
	return NewPDFMerger(keepIntermediate, log)
}

// Interleave returns the 1-based page order f1,b1,f2,b2,... for a document
// holding nf front pages followed by nb back pages. A side that runs out of
// pages is skipped rather than padded.
func Interleave(nf, nb int) []string {
	if nf < 0 {
		nf = 0
	}
	if nb < 0 {
		nb = 0
	}
	order := make([]string, 0, nf+nb)
	for i := 0; i < max(nf, nb); i++ {
		if i < nf {
			order = append(order, strconv.Itoa(i+1))
		}
		if i < nb {
			order = append(order, strconv.Itoa(nf+i+1))
		}
	}
	return order
}

type PDFMerger struct {
	conf             *model.Configuration
	keepIntermediate bool
	logger           *logger.Logger
}

func NewPDFMerger(keepIntermediate bool, log *logger.Logger) *PDFMerger {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &PDFMerger{
		conf:             conf,
		keepIntermediate: keepIntermediate,
		logger:           log,
	}
}

func (m *PDFMerger) Merge(ctx context.Context, front, back, out string) (Result, error) {
	nf, err := api.PageCountFile(front)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read front document %s: %w", front, err)
	}
	nb, err := api.PageCountFile(back)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read back document %s: %w", back, err)
	}
	if nf != nb {
		m.logger.Warn("Front has %d pages but back has %d", nf, nb)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	if dir := filepath.Dir(out); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return Result{}, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	concat, err := os.CreateTemp(filepath.Dir(out), ".printcards-concat-*.pdf")
	if err != nil {
		return Result{}, fmt.Errorf("failed to create temporary file: %w", err)
	}
	concatPath := concat.Name()
	concat.Close()
	defer os.Remove(concatPath)

	m.logger.Debug("Concatenating %s and %s", front, back)
	if err := api.MergeCreateFile([]string{front, back}, concatPath, false, m.conf); err != nil {
		return Result{}, fmt.Errorf("failed to concatenate documents: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	order := Interleave(nf, nb)
	m.logger.Trace("Page order: %v", order)
	if err := api.CollectFile(concatPath, out, order, m.conf); err != nil {
		return Result{}, fmt.Errorf("failed to interleave pages: %w", err)
	}

	result := Result{Merged: true, Artifacts: []string{out}, Pages: len(order)}
	if m.keepIntermediate {
		result.Artifacts = append(result.Artifacts, front, back)
		return result, nil
	}

	for _, path := range []string{front, back} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			m.logger.Warn("Failed to remove intermediate file %s: %v", path, err)
		}
	}
	return result, nil
}

// SeparateMerger leaves the two sides as separate files named after out,
// e.g. cards.pdf becomes cards_front.pdf and cards_back.pdf.
type SeparateMerger struct {
	logger *logger.Logger
}

func (m *SeparateMerger) Merge(ctx context.Context, front, back, out string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	frontOut, backOut := SidePaths(out)
	if err := os.Rename(front, frontOut); err != nil {
		return Result{}, fmt.Errorf("failed to move front document: %w", err)
	}
	if err := os.Rename(back, backOut); err != nil {
		return Result{}, fmt.Errorf("failed to move back document: %w", err)
	}

	m.logger.Info("%v: wrote %s and %s", ErrMergeUnavailable, frontOut, backOut)
	return Result{Artifacts: []string{frontOut, backOut}}, nil
}

// SidePaths returns the file names used for unmerged front and back output.
func SidePaths(out string) (front, back string) {
	stem := strings.TrimSuffix(out, filepath.Ext(out))
	return stem + "_front.pdf", stem + "_back.pdf"
}
