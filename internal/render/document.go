package render

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/kpauljoseph/printcards/internal/layout"
	"github.com/kpauljoseph/printcards/pkg/models"
)

var ErrUnsupportedPaper = errors.New("paper format not supported by the PDF writer")

const (
	FontSideA = "Helvetica-Bold"
	FontSideB = "Helvetica-Bold"
	FontTag   = "Helvetica-Oblique"

	lineHeightFactor = 1.4
	borderColor      = "#000000"
)

// Document is the JSON page description understood by pdfcpu's create
// command. Coordinates are in points with the origin in the lower left.
type Document struct {
	Paper  string           `json:"paper"`
	Origin string           `json:"origin"`
	Pages  map[string]*Page `json:"pages"`
}

type Page struct {
	Content Content `json:"content"`
}

type Content struct {
	Boxes []*Box  `json:"box,omitempty"`
	Text  []*Text `json:"text,omitempty"`
}

type Box struct {
	Pos    [2]float64 `json:"pos"`
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
	Border *Border    `json:"border,omitempty"`
}

type Border struct {
	Width int    `json:"width"`
	Color string `json:"col"`
}

type Text struct {
	Value string     `json:"value"`
	Pos   [2]float64 `json:"pos"`
	Align string     `json:"align"`
	Font  Font       `json:"font"`
}

type Font struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

// PageCount returns the number of pages in the description.
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// Page returns the 1-based page, or nil.
func (d *Document) Page(n int) *Page {
	return d.Pages[strconv.Itoa(n)]
}

type Options struct {
	FontSizeA  int
	FontSizeB  int
	TagSize    int
	WrapWidth  int
	TagInset   float64
	BorderSize int
}

func DefaultOptions() Options {
	return Options{
		FontSizeA:  11,
		FontSizeB:  11,
		TagSize:    10,
		WrapWidth:  30,
		TagInset:   0.3 * float64(layout.Cm),
		BorderSize: 1,
	}
}

// pdfcpuPaper maps our format names onto the names pdfcpu knows.
var pdfcpuPaper = map[string]string{
	"A0": "A0", "A1": "A1", "A2": "A2", "A3": "A3", "A4": "A4", "A5": "A5", "A6": "A6",
	"LETTER": "Letter",
	"LEGAL":  "Legal",
}

// PaperName returns the pdfcpu paper name with its orientation suffix.
func PaperName(paper string, page layout.PageSize) (string, error) {
	name, ok := pdfcpuPaper[layout.NormalizePaper(paper)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedPaper, paper)
	}
	if page.IsLandscape() {
		return name + "L", nil
	}
	return name + "P", nil
}

// BuildDocument lays out one side of the deck. Cards are placed with the
// grid, and a new page starts after every page-break record, so front and
// back descriptions of the same records always have the same page count.
func BuildDocument(records []models.Record, grid layout.Grid, side models.Side, paper string, opts Options) (*Document, error) {
	return buildDocument(records, grid, side, paper, opts, nil)
}

func buildDocument(records []models.Record, grid layout.Grid, side models.Side, paper string, opts Options, progress ProgressFunc) (*Document, error) {
	name, err := PaperName(paper, grid.Page)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Paper:  name,
		Origin: "LowerLeft",
		Pages:  make(map[string]*Page),
	}

	perPage := grid.CardsPerPage()
	pageNo := 1
	for i, record := range records {
		page := doc.Page(pageNo)
		if page == nil {
			page = &Page{}
			doc.Pages[strconv.Itoa(pageNo)] = page
		}

		box := grid.Place(i, side)
		page.Content.Boxes = append(page.Content.Boxes, &Box{
			Pos:    [2]float64{box.X, box.Y},
			Width:  box.Width,
			Height: box.Height,
			Border: &Border{Width: opts.BorderSize, Color: borderColor},
		})
		page.Content.Text = append(page.Content.Text, cardText(record, box, side, opts)...)
		if progress != nil {
			progress(i+1, len(records))
		}

		if layout.IsPageBreak(i, perPage) {
			pageNo++
		}
	}

	return doc, nil
}

func cardText(record models.Record, box layout.Placement, side models.Side, opts Options) []*Text {
	font := Font{Name: FontSideA, Size: opts.FontSizeA}
	if side == models.Back {
		font = Font{Name: FontSideB, Size: opts.FontSizeB}
	}

	lines := WrapText(record.Text(side), opts.WrapWidth)
	lineHeight := float64(font.Size) * lineHeightFactor
	centreX := box.X + box.Width/2
	y := box.Y + box.Height/2 + float64(len(lines))/2*lineHeight - lineHeight

	texts := make([]*Text, 0, len(lines)+1)
	for _, line := range lines {
		texts = append(texts, &Text{
			Value: line,
			Pos:   [2]float64{centreX, y},
			Align: "center",
			Font:  font,
		})
		y -= lineHeight
	}

	if side == models.Front && record.Tag != "" {
		texts = append(texts, &Text{
			Value: record.Tag,
			Pos:   [2]float64{box.X + box.Width - opts.TagInset, box.Y + opts.TagInset},
			Align: "right",
			Font:  Font{Name: FontTag, Size: opts.TagSize},
		})
	}
	return texts
}
