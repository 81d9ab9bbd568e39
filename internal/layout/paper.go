package layout

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// Unit is the size of one unit of measure expressed in PDF points.
type Unit float64

const (
	Pt Unit = 1
	In Unit = 72
	Cm Unit = 72 / 2.54
	Mm Unit = 72 / 25.4
)

var ErrUnknownUnit = errors.New("unknown unit")

// ParseUnit accepts pt, in, cm and mm.
func ParseUnit(name string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "pt", "point", "points":
		return Pt, nil
	case "in", "inch", "inches":
		return In, nil
	case "cm", "":
		return Cm, nil
	case "mm":
		return Mm, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, name)
}

var ErrUnknownFormat = errors.New("unknown paper format")

// paperMM lists the supported paper formats in portrait, in millimetres.
var paperMM = map[string]PageSize{
	"A0":     {Width: 841, Height: 1189},
	"A1":     {Width: 594, Height: 841},
	"A2":     {Width: 420, Height: 594},
	"A3":     {Width: 297, Height: 420},
	"A4":     {Width: 210, Height: 297},
	"A5":     {Width: 148, Height: 210},
	"A6":     {Width: 105, Height: 148},
	"LETTER": {Width: 215.9, Height: 279.4},
	"LEGAL":  {Width: 215.9, Height: 355.6},
}

// Paper returns the portrait size of a named format in the given unit.
func Paper(name string, unit Unit) (PageSize, error) {
	mm, ok := paperMM[NormalizePaper(name)]
	if !ok {
		return PageSize{}, fmt.Errorf("%w: %q (supported: %s)", ErrUnknownFormat, name, strings.Join(PaperNames(), ", "))
	}
	return mm.Scale(float64(Mm) / float64(unit)), nil
}

func NormalizePaper(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// PaperNames lists the supported formats, A series first.
func PaperNames() []string {
	names := make([]string, 0, len(paperMM))
	for name := range paperMM {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ai, aj := strings.HasPrefix(names[i], "A"), strings.HasPrefix(names[j], "A")
		if ai != aj {
			return ai
		}
		return names[i] < names[j]
	})
	return names
}

// PaperTolerance is how far, in points, a page may be off a named format and
// still match it.
const PaperTolerance = 1.0

// MatchPaper names the format of a page measured in points, in either
// orientation.
func MatchPaper(page PageSize) (string, bool) {
	for _, name := range PaperNames() {
		p, _ := Paper(name, Pt)
		if near(page.Width, p.Width) && near(page.Height, p.Height) ||
			near(page.Width, p.Height) && near(page.Height, p.Width) {
			return name, true
		}
	}
	return "", false
}

func near(a, b float64) bool {
	return math.Abs(a-b) <= PaperTolerance
}
