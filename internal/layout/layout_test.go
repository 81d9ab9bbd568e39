package layout_test

import (
	"errors"
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/printcards/internal/layout"
)

const epsilon = 1e-9

var _ = Describe("Layout Calculator", func() {
	Context("A4 sheet in centimetres", func() {
		It("should fit 3 columns and 5 rows", func() {
			l, err := layout.Compute(
				layout.PageSize{Width: 21, Height: 29.7},
				layout.CardSize{Width: 6, Height: 4},
				layout.Spacing{MarginX: 1, MarginY: 2, Gap: 0.5},
			)
			Expect(err).NotTo(HaveOccurred())
			Expect(l.Columns).To(Equal(3))
			Expect(l.Rows).To(Equal(5))
			Expect(l.CardsPerPage()).To(Equal(15))
		})
	})

	DescribeTable("grid dimensions",
		func(page layout.PageSize, card layout.CardSize, sp layout.Spacing, cols, rows int) {
			l, err := layout.Compute(page, card, sp)
			Expect(err).NotTo(HaveOccurred())
			Expect(l).To(Equal(layout.Layout{Columns: cols, Rows: rows}))
		},
		Entry("no spacing",
			layout.PageSize{Width: 21, Height: 29.7}, layout.CardSize{Width: 7, Height: 9.9}, layout.Spacing{},
			3, 3),
		Entry("gap makes the last column fit exactly",
			layout.PageSize{Width: 20, Height: 10}, layout.CardSize{Width: 6, Height: 10}, layout.Spacing{Gap: 1},
			3, 1),
		Entry("exact fit after scaling to points",
			layout.PageSize{Width: 21, Height: 29.7}.Scale(float64(layout.Cm)),
			layout.CardSize{Width: 9.75, Height: 4}.Scale(float64(layout.Cm)),
			layout.Spacing{MarginX: 0.5, MarginY: 0.5, Gap: 0.5}.Scale(float64(layout.Cm)),
			2, 6),
		Entry("card wider than the page",
			layout.PageSize{Width: 10, Height: 10}, layout.CardSize{Width: 12, Height: 4}, layout.Spacing{},
			1, 2),
		Entry("margins eat the whole page",
			layout.PageSize{Width: 10, Height: 10}, layout.CardSize{Width: 2, Height: 2}, layout.Spacing{MarginX: 6, MarginY: 6},
			1, 1),
	)

	It("should keep the grid inside the usable area whenever a card fits", func() {
		r := rand.New(rand.NewSource(42))
		for i := 0; i < 2000; i++ {
			page := layout.PageSize{Width: 5 + r.Float64()*100, Height: 5 + r.Float64()*100}
			sp := layout.Spacing{MarginX: r.Float64() * 2, MarginY: r.Float64() * 2, Gap: r.Float64()}
			card := layout.CardSize{
				Width:  0.5 + r.Float64()*(page.Width-2*sp.MarginX-0.5),
				Height: 0.5 + r.Float64()*(page.Height-2*sp.MarginY-0.5),
			}

			l, err := layout.Compute(page, card, sp)
			Expect(err).NotTo(HaveOccurred())
			Expect(l.Columns).To(BeNumerically(">=", 1))
			Expect(l.Rows).To(BeNumerically(">=", 1))

			gridW, gridH := l.GridSize(card, sp)
			Expect(gridW).To(BeNumerically("<=", page.Width-2*sp.MarginX+epsilon))
			Expect(gridH).To(BeNumerically("<=", page.Height-2*sp.MarginY+epsilon))
		}
	})

	Context("invalid configuration", func() {
		It("should report every bad field at once", func() {
			_, err := layout.Compute(
				layout.PageSize{Width: 0, Height: -1},
				layout.CardSize{Width: math.NaN(), Height: 4},
				layout.Spacing{MarginX: -1, Gap: math.Inf(1)},
			)
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, layout.ErrInvalidLayoutConfiguration)).To(BeTrue())

			var verrs layout.ValidationErrors
			Expect(errors.As(err, &verrs)).To(BeTrue())
			Expect(verrs.Fields()).To(Equal([]string{
				"page.width", "page.height", "card.width", "spacing.margin_x", "spacing.gap",
			}))
		})

		It("should accept zero spacing", func() {
			Expect(layout.Validate(
				layout.PageSize{Width: 1, Height: 1},
				layout.CardSize{Width: 1, Height: 1},
				layout.Spacing{},
			)).To(Succeed())
		})
	})

	Context("auto orientation", func() {
		a4 := layout.PageSize{Width: 21, Height: 29.7}

		It("should pick landscape for wide cards", func() {
			page := layout.Orient(a4, layout.CardSize{Width: 6, Height: 4})
			Expect(page).To(Equal(layout.PageSize{Width: 29.7, Height: 21}))
			Expect(page.IsLandscape()).To(BeTrue())
		})

		It("should pick portrait for tall or square cards", func() {
			Expect(layout.Orient(a4.Landscape(), layout.CardSize{Width: 4, Height: 6})).To(Equal(a4))
			Expect(layout.Orient(a4, layout.CardSize{Width: 5, Height: 5})).To(Equal(a4))
		})
	})
})

var _ = Describe("Paper formats", func() {
	It("should convert A4 to points", func() {
		page, err := layout.Paper("a4", layout.Pt)
		Expect(err).NotTo(HaveOccurred())
		Expect(page.Width).To(BeNumerically("~", 595.276, 0.001))
		Expect(page.Height).To(BeNumerically("~", 841.890, 0.001))
	})

	It("should convert A4 to centimetres", func() {
		page, err := layout.Paper("A4", layout.Cm)
		Expect(err).NotTo(HaveOccurred())
		Expect(page.Width).To(BeNumerically("~", 21, epsilon))
		Expect(page.Height).To(BeNumerically("~", 29.7, epsilon))
	})

	It("should reject unknown formats", func() {
		_, err := layout.Paper("B7", layout.Cm)
		Expect(err).To(MatchError(layout.ErrUnknownFormat))
	})

	It("should list the A series first", func() {
		Expect(layout.PaperNames()).To(Equal([]string{
			"A0", "A1", "A2", "A3", "A4", "A5", "A6", "LEGAL", "LETTER",
		}))
	})

	DescribeTable("matching measured pages",
		func(page layout.PageSize, want string, ok bool) {
			name, found := layout.MatchPaper(page)
			Expect(found).To(Equal(ok))
			Expect(name).To(Equal(want))
		},
		Entry("A4 portrait", layout.PageSize{Width: 595.28, Height: 841.89}, "A4", true),
		Entry("A4 landscape", layout.PageSize{Width: 842, Height: 595}, "A4", true),
		Entry("letter", layout.PageSize{Width: 612, Height: 792}, "LETTER", true),
		Entry("goodnotes page", layout.PageSize{Width: 455.04, Height: 587.52}, "", false),
	)

	DescribeTable("units",
		func(name string, want layout.Unit) {
			unit, err := layout.ParseUnit(name)
			Expect(err).NotTo(HaveOccurred())
			Expect(unit).To(Equal(want))
		},
		Entry("default", "", layout.Cm),
		Entry("millimetres", "mm", layout.Mm),
		Entry("inches", "IN", layout.In),
		Entry("points", "pt", layout.Pt),
	)
})
