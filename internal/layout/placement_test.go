package layout_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/printcards/internal/layout"
	"github.com/kpauljoseph/printcards/pkg/models"
)

var _ = Describe("Grid Positioner", func() {
	var grid layout.Grid

	BeforeEach(func() {
		var err error
		grid, err = layout.NewGrid(
			layout.PageSize{Width: 21, Height: 29.7},
			layout.CardSize{Width: 6, Height: 4},
			layout.Spacing{MarginX: 1, MarginY: 2, Gap: 0.5},
		)
		Expect(err).NotTo(HaveOccurred())
	})

	It("should map the centre column onto itself on the back", func() {
		front := grid.Place(7, models.Front)
		back := grid.Place(7, models.Back)

		Expect(front.Row).To(Equal(2))
		Expect(front.Column).To(Equal(1))
		Expect(back.Row).To(Equal(2))
		Expect(back.Column).To(Equal(1))
		Expect(back.X).To(Equal(front.X))
	})

	It("should mirror every column and keep every row", func() {
		for index := 0; index < 100; index++ {
			front := grid.Place(index, models.Front)
			back := grid.Place(index, models.Back)

			Expect(back.Row).To(Equal(front.Row))
			Expect(front.Column + back.Column).To(Equal(grid.Layout.Columns - 1))
			Expect(back.Y).To(Equal(front.Y))
		}
	})

	It("should reflect the x coordinate about the page centre", func() {
		for index := 0; index < grid.CardsPerPage(); index++ {
			front := grid.Place(index, models.Front)
			back := grid.Place(index, models.Back)

			frontCentre := front.X + front.Width/2
			backCentre := back.X + back.Width/2
			Expect(frontCentre + backCentre).To(BeNumerically("~", grid.Page.Width, epsilon))
		}
	})

	It("should centre the grid and count rows from the top", func() {
		first := grid.Place(0, models.Front)
		// grid is 19 x 22, page 21 x 29.7
		Expect(first.X).To(BeNumerically("~", 1, epsilon))
		Expect(first.Y).To(BeNumerically("~", 29.7-3.85-4, epsilon))
		Expect(first.Width).To(Equal(6.0))
		Expect(first.Height).To(Equal(4.0))

		below := grid.Place(3, models.Front)
		Expect(below.Row).To(Equal(1))
		Expect(below.Y).To(BeNumerically("~", first.Y-4.5, epsilon))
	})

	It("should wrap placements every page", func() {
		perPage := grid.CardsPerPage()
		for index := 0; index < perPage; index++ {
			Expect(grid.Place(index+perPage, models.Front)).To(Equal(grid.Place(index, models.Front)))
			Expect(grid.Place(index+3*perPage, models.Back)).To(Equal(grid.Place(index, models.Back)))
		}
	})

	It("should return identical results for identical arguments", func() {
		a := layout.Place(11, models.Back, grid.Layout, grid.Card, grid.Spacing, grid.Page)
		b := layout.Place(11, models.Back, grid.Layout, grid.Card, grid.Spacing, grid.Page)
		Expect(a).To(Equal(b))
	})

	It("should list a full page of placements in record order", func() {
		boxes := grid.PagePlacements(models.Back)
		Expect(boxes).To(HaveLen(15))
		Expect(boxes[0].Column).To(Equal(2))
		Expect(boxes[2].Column).To(Equal(0))
		Expect(boxes[14].Row).To(Equal(4))
	})

	Context("when a single card overflows the page", func() {
		It("should still place it at the single grid cell", func() {
			g, err := layout.NewGrid(
				layout.PageSize{Width: 10, Height: 10},
				layout.CardSize{Width: 12, Height: 12},
				layout.Spacing{Gap: 1},
			)
			Expect(err).NotTo(HaveOccurred())
			Expect(g.CardsPerPage()).To(Equal(1))

			p := g.Place(5, models.Back)
			Expect(p.Column).To(Equal(0))
			Expect(p.Row).To(Equal(0))
			Expect(p.X).To(BeNumerically("~", -1, epsilon))
			Expect(p.Y).To(BeNumerically("~", -1, epsilon))
		})
	})
})
