package preview_test

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/printcards/internal/layout"
	"github.com/kpauljoseph/printcards/internal/preview"
	"github.com/kpauljoseph/printcards/internal/render"
	"github.com/kpauljoseph/printcards/pkg/models"
)

var _ = Describe("Rasterizer", func() {
	var (
		ctx     context.Context
		tempDir string
		pdfPath string
		grid    layout.Grid
	)

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		tempDir, err = os.MkdirTemp("", "rasterizer-test-*")
		Expect(err).NotTo(HaveOccurred())

		page, err := layout.Paper("A6", layout.Pt)
		Expect(err).NotTo(HaveOccurred())
		grid, err = layout.NewGrid(
			page,
			layout.CardSize{Width: 4, Height: 3}.Scale(float64(layout.Cm)),
			layout.Spacing{MarginX: 0.5, MarginY: 0.5, Gap: 0.5}.Scale(float64(layout.Cm)),
		)
		Expect(err).NotTo(HaveOccurred())

		records := make([]models.Record, grid.CardsPerPage()+1)
		for i := range records {
			records[i] = models.Record{SideA: "Q", SideB: "A"}
		}

		pdfPath = filepath.Join(tempDir, "front.pdf")
		r := render.NewRenderer(render.DefaultOptions(), previewTestLogger())
		Expect(r.RenderFile(ctx, records, grid, models.Front, "A6", pdfPath, nil)).To(Succeed())
	})

	AfterEach(func() {
		os.RemoveAll(tempDir)
	})

	It("should write one image per page with the page size in points", func() {
		rasterizer, err := preview.NewRasterizer(filepath.Join(tempDir, "pages"), 72, previewTestLogger())
		Expect(err).NotTo(HaveOccurred())

		pages, err := rasterizer.RenderPages(ctx, pdfPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(pages).To(HaveLen(2))
		Expect(pages[0].PageNum).To(Equal(1))
		Expect(filepath.Base(pages[1].Path)).To(Equal("page_002.png"))
		Expect(pages[0].Size.Width).To(BeNumerically("~", grid.Page.Width, 1))
		Expect(pages[0].Size.Height).To(BeNumerically("~", grid.Page.Height, 1))

		img := readImage(pages[0].Path)
		Expect(img.Bounds().Dx()).To(BeNumerically("~", grid.Page.Width, 2))
	})

	It("should crop every card of a rendered page", func() {
		rasterizer, err := preview.NewRasterizer(filepath.Join(tempDir, "pages"), 0, previewTestLogger())
		Expect(err).NotTo(HaveOccurred())
		pages, err := rasterizer.RenderPages(ctx, pdfPath)
		Expect(err).NotTo(HaveOccurred())

		splitter, err := preview.NewSplitter(filepath.Join(tempDir, "cards"), previewTestLogger())
		Expect(err).NotTo(HaveOccurred())
		cards, err := splitter.SplitCards(pages[0].Path, grid.PagePlacements(models.Front), pages[0].Size)
		Expect(err).NotTo(HaveOccurred())
		Expect(cards).To(HaveLen(grid.CardsPerPage()))
	})

	It("should stop when the context is cancelled", func() {
		rasterizer, err := preview.NewRasterizer(filepath.Join(tempDir, "pages"), 72, previewTestLogger())
		Expect(err).NotTo(HaveOccurred())

		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err = rasterizer.RenderPages(cancelled, pdfPath)
		Expect(err).To(MatchError(context.Canceled))
	})

	It("should fail on a file that is not a PDF", func() {
		bogus := filepath.Join(tempDir, "bogus.pdf")
		Expect(os.WriteFile(bogus, []byte("not a pdf"), 0644)).To(Succeed())

		rasterizer, err := preview.NewRasterizer(filepath.Join(tempDir, "pages"), 72, previewTestLogger())
		Expect(err).NotTo(HaveOccurred())
		_, err = rasterizer.RenderPages(ctx, bogus)
		Expect(err).To(HaveOccurred())
	})
})
