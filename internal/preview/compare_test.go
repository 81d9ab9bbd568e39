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

var _ = Describe("ComparePages", func() {
	var (
		ctx     context.Context
		tempDir string
		renderDeck func(name string, side models.Side, n int) string
	)

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		tempDir, err = os.MkdirTemp("", "compare-test-*")
		Expect(err).NotTo(HaveOccurred())

		page, err := layout.Paper("A6", layout.Pt)
		Expect(err).NotTo(HaveOccurred())
		grid, err := layout.NewGrid(
			page,
			layout.CardSize{Width: 8, Height: 3}.Scale(float64(layout.Cm)),
			layout.Spacing{MarginX: 1, MarginY: 1, Gap: 0.5}.Scale(float64(layout.Cm)),
		)
		Expect(err).NotTo(HaveOccurred())

		r := render.NewRenderer(render.DefaultOptions(), previewTestLogger())
		renderDeck = func(name string, side models.Side, n int) string {
			records := make([]models.Record, n)
			for i := range records {
				records[i] = models.Record{SideA: "question", SideB: "answer"}
			}
			path := filepath.Join(tempDir, name)
			Expect(r.RenderFile(ctx, records, grid, side, "A6", path, nil)).To(Succeed())
			return path
		}
	})

	AfterEach(func() {
		os.RemoveAll(tempDir)
	})

	It("should match identical documents page by page", func() {
		a := renderDeck("a.pdf", models.Front, 3)
		b := renderDeck("b.pdf", models.Front, 3)

		diffs, err := preview.ComparePages(ctx, a, b, 36)
		Expect(err).NotTo(HaveOccurred())
		Expect(diffs).NotTo(BeEmpty())
		for _, d := range diffs {
			Expect(d.Match()).To(BeTrue())
		}
	})

	It("should tell the two sides apart", func() {
		front := renderDeck("front.pdf", models.Front, 1)
		back := renderDeck("back.pdf", models.Back, 1)

		diffs, err := preview.ComparePages(ctx, front, back, 36)
		Expect(err).NotTo(HaveOccurred())
		Expect(diffs).To(HaveLen(1))
		Expect(diffs[0].Match()).To(BeFalse())
	})

	It("should report pages missing from the shorter document", func() {
		short := renderDeck("short.pdf", models.Front, 1)
		long := renderDeck("long.pdf", models.Front, 20)

		diffs, err := preview.ComparePages(ctx, short, long, 36)
		Expect(err).NotTo(HaveOccurred())
		Expect(len(diffs)).To(BeNumerically(">", 1))
		last := diffs[len(diffs)-1]
		Expect(last.HashA).To(BeEmpty())
		Expect(last.Match()).To(BeFalse())
	})
})
