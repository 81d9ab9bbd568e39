package preview_test

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/printcards/internal/layout"
	"github.com/kpauljoseph/printcards/internal/preview"
)

var (
	red   = color.RGBA{255, 0, 0, 255}
	blue  = color.RGBA{0, 0, 255, 255}
	white = color.RGBA{255, 255, 255, 255}
)

func fill(img *image.RGBA, rect image.Rectangle, c color.Color) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.Set(x, y, c)
		}
	}
}

func writePNG(path string, img image.Image) {
	f, err := os.Create(path)
	Expect(err).NotTo(HaveOccurred())
	defer f.Close()
	Expect(png.Encode(f, img)).To(Succeed())
}

func readImage(path string) image.Image {
	f, err := os.Open(path)
	Expect(err).NotTo(HaveOccurred())
	defer f.Close()

	img, err := png.Decode(f)
	Expect(err).NotTo(HaveOccurred())
	return img
}

func uniform(img image.Image, c color.RGBA) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			cr, cg, cb, ca := c.RGBA()
			if r != cr || g != cg || bl != cb || a != ca {
				return false
			}
		}
	}
	return true
}

var _ = Describe("Card Splitter", func() {
	var (
		splitter  *preview.Splitter
		sourceDir string
		outputDir string
		page      layout.PageSize
		pagePath  string
	)

	BeforeEach(func() {
		var err error
		sourceDir, err = os.MkdirTemp("", "splitter-test-source-*")
		Expect(err).NotTo(HaveOccurred())
		outputDir, err = os.MkdirTemp("", "splitter-test-output-*")
		Expect(err).NotTo(HaveOccurred())

		splitter, err = preview.NewSplitter(outputDir, previewTestLogger())
		Expect(err).NotTo(HaveOccurred())

		// a 100x200 pt page rendered at two pixels per point
		page = layout.PageSize{Width: 100, Height: 200}
		img := image.NewRGBA(image.Rect(0, 0, 200, 400))
		fill(img, img.Bounds(), white)
		// card at x=10 y=20 (lower left), 30x40 pt
		fill(img, image.Rect(20, 280, 80, 360), red)
		// card at x=60 y=150, 30x40 pt
		fill(img, image.Rect(120, 20, 180, 100), blue)

		pagePath = filepath.Join(sourceDir, "page_001.png")
		writePNG(pagePath, img)
	})

	AfterEach(func() {
		os.RemoveAll(sourceDir)
		os.RemoveAll(outputDir)
	})

	It("should crop placements with the y axis flipped", func() {
		placements := []layout.Placement{
			{Column: 0, Row: 1, X: 10, Y: 20, Width: 30, Height: 40},
			{Column: 1, Row: 0, X: 60, Y: 150, Width: 30, Height: 40},
		}

		cards, err := splitter.SplitCards(pagePath, placements, page)
		Expect(err).NotTo(HaveOccurred())
		Expect(cards).To(HaveLen(2))

		first := readImage(cards[0].Path)
		Expect(first.Bounds().Dx()).To(Equal(60))
		Expect(first.Bounds().Dy()).To(Equal(80))
		Expect(uniform(first, red)).To(BeTrue())
		Expect(cards[0].Column).To(Equal(0))
		Expect(cards[0].Row).To(Equal(1))

		second := readImage(cards[1].Path)
		Expect(uniform(second, blue)).To(BeTrue())
	})

	It("should name cards by content", func() {
		p := layout.Placement{X: 10, Y: 20, Width: 30, Height: 40}
		cards, err := splitter.SplitCards(pagePath, []layout.Placement{p, p}, page)
		Expect(err).NotTo(HaveOccurred())
		Expect(cards).To(HaveLen(2))
		Expect(cards[0].Hash).To(HaveLen(64))
		Expect(cards[0].Path).To(Equal(cards[1].Path))
		Expect(filepath.Base(cards[0].Path)).To(Equal("card_" + cards[0].Hash[:12] + ".png"))
	})

	It("should clip cards that overflow the page and skip those outside it", func() {
		placements := []layout.Placement{
			{X: -10, Y: -10, Width: 30, Height: 30},
			{X: 500, Y: 500, Width: 10, Height: 10},
		}
		cards, err := splitter.SplitCards(pagePath, placements, page)
		Expect(err).NotTo(HaveOccurred())
		Expect(cards).To(HaveLen(1))

		img := readImage(cards[0].Path)
		Expect(img.Bounds().Dx()).To(Equal(40))
		Expect(img.Bounds().Dy()).To(Equal(40))
	})

	It("should fail on a missing image", func() {
		_, err := splitter.SplitCards(filepath.Join(sourceDir, "missing.png"), nil, page)
		Expect(err).To(HaveOccurred())
	})
})
