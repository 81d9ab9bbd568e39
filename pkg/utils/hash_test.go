package utils_test

import (
	"image"
	"image/color"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/printcards/pkg/utils"
)

func solid(c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

var _ = Describe("Hashing", func() {
	It("should hash identical images identically", func() {
		a, err := utils.GenerateImageHash(solid(color.White))
		Expect(err).NotTo(HaveOccurred())
		b, err := utils.GenerateImageHash(solid(color.White))
		Expect(err).NotTo(HaveOccurred())
		c, err := utils.GenerateImageHash(solid(color.Black))
		Expect(err).NotTo(HaveOccurred())

		Expect(a).To(Equal(b))
		Expect(a).NotTo(Equal(c))
		Expect(a).To(HaveLen(64))
	})

	It("should normalise record text before hashing", func() {
		Expect(utils.GenerateRecordHash(" Capital of Italy", "ROME ")).
			To(Equal(utils.GenerateRecordHash("capital of italy", "rome")))
	})

	It("should keep the two sides apart", func() {
		Expect(utils.GenerateRecordHash("ab", "c")).
			NotTo(Equal(utils.GenerateRecordHash("a", "bc")))
	})
})
