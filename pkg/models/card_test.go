package models_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/printcards/pkg/models"
)

var _ = Describe("Card Models", func() {
	Context("Record", func() {
		It("should return the text for each side", func() {
			record := models.Record{SideA: "capital of Italy", SideB: "Rome", Tag: "geo"}

			Expect(record.Text(models.Front)).To(Equal("capital of Italy"))
			Expect(record.Text(models.Back)).To(Equal("Rome"))
		})

		It("should only be blank when both sides are empty", func() {
			Expect(models.Record{}.IsBlank()).To(BeTrue())
			Expect(models.Record{Tag: "orphan"}.IsBlank()).To(BeTrue())
			Expect(models.Record{SideB: "Rome"}.IsBlank()).To(BeFalse())
		})
	})

	Context("Side", func() {
		It("should name both sides", func() {
			Expect(models.Front.String()).To(Equal("front"))
			Expect(models.Back.String()).To(Equal("back"))
			Expect(models.Side(7).String()).To(Equal("unknown"))
		})
	})
})
