package render_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/printcards/internal/render"
)

var _ = Describe("Text wrapping", func() {
	DescribeTable("WrapText",
		func(text string, width int, want []string) {
			Expect(render.WrapText(text, width)).To(Equal(want))
		},
		Entry("short text", "Rome", 30, []string{"Rome"}),
		Entry("wraps on words", "the quick brown fox jumps", 10, []string{"the quick", "brown fox", "jumps"}),
		Entry("caret forces a break", "first^second", 30, []string{"first", "second"}),
		Entry("newline forces a break", "first\nsecond", 30, []string{"first", "second"}),
		Entry("long words are split", "abcdefghij xy", 4, []string{"abcd", "efgh", "ij", "xy"}),
		Entry("collapses whitespace", "  a   b  ", 30, []string{"a b"}),
		Entry("wide runes count double", "日本語 日本語", 6, []string{"日本語", "日本語"}),
		Entry("empty text", "", 30, []string(nil)),
	)
})
