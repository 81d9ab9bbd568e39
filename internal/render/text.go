package render

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// LineBreak is the character that forces a new line inside a card's text.
const LineBreak = "^"

// WrapText splits text into lines no wider than width display columns.
// Words are kept whole unless a single word is wider than the line.
func WrapText(text string, width int) []string {
	text = strings.ReplaceAll(text, LineBreak, "\n")
	if width < 1 {
		width = 1
	}

	var lines []string
	for _, chunk := range strings.Split(text, "\n") {
		lines = append(lines, wrapChunk(chunk, width)...)
	}
	return lines
}

func wrapChunk(chunk string, width int) []string {
	var (
		lines []string
		cur   strings.Builder
		curW  int
	)
	flush := func() {
		if cur.Len() > 0 {
			lines = append(lines, cur.String())
			cur.Reset()
			curW = 0
		}
	}

	for _, word := range strings.Fields(chunk) {
		w := runewidth.StringWidth(word)
		if w > width {
			flush()
			pieces := strings.Split(runewidth.Wrap(word, width), "\n")
			lines = append(lines, pieces[:len(pieces)-1]...)
			last := pieces[len(pieces)-1]
			cur.WriteString(last)
			curW = runewidth.StringWidth(last)
			continue
		}
		if curW > 0 && curW+1+w > width {
			flush()
		}
		if curW > 0 {
			cur.WriteByte(' ')
			curW++
		}
		cur.WriteString(word)
		curW += w
	}
	flush()
	return lines
}
