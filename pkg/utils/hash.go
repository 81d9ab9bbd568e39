package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"strings"
)

func GenerateImageHash(img image.Image) (string, error) {
	hasher := sha256.New()
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			fmt.Fprintf(hasher, "%d%d%d%d", r, g, b, a)
		}
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// GenerateRecordHash identifies a card by its two sides, ignoring case and
// surrounding whitespace, so re-imports of the same deck are recognised.
func GenerateRecordHash(sideA, sideB string) string {
	hasher := sha256.New()
	hasher.Write([]byte(strings.ToLower(strings.TrimSpace(sideA))))
	hasher.Write([]byte{0})
	hasher.Write([]byte(strings.ToLower(strings.TrimSpace(sideB))))
	return hex.EncodeToString(hasher.Sum(nil))
}
