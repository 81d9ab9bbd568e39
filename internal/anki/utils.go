package anki

import (
	"path/filepath"
	"strings"
)

const (
	ANKI_CONNECT_VERSION = 6
)

// GetDeckNameFromPath builds a nested deck name such as
// "Root::chapter1::vocab" from a deck file path relative to the scanned root.
func GetDeckNameFromPath(rootPrefix string, relativePath string) string {
	dirPath := filepath.Dir(relativePath)
	if dirPath == "." {
		dirPath = ""
	}

	fileName := strings.TrimSuffix(filepath.Base(relativePath), filepath.Ext(relativePath))

	var parts []string
	if rootPrefix != "" {
		parts = append(parts, rootPrefix)
	}
	if dirPath != "" {
		parts = append(parts, strings.Split(dirPath, string(filepath.Separator))...)
	}
	parts = append(parts, fileName)

	return strings.Join(parts, "::")
}

// NoteTags returns the tags for a card: the application tag plus the
// record's own tag with spaces replaced by underscores.
func NoteTags(recordTag string) []string {
	tags := []string{AppTag}
	if tag := underscoreSeparated(recordTag); tag != "" {
		tags = append(tags, tag)
	}
	return tags
}

func underscoreSeparated(name string) string {
	return strings.Join(strings.Fields(name), "_")
}
