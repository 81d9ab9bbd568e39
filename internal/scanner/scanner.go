package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kpauljoseph/printcards/pkg/logger"
)

var ErrNoDecks = errors.New("no CSV files found")

type DirectoryScanner struct {
	logger *logger.Logger
}

func New(logger *logger.Logger) *DirectoryScanner {
	return &DirectoryScanner{
		logger: logger,
	}
}

// FindCSVs returns every .csv file under dir in lexical order. The
// extension match ignores case.
func (s *DirectoryScanner) FindCSVs(ctx context.Context, dir string) ([]string, error) {
	var decks []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			return fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if d.IsDir() {
			s.logger.Trace("Scanning directory: %s", path)
			return nil
		}

		if !strings.EqualFold(filepath.Ext(path), ".csv") {
			return nil
		}

		relPath, err := filepath.Rel(dir, path)
		if err != nil {
			relPath = path
		}
		s.logger.Debug("Found deck (%d): %s", len(decks)+1, relPath)
		decks = append(decks, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(decks) == 0 {
		return nil, fmt.Errorf("%w in %s or its subdirectories", ErrNoDecks, dir)
	}

	sort.Strings(decks)
	return decks, nil
}
