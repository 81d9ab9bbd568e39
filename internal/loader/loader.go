package loader

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kpauljoseph/printcards/pkg/logger"
	"github.com/kpauljoseph/printcards/pkg/models"
)

var (
	ErrNoHeader       = errors.New("file has no header row or is empty")
	ErrMissingColumns = errors.New("missing side A / side B columns")
)

// Header aliases, matched after normalisation.
var (
	sideAColumns = []string{"latoa", "sidea", "a", "front", "question"}
	sideBColumns = []string{"latob", "sideb", "b", "back", "answer"}
	tagColumns   = []string{"tag", "labels", "etichetta", "tags"}
)

const utf8BOM = "\ufeff"

type Loader struct {
	delimiter rune
	logger    *logger.Logger
}

type Option func(*Loader)

func WithDelimiter(d rune) Option {
	return func(l *Loader) {
		l.delimiter = d
	}
}

func New(logger *logger.Logger, options ...Option) *Loader {
	l := &Loader{
		delimiter: ';',
		logger:    logger,
	}
	for _, opt := range options {
		opt(l)
	}
	return l
}

func (l *Loader) Load(ctx context.Context, path string) ([]models.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	l.logger.Debug("Loading cards from %s", path)
	records, err := l.LoadReader(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return records, nil
}

// LoadReader parses delimited text with a header row. Rows with both sides
// empty are dropped.
func (l *Loader) LoadReader(ctx context.Context, r io.Reader) ([]models.Record, error) {
	br := bufio.NewReader(r)
	if bom, err := br.Peek(len(utf8BOM)); err == nil && string(bom) == utf8BOM {
		br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.Comma = l.delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		key := NormalizeColumn(name)
		if _, seen := columns[key]; !seen {
			columns[key] = i
		}
	}

	colA, okA := lookup(columns, sideAColumns)
	colB, okB := lookup(columns, sideBColumns)
	if !okA || !okB {
		return nil, fmt.Errorf("%w (found: %s)", ErrMissingColumns, strings.Join(header, ", "))
	}
	colTag, hasTag := lookup(columns, tagColumns)
	l.logger.Trace("Column mapping: side A=%d side B=%d tag=%d (present: %v)", colA, colB, colTag, hasTag)

	var (
		records []models.Record
		skipped int
	)
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read line %d: %w", line, err)
		}

		record := models.Record{
			SideA: field(row, colA),
			SideB: field(row, colB),
		}
		if hasTag {
			record.Tag = field(row, colTag)
		}
		if record.IsBlank() {
			skipped++
			continue
		}
		records = append(records, record)
	}

	l.logger.Debug("Loaded %d cards (%d blank rows skipped)", len(records), skipped)
	return records, nil
}

// NormalizeColumn lower-cases a header name and drops spaces and underscores,
// so "Lato A", "side_a" and "SideA" all compare equal.
func NormalizeColumn(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer(" ", "", "_", "").Replace(name)
}

func lookup(columns map[string]int, aliases []string) (int, bool) {
	for _, alias := range aliases {
		if i, ok := columns[alias]; ok {
			return i, true
		}
	}
	return -1, false
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
