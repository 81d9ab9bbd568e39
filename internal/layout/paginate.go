package layout

import "fmt"

// Paginate splits records into consecutive groups of cardsPerPage. The final
// group may be shorter; an empty input yields no groups.
func Paginate[T any](records []T, cardsPerPage int) ([][]T, error) {
	if cardsPerPage < 1 {
		return nil, fmt.Errorf("%w: cards per page must be at least 1, got %d", ErrInvalidLayoutConfiguration, cardsPerPage)
	}

	groups := make([][]T, 0, PageCount(len(records), cardsPerPage))
	for start := 0; start < len(records); start += cardsPerPage {
		end := min(start+cardsPerPage, len(records))
		groups = append(groups, records[start:end:end])
	}
	return groups, nil
}

// IsPageBreak reports whether the record at index fills its page. The answer
// is the same on both sides, which keeps front and back documents aligned.
// A trailing short page gets no break; the writer closes it.
func IsPageBreak(index, cardsPerPage int) bool {
	if cardsPerPage < 1 {
		return false
	}
	return (index+1)%cardsPerPage == 0
}

// PageCount estimates the number of pages needed for total records.
func PageCount(total, cardsPerPage int) int {
	if total <= 0 || cardsPerPage < 1 {
		return 0
	}
	return (total + cardsPerPage - 1) / cardsPerPage
}
