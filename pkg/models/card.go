package models

// Side selects which face of a card is being laid out.
type Side int

const (
	Front Side = iota
	Back
)

func (s Side) String() string {
	switch s {
	case Front:
		return "front"
	case Back:
		return "back"
	}
	return "unknown"
}

// Record is one question/answer pair read from the input file.
type Record struct {
	SideA string `json:"side_a"`
	SideB string `json:"side_b"`
	Tag   string `json:"tag,omitempty"`
}

// Text returns the content printed on the given side.
func (r Record) Text(side Side) string {
	if side == Back {
		return r.SideB
	}
	return r.SideA
}

// IsBlank reports whether neither side carries any text.
func (r Record) IsBlank() bool {
	return r.SideA == "" && r.SideB == ""
}
