// Package intelligence defines the eight multiple-intelligence dimensions
// reported by the assessment and how scores over them are ranked.
package intelligence

import "sort"

// Dimension is one of the eight assessed intelligences. The declaration
// order is the fixed tie-break order used by every ranking.
type Dimension int

const (
	Linguistic Dimension = iota
	LogicalMathematical
	Spatial
	Musical
	BodilyKinesthetic
	Naturalistic
	Interpersonal
	Intrapersonal
)

// Count is the number of dimensions.
const Count = 8

var dimensionInfo = [Count]struct {
	key   string
	label string
}{
	Linguistic:          {"linguistic", "Linguística"},
	LogicalMathematical: {"logical_mathematical", "Lógico-Matemática"},
	Spatial:             {"spatial", "Espacial"},
	Musical:             {"musical", "Musical"},
	BodilyKinesthetic:   {"bodily_kinesthetic", "Cinestésico-Corporal"},
	Naturalistic:        {"naturalistic", "Naturalista"},
	Interpersonal:       {"interpersonal", "Interpessoal"},
	Intrapersonal:       {"intrapersonal", "Intrapessoal"},
}

// All returns every dimension in fixed order.
func All() []Dimension {
	dims := make([]Dimension, Count)
	for i := range dims {
		dims[i] = Dimension(i)
	}
	return dims
}

// Valid reports whether d is one of the eight dimensions.
func (d Dimension) Valid() bool {
	return d >= 0 && d < Count
}

// Key returns the wire name of the dimension, e.g. "logical_mathematical".
func (d Dimension) Key() string {
	if !d.Valid() {
		return "unknown"
	}
	return dimensionInfo[d].key
}

// Label returns the display name shown to users.
func (d Dimension) Label() string {
	if !d.Valid() {
		return "Desconhecida"
	}
	return dimensionInfo[d].label
}

func (d Dimension) String() string {
	return d.Key()
}

// Scores holds one integer score per dimension, indexed by Dimension.
type Scores [Count]int

// Descriptions holds one descriptive text per dimension. Empty strings
// mean no description was provided.
type Descriptions [Count]string

// Entry is a single ranked dimension.
type Entry struct {
	Dimension   Dimension
	Score       int
	Description string
}

// Rank orders all dimensions by descending score. Equal scores keep the
// fixed dimension order. desc may be nil.
func Rank(scores Scores, desc *Descriptions) []Entry {
	entries := make([]Entry, Count)
	for _, d := range All() {
		entries[d] = Entry{Dimension: d, Score: scores[d]}
		if desc != nil {
			entries[d].Description = desc[d]
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	return entries
}

// Top returns the dimension with the highest score, preferring the
// earlier dimension on ties.
func Top(scores Scores) Dimension {
	top := Linguistic
	for _, d := range All() {
		if scores[d] > scores[top] {
			top = d
		}
	}
	return top
}
