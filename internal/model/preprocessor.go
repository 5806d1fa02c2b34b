package model

// Preprocessor derives the lookup tables the search consults on every
// evaluation, so rule checks stay O(1) per cell.
type Preprocessor interface {
	// BuildMembership returns a [course][curriculum] matrix where a true
	// coordinate states that the course belongs to the curriculum.
	BuildMembership(instance Instance) [][]bool
	// BuildUnavailability returns a [course][period] matrix where a true
	// coordinate states that the course must not be scheduled in the period.
	BuildUnavailability(instance Instance) [][]bool
}

func NewPreprocessor() Preprocessor {
	return &preprocessorImplementation{}
}
