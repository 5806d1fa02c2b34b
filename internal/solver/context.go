package solver

import (
	"math/rand"
	"time"

	"coursetable/internal/model"
)

// SearchContext bundles everything a run's components share: the instance,
// its derived lookup tables, the random source, the external teacher-day
// hint and the single Violations value the evaluator rewrites on every call.
// Each run owns its own context, so independent runs never interfere.
type SearchContext struct {
	Instance model.Instance
	Rand     *rand.Rand
	Hint     TeacherDayHint

	membership  [][]bool // [course][curriculum]
	unavailable [][]bool // [course][period]
	indexer     Indexer
	violations  *Violations
}

// NewSearchContext prepares the shared state for one run. A nil rng gets a
// time-seeded source.
func NewSearchContext(instance model.Instance, hint TeacherDayHint, rng *rand.Rand) *SearchContext {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	preprocessor := model.NewPreprocessor()

	return &SearchContext{
		Instance:    instance,
		Rand:        rng,
		Hint:        hint,
		membership:  preprocessor.BuildMembership(instance),
		unavailable: preprocessor.BuildUnavailability(instance),
		indexer:     NewIndexer(instance.TotalPeriods(), len(instance.Rooms)),
		violations:  NewViolations(instance),
	}
}

// inCurriculum reports whether a course belongs to a curriculum.
func (context *SearchContext) inCurriculum(course, curriculum int) bool {
	return context.membership[course][curriculum]
}

// isUnavailable reports whether a course is forbidden in a period.
func (context *SearchContext) isUnavailable(course, period int) bool {
	return context.unavailable[course][period]
}
