package solver

// Penalty weights. The hard weight dominates any achievable combination of
// soft penalties, so minimizing the total enforces feasibility first and
// quality second without an explicit phase split.
const (
	hardWeight        = 1_000_000
	minDaysWeight     = 5
	compactnessWeight = 2
	capacityWeight    = 1
	stabilityWeight   = 1
	spreadWeight      = 5

	// Days per week a teacher may lecture before the spread rule penalizes.
	maxTeachingDays = 2
)

// Evaluator computes the objective value of a grid.
type Evaluator interface {
	// Evaluate scans the whole grid, stores the total penalty on it and
	// returns the penalty together with the rebuilt violation state. The
	// returned state is owned by the run's context and is overwritten by the
	// next call.
	Evaluate(grid *Grid) (int, *Violations)
}

func NewEvaluator(context *SearchContext) Evaluator {
	return &standardEvaluator{context: context}
}

type standardEvaluator struct {
	context *SearchContext
}

func (evaluator *standardEvaluator) Evaluate(grid *Grid) (int, *Violations) {
	context := evaluator.context
	instance := context.Instance
	violations := context.violations
	violations.reset(context.Hint)

	penalty := 0

	//** Main pass: visit every assigned cell and update each rule's tracking
	for period := range grid.Cells {
		day := instance.Day(period)

		for room := range grid.Cells[period] {
			course := grid.Cells[period][room]
			if course == Empty {
				continue
			}

			cell := context.indexer.Index(period, room)
			teacher := instance.Courses[course].Teacher

			// Lecture count
			violations.lectures[course]++

			// Teacher conflicts
			violations.teacherLoad[period][teacher]++
			if violations.teacherLoad[period][teacher] > 1 {
				violations.teacherConflictCell[course] = cell
			}

			// Curriculum conflicts
			for curriculum := range instance.Curricula {
				if context.inCurriculum(course, curriculum) {
					violations.curriculumLoad[period][curriculum]++
					if violations.curriculumLoad[period][curriculum] > 1 {
						violations.curriculumConflictCell[course] = cell
					}
				}
			}

			// Availability
			if context.isUnavailable(course, period) {
				violations.unavailableCell[course] = cell
				violations.Unavailable++
				penalty += hardWeight
			}

			// Minimum days tracking
			violations.courseDays[course][day]++

			// Compactness
			penalty += evaluator.isolation(grid, course, period, room)

			// Capacity
			if excess := instance.Courses[course].Students - instance.Rooms[room].Capacity; excess > 0 {
				penalty += capacityWeight * excess
				violations.Overflow += excess
				if violations.worstOverflow[course][0] < excess {
					violations.worstOverflow[course] = [2]int{excess, cell}
				}
			}

			// Stability
			if violations.firstRoom[course] == Empty {
				violations.firstRoom[course] = room
			} else if violations.firstRoom[course] != room {
				penalty += stabilityWeight
				violations.Unstable++
				if violations.Unstable <= len(violations.unstableCells) {
					violations.unstableCells[violations.Unstable-1] = cell
				}
			}

			// Day-spread tracking
			violations.teacherDays[teacher][day] = true

			// Room type
			if instance.Courses[course].RoomType != instance.Rooms[room].RoomType {
				penalty += hardWeight
				violations.WrongRoomType++
				violations.wrongRoomCell[course] = [2]int{instance.Courses[course].RoomType, cell}
			}

			// Same-day duplicates
			violations.dayCount[day][course]++
			if violations.dayCount[day][course] > 1 {
				violations.duplicateCell[period][room] = course
			}
		}
	}

	//** Aggregation pass: finalize the rules that need whole-grid counts

	// Teacher and curriculum conflicts
	for period := range violations.teacherLoad {
		for teacher := range violations.teacherLoad[period] {
			if load := violations.teacherLoad[period][teacher]; load > 1 {
				penalty += hardWeight * (load - 1)
				violations.TeacherConflicts++
			}
		}
		for curriculum := range violations.curriculumLoad[period] {
			if load := violations.curriculumLoad[period][curriculum]; load > 1 {
				penalty += hardWeight * (load - 1)
				violations.CurriculumConflicts++
			}
		}
	}

	// Lecture counts and minimum days
	for course := range instance.Courses {
		if diff := absoluteDifference(violations.lectures[course], instance.Courses[course].Lectures); diff > 0 {
			penalty += hardWeight * diff
			violations.LectureCount += diff
		}

		days := 0
		for day := range violations.courseDays[course] {
			if violations.courseDays[course][day] > 0 {
				days++
			}
		}
		if days < instance.Courses[course].MinDays {
			missing := instance.Courses[course].MinDays - days
			penalty += minDaysWeight * missing
			violations.MissingDays += missing
			violations.scheduledDays[course] = days
		}
	}

	// Teacher day-spread
	for teacher := range violations.teacherDays {
		days := 0
		for day := range violations.teacherDays[teacher] {
			if violations.teacherDays[teacher][day] {
				days++
			}
		}
		if days > maxTeachingDays {
			penalty += spreadWeight * (days - maxTeachingDays)
			violations.OverSpread += days - maxTeachingDays
			violations.spreadDays[teacher] = days
		}
	}

	// Same-day duplicates
	for day := range violations.dayCount {
		for course := range violations.dayCount[day] {
			if count := violations.dayCount[day][course]; count > 1 {
				penalty += hardWeight * (count - 1)
				violations.DayDuplicates += count - 1
			}
		}
	}

	grid.Penalty = penalty
	return penalty, violations
}

// isolation penalizes a lecture for every curriculum in which no lecture of
// the same curriculum occupies the immediately preceding or following period
// of the same day.
func (evaluator *standardEvaluator) isolation(grid *Grid, course, period, room int) int {
	context := evaluator.context
	instance := context.Instance
	violations := context.violations

	penalty := 0
	for curriculum := range instance.Curricula {
		if !context.inCurriculum(course, curriculum) {
			continue
		}
		if evaluator.accompanied(grid, curriculum, period) {
			continue
		}

		penalty += compactnessWeight
		violations.Isolated++
		violations.isolatedCell[period][room] = course
	}
	return penalty
}

// accompanied reports whether any lecture of the curriculum occupies an
// adjacent period of the same day.
func (evaluator *standardEvaluator) accompanied(grid *Grid, curriculum, period int) bool {
	context := evaluator.context
	instance := context.Instance

	if instance.PeriodInDay(period) < instance.PeriodsPerDay-1 {
		for room := range grid.Cells[period+1] {
			if neighbor := grid.Cells[period+1][room]; neighbor != Empty && context.inCurriculum(neighbor, curriculum) {
				return true
			}
		}
	}
	if instance.PeriodInDay(period) > 0 {
		for room := range grid.Cells[period-1] {
			if neighbor := grid.Cells[period-1][room]; neighbor != Empty && context.inCurriculum(neighbor, curriculum) {
				return true
			}
		}
	}
	return false
}

func absoluteDifference(n1, n2 int) int {
	if n1 > n2 {
		return n1 - n2
	}
	return n2 - n1
}
