package solver

import "coursetable/internal/model"

// TeacherDayHint flags, per teacher and day, whether the teacher already
// lectures somewhere else that day. It seeds the day-spread tracking when a
// second, related instance is solved for the same teacher roster.
type TeacherDayHint [][]bool

// TeacherDays derives the per-teacher day-usage map from a solved grid, so
// it can seed a follow-up run.
func TeacherDays(grid Grid, instance model.Instance) TeacherDayHint {
	hint := make(TeacherDayHint, len(instance.Teachers))
	for teacher := range hint {
		hint[teacher] = make([]bool, instance.Days)
	}

	for period := range grid.Cells {
		for room := range grid.Cells[period] {
			course := grid.Cells[period][room]
			if course == Empty {
				continue
			}
			hint[instance.Courses[course].Teacher][instance.Day(period)] = true
		}
	}

	return hint
}

// Violations is the side state produced by every evaluation: per-rule
// violation counters plus the repair hints the next move consults. It's
// rebuilt from scratch on each Evaluate call and never patched incrementally,
// so it only ever describes the most recently evaluated grid.
type Violations struct {
	LectureCount        int // scheduled occurrences differing from the required count
	TeacherConflicts    int // (period, teacher) pairs with two or more lectures
	CurriculumConflicts int // (period, curriculum) pairs with two or more lectures
	Unavailable         int // lectures scheduled in a forbidden period
	MissingDays         int // days short of the per-course minimum
	Isolated            int // (lecture, curriculum) pairs with no adjacent companion
	Overflow            int // students beyond room capacity
	Unstable            int // lectures outside the course's first-used room
	OverSpread          int // teacher days beyond the teaching-day limit
	WrongRoomType       int // lectures in a room of the wrong type
	DayDuplicates       int // same-day repeats of a course

	// Tracking matrices rebuilt during the evaluation scan.
	lectures       []int    // [course] scheduled occurrences
	teacherLoad    [][]int  // [period][teacher] lectures
	curriculumLoad [][]int  // [period][curriculum] lectures
	courseDays     [][]int  // [course][day] occurrences
	dayCount       [][]int  // [day][course] occurrences
	teacherDays    [][]bool // [teacher][day] teaches, possibly hint-seeded
	firstRoom      []int    // [course] first room seen, or Empty

	// Repair hints: encoded cell locations (see Indexer) of the flagged
	// lectures, consumed and cleared by directed moves.
	teacherConflictCell    []int    // [course] cell or Empty
	curriculumConflictCell []int    // [course] cell or Empty
	unavailableCell        []int    // [course] cell or Empty
	scheduledDays          []int    // [course] distinct days when below the minimum
	isolatedCell           [][]int  // [period][room] isolated course or Empty
	worstOverflow          [][2]int // [course] {largest excess, cell}
	unstableCells          []int    // cells outside the first-used room, bounded
	spreadDays             []int    // [teacher] teaching days when above the limit
	wrongRoomCell          [][2]int // [course] {required type, cell}
	duplicateCell          [][]int  // [period][room] duplicated course or Empty
}

func NewViolations(instance model.Instance) *Violations {
	periods := instance.TotalPeriods()
	courses := len(instance.Courses)
	teachers := len(instance.Teachers)
	curricula := len(instance.Curricula)
	rooms := len(instance.Rooms)

	violations := &Violations{
		lectures:               make([]int, courses),
		teacherLoad:            makeMatrix(periods, teachers),
		curriculumLoad:         makeMatrix(periods, curricula),
		courseDays:             makeMatrix(courses, instance.Days),
		dayCount:               makeMatrix(instance.Days, courses),
		firstRoom:              make([]int, courses),
		teacherConflictCell:    make([]int, courses),
		curriculumConflictCell: make([]int, courses),
		unavailableCell:        make([]int, courses),
		scheduledDays:          make([]int, courses),
		isolatedCell:           makeMatrix(periods, rooms),
		worstOverflow:          make([][2]int, courses),
		unstableCells:          make([]int, periods),
		spreadDays:             make([]int, teachers),
		wrongRoomCell:          make([][2]int, courses),
		duplicateCell:          makeMatrix(periods, rooms),
	}

	violations.teacherDays = make([][]bool, teachers)
	for teacher := range violations.teacherDays {
		violations.teacherDays[teacher] = make([]bool, instance.Days)
	}

	return violations
}

// Hard returns the total count of hard-rule violations; a feasible grid has
// Hard() == 0.
func (violations *Violations) Hard() int {
	return violations.LectureCount +
		violations.TeacherConflicts +
		violations.CurriculumConflicts +
		violations.Unavailable +
		violations.WrongRoomType +
		violations.DayDuplicates
}

// reset clears every counter, matrix and hint, then seeds the teacher-day
// tracking from the external hint when one is present.
func (violations *Violations) reset(hint TeacherDayHint) {
	violations.LectureCount = 0
	violations.TeacherConflicts = 0
	violations.CurriculumConflicts = 0
	violations.Unavailable = 0
	violations.MissingDays = 0
	violations.Isolated = 0
	violations.Overflow = 0
	violations.Unstable = 0
	violations.OverSpread = 0
	violations.WrongRoomType = 0
	violations.DayDuplicates = 0

	setVector(violations.lectures, 0)
	setMatrix(violations.teacherLoad, 0)
	setMatrix(violations.curriculumLoad, 0)
	setMatrix(violations.courseDays, 0)
	setMatrix(violations.dayCount, 0)
	setVector(violations.firstRoom, Empty)

	setVector(violations.teacherConflictCell, Empty)
	setVector(violations.curriculumConflictCell, Empty)
	setVector(violations.unavailableCell, Empty)
	setVector(violations.scheduledDays, Empty)
	setMatrix(violations.isolatedCell, Empty)
	setVector(violations.unstableCells, Empty)
	setVector(violations.spreadDays, Empty)
	setMatrix(violations.duplicateCell, Empty)
	for course := range violations.worstOverflow {
		violations.worstOverflow[course] = [2]int{Empty, Empty}
		violations.wrongRoomCell[course] = [2]int{Empty, Empty}
	}

	for teacher := range violations.teacherDays {
		for day := range violations.teacherDays[teacher] {
			seeded := hint != nil && teacher < len(hint) && day < len(hint[teacher]) && hint[teacher][day]
			violations.teacherDays[teacher][day] = seeded
		}
	}
}

func makeMatrix(rows, columns int) [][]int {
	matrix := make([][]int, rows)
	for row := range matrix {
		matrix[row] = make([]int, columns)
	}
	return matrix
}

func setMatrix(matrix [][]int, value int) {
	for row := range matrix {
		setVector(matrix[row], value)
	}
}

func setVector(vector []int, value int) {
	for i := range vector {
		vector[i] = value
	}
}
