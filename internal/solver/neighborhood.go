package solver

// Band bonus per outstanding violation of each rule. Every directed
// operator's selection band widens with the number of violations it can
// repair, so the search intensifies on the rules that are currently broken
// and falls back to the generic swaps otherwise.
const (
	teacherConflictBias    = 100
	curriculumConflictBias = 100
	compactnessBias        = 2
	capacityBias           = 1
	stabilityBias          = 1
	spreadBias             = 20
	roomTypeBias           = 1
	duplicateBias          = 100
)

// Generator produces a neighboring solution by mutating a grid in place.
type Generator interface {
	// Perturb applies exactly one of the eleven move operators, chosen by a
	// weighted draw over the violation state the previous evaluation left
	// behind. Directed repairs that succeed decrement their counter and
	// clear the consumed hint, so later moves don't re-target it.
	Perturb(grid *Grid, violations *Violations, temperature float64)
}

func NewGenerator(context *SearchContext) Generator {
	return &adaptiveGenerator{context: context}
}

type adaptiveGenerator struct {
	context *SearchContext
}

// attemptBudget bounds how long a directed repair searches for a clean
// destination before settling for any swap: few blind retries while the
// temperature is high, more as the search cools down.
func attemptBudget(temperature float64) int {
	switch {
	case temperature < 1:
		return 6
	case temperature < 10:
		return 5
	case temperature < 100:
		return 4
	case temperature < 1000:
		return 3
	default:
		return 2
	}
}

func (generator *adaptiveGenerator) Perturb(grid *Grid, violations *Violations, temperature float64) {
	budget := attemptBudget(temperature)
	draw := generator.context.Rand.Intn(1000)

	switch {
	case violations.TeacherConflicts > 0 && draw < 100+teacherConflictBias*violations.TeacherConflicts:
		generator.repairTeacherConflict(grid, violations, budget)
	case violations.CurriculumConflicts > 0 && draw < 100+curriculumConflictBias*violations.CurriculumConflicts:
		generator.repairCurriculumConflict(grid, violations, budget)
	case violations.Isolated > 0 && draw >= 100 && draw < 200+compactnessBias*violations.Isolated:
		generator.repairIsolation(grid, violations, budget)
	case violations.Overflow > 0 && draw >= 200 && draw < 300+capacityBias*violations.Overflow:
		generator.repairOverflow(grid, violations, budget)
	case violations.Unstable > 0 && draw >= 300 && draw < 400+stabilityBias*violations.Unstable:
		generator.repairInstability(grid, violations, budget)
	case violations.OverSpread > 0 && draw >= 400 && draw < 500+spreadBias*violations.OverSpread:
		generator.repairSpread(grid, violations, budget)
	case violations.WrongRoomType > 0 && draw >= 500 && draw < 600+roomTypeBias*violations.WrongRoomType:
		generator.repairRoomType(grid, violations, budget)
	case violations.DayDuplicates > 0 && draw >= 600 && draw < 700+duplicateBias*violations.DayDuplicates:
		generator.repairDuplicate(grid, violations, budget)
	case draw >= 700 && draw < 800:
		generator.swapWithinPeriod(grid, budget)
	case draw >= 800 && draw < 900:
		generator.swapWithinRoom(grid, budget)
	default:
		generator.swapRandom(grid, budget)
	}
}

// repairTeacherConflict relocates a lecture flagged for a teacher conflict,
// preferring a destination period where its teacher is free.
func (generator *adaptiveGenerator) repairTeacherConflict(grid *Grid, violations *Violations, budget int) {
	course := generator.pickHint(violations.teacherConflictCell)
	if course == Empty {
		generator.swapRandom(grid, budget)
		return
	}

	context := generator.context
	period, room := context.indexer.Attributes(violations.teacherConflictCell[course])
	teacher := context.Instance.Courses[course].Teacher

	for attempt := 0; ; attempt++ {
		k := context.Rand.Intn(grid.Periods())
		l := context.Rand.Intn(grid.Rooms())

		if grid.Cells[k][l] == Empty && violations.teacherLoad[k][teacher] == 0 {
			grid.Cells[k][l] = grid.Cells[period][room]
			grid.Cells[period][room] = Empty
			break
		} else if grid.Cells[k][l] != Empty && violations.teacherLoad[k][teacher] == 0 {
			grid.Swap(period, room, k, l)
			break
		} else if attempt >= budget {
			grid.Swap(period, room, k, l)
			break
		}
	}

	violations.teacherConflictCell[course] = Empty
	violations.TeacherConflicts--
}

// repairCurriculumConflict relocates a lecture flagged for a curriculum
// conflict, preferring a period where none of the course's curricula is
// already scheduled.
func (generator *adaptiveGenerator) repairCurriculumConflict(grid *Grid, violations *Violations, budget int) {
	course := generator.pickHint(violations.curriculumConflictCell)
	if course == Empty {
		generator.swapRandom(grid, budget)
		return
	}

	context := generator.context
	period, room := context.indexer.Attributes(violations.curriculumConflictCell[course])

	for attempt := 0; ; attempt++ {
		k := context.Rand.Intn(grid.Periods())
		l := context.Rand.Intn(grid.Rooms())

		if grid.Cells[k][l] == Empty && generator.curriculaFree(violations, course, k) {
			grid.Cells[k][l] = grid.Cells[period][room]
			grid.Cells[period][room] = Empty
			break
		} else if grid.Cells[k][l] != Empty && k != period && generator.curriculaFree(violations, course, k) {
			grid.Swap(period, room, k, l)
			break
		} else if attempt >= budget {
			grid.Swap(period, room, k, l)
			break
		}
	}

	violations.curriculumConflictCell[course] = Empty
	violations.CurriculumConflicts--
}

// curriculaFree reports whether none of the course's curricula has a lecture
// in the period, according to the last evaluation's load matrix.
func (generator *adaptiveGenerator) curriculaFree(violations *Violations, course, period int) bool {
	for curriculum := range generator.context.Instance.Curricula {
		if generator.context.inCurriculum(course, curriculum) && violations.curriculumLoad[period][curriculum] > 0 {
			return false
		}
	}
	return true
}

// repairIsolation moves an isolated lecture to a different period, pairing
// two isolated lectures when it can.
func (generator *adaptiveGenerator) repairIsolation(grid *Grid, violations *Violations, budget int) {
	period, room := generator.pickMatrixHint(violations.isolatedCell)
	if period == Empty {
		generator.swapRandom(grid, budget)
		return
	}

	context := generator.context
	for attempt := 0; ; attempt++ {
		k := context.Rand.Intn(grid.Periods())
		l := context.Rand.Intn(grid.Rooms())

		if grid.Cells[k][l] == Empty && k != period {
			grid.Cells[k][l] = grid.Cells[period][room]
			grid.Cells[period][room] = Empty
			break
		} else if violations.isolatedCell[k][l] != Empty && k != period {
			grid.Swap(period, room, k, l)
			violations.isolatedCell[k][l] = Empty
			break
		} else if attempt >= budget {
			grid.Swap(period, room, k, l)
			break
		}
	}

	violations.isolatedCell[period][room] = Empty
	violations.Isolated--
}

// repairOverflow relocates the worst over-capacity lecture of a flagged
// course into a room that fits it.
func (generator *adaptiveGenerator) repairOverflow(grid *Grid, violations *Violations, budget int) {
	course := generator.pickPairHint(violations.worstOverflow)
	if course == Empty {
		generator.swapRandom(grid, budget)
		return
	}

	context := generator.context
	instance := context.Instance
	excess := violations.worstOverflow[course][0]
	period, room := context.indexer.Attributes(violations.worstOverflow[course][1])

	for attempt := 0; ; attempt++ {
		k := context.Rand.Intn(grid.Periods())
		l := context.Rand.Intn(grid.Rooms())
		occupant := grid.Cells[k][l]

		if occupant == Empty && instance.Rooms[l].Capacity >= instance.Courses[course].Students {
			grid.Cells[k][l] = grid.Cells[period][room]
			grid.Cells[period][room] = Empty
			break
		} else if occupant != Empty && instance.Rooms[l].Capacity >= instance.Courses[course].Students &&
			instance.Courses[occupant].Students-instance.Rooms[l].Capacity > excess {
			grid.Swap(period, room, k, l)
			break
		} else if occupant != Empty && instance.Courses[occupant].Students > instance.Rooms[l].Capacity {
			grid.Swap(period, room, k, l)
			break
		} else if attempt >= budget {
			grid.Swap(period, room, k, l)
			break
		}
	}

	violations.worstOverflow[course] = [2]int{Empty, Empty}
	violations.Overflow -= excess
	if violations.Overflow < 0 {
		violations.Overflow = 0
	}
}

// repairInstability sends a lecture scheduled outside its course's first-used
// room back to that room.
func (generator *adaptiveGenerator) repairInstability(grid *Grid, violations *Violations, budget int) {
	flagged := violations.Unstable
	if flagged > len(violations.unstableCells) {
		flagged = len(violations.unstableCells)
	}

	context := generator.context
	index := context.Rand.Intn(flagged)
	cell := violations.unstableCells[index]
	if cell == Empty {
		generator.swapRandom(grid, budget)
		return
	}

	period, room := context.indexer.Attributes(cell)
	course := grid.Cells[period][room]
	if course == Empty || violations.firstRoom[course] == Empty {
		// The hint went stale after an earlier move in this iteration.
		generator.swapRandom(grid, budget)
		return
	}
	home := violations.firstRoom[course]

	for attempt := 0; ; attempt++ {
		k := context.Rand.Intn(grid.Periods())

		if grid.Cells[k][home] == Empty {
			grid.Cells[k][home] = grid.Cells[period][room]
			grid.Cells[period][room] = Empty
			break
		} else if attempt >= budget {
			grid.Swap(period, room, k, home)
			break
		}
	}

	violations.unstableCells[index] = Empty
	violations.Unstable--
}

// repairSpread concentrates an over-spread teacher's lectures: it moves one
// lecture from one of the teacher's days into another day the teacher
// already uses.
func (generator *adaptiveGenerator) repairSpread(grid *Grid, violations *Violations, budget int) {
	teacher := generator.pickHint(violations.spreadDays)
	if teacher == Empty {
		generator.swapRandom(grid, budget)
		return
	}

	context := generator.context
	instance := context.Instance

	workedDays := make([]int, 0, instance.Days)
	for day, teaches := range violations.teacherDays[teacher] {
		if teaches {
			workedDays = append(workedDays, day)
		}
	}
	if len(workedDays) < 2 {
		generator.swapRandom(grid, budget)
		return
	}

	source := workedDays[context.Rand.Intn(len(workedDays))]
	destination := workedDays[context.Rand.Intn(len(workedDays))]
	for destination == source {
		destination = workedDays[context.Rand.Intn(len(workedDays))]
	}

	// First lecture of the teacher on the source day.
	sourcePeriod, sourceRoom := Empty, Empty
	for period := source * instance.PeriodsPerDay; period < (source+1)*instance.PeriodsPerDay && sourcePeriod == Empty; period++ {
		for room := range grid.Cells[period] {
			if course := grid.Cells[period][room]; course != Empty && instance.Courses[course].Teacher == teacher {
				sourcePeriod, sourceRoom = period, room
				break
			}
		}
	}
	if sourcePeriod == Empty {
		generator.swapRandom(grid, budget)
		return
	}

	for attempt := 0; attempt < 2*budget; attempt++ {
		k := destination*instance.PeriodsPerDay + context.Rand.Intn(instance.PeriodsPerDay)
		l := context.Rand.Intn(grid.Rooms())
		occupant := grid.Cells[k][l]

		if occupant == Empty {
			grid.Cells[k][l] = grid.Cells[sourcePeriod][sourceRoom]
			grid.Cells[sourcePeriod][sourceRoom] = Empty
			break
		} else if violations.spreadDays[instance.Courses[occupant].Teacher] == Empty {
			grid.Swap(sourcePeriod, sourceRoom, k, l)
			break
		} else if attempt >= budget {
			grid.Swap(sourcePeriod, sourceRoom, k, l)
			break
		}
	}

	violations.spreadDays[teacher] = Empty
	violations.OverSpread--
}

// repairRoomType relocates a lecture sitting in a room of the wrong type into
// one of the required type.
func (generator *adaptiveGenerator) repairRoomType(grid *Grid, violations *Violations, budget int) {
	course := generator.pickPairHint(violations.wrongRoomCell)
	if course == Empty {
		generator.swapRandom(grid, budget)
		return
	}

	context := generator.context
	instance := context.Instance
	required := violations.wrongRoomCell[course][0]
	period, room := context.indexer.Attributes(violations.wrongRoomCell[course][1])

	for attempt := 0; ; attempt++ {
		k := context.Rand.Intn(grid.Periods())
		l := context.Rand.Intn(grid.Rooms())
		occupant := grid.Cells[k][l]

		if occupant == Empty && instance.Rooms[l].RoomType == required {
			grid.Cells[k][l] = grid.Cells[period][room]
			grid.Cells[period][room] = Empty
			break
		} else if occupant != Empty && instance.Rooms[l].RoomType == required &&
			instance.Courses[occupant].RoomType == instance.Rooms[room].RoomType {
			// Both lectures end up in rooms of their required type.
			grid.Swap(period, room, k, l)
			break
		} else if occupant != Empty && instance.Courses[occupant].RoomType != instance.Rooms[l].RoomType {
			grid.Swap(period, room, k, l)
			break
		} else if attempt >= budget {
			grid.Swap(period, room, k, l)
			break
		}
	}

	violations.wrongRoomCell[course] = [2]int{Empty, Empty}
	violations.WrongRoomType--
}

// repairDuplicate moves a same-day repeat of a course to a different day.
func (generator *adaptiveGenerator) repairDuplicate(grid *Grid, violations *Violations, budget int) {
	period, room := generator.firstMatrixHint(violations.duplicateCell)
	if period == Empty {
		generator.swapRandom(grid, budget)
		return
	}

	context := generator.context
	instance := context.Instance
	day := instance.Day(period)

	for attempt := 0; attempt < 3*budget; attempt++ {
		k := context.Rand.Intn(grid.Periods())
		l := context.Rand.Intn(grid.Rooms())
		if instance.Day(k) == day {
			continue
		}

		if grid.Cells[k][l] == Empty {
			grid.Cells[k][l] = grid.Cells[period][room]
			grid.Cells[period][room] = Empty
			break
		}
		grid.Swap(period, room, k, l)
		break
	}

	violations.duplicateCell[period][room] = Empty
	violations.DayDuplicates--
}

// swapWithinPeriod exchanges rooms between cells of one random period,
// repeated a small random number of times.
func (generator *adaptiveGenerator) swapWithinPeriod(grid *Grid, budget int) {
	if !generator.hasLecture(grid) {
		return
	}

	rand := generator.context.Rand
	swaps := 1 + rand.Intn(2*budget)
	for swaps > 0 {
		period := rand.Intn(grid.Periods())
		room1 := rand.Intn(grid.Rooms())
		room2 := rand.Intn(grid.Rooms())
		if grid.Cells[period][room1] != Empty || grid.Cells[period][room2] != Empty {
			grid.Swap(period, room1, period, room2)
			swaps--
		}
	}
}

// swapWithinRoom exchanges periods between cells of one random room.
func (generator *adaptiveGenerator) swapWithinRoom(grid *Grid, budget int) {
	if !generator.hasLecture(grid) {
		return
	}

	rand := generator.context.Rand
	swaps := 1 + rand.Intn(2*budget)
	for swaps > 0 {
		room := rand.Intn(grid.Rooms())
		period1 := rand.Intn(grid.Periods())
		period2 := rand.Intn(grid.Periods())
		if grid.Cells[period1][room] != Empty || grid.Cells[period2][room] != Empty {
			grid.Swap(period1, room, period2, room)
			swaps--
		}
	}
}

// swapRandom exchanges two fully random cells.
func (generator *adaptiveGenerator) swapRandom(grid *Grid, budget int) {
	if !generator.hasLecture(grid) {
		return
	}

	rand := generator.context.Rand
	swaps := 1 + rand.Intn(budget)
	for swaps > 0 {
		period1 := rand.Intn(grid.Periods())
		room1 := rand.Intn(grid.Rooms())
		period2 := rand.Intn(grid.Periods())
		room2 := rand.Intn(grid.Rooms())
		if grid.Cells[period1][room1] != Empty || grid.Cells[period2][room2] != Empty {
			grid.Swap(period1, room1, period2, room2)
			swaps--
		}
	}
}

func (generator *adaptiveGenerator) hasLecture(grid *Grid) bool {
	for period := range grid.Cells {
		for room := range grid.Cells[period] {
			if grid.Cells[period][room] != Empty {
				return true
			}
		}
	}
	return false
}

// pickHint returns a random index whose hint is set, mixing random probes
// with a linear sweep; Empty when every hint has been consumed already.
func (generator *adaptiveGenerator) pickHint(hints []int) int {
	rand := generator.context.Rand
	for range hints {
		if j := rand.Intn(len(hints)); hints[j] != Empty {
			return j
		}
	}
	for i := range hints {
		if hints[i] != Empty {
			return i
		}
	}
	return Empty
}

// pickPairHint is pickHint over {value, cell} hints.
func (generator *adaptiveGenerator) pickPairHint(hints [][2]int) int {
	rand := generator.context.Rand
	for range hints {
		if j := rand.Intn(len(hints)); hints[j][0] != Empty {
			return j
		}
	}
	for i := range hints {
		if hints[i][0] != Empty {
			return i
		}
	}
	return Empty
}

// pickMatrixHint returns a random flagged cell of a [period][room] hint
// matrix; (Empty, Empty) when none is flagged.
func (generator *adaptiveGenerator) pickMatrixHint(hints [][]int) (int, int) {
	rand := generator.context.Rand
	for attempt := 0; attempt < len(hints)*len(hints[0]); attempt++ {
		period := rand.Intn(len(hints))
		room := rand.Intn(len(hints[period]))
		if hints[period][room] != Empty {
			return period, room
		}
	}
	return generator.firstMatrixHint(hints)
}

// firstMatrixHint returns the first flagged cell in scan order.
func (generator *adaptiveGenerator) firstMatrixHint(hints [][]int) (int, int) {
	for period := range hints {
		for room := range hints[period] {
			if hints[period][room] != Empty {
				return period, room
			}
		}
	}
	return Empty, Empty
}
