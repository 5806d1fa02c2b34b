package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func lectureCounts(grid Grid, courses int) []int {
	counts := make([]int, courses)
	for period := range grid.Cells {
		for room := range grid.Cells[period] {
			if course := grid.Cells[period][room]; course != Empty {
				counts[course]++
			}
		}
	}
	return counts
}

func TestAttemptBudget(t *testing.T) {
	assert.Equal(t, 2, attemptBudget(1_000_000))
	assert.Equal(t, 3, attemptBudget(999))
	assert.Equal(t, 4, attemptBudget(99))
	assert.Equal(t, 5, attemptBudget(9))
	assert.Equal(t, 6, attemptBudget(0.5))
}

func TestPerturbPreservesLectures(t *testing.T) {
	//**Arrange
	context := testContext(nil)
	evaluator := NewEvaluator(context)
	generator := NewGenerator(context)

	grid := NewConstructor(context).Construct()
	expected := lectureCounts(grid, len(context.Instance.Courses))

	//**Act and assert: moves relocate lectures but never create or drop one
	for _, temperature := range []float64{1_000_000, 500, 50, 5, 0.5} {
		for i := 0; i < 200; i++ {
			_, violations := evaluator.Evaluate(&grid)
			generator.Perturb(&grid, violations, temperature)

			assert.Equal(t, expected, lectureCounts(grid, len(context.Instance.Courses)))
		}
	}
}

func TestRepairTeacherConflict(t *testing.T) {
	//**Arrange: c1 and c3 share period 1, both taught by t1
	context := testContext(nil)
	generator := &adaptiveGenerator{context: context}

	grid := perfectGrid()
	grid.Cells[1][1] = Empty
	grid.Cells[0][1] = 2

	_, violations := NewEvaluator(context).Evaluate(&grid)
	assert.Equal(t, 1, violations.TeacherConflicts)

	//**Act
	generator.repairTeacherConflict(&grid, violations, 4)

	//**Assert
	assert.Equal(t, 0, violations.TeacherConflicts)
	assert.Equal(t, Empty, violations.teacherConflictCell[2])
	assert.Equal(t, []int{2, 2, 1}, lectureCounts(grid, 3))
}

func TestRepairCurriculumConflict(t *testing.T) {
	//**Arrange: c1 and c2 share period 1, both members of q1
	context := testContext(nil)
	generator := &adaptiveGenerator{context: context}

	grid := NewGrid(4, 2)
	grid.Cells[0][0] = 0
	grid.Cells[0][1] = 1
	grid.Cells[2][0] = 0
	grid.Cells[3][0] = 1
	grid.Cells[3][1] = 2

	_, violations := NewEvaluator(context).Evaluate(&grid)
	assert.Equal(t, 1, violations.CurriculumConflicts)

	//**Act
	generator.repairCurriculumConflict(&grid, violations, 4)

	//**Assert
	assert.Equal(t, 0, violations.CurriculumConflicts)
	assert.Equal(t, []int{2, 2, 1}, lectureCounts(grid, 3))
}

func TestRepairInstability(t *testing.T) {
	//**Arrange: one c2 lecture away from its first-used room
	context := testContext(nil)
	generator := &adaptiveGenerator{context: context}

	grid := perfectGrid()
	grid.Cells[2][0] = Empty
	grid.Cells[2][1] = 1

	_, violations := NewEvaluator(context).Evaluate(&grid)
	assert.Equal(t, 1, violations.Unstable)

	//**Act
	generator.repairInstability(&grid, violations, 4)

	//**Assert
	assert.Equal(t, 0, violations.Unstable)
	assert.Equal(t, []int{2, 2, 1}, lectureCounts(grid, 3))
}

func TestGenericSwapsPreserveTheirDimension(t *testing.T) {
	context := testContext(nil)
	generator := &adaptiveGenerator{context: context}

	t.Run("Within a period", func(t *testing.T) {
		//**Arrange
		grid := perfectGrid()
		before := grid.Clone()

		//**Act
		generator.swapWithinPeriod(&grid, 3)

		//**Assert: every period keeps its own set of courses
		for period := range grid.Cells {
			assert.ElementsMatch(t, before.Cells[period], grid.Cells[period])
		}
	})

	t.Run("Within a room", func(t *testing.T) {
		//**Arrange
		grid := perfectGrid()
		roomCounts := func(grid Grid, room int) []int {
			courses := make([]int, 0, grid.Periods())
			for period := range grid.Cells {
				courses = append(courses, grid.Cells[period][room])
			}
			return courses
		}
		before := grid.Clone()

		//**Act
		generator.swapWithinRoom(&grid, 3)

		//**Assert: every room keeps its own set of courses
		for room := 0; room < grid.Rooms(); room++ {
			assert.ElementsMatch(t, roomCounts(before, room), roomCounts(grid, room))
		}
	})

	t.Run("Empty grid", func(t *testing.T) {
		grid := NewGrid(4, 2)

		generator.swapWithinPeriod(&grid, 3)
		generator.swapWithinRoom(&grid, 3)
		generator.swapRandom(&grid, 3)

		assert.Equal(t, NewGrid(4, 2).Cells, grid.Cells)
	})
}

func TestPickHint(t *testing.T) {
	context := testContext(nil)
	generator := &adaptiveGenerator{context: context}

	t.Run("Single set hint", func(t *testing.T) {
		hints := []int{Empty, Empty, 5, Empty}
		assert.Equal(t, 2, generator.pickHint(hints))
	})

	t.Run("All consumed", func(t *testing.T) {
		hints := []int{Empty, Empty, Empty}
		assert.Equal(t, Empty, generator.pickHint(hints))
	})
}
