package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTeacherDays(t *testing.T) {
	//**Arrange
	instance := testInstance()
	grid := perfectGrid()

	//**Act
	hint := TeacherDays(grid, instance)

	//**Assert: t1 lectures c1 and c3 on both days, t2 lectures c2 on both
	assert.Equal(t, TeacherDayHint{
		{true, true},
		{true, true},
	}, hint)
}

func TestTeacherDaysPartialUsage(t *testing.T) {
	//**Arrange: every lecture on day 1
	instance := testInstance()
	grid := NewGrid(4, 2)
	grid.Cells[0][0] = 0
	grid.Cells[1][0] = 2

	//**Act
	hint := TeacherDays(grid, instance)

	//**Assert
	assert.Equal(t, TeacherDayHint{
		{true, false},
		{false, false},
	}, hint)
}

func TestHardCountsOnlyHardRules(t *testing.T) {
	violations := &Violations{
		LectureCount:        1,
		TeacherConflicts:    2,
		CurriculumConflicts: 3,
		Unavailable:         4,
		WrongRoomType:       5,
		DayDuplicates:       6,

		MissingDays: 10,
		Isolated:    10,
		Overflow:    10,
		Unstable:    10,
		OverSpread:  10,
	}

	assert.Equal(t, 21, violations.Hard())
}

func TestResetClearsStateAndSeedsHint(t *testing.T) {
	//**Arrange: dirty the state with an evaluation of a bad grid
	context := testContext(nil)
	grid := NewGrid(4, 2)
	grid.Cells[0][0] = 0
	grid.Cells[0][1] = 1
	NewEvaluator(context).Evaluate(&grid)

	violations := context.violations
	assert.NotEqual(t, 0, violations.Hard())

	//**Act
	hint := TeacherDayHint{{true, false}, {false, false}}
	violations.reset(hint)

	//**Assert
	assert.Equal(t, 0, violations.Hard())
	assert.Equal(t, 0, violations.MissingDays+violations.Isolated+violations.Overflow+violations.Unstable+violations.OverSpread)

	for course := range violations.teacherConflictCell {
		assert.Equal(t, Empty, violations.teacherConflictCell[course])
		assert.Equal(t, Empty, violations.curriculumConflictCell[course])
		assert.Equal(t, [2]int{Empty, Empty}, violations.worstOverflow[course])
		assert.Equal(t, [2]int{Empty, Empty}, violations.wrongRoomCell[course])
		assert.Equal(t, Empty, violations.firstRoom[course])
	}

	assert.True(t, violations.teacherDays[0][0])
	assert.False(t, violations.teacherDays[0][1])
	assert.False(t, violations.teacherDays[1][0])
}
