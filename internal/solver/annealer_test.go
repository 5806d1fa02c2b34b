package solver

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"coursetable/internal/model"
)

func TestMetropolis(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	t.Run("Improvements are always accepted", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			assert.True(t, metropolis(-4, 1000, rng))
		}
	})

	t.Run("Sideways moves are always accepted", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			assert.True(t, metropolis(0, 1000, rng))
			assert.True(t, metropolis(0, 0.00001, rng))
		}
	})

	t.Run("Huge uphill moves at low temperature are rejected", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			assert.False(t, metropolis(4_000_000, 0.001, rng))
		}
	})
}

func TestCoolingStage(t *testing.T) {
	scenarios := []struct {
		temperature float64
		iterations  int
		cooling     float64
	}{
		{1_000_000, 600, 0.98},
		{500, 800, 0.97},
		{50, 1000, 0.98},
		{5, 1200, 0.99},
		{0.5, 1500, 0.993},
		{0.01, 1200, 0.995},
	}

	for _, scenario := range scenarios {
		iterations, cooling := coolingStage(scenario.temperature)

		assert.Equal(t, scenario.iterations, iterations)
		assert.Equal(t, scenario.cooling, cooling)
	}
}

func TestDefaultParameters(t *testing.T) {
	parameters := DefaultParameters()

	assert.Equal(t, 1_000_000.0, parameters.InitialTemperature)
	assert.Equal(t, 0.00001, parameters.FinalTemperature)
	assert.Equal(t, 10*parameters.FinalTemperature, parameters.ReheatThreshold)
	assert.Equal(t, 8000, parameters.StagnationLimit)
}

func TestSolveTrivialInstance(t *testing.T) {
	//**Arrange: a single lecture in a permissive instance; any placement is
	// already optimal, so the run ends right after construction
	instance := model.Instance{
		Name:          "trivial",
		Days:          1,
		PeriodsPerDay: 2,
		Teachers:      []model.Teacher{{Name: "t1"}},
		Courses: []model.Course{
			{Name: "c1", Teacher: 0, Lectures: 1, MinDays: 1, Students: 10, RoomType: 0},
		},
		Rooms: []model.Room{{Name: "r1", Capacity: 30, RoomType: 0}},
	}
	context := NewSearchContext(instance, nil, rand.New(rand.NewSource(1)))
	annealer := NewAnnealer(context, DefaultParameters(), nil)

	//**Act
	result := annealer.Solve()

	//**Assert
	assert.Equal(t, 0, result.Penalty)
	assert.Equal(t, 0, result.Violations.Hard())
	assert.Equal(t, []int{1}, lectureCounts(result.Grid, 1))
}

func TestSolveReachesFeasibility(t *testing.T) {
	//**Arrange
	context := testContext(nil)
	annealer := NewAnnealer(context, DefaultParameters(), nil)

	//**Act
	result := annealer.Solve()

	//**Assert: a zero-penalty solution of the fixture exists and the grid
	// is small enough for the search to find it
	assert.Equal(t, 0, result.Penalty)
	assert.Equal(t, 0, result.Violations.Hard())
	assert.Equal(t, []int{2, 2, 1}, lectureCounts(result.Grid, 3))
}

func TestSolveRecordsHistory(t *testing.T) {
	//**Arrange
	context := testContext(nil)
	annealer := NewAnnealer(context, DefaultParameters(), nil)

	//**Act
	result := annealer.Solve()

	//**Assert: samples are penalties in strictly improving order
	assert.LessOrEqual(t, len(result.History), historySize)
	for i := 1; i < len(result.History); i++ {
		assert.Less(t, result.History[i].Penalty, result.History[i-1].Penalty)
		assert.GreaterOrEqual(t, result.History[i].Elapsed, result.History[i-1].Elapsed)
	}
}
