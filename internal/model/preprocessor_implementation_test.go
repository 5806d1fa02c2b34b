package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildMembership(t *testing.T) {
	//**Arrange
	preprocessor := preprocessorImplementation{}
	instance := Instance{
		Days:          2,
		PeriodsPerDay: 2,
		Teachers:      []Teacher{{Name: "t1"}},
		Courses: []Course{
			{Name: "c1", Lectures: 1, MinDays: 1},
			{Name: "c2", Lectures: 1, MinDays: 1},
			{Name: "c3", Lectures: 1, MinDays: 1},
		},
		Rooms: []Room{{Name: "r1", Capacity: 10}},
		Curricula: []Curriculum{
			{Name: "q1", Courses: []int{0, 1}},
			{Name: "q2", Courses: []int{1, 2}},
		},
	}

	//**Act
	membership := preprocessor.BuildMembership(instance)

	//**Assert
	assert.Equal(t, [][]bool{
		{true, false},
		{true, true},
		{false, true},
	}, membership)
}

func TestBuildUnavailability(t *testing.T) {
	//**Arrange
	preprocessor := preprocessorImplementation{}
	instance := Instance{
		Days:          2,
		PeriodsPerDay: 3,
		Teachers:      []Teacher{{Name: "t1"}},
		Courses: []Course{
			{Name: "c1", Lectures: 1, MinDays: 1},
			{Name: "c2", Lectures: 1, MinDays: 1},
		},
		Rooms: []Room{{Name: "r1", Capacity: 10}},
		Unavailabilities: []Unavailability{
			{Course: 0, Day: 0, Period: 2},
			{Course: 0, Day: 1, Period: 0},
			{Course: 1, Day: 1, Period: 2},
		},
	}

	//**Act
	unavailable := preprocessor.BuildUnavailability(instance)

	//**Assert
	assert.Equal(t, [][]bool{
		{false, false, true, true, false, false},
		{false, false, false, false, false, true},
	}, unavailable)
}
