package model

import (
	"fmt"

	"github.com/samber/lo"
)

// Teacher lectures one or more courses. Teachers are catalogued in the order
// they first appear among the courses.
type Teacher struct {
	Name string
}

// Course is a set of weekly lectures given by a single teacher that must be
// assigned to (period, room) cells.
type Course struct {
	Name     string
	Teacher  int // index into Instance.Teachers
	Lectures int // weekly lectures to schedule
	MinDays  int // minimum distinct days the lectures should span
	Students int // enrolled students
	RoomType int // required room type
}

// Room is a candidate destination for a lecture.
type Room struct {
	Name     string
	Capacity int
	RoomType int
}

// Curriculum is a named group of courses whose students attend all of them,
// hence no two member courses may share a period.
type Curriculum struct {
	Name    string
	Courses []int // indices into Instance.Courses
}

// Unavailability forbids a course from being scheduled in a given
// (day, period-in-day) slot.
type Unavailability struct {
	Course int
	Day    int
	Period int // period within the day
}

// Instance is the static problem data. It's immutable during a run: the
// solver only reads from it.
type Instance struct {
	Name             string
	Days             int
	PeriodsPerDay    int
	Teachers         []Teacher
	Courses          []Course
	Rooms            []Room
	Curricula        []Curriculum
	Unavailabilities []Unavailability
}

// TotalPeriods returns the grid's row dimension: days × periods per day.
func (instance Instance) TotalPeriods() int {
	return instance.Days * instance.PeriodsPerDay
}

// Day extracts the day a period belongs to.
func (instance Instance) Day(period int) int {
	return period / instance.PeriodsPerDay
}

// PeriodInDay extracts the within-day slot of a period.
func (instance Instance) PeriodInDay(period int) int {
	return period % instance.PeriodsPerDay
}

// Validate verifies the instance is structurally sound. The solver assumes a
// validated instance: malformed data must never reach the search.
func (instance Instance) Validate() error {
	if instance.Days <= 0 || instance.PeriodsPerDay <= 0 {
		return fmt.Errorf("instance must have positive days and periods per day: %v, %v", instance.Days, instance.PeriodsPerDay)
	}
	if len(instance.Courses) == 0 {
		return fmt.Errorf("instance must have at least one course")
	}
	if len(instance.Rooms) == 0 {
		return fmt.Errorf("instance must have at least one room")
	}

	for _, course := range instance.Courses {
		if course.Teacher < 0 || course.Teacher >= len(instance.Teachers) {
			return fmt.Errorf("course %v references unknown teacher %v", course.Name, course.Teacher)
		}
		if course.Lectures <= 0 {
			return fmt.Errorf("course %v must have at least one lecture", course.Name)
		}
		if course.MinDays > instance.Days {
			return fmt.Errorf("course %v requires more days (%v) than the instance has (%v)", course.Name, course.MinDays, instance.Days)
		}
	}

	totalLectures := lo.SumBy(instance.Courses, func(course Course) int { return course.Lectures })
	if totalLectures > instance.TotalPeriods()*len(instance.Rooms) {
		return fmt.Errorf("instance requires %v lectures but only %v cells exist", totalLectures, instance.TotalPeriods()*len(instance.Rooms))
	}

	for _, curriculum := range instance.Curricula {
		if lo.SomeBy(curriculum.Courses, func(course int) bool {
			return course < 0 || course >= len(instance.Courses)
		}) {
			return fmt.Errorf("curriculum %v references an unknown course", curriculum.Name)
		}
	}

	for _, unavailability := range instance.Unavailabilities {
		if unavailability.Course < 0 || unavailability.Course >= len(instance.Courses) {
			return fmt.Errorf("unavailability references unknown course %v", unavailability.Course)
		}
		if unavailability.Day < 0 || unavailability.Day >= instance.Days ||
			unavailability.Period < 0 || unavailability.Period >= instance.PeriodsPerDay {
			return fmt.Errorf("unavailability for course %v is out of range: day %v, period %v",
				instance.Courses[unavailability.Course].Name, unavailability.Day, unavailability.Period)
		}
	}

	return nil
}
