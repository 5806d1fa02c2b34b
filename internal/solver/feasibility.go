package solver

import (
	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"
)

type unassignableError struct {
}

func (err unassignableError) Error() string {
	return "not every lecture can be assigned an acceptable cell"
}

// CheckAssignable verifies that a maximum matching between lectures and
// acceptable cells covers every lecture, where a cell is acceptable when the
// room fits the course's students, has the required type and the period is
// not forbidden. A failed check means no fully satisfying assignment exists
// and some placements will necessarily be forced.
func CheckAssignable(context *SearchContext) error {
	instance := context.Instance

	lectures := make([]int, 0)
	for course := range instance.Courses {
		for lecture := 0; lecture < instance.Courses[course].Lectures; lecture++ {
			lectures = append(lectures, course)
		}
	}

	cells := make([]int, instance.TotalPeriods()*len(instance.Rooms))
	for cell := range cells {
		cells[cell] = cell
	}

	acceptable := func(lectureAny any, cellAny any) (bool, error) {
		course := lectureAny.(int)
		period, room := context.indexer.Attributes(cellAny.(int))

		return instance.Rooms[room].Capacity >= instance.Courses[course].Students &&
			instance.Rooms[room].RoomType == instance.Courses[course].RoomType &&
			!context.isUnavailable(course, period), nil
	}

	lecturesAny := lo.Map(lectures, func(course int, _ int) any { return course })
	cellsAny := lo.Map(cells, func(cell int, _ int) any { return cell })

	graph, err := bipartitegraph.NewBipartiteGraph(lecturesAny, cellsAny, acceptable)
	if err != nil {
		return err
	}

	if matching := graph.LargestMatching(); len(matching) < len(lectures) {
		return unassignableError{}
	}
	return nil
}
