package solver

// Constructor builds the starting grid.
type Constructor interface {
	// Construct places every required lecture of every course, preferring
	// cells that are empty, large enough, of the right type and not
	// forbidden. After a few consecutive rejections for a course it forces
	// placement into any empty cell, so construction always terminates. The
	// result satisfies the lecture counts but usually violates other rules;
	// repairing them is the annealer's job.
	Construct() Grid
}

func NewConstructor(context *SearchContext) Constructor {
	return &greedyConstructor{context: context}
}

// Consecutive rejections tolerated before a course is placed by force.
const constructionPatience = 2

type greedyConstructor struct {
	context *SearchContext
}

func (constructor *greedyConstructor) Construct() Grid {
	context := constructor.context
	instance := context.Instance
	grid := NewGrid(instance.TotalPeriods(), len(instance.Rooms))

	for course := range instance.Courses {
		remaining := instance.Courses[course].Lectures
		rejections := 0

		for remaining > 0 {
			period := context.Rand.Intn(instance.TotalPeriods())
			room := context.Rand.Intn(len(instance.Rooms))

			if grid.Cells[period][room] == Empty &&
				instance.Rooms[room].Capacity >= instance.Courses[course].Students &&
				instance.Rooms[room].RoomType == instance.Courses[course].RoomType &&
				!context.isUnavailable(course, period) {
				grid.Cells[period][room] = course
				remaining--
				rejections -= constructionPatience + 1
				continue
			}

			rejections++
			if rejections > constructionPatience && grid.Cells[period][room] == Empty {
				// Forced placement: ignore capacity, type and availability so
				// the loop cannot run forever on a tight instance.
				grid.Cells[period][room] = course
				remaining--
				rejections -= constructionPatience + 1
			}
		}
	}

	return grid
}
