package solver

// Empty marks a (period, room) cell with no lecture assigned.
const Empty = -1

// Grid is the solution representation: a period × room table where each cell
// holds at most one course id. A room hosting at most one lecture per period
// is guaranteed by the representation itself, never recomputed.
//
// Penalty is valid only immediately after an evaluation; any mutation leaves
// it stale until the grid is evaluated again.
type Grid struct {
	Cells   [][]int
	Penalty int
}

func NewGrid(periods, rooms int) Grid {
	cells := make([][]int, periods)
	for period := range cells {
		cells[period] = make([]int, rooms)
		for room := range cells[period] {
			cells[period][room] = Empty
		}
	}
	return Grid{Cells: cells}
}

func (grid Grid) Periods() int {
	return len(grid.Cells)
}

func (grid Grid) Rooms() int {
	if len(grid.Cells) == 0 {
		return 0
	}
	return len(grid.Cells[0])
}

// Clone returns an independent copy of the grid.
func (grid Grid) Clone() Grid {
	clone := NewGrid(grid.Periods(), grid.Rooms())
	clone.CopyFrom(grid)
	return clone
}

// CopyFrom overwrites the grid with another of the same dimensions.
func (grid *Grid) CopyFrom(other Grid) {
	for period := range grid.Cells {
		copy(grid.Cells[period], other.Cells[period])
	}
	grid.Penalty = other.Penalty
}

// Swap exchanges the contents of two cells. Swapping the same two cells again
// restores the grid exactly.
func (grid Grid) Swap(period1, room1, period2, room2 int) {
	grid.Cells[period1][room1], grid.Cells[period2][room2] = grid.Cells[period2][room2], grid.Cells[period1][room1]
}
