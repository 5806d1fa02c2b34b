package solver

// Indexer gives a unique index to a (period, room) cell and vice versa. The
// violation hints store cell locations in this encoded form.
type Indexer interface {
	// Returns a unique index for a (period, room) cell
	Index(period, room int) int
	// Returns the (period, room) cell encoded by an index
	Attributes(index int) (period int, room int)
}

func NewIndexer(periods, rooms int) Indexer {
	return &cellIndexer{
		periods: periods,
		rooms:   rooms,
	}
}

type cellIndexer struct {
	periods int
	rooms   int
}

func (indexer *cellIndexer) Index(period, room int) int {
	return room*indexer.periods + period
}

func (indexer *cellIndexer) Attributes(index int) (period int, room int) {
	room = index / indexer.periods
	period = index % indexer.periods
	return period, room
}
