package types

// Request is a single floor-transport request. Immutable once created.
type Request struct {
	SourceFloor      int
	DestinationFloor int
}

type Direction int

const (
	DirUp   Direction = 1
	DirDown Direction = -1
)

func (d Direction) String() string {
	if d == DirDown {
		return "down"
	}
	return "up"
}

type Behaviour int

const (
	Idle Behaviour = iota
	MovingToSource
	MovingToDest
	Stopped
)

type EventType int

const (
	FloorChanged EventType = iota
	ArrivedSource
	ArrivedDestination
)

func (t EventType) String() string {
	switch t {
	case FloorChanged:
		return "floorChanged"
	case ArrivedSource:
		return "arrivedSource"
	case ArrivedDestination:
		return "arrivedDestination"
	}
	return "unknown"
}

// Event is one observation from an elevator worker. Events from the same
// elevator are delivered in the order the worker produced them.
type Event struct {
	Elevator int
	Type     EventType
	Floor    int
}
