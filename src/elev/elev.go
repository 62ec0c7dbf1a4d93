package elev

import (
	"log/slog"
	"sync"

	"github.com/tiendc/go-deepcopy"

	"multilift/src/config"
	"multilift/src/timer"
	"multilift/src/types"
)

// Elevator is one unit of the fleet. It owns a bounded FIFO of pending
// requests and a worker goroutine that serves them one at a time. The
// floor/direction/queue triple is guarded by the unit's own lock; nothing
// outside this package mutates it.
type Elevator struct {
	ID int

	mu        sync.Mutex
	cond      *sync.Cond
	queue     []types.Request
	floor     int
	direction types.Direction
	behaviour types.Behaviour
	running   bool

	capacity int
	pacer    timer.Pacer
	events   chan types.Event
	done     chan struct{}
}

// Snapshot is an internally consistent copy of one unit's state, read
// under that unit's lock. Comparing snapshots of different units is a
// best-effort heuristic: another unit may move between two reads.
type Snapshot struct {
	ID          int
	Floor       int
	Direction   types.Direction
	Behaviour   types.Behaviour
	QueueLength int
}

// Status is a Snapshot plus an isolated copy of the pending queue.
type Status struct {
	Snapshot
	Pending []types.Request
}

func New(id, capacity, startFloor int, pacer timer.Pacer) *Elevator {
	e := &Elevator{
		ID:        id,
		capacity:  capacity,
		floor:     startFloor,
		direction: types.DirUp,
		behaviour: types.Idle,
		running:   true,
		pacer:     pacer,
		events:    make(chan types.Event, config.EventBufferSize),
		done:      make(chan struct{}),
	}
	e.cond = sync.NewCond(&e.mu)
	return e
}

// Start launches the worker goroutine.
func (e *Elevator) Start() {
	go e.run()
}

// Enqueue appends a request to the tail of the queue and wakes the
// worker. It never blocks: a full queue returns ErrCapacityExceeded and
// a stopped unit returns ErrElevatorStopped, leaving the queue unchanged.
func (e *Elevator) Enqueue(req types.Request) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return types.ErrElevatorStopped
	}
	if len(e.queue) == e.capacity {
		return types.ErrCapacityExceeded
	}
	e.queue = append(e.queue, req)
	slog.Debug("Request queued",
		"elevator", e.ID,
		"from", req.SourceFloor,
		"to", req.DestinationFloor,
		"queued", len(e.queue))
	e.cond.Signal()
	return nil
}

func (e *Elevator) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Elevator) snapshotLocked() Snapshot {
	return Snapshot{
		ID:          e.ID,
		Floor:       e.floor,
		Direction:   e.direction,
		Behaviour:   e.behaviour,
		QueueLength: len(e.queue),
	}
}

// Status copies the pending queue out from under the lock so callers can
// inspect it without racing the worker.
func (e *Elevator) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	pending := make([]types.Request, 0, len(e.queue))
	if err := deepcopy.Copy(&pending, &e.queue); err != nil {
		panic(err)
	}
	return Status{Snapshot: e.snapshotLocked(), Pending: pending}
}

// Events returns the unit's event stream. The channel is closed when the
// worker exits. Sends are blocking, so a consumer that stops draining
// eventually stalls the worker.
func (e *Elevator) Events() <-chan types.Event {
	return e.events
}

// Stop flips the running flag and wakes the worker. Cooperative: a worker
// mid-movement finishes the leg it is travelling before exiting, and
// queued requests beyond the current leg are left unserved.
func (e *Elevator) Stop() {
	e.mu.Lock()
	e.running = false
	e.mu.Unlock()
	e.cond.Broadcast()
}

// Stopped returns a channel that is closed once the worker has exited.
func (e *Elevator) Stopped() <-chan struct{} {
	return e.done
}
