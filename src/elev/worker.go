// Worker loop for a single elevator: blocks on the request queue, then
// drives the car one floor per tick through the pickup and drop-off legs.
package elev

import (
	"log/slog"

	"multilift/src/types"
)

func (e *Elevator) run() {
	defer close(e.done)
	defer close(e.events)
	for {
		req, ok := e.next()
		if !ok {
			e.mu.Lock()
			e.behaviour = types.Stopped
			e.mu.Unlock()
			slog.Info("Elevator stopped", "elevator", e.ID)
			return
		}
		e.serve(req)
	}
}

// next blocks until a request is available or a stop signal is observed.
func (e *Elevator) next() (types.Request, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for e.running && len(e.queue) == 0 {
		e.cond.Wait()
	}
	if !e.running {
		return types.Request{}, false
	}
	req := e.queue[0]
	e.queue = e.queue[1:]
	return req, true
}

func (e *Elevator) serve(req types.Request) {
	slog.Debug("Processing request",
		"elevator", e.ID,
		"from", req.SourceFloor,
		"to", req.DestinationFloor)

	e.moveTo(req.SourceFloor, types.MovingToSource)
	e.emit(types.ArrivedSource, req.SourceFloor)

	// A stop observed here ends processing after the pickup leg; the
	// drop-off leg belongs to the next scheduling round that never comes.
	if e.stopRequested() {
		return
	}

	e.moveTo(req.DestinationFloor, types.MovingToDest)
	e.emit(types.ArrivedDestination, req.DestinationFloor)

	e.mu.Lock()
	e.behaviour = types.Idle
	e.mu.Unlock()
}

// moveTo steps the car one floor per tick until it reaches target,
// updating direction on every step. Already at target is a no-op leg and
// emits nothing. The leg always runs to completion so the car never
// halts between floors.
func (e *Elevator) moveTo(target int, leg types.Behaviour) {
	e.mu.Lock()
	if e.floor == target {
		e.mu.Unlock()
		return
	}
	e.behaviour = leg
	e.mu.Unlock()

	for {
		e.pacer.Wait()

		e.mu.Lock()
		if e.floor < target {
			e.direction = types.DirUp
			e.floor++
		} else {
			e.direction = types.DirDown
			e.floor--
		}
		floor := e.floor
		dir := e.direction
		e.mu.Unlock()

		slog.Debug("Floor changed", "elevator", e.ID, "floor", floor, "direction", dir)
		e.emit(types.FloorChanged, floor)

		if floor == target {
			return
		}
	}
}

func (e *Elevator) stopRequested() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.running
}

func (e *Elevator) emit(t types.EventType, floor int) {
	e.events <- types.Event{Elevator: e.ID, Type: t, Floor: floor}
}
