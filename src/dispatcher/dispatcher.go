package dispatcher

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"multilift/src/config"
	"multilift/src/elev"
	"multilift/src/timer"
	"multilift/src/types"
)

// Dispatcher owns the fleet. The unit slice is fixed at construction, so
// iterating it needs no fleet-level lock; each unit guards its own state.
type Dispatcher struct {
	cfg    config.FleetConfig
	units  []*elev.Elevator
	events chan types.Event
	wg     sync.WaitGroup
}

// New builds the fleet and starts every unit's worker. Units are numbered
// from 1 and start at the bottom floor.
func New(cfg config.FleetConfig) (*Dispatcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	d := &Dispatcher{
		cfg:    cfg,
		events: make(chan types.Event, config.EventBufferSize),
	}
	pacer := timer.NewPacer(cfg.TravelInterval)
	for i := 0; i < cfg.NumElevators; i++ {
		d.units = append(d.units, elev.New(i+1, cfg.Capacity, cfg.MinFloor, pacer))
	}
	for _, unit := range d.units {
		unit.Start()
		d.wg.Add(1)
		go d.forward(unit)
	}
	go func() {
		d.wg.Wait()
		close(d.events)
	}()
	slog.Info("Fleet started",
		"elevators", cfg.NumElevators,
		"capacity", cfg.Capacity,
		"floors", fmt.Sprintf("[%d, %d]", cfg.MinFloor, cfg.MaxFloor))
	return d, nil
}

// forward fans one unit's events into the fleet stream. Per-unit order is
// preserved; interleaving across units is unspecified.
func (d *Dispatcher) forward(unit *elev.Elevator) {
	defer d.wg.Done()
	for ev := range unit.Events() {
		d.events <- ev
	}
}

// Events returns the merged fleet event stream. It is closed after
// Shutdown once every worker has exited. Consumers must drain it.
func (d *Dispatcher) Events() <-chan types.Event {
	return d.events
}

// RequestPickup validates the floors, selects the best unit and queues
// the request on it. It returns the chosen unit's id. Enqueue failures
// propagate to the caller; whether to retry against another unit is the
// caller's decision.
func (d *Dispatcher) RequestPickup(sourceFloor, destinationFloor int) (int, error) {
	if err := d.validateFloor(sourceFloor); err != nil {
		return 0, err
	}
	if err := d.validateFloor(destinationFloor); err != nil {
		return 0, err
	}
	unit := selectElevator(d.units, sourceFloor)
	if unit == nil {
		return 0, types.ErrNoElevatorAvailable
	}
	req := types.Request{SourceFloor: sourceFloor, DestinationFloor: destinationFloor}
	if err := unit.Enqueue(req); err != nil {
		return 0, fmt.Errorf("elevator %d: %w", unit.ID, err)
	}
	slog.Info("Pickup dispatched",
		"elevator", unit.ID,
		"from", sourceFloor,
		"to", destinationFloor)
	return unit.ID, nil
}

func (d *Dispatcher) validateFloor(floor int) error {
	if floor < d.cfg.MinFloor || floor > d.cfg.MaxFloor {
		return fmt.Errorf("%w: %d not in [%d, %d]",
			types.ErrInvalidFloor, floor, d.cfg.MinFloor, d.cfg.MaxFloor)
	}
	return nil
}

// Status returns an isolated view of every unit, pending queues included.
func (d *Dispatcher) Status() []elev.Status {
	status := make([]elev.Status, 0, len(d.units))
	for _, unit := range d.units {
		status = append(status, unit.Status())
	}
	return status
}

// Shutdown signals stop to every unit and waits for each worker to exit.
// A unit that fails to stop within the deadline is a configuration or
// environment problem and is reported loudly.
func (d *Dispatcher) Shutdown() error {
	for _, unit := range d.units {
		unit.Stop()
	}
	deadline := time.After(config.ShutdownTimeout)
	for _, unit := range d.units {
		select {
		case <-unit.Stopped():
		case <-deadline:
			slog.Error("Elevator did not stop before deadline", "elevator", unit.ID)
			return fmt.Errorf("elevator %d: %w", unit.ID, types.ErrShutdownTimeout)
		}
	}
	slog.Info("Fleet stopped")
	return nil
}
