package dispatcher

import (
	"errors"
	"testing"
	"time"

	"multilift/src/config"
	"multilift/src/elev"
	"multilift/src/timer"
	"multilift/src/types"
)

func testConfig() config.FleetConfig {
	return config.FleetConfig{
		MinFloor:       1,
		MaxFloor:       12,
		NumElevators:   3,
		Capacity:       5,
		TravelInterval: 0,
	}
}

// idleFleet builds a dispatcher over units whose workers are not started,
// so floors and queues hold still while the test pokes at selection.
func idleFleet(t *testing.T, cfg config.FleetConfig, floors ...int) *Dispatcher {
	t.Helper()
	d := &Dispatcher{cfg: cfg}
	for i, floor := range floors {
		d.units = append(d.units, elev.New(i+1, cfg.Capacity, floor, timer.NewPacer(0)))
	}
	return d
}

func nextEvent(t *testing.T, events <-chan types.Event) types.Event {
	t.Helper()
	select {
	case ev, ok := <-events:
		if !ok {
			t.Fatal("event stream closed early")
		}
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
	return types.Event{}
}

func TestRequestPickupValidation(t *testing.T) {
	t.Run("source below range", func(t *testing.T) {
		d := idleFleet(t, testConfig(), 1)
		if _, err := d.RequestPickup(0, 5); !errors.Is(err, types.ErrInvalidFloor) {
			t.Errorf("RequestPickup(0, 5) = %v; want ErrInvalidFloor", err)
		}
	})

	t.Run("destination above range", func(t *testing.T) {
		d := idleFleet(t, testConfig(), 1)
		if _, err := d.RequestPickup(5, 13); !errors.Is(err, types.ErrInvalidFloor) {
			t.Errorf("RequestPickup(5, 13) = %v; want ErrInvalidFloor", err)
		}
	})

	t.Run("empty fleet", func(t *testing.T) {
		d := &Dispatcher{cfg: testConfig()}
		if _, err := d.RequestPickup(2, 5); !errors.Is(err, types.ErrNoElevatorAvailable) {
			t.Errorf("RequestPickup on empty fleet = %v; want ErrNoElevatorAvailable", err)
		}
	})
}

func TestSelection(t *testing.T) {
	t.Run("nearest floor wins", func(t *testing.T) {
		d := idleFleet(t, testConfig(), 2, 5, 8)
		unit := selectElevator(d.units, 6)
		if unit.ID != 2 {
			t.Errorf("selected elevator %d; want 2 (one floor away)", unit.ID)
		}
	})

	t.Run("distance tie broken by queue length", func(t *testing.T) {
		d := idleFleet(t, testConfig(), 4, 8)
		if err := d.units[0].Enqueue(types.Request{SourceFloor: 4, DestinationFloor: 5}); err != nil {
			t.Fatal(err)
		}
		unit := selectElevator(d.units, 6)
		if unit.ID != 2 {
			t.Errorf("selected elevator %d; want 2 (shorter queue)", unit.ID)
		}
	})

	t.Run("full tie broken by lowest id", func(t *testing.T) {
		d := idleFleet(t, testConfig(), 1, 1, 1)
		unit := selectElevator(d.units, 3)
		if unit.ID != 1 {
			t.Errorf("selected elevator %d; want 1", unit.ID)
		}
	})

	t.Run("deterministic over a fixed snapshot", func(t *testing.T) {
		d := idleFleet(t, testConfig(), 3, 7, 7)
		first := selectElevator(d.units, 7)
		for i := 0; i < 10; i++ {
			if unit := selectElevator(d.units, 7); unit.ID != first.ID {
				t.Fatalf("selection changed from %d to %d on identical state", first.ID, unit.ID)
			}
		}
	})
}

func TestCapacityPropagates(t *testing.T) {
	cfg := testConfig()
	cfg.Capacity = 1
	d := idleFleet(t, cfg, 1)

	if id, err := d.RequestPickup(2, 3); err != nil || id != 1 {
		t.Fatalf("first pickup = (%d, %v); want (1, nil)", id, err)
	}
	if _, err := d.RequestPickup(4, 5); !errors.Is(err, types.ErrCapacityExceeded) {
		t.Errorf("pickup on full unit = %v; want ErrCapacityExceeded", err)
	}
	if got := d.units[0].Snapshot().QueueLength; got != 1 {
		t.Errorf("queue length = %d; want 1 (rejected request not queued)", got)
	}
}

func TestScenario(t *testing.T) {
	d, err := New(testConfig())
	if err != nil {
		t.Fatal(err)
	}

	// All three units idle at floor 1: equal distance, empty queues,
	// lowest id wins.
	id, err := d.RequestPickup(10, 12)
	if err != nil {
		t.Fatal(err)
	}
	if id != 1 {
		t.Fatalf("first pickup went to elevator %d; want 1", id)
	}

	// Wait until unit 1 has left the bottom floor, so the next pickup at
	// floor 1 sees it at distance >= 1.
	for {
		ev := nextEvent(t, d.Events())
		if ev.Elevator == 1 && ev.Type == types.FloorChanged {
			break
		}
	}

	id, err = d.RequestPickup(1, 7)
	if err != nil {
		t.Fatal(err)
	}
	if id != 2 {
		t.Fatalf("second pickup went to elevator %d; want 2 (idle at floor 1)", id)
	}

	drained := make(chan struct{})
	go func() {
		for range d.Events() {
		}
		close(drained)
	}()
	if err := d.Shutdown(); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}
	select {
	case <-drained:
	case <-time.After(time.Second):
		t.Fatal("event stream not closed after shutdown")
	}
}

func TestShutdown(t *testing.T) {
	cfg := testConfig()
	cfg.NumElevators = 1
	d, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := d.RequestPickup(1, 4); err != nil {
		t.Fatal(err)
	}
	for {
		ev := nextEvent(t, d.Events())
		if ev.Type == types.ArrivedDestination && ev.Floor == 4 {
			break
		}
	}

	drained := make(chan struct{})
	go func() {
		for range d.Events() {
		}
		close(drained)
	}()
	if err := d.Shutdown(); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}
	select {
	case <-drained:
	case <-time.After(time.Second):
		t.Fatal("event stream not closed after shutdown")
	}

	if _, err := d.RequestPickup(2, 3); !errors.Is(err, types.ErrElevatorStopped) {
		t.Errorf("pickup after shutdown = %v; want ErrElevatorStopped", err)
	}
}

func TestStatus(t *testing.T) {
	d := idleFleet(t, testConfig(), 1, 1)
	if _, err := d.RequestPickup(3, 7); err != nil {
		t.Fatal(err)
	}
	status := d.Status()
	if len(status) != 2 {
		t.Fatalf("status covers %d units; want 2", len(status))
	}
	if status[0].QueueLength != 1 || status[0].Pending[0] != (types.Request{SourceFloor: 3, DestinationFloor: 7}) {
		t.Errorf("unit 1 status = %+v; want the queued request", status[0])
	}
	if status[1].QueueLength != 0 {
		t.Errorf("unit 2 queue length = %d; want 0", status[1].QueueLength)
	}
}
