package types

import "errors"

var (
	ErrInvalidFloor        = errors.New("floor outside building range")
	ErrCapacityExceeded    = errors.New("request queue at capacity")
	ErrNoElevatorAvailable = errors.New("no elevator available")
	ErrElevatorStopped     = errors.New("elevator is stopped")
	ErrShutdownTimeout     = errors.New("elevator did not stop before deadline")
)
