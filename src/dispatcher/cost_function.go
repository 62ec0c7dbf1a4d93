package dispatcher

import (
	"multilift/src/elev"
	"multilift/src/utils"
)

// selectElevator picks the unit to serve a pickup at sourceFloor. Each
// unit's snapshot is taken under that unit's own lock, one lock at a
// time; the comparison then runs over the copied values with no locks
// held. Units keep moving between reads, so the decision is a heuristic
// over slightly stale state, not a transactional one.
func selectElevator(units []*elev.Elevator, sourceFloor int) *elev.Elevator {
	var best *elev.Elevator
	var bestSnap elev.Snapshot
	for _, unit := range units {
		snap := unit.Snapshot()
		if best == nil || better(snap, bestSnap, sourceFloor) {
			best = unit
			bestSnap = snap
		}
	}
	return best
}

// better reports whether a beats b for a pickup at floor. Total order:
// distance to the pickup floor, then queue length, then lowest id. The
// distance deliberately uses the unit's current floor, not a projection
// past its queued work.
func better(a, b elev.Snapshot, floor int) bool {
	da := utils.Abs(a.Floor - floor)
	db := utils.Abs(b.Floor - floor)
	if da != db {
		return da < db
	}
	if a.QueueLength != b.QueueLength {
		return a.QueueLength < b.QueueLength
	}
	return a.ID < b.ID
}
