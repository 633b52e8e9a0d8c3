package spatial

import (
	"time"
)

// FlightDurationMinutes computes the signed scheduled duration between two
// naive local wall times by anchoring each in its airport's timezone and
// subtracting the absolute instants. Overnight arrivals and DST transitions
// at either endpoint are handled by construction; clock times are never
// subtracted naively.
//
// dep and arr carry wall-clock components only; their own Location is
// ignored in favor of depLoc and arrLoc.
func FlightDurationMinutes(dep, arr time.Time, depLoc, arrLoc *time.Location) float64 {
	depInstant := time.Date(dep.Year(), dep.Month(), dep.Day(), dep.Hour(), dep.Minute(), dep.Second(), 0, depLoc)
	arrInstant := time.Date(arr.Year(), arr.Month(), arr.Day(), arr.Hour(), arr.Minute(), arr.Second(), 0, arrLoc)
	return arrInstant.Sub(depInstant).Minutes()
}
