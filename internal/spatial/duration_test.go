package spatial

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/stretchr/testify/assert"
)

func mustLoc(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func naive(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func TestFlightDurationSameZone(t *testing.T) {
	ny := mustLoc(t, "America/New_York")
	dep := naive(2025, time.September, 26, 9, 0)
	arr := naive(2025, time.September, 26, 11, 30)
	assert.InDelta(t, 150, FlightDurationMinutes(dep, arr, ny, ny), 1e-9)
}

func TestFlightDurationCrossCountry(t *testing.T) {
	ny := mustLoc(t, "America/New_York")
	la := mustLoc(t, "America/Los_Angeles")

	// 14:35 EDT -> 17:50 PDT same calendar day: naive difference is 195
	// minutes but the absolute-instant difference includes the 3h offset.
	dep := naive(2025, time.September, 26, 14, 35)
	arr := naive(2025, time.September, 26, 17, 50)
	assert.InDelta(t, 375, FlightDurationMinutes(dep, arr, ny, la), 1e-9)
}

func TestFlightDurationOvernightArrival(t *testing.T) {
	ny := mustLoc(t, "America/New_York")
	chi := mustLoc(t, "America/Chicago")

	// Departs 23:50 EDT, arrives 00:40 CDT next calendar day. Clock math
	// says 50 minutes; the zone delta adds another hour.
	dep := naive(2025, time.June, 10, 23, 50)
	arr := naive(2025, time.June, 11, 0, 40)
	assert.InDelta(t, 110, FlightDurationMinutes(dep, arr, ny, chi), 1e-9)
}

func TestFlightDurationAcrossDSTTransition(t *testing.T) {
	ny := mustLoc(t, "America/New_York")

	// US DST starts 2025-03-09 at 02:00; clocks jump from 02:00 to 03:00.
	// 01:30 -> 03:30 looks like two clock hours but only one hour elapses.
	dep := naive(2025, time.March, 9, 1, 30)
	arr := naive(2025, time.March, 9, 3, 30)
	assert.InDelta(t, 60, FlightDurationMinutes(dep, arr, ny, ny), 1e-9)
}

func TestFlightDurationSignedWhenReversed(t *testing.T) {
	ny := mustLoc(t, "America/New_York")
	dep := naive(2025, time.March, 1, 12, 0)
	arr := naive(2025, time.March, 1, 11, 0)
	assert.InDelta(t, -60, FlightDurationMinutes(dep, arr, ny, ny), 1e-9)
}
