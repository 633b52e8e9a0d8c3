package features

import (
	"time"

	"github.com/delaywise/flights-backend-go/internal/airports"
	"github.com/delaywise/flights-backend-go/internal/models"
	"github.com/delaywise/flights-backend-go/internal/spatial"
	"github.com/delaywise/flights-backend-go/internal/temporal"
)

// Embedding scale constants. Distances compress to roughly [0, ~5] for
// domestic routes, elapsed times to [0, ~4]; route vectors are halved so
// every component stays within [-1, 1].
const (
	DistanceScale = 1000.0
	ElapsedScale  = 300.0
	RouteVecDiv   = 2.0
)

// EmbedInput is the minimal record needed to build one embedding vector.
// Both the online pipeline (from a validated segment) and the offline corpus
// re-encoder construct it.
type EmbedInput struct {
	Year       int
	Month      int
	DayOfMonth int
	DayOfWeek  int // 1=Monday .. 7=Sunday
	Airline    string
	Origin     string
	Dest       string
	DepMinutes int
	ArrMinutes int

	DistanceMiles  float64
	ElapsedMinutes float64

	IsChristmasEve bool
	IsThanksgiving bool

	// Observed delays, carried through unchanged for downstream labeling.
	// Zero at serve time.
	DepDelay float64
	ArrDelay float64
}

// FeatureNames returns the embedding schema in vector order.
func FeatureNames() []string {
	return []string{
		"month_sin", "month_cos", "dom_sin", "dom_cos", "dow_sin", "dow_cos",
		"dep_time_sin", "dep_time_cos", "arr_time_sin", "arr_time_cos",
		"orig_x", "orig_y", "orig_z", "dest_x", "dest_y", "dest_z",
		"route_dx", "route_dy", "route_dz", "route_bear_sin", "route_bear_cos",
		"crs_elapsed_scaled", "distance_scaled", "is_christmas_eve", "is_thanksgiving",
		"airline_cx", "airline_cy", "airline_cz", "airline_dep_sin", "airline_dep_cos", "airline_mean_distance_scaled",
		"origin_busyness", "dest_busyness",
		"DepDelay", "ArrDelay",
	}
}

// EmbeddingSize is the fixed vector length.
var EmbeddingSize = len(FeatureNames())

// Embedding builds the fixed-order numeric vector for one flight. A record
// with an unresolvable airport is dropped (typed error) because its geometry
// is undefined; an airline absent from the aggregate tables falls back to a
// zeroed aggregate block instead.
func Embedding(in EmbedInput, table *airports.Table, airlineStats map[string]models.AirlineStats, busyness map[string]float64) ([]float64, error) {
	oLat, oLon, err := table.Coordinates(in.Origin)
	if err != nil {
		return nil, err
	}
	dLat, dLon, err := table.Coordinates(in.Dest)
	if err != nil {
		return nil, err
	}

	ms, mc := spatial.SinCos(float64(in.Month-1) / 12.0)
	dim := temporal.DaysInMonth(in.Year, in.Month)
	if dim < 1 {
		dim = 31
	}
	ds, dc := spatial.SinCos(float64(in.DayOfMonth-1) / float64(dim))
	ws, wc := spatial.SinCos(float64(in.DayOfWeek-1) / 7.0)
	dps, dpc := spatial.SinCos(float64(in.DepMinutes) / float64(temporal.MinutesPerDay))
	ars, arc := spatial.SinCos(float64(in.ArrMinutes) / float64(temporal.MinutesPerDay))

	ox, oy, oz := spatial.UnitSphereXYZ(oLat, oLon)
	dx, dy, dz := spatial.UnitSphereXYZ(dLat, dLon)
	rx, ry, rz := spatial.RouteVectorXYZ(oLat, oLon, dLat, dLon, RouteVecDiv)
	rbs, rbc := spatial.InitialBearingSinCos(oLat, oLon, dLat, dLon)

	var aCx, aCy, aCz, aDs, aDc, aMd float64
	if st, ok := airlineStats[in.Airline]; ok {
		aCx, aCy, aCz = st.CentroidXYZ[0], st.CentroidXYZ[1], st.CentroidXYZ[2]
		aDs, aDc = st.TypicalDepSin, st.TypicalDepCos
		aMd = st.MeanDistanceMiles / DistanceScale
	}

	return []float64{
		ms, mc, ds, dc, ws, wc,
		dps, dpc, ars, arc,
		ox, oy, oz, dx, dy, dz,
		rx, ry, rz, rbs, rbc,
		in.ElapsedMinutes / ElapsedScale, in.DistanceMiles / DistanceScale,
		boolToFloat(in.IsChristmasEve), boolToFloat(in.IsThanksgiving),
		aCx, aCy, aCz, aDs, aDc, aMd,
		busyness[in.Origin], busyness[in.Dest],
		in.DepDelay, in.ArrDelay,
	}, nil
}

// EmbedFlightRecord adapts a validated online flight into an EmbedInput.
func EmbedFlightRecord(rec models.FlightRecord) EmbedInput {
	return EmbedInput{
		Year:           rec.Date.Year(),
		Month:          int(rec.Date.Month()),
		DayOfMonth:     rec.Date.Day(),
		DayOfWeek:      isoWeekday(rec.Date),
		Airline:        rec.Airline,
		Origin:         rec.Origin,
		Dest:           rec.Dest,
		DepMinutes:     temporal.MinutesOfDay(rec.Departure),
		ArrMinutes:     temporal.MinutesOfDay(rec.Arrival),
		DistanceMiles:  rec.Distance,
		ElapsedMinutes: rec.ElapsedMinutes,
		IsChristmasEve: temporal.IsChristmasEve(rec.Date),
		IsThanksgiving: temporal.IsThanksgivingDay(rec.Date),
	}
}

func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
