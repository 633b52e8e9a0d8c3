package features

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delaywise/flights-backend-go/internal/airports"
	"github.com/delaywise/flights-backend-go/internal/models"
	"github.com/delaywise/flights-backend-go/internal/spatial"
)

func embeddingTable(t *testing.T) *airports.Table {
	t.Helper()
	table, err := airports.NewTable(map[string]airports.Info{
		"JFK": {Lat: 40.6413, Lon: -73.7781, Timezone: "America/New_York"},
		"LAX": {Lat: 33.9416, Lon: -118.4085, Timezone: "America/Los_Angeles"},
	})
	require.NoError(t, err)
	return table
}

func sampleInput() EmbedInput {
	return EmbedInput{
		Year:           2025,
		Month:          9,
		DayOfMonth:     26,
		DayOfWeek:      5,
		Airline:        "AA",
		Origin:         "JFK",
		Dest:           "LAX",
		DepMinutes:     8*60 + 30,
		ArrMinutes:     11*60 + 45,
		DistanceMiles:  2475,
		ElapsedMinutes: 435,
	}
}

func TestFeatureNamesMatchEmbeddingLength(t *testing.T) {
	names := FeatureNames()
	assert.Len(t, names, EmbeddingSize)
	assert.Equal(t, "month_sin", names[0])
	assert.Equal(t, "orig_x", names[10])
	assert.Equal(t, "airline_cx", names[25])
	assert.Equal(t, "ArrDelay", names[len(names)-1])

	vec, err := Embedding(sampleInput(), embeddingTable(t), nil, nil)
	require.NoError(t, err)
	assert.Len(t, vec, EmbeddingSize)
}

func TestEmbeddingValues(t *testing.T) {
	in := sampleInput()
	stats := map[string]models.AirlineStats{
		"AA": {
			CentroidXYZ:       [3]float64{0.1, 0.2, 0.3},
			TypicalDepSin:     0.8,
			TypicalDepCos:     -0.6,
			MeanDistanceMiles: 1500,
		},
	}
	busyness := map[string]float64{"JFK": 1.0, "LAX": 0.75}

	vec, err := Embedding(in, embeddingTable(t), stats, busyness)
	require.NoError(t, err)

	idx := indexOf(t, FeatureNames())

	// Cyclical month: September -> fraction 8/12
	assert.InDelta(t, math.Sin(2*math.Pi*8.0/12.0), vec[idx["month_sin"]], 1e-12)
	assert.InDelta(t, math.Cos(2*math.Pi*8.0/12.0), vec[idx["month_cos"]], 1e-12)

	// Origin position block is the unit-sphere vector
	ox, oy, oz := spatial.UnitSphereXYZ(40.6413, -73.7781)
	assert.InDelta(t, ox, vec[idx["orig_x"]], 1e-12)
	assert.InDelta(t, oy, vec[idx["orig_y"]], 1e-12)
	assert.InDelta(t, oz, vec[idx["orig_z"]], 1e-12)

	// Scaled schedule values
	assert.InDelta(t, 435.0/300.0, vec[idx["crs_elapsed_scaled"]], 1e-12)
	assert.InDelta(t, 2475.0/1000.0, vec[idx["distance_scaled"]], 1e-12)

	// Airline aggregate block
	assert.InDelta(t, 0.1, vec[idx["airline_cx"]], 1e-12)
	assert.InDelta(t, 0.8, vec[idx["airline_dep_sin"]], 1e-12)
	assert.InDelta(t, 1500.0/1000.0, vec[idx["airline_mean_distance_scaled"]], 1e-12)

	assert.InDelta(t, 1.0, vec[idx["origin_busyness"]], 1e-12)
	assert.InDelta(t, 0.75, vec[idx["dest_busyness"]], 1e-12)

	// Delays default to zero at serve time
	assert.Zero(t, vec[idx["DepDelay"]])
	assert.Zero(t, vec[idx["ArrDelay"]])
}

func TestEmbeddingUnknownAirlineZeroesAggregateBlock(t *testing.T) {
	in := sampleInput()
	in.Airline = "ZZ"

	vec, err := Embedding(in, embeddingTable(t), map[string]models.AirlineStats{}, nil)
	require.NoError(t, err)

	idx := indexOf(t, FeatureNames())
	for _, name := range []string{
		"airline_cx", "airline_cy", "airline_cz",
		"airline_dep_sin", "airline_dep_cos", "airline_mean_distance_scaled",
		"origin_busyness", "dest_busyness",
	} {
		assert.Zero(t, vec[idx[name]], name)
	}
}

func TestEmbeddingUnresolvableAirport(t *testing.T) {
	in := sampleInput()
	in.Dest = "ZZZ"

	_, err := Embedding(in, embeddingTable(t), nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrUnresolvableAirport))
}

func TestEmbedFlightRecord(t *testing.T) {
	date := time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC)
	rec := models.FlightRecord{
		Date:           date,
		Airline:        "DL",
		Origin:         "JFK",
		Dest:           "LAX",
		Departure:      time.Date(2025, 12, 24, 7, 15, 0, 0, time.UTC),
		Arrival:        time.Date(2025, 12, 24, 10, 40, 0, 0, time.UTC),
		Distance:       2475,
		ElapsedMinutes: 385,
	}

	in := EmbedFlightRecord(rec)
	assert.Equal(t, 2025, in.Year)
	assert.Equal(t, 12, in.Month)
	assert.Equal(t, 24, in.DayOfMonth)
	assert.Equal(t, 3, in.DayOfWeek) // 2025-12-24 is a Wednesday
	assert.Equal(t, 7*60+15, in.DepMinutes)
	assert.Equal(t, 10*60+40, in.ArrMinutes)
	assert.True(t, in.IsChristmasEve)
	assert.False(t, in.IsThanksgiving)
	assert.Zero(t, in.DepDelay)
	assert.Zero(t, in.ArrDelay)
}

func indexOf(t *testing.T, names []string) map[string]int {
	t.Helper()
	idx := make(map[string]int, len(names))
	for i, n := range names {
		idx[n] = i
	}
	require.Len(t, idx, len(names), "feature names must be unique")
	return idx
}
