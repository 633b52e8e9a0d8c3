package features

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delaywise/flights-backend-go/internal/models"
	"github.com/delaywise/flights-backend-go/internal/temporal"
)

func sampleRecord() models.FlightRecord {
	date := time.Date(2025, 9, 26, 0, 0, 0, 0, time.UTC)
	return models.FlightRecord{
		Date:           date,
		Airline:        "AA",
		FlightNumber:   "AA100",
		Origin:         "JFK",
		Dest:           "LAX",
		Departure:      time.Date(2025, 9, 26, 8, 30, 0, 0, time.UTC),
		Arrival:        time.Date(2025, 9, 26, 11, 45, 0, 0, time.UTC),
		Distance:       2475,
		ElapsedMinutes: 435,
	}
}

func buildSampleRow() WideRow {
	rec := sampleRecord()
	tf := temporal.Compute(rec.Date, rec.Departure, rec.Arrival, rec.FlightNumber, rec.Distance, rec.ElapsedMinutes)
	return BuildWideRow(rec, tf)
}

func TestBuildWideRowIdentifiers(t *testing.T) {
	row := buildSampleRow()

	assert.Equal(t, "AA", row.Airline)
	assert.Equal(t, "JFK-LAX", row.Route)
	assert.Equal(t, "AA:JFK-LAX", row.CarrierRoute)
	assert.Equal(t, "legacy", row.CarrierCategory)
	assert.True(t, row.OriginSlotControlled) // JFK
	assert.False(t, row.DestSlotControlled)

	assert.Equal(t, 2025, row.Year)
	assert.Equal(t, 9, row.Month)
	assert.Equal(t, 5, row.DayOfWeek) // Friday
	assert.Equal(t, temporal.SeasonSON, row.Season)
	assert.Equal(t, 100, row.FlightNumberValue)
}

func TestAsMapTypes(t *testing.T) {
	row := buildSampleRow()
	m := row.AsMap()

	// Categorical columns stay strings
	for _, col := range CategoricalColumns {
		v, ok := m[col]
		require.True(t, ok, col)
		_, isString := v.(string)
		assert.True(t, isString, col)
	}

	// Booleans flatten to 0/1 floats
	assert.Equal(t, 1.0, m["is_weekend"].(float64)+m["is_morning_rush"].(float64)) // Friday, 08:30 dep
	assert.Equal(t, 0.0, m["is_weekend"])
	assert.Equal(t, 1.0, m["is_morning_rush"])

	// Numeric schedule values pass through
	assert.Equal(t, 2475.0, m["distance"])
	assert.Equal(t, 435.0, m["elapsed_minutes"])

	speed, ok := m["avg_speed_mph"].(float64)
	require.True(t, ok)
	assert.InDelta(t, 2475.0/(435.0/60.0), speed, 1e-9)
}

func TestAsMapNilSpeedForDegenerateSchedule(t *testing.T) {
	rec := sampleRecord()
	rec.ElapsedMinutes = 0
	tf := temporal.Compute(rec.Date, rec.Departure, rec.Arrival, rec.FlightNumber, rec.Distance, rec.ElapsedMinutes)
	row := BuildWideRow(rec, tf)

	require.Nil(t, row.AvgSpeedMPH)
	m := row.AsMap()
	v, ok := m["avg_speed_mph"]
	require.True(t, ok)
	assert.Nil(t, v)
}

func TestAsMapCoversEveryCategoricalColumn(t *testing.T) {
	row := buildSampleRow()
	m := row.AsMap()
	for _, col := range CategoricalColumns {
		assert.Contains(t, m, col)
	}
}
