package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delaywise/flights-backend-go/internal/airports"
	"github.com/delaywise/flights-backend-go/internal/features"
	"github.com/delaywise/flights-backend-go/internal/inference"
	"github.com/delaywise/flights-backend-go/internal/models"
)

func strp(s string) *string { return &s }

func testTable(t *testing.T) *airports.Table {
	t.Helper()
	table, err := airports.NewTable(map[string]airports.Info{
		"JFK": {Lat: 40.6413, Lon: -73.7781, Timezone: "America/New_York"},
		"LAX": {Lat: 33.9416, Lon: -118.4085, Timezone: "America/Los_Angeles"},
		"ORD": {Lat: 41.9742, Lon: -87.9073, Timezone: "America/Chicago"},
	})
	require.NoError(t, err)
	return table
}

func testService(t *testing.T) *PredictionService {
	t.Helper()
	table := testTable(t)
	aggregates, err := NewAggregateService(table, t.TempDir(), "", 1)
	require.NoError(t, err)
	return NewPredictionService(table, aggregates, inference.NewEncoder(nil), inference.NewStubModel(), nil)
}

func validSegment() models.Segment {
	return models.Segment{
		DepartureAirport:  strp("JFK"),
		ArrivalAirport:    strp("LAX"),
		DepartureDateTime: strp("2025-09-26T08:30"),
		ArrivalDateTime:   strp("2025-09-26T11:45"),
		Airline:           strp("AA"),
		FlightNumber:      strp("AA100"),
	}
}

func TestResolveSegment(t *testing.T) {
	rec, err := testService(t).ResolveSegment(validSegment())
	require.NoError(t, err)

	assert.Equal(t, "JFK", rec.Origin)
	assert.Equal(t, "LAX", rec.Dest)
	assert.Equal(t, "AA", rec.Airline)
	assert.InDelta(t, 2151, rec.Distance, 10)
	// 3h15m naive plus the 3h zone offset going west
	assert.InDelta(t, 375, rec.ElapsedMinutes, 1e-9)
	assert.Equal(t, 2025, rec.Date.Year())
}

func TestResolveSegmentMissingField(t *testing.T) {
	svc := testService(t)

	seg := validSegment()
	seg.ArrivalDateTime = nil
	_, err := svc.ResolveSegment(seg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrMissingRequiredField))
	var missing *models.MissingFieldError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "arrivalDateTime", missing.Field)

	seg = validSegment()
	seg.Airline = strp("")
	_, err = svc.ResolveSegment(seg)
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "airline", missing.Field)
}

func TestResolveSegmentMalformedTimestamp(t *testing.T) {
	seg := validSegment()
	seg.DepartureDateTime = strp("26/09/2025 08:30")

	_, err := testService(t).ResolveSegment(seg)
	require.Error(t, err)
	var malformed *models.MalformedTimestampError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "departureDateTime", malformed.Field)
}

func TestResolveSegmentUnknownAirport(t *testing.T) {
	seg := validSegment()
	seg.ArrivalAirport = strp("ZZZ")

	_, err := testService(t).ResolveSegment(seg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrUnresolvableAirport))
}

func TestWideRowForSegment(t *testing.T) {
	row, rec, err := testService(t).WideRowForSegment(validSegment())
	require.NoError(t, err)

	assert.Equal(t, "JFK-LAX", row.Route)
	assert.Equal(t, "AA:JFK-LAX", row.CarrierRoute)
	assert.Equal(t, 100, row.FlightNumberValue)
	assert.Equal(t, rec.Distance, row.Distance)
}

func TestEmbeddingForSegment(t *testing.T) {
	vec, names, err := testService(t).EmbeddingForSegment(validSegment())
	require.NoError(t, err)
	assert.Len(t, vec, features.EmbeddingSize)
	assert.Equal(t, features.FeatureNames(), names)
}

func TestScoreSegmentsIsolatesFailures(t *testing.T) {
	bad := validSegment()
	bad.DepartureAirport = strp("ZZZ")
	missing := validSegment()
	missing.FlightNumber = nil

	results := testService(t).ScoreSegments(context.Background(),
		[]models.Segment{validSegment(), bad, missing})
	require.Len(t, results, 3)

	ok := results[0]
	assert.Equal(t, 0, ok.Index)
	assert.Nil(t, ok.Error)
	assert.Equal(t, "AA", ok.Airline)
	assert.Equal(t, "JFK-LAX", ok.Route)
	require.Len(t, ok.Classes, 3)
	sum := 0.0
	for _, p := range ok.Probabilities {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-9)

	require.NotNil(t, results[1].Error)
	assert.Equal(t, "unresolvable_airport", results[1].Error.Kind)
	assert.Equal(t, "ZZZ", results[1].Error.Field)
	assert.Nil(t, results[1].Probabilities)

	require.NotNil(t, results[2].Error)
	assert.Equal(t, "missing_required_field", results[2].Error.Kind)
	assert.Equal(t, "flightNumber", results[2].Error.Field)
}

func TestScoreSegmentsEmptyBatch(t *testing.T) {
	results := testService(t).ScoreSegments(context.Background(), nil)
	assert.Empty(t, results)
}

type failingModel struct{}

func (failingModel) PredictProbabilities(context.Context, []map[string]interface{}) (*inference.Prediction, error) {
	return nil, errors.New("model unavailable")
}

func TestScoreSegmentsModelFailureMarksValidRows(t *testing.T) {
	table := testTable(t)
	aggregates, err := NewAggregateService(table, t.TempDir(), "", 1)
	require.NoError(t, err)
	svc := NewPredictionService(table, aggregates, inference.NewEncoder(nil), failingModel{}, nil)

	bad := validSegment()
	bad.Airline = nil
	results := svc.ScoreSegments(context.Background(), []models.Segment{validSegment(), bad})
	require.Len(t, results, 2)

	require.NotNil(t, results[0].Error)
	assert.Equal(t, "internal", results[0].Error.Kind)
	// The structurally invalid segment keeps its own error
	require.NotNil(t, results[1].Error)
	assert.Equal(t, "missing_required_field", results[1].Error.Kind)
}

func TestHistoryWithoutRepository(t *testing.T) {
	svc := testService(t)
	recs, err := svc.RecentPredictions(10)
	require.NoError(t, err)
	assert.Nil(t, recs)
	assert.NoError(t, svc.PurgeHistory())
}
