package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/delaywise/flights-backend-go/internal/airports"
	"github.com/delaywise/flights-backend-go/internal/features"
	"github.com/delaywise/flights-backend-go/internal/inference"
	"github.com/delaywise/flights-backend-go/internal/models"
	"github.com/delaywise/flights-backend-go/internal/repository"
	"github.com/delaywise/flights-backend-go/internal/spatial"
	"github.com/delaywise/flights-backend-go/internal/temporal"
)

// PredictionService handles business logic for segment scoring
type PredictionService struct {
	airports   *airports.Table
	aggregates *AggregateService
	encoder    *inference.Encoder
	model      inference.Predictor
	repo       *repository.PredictionRepository
}

// NewPredictionService creates a new prediction service. repo may be nil
// when history persistence is disabled.
func NewPredictionService(table *airports.Table, aggregates *AggregateService,
	encoder *inference.Encoder, model inference.Predictor,
	repo *repository.PredictionRepository) *PredictionService {
	return &PredictionService{
		airports:   table,
		aggregates: aggregates,
		encoder:    encoder,
		model:      model,
		repo:       repo,
	}
}

// ResolveSegment validates the six required fields and produces a fully
// derived FlightRecord. Distance comes from the haversine of the reference
// coordinates; elapsed minutes from the timezone-aware instant difference.
func (s *PredictionService) ResolveSegment(seg models.Segment) (models.FlightRecord, error) {
	required := []struct {
		field string
		value *string
	}{
		{"departureAirport", seg.DepartureAirport},
		{"arrivalAirport", seg.ArrivalAirport},
		{"departureDateTime", seg.DepartureDateTime},
		{"arrivalDateTime", seg.ArrivalDateTime},
		{"airline", seg.Airline},
		{"flightNumber", seg.FlightNumber},
	}
	for _, r := range required {
		if r.value == nil || *r.value == "" {
			return models.FlightRecord{}, &models.MissingFieldError{Field: r.field}
		}
	}

	dep, err := temporal.ParseNaiveLocal(*seg.DepartureDateTime)
	if err != nil {
		return models.FlightRecord{}, &models.MalformedTimestampError{Field: "departureDateTime", Value: *seg.DepartureDateTime}
	}
	arr, err := temporal.ParseNaiveLocal(*seg.ArrivalDateTime)
	if err != nil {
		return models.FlightRecord{}, &models.MalformedTimestampError{Field: "arrivalDateTime", Value: *seg.ArrivalDateTime}
	}

	origin := *seg.DepartureAirport
	dest := *seg.ArrivalAirport

	oLat, oLon, err := s.airports.Coordinates(origin)
	if err != nil {
		return models.FlightRecord{}, err
	}
	dLat, dLon, err := s.airports.Coordinates(dest)
	if err != nil {
		return models.FlightRecord{}, err
	}
	depLoc, err := s.airports.Location(origin)
	if err != nil {
		return models.FlightRecord{}, err
	}
	arrLoc, err := s.airports.Location(dest)
	if err != nil {
		return models.FlightRecord{}, err
	}

	return models.FlightRecord{
		Date:           time.Date(dep.Year(), dep.Month(), dep.Day(), 0, 0, 0, 0, time.UTC),
		Airline:        *seg.Airline,
		FlightNumber:   *seg.FlightNumber,
		Origin:         origin,
		Dest:           dest,
		Departure:      dep,
		Arrival:        arr,
		Distance:       spatial.Haversine(oLat, oLon, dLat, dLon),
		ElapsedMinutes: spatial.FlightDurationMinutes(dep, arr, depLoc, arrLoc),
	}, nil
}

// WideRowForSegment resolves a segment and assembles its classifier row.
func (s *PredictionService) WideRowForSegment(seg models.Segment) (features.WideRow, models.FlightRecord, error) {
	rec, err := s.ResolveSegment(seg)
	if err != nil {
		return features.WideRow{}, models.FlightRecord{}, err
	}
	tf := temporal.Compute(rec.Date, rec.Departure, rec.Arrival, rec.FlightNumber, rec.Distance, rec.ElapsedMinutes)
	return features.BuildWideRow(rec, tf), rec, nil
}

// EmbeddingForSegment resolves a segment and returns its fixed-order
// embedding vector with the schema names.
func (s *PredictionService) EmbeddingForSegment(seg models.Segment) ([]float64, []string, error) {
	rec, err := s.ResolveSegment(seg)
	if err != nil {
		return nil, nil, err
	}
	vec, err := features.Embedding(features.EmbedFlightRecord(rec), s.airports,
		s.aggregates.AirlineStats(), s.aggregates.AirportBusyness())
	if err != nil {
		return nil, nil, err
	}
	return vec, features.FeatureNames(), nil
}

// ScoreSegments scores a batch of segments. Results come back in input
// order; a failed segment carries a structured error and never affects its
// siblings. A model-call failure marks only the rows that reached the model.
func (s *PredictionService) ScoreSegments(ctx context.Context, segments []models.Segment) []models.PredictionResult {
	results := make([]models.PredictionResult, len(segments))

	var rows []features.WideRow
	var records []models.FlightRecord
	var valid []int // index into results for each row

	for i, seg := range segments {
		results[i].Index = i
		row, rec, err := s.WideRowForSegment(seg)
		if err != nil {
			results[i].Error = segmentError(err)
			continue
		}
		results[i].Airline = rec.Airline
		results[i].Route = row.Route
		rows = append(rows, row)
		records = append(records, rec)
		valid = append(valid, i)
	}

	if len(rows) == 0 {
		return results
	}

	encoded := s.encoder.Transform(rows)
	pred, err := s.model.PredictProbabilities(ctx, encoded)
	if err != nil {
		log.Printf("Model scoring failed for %d rows: %v", len(rows), err)
		for _, i := range valid {
			results[i].Error = &models.SegmentError{Kind: "internal", Message: err.Error()}
		}
		return results
	}

	for k, i := range valid {
		probs := make(map[string]float64, len(pred.Classes))
		topClass, topProb := "", -1.0
		for j, class := range pred.Classes {
			p := pred.Probabilities[k][j]
			probs[class] = p
			if p > topProb {
				topClass, topProb = class, p
			}
		}
		results[i].Classes = pred.Classes
		results[i].Probabilities = probs

		s.persist(records[k], topClass, topProb)
	}
	return results
}

// RecentPredictions returns the most recently persisted predictions.
func (s *PredictionService) RecentPredictions(limit int) ([]models.PredictionRecord, error) {
	if s.repo == nil {
		return nil, nil
	}
	return s.repo.Recent(limit)
}

// PurgeHistory deletes the stored prediction history.
func (s *PredictionService) PurgeHistory() error {
	if s.repo == nil {
		return nil
	}
	return s.repo.Purge()
}

func (s *PredictionService) persist(rec models.FlightRecord, topClass string, topProb float64) {
	if s.repo == nil {
		return
	}
	err := s.repo.Insert(&models.PredictionRecord{
		Airline:        rec.Airline,
		FlightNumber:   rec.FlightNumber,
		Origin:         rec.Origin,
		Dest:           rec.Dest,
		DepartureTime:  rec.Departure.Format("2006-01-02T15:04"),
		TopClass:       topClass,
		TopProbability: topProb,
	})
	if err != nil {
		// History is best-effort; scoring already succeeded
		log.Printf("Failed to persist prediction: %v", err)
	}
}

func segmentError(err error) *models.SegmentError {
	se := &models.SegmentError{Kind: "internal", Message: err.Error()}

	var missing *models.MissingFieldError
	var malformed *models.MalformedTimestampError
	var unresolvable *models.UnresolvableAirportError

	switch {
	case errors.As(err, &missing):
		se.Kind = "missing_required_field"
		se.Field = missing.Field
	case errors.As(err, &malformed):
		se.Kind = "malformed_timestamp"
		se.Field = malformed.Field
	case errors.As(err, &unresolvable):
		se.Kind = "unresolvable_airport"
		se.Field = unresolvable.Code
	}
	return se
}
