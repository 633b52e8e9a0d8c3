package models

import "time"

// Segment is one extracted flight segment as delivered by the upstream
// document-extraction service. Pointer fields distinguish absent/null values
// from empty strings so validation can name the missing field.
type Segment struct {
	DepartureAirport  *string `json:"departureAirport"`
	ArrivalAirport    *string `json:"arrivalAirport"`
	DepartureDateTime *string `json:"departureDateTime"` // local naive, "2006-01-02T15:04"
	ArrivalDateTime   *string `json:"arrivalDateTime"`   // local naive, "2006-01-02T15:04"
	Airline           *string `json:"airline"`
	FlightNumber      *string `json:"flightNumber"`
}

// FlightRecord is one validated, resolved flight ready for feature encoding.
// Distance and ElapsedMinutes are derived when the input omits them.
type FlightRecord struct {
	Date           time.Time // calendar date of departure (local)
	Airline        string
	FlightNumber   string
	Origin         string
	Dest           string
	Departure      time.Time // naive local wall time at origin
	Arrival        time.Time // naive local wall time at destination
	Distance       float64   // great-circle miles
	ElapsedMinutes float64   // scheduled duration from absolute instants
}

// AirlineStats is the per-airline aggregate produced by the offline builder.
// CentroidXYZ is the mean of all route-midpoint unit vectors, TypicalDepSin/
// Cos the re-normalized circular mean of departure times-of-day.
type AirlineStats struct {
	CentroidXYZ       [3]float64 `json:"centroid_xyz"`
	TypicalDepSin     float64    `json:"typical_dep_sin"`
	TypicalDepCos     float64    `json:"typical_dep_cos"`
	MeanDistanceMiles float64    `json:"mean_distance_miles"`
}

// PredictionResult is the per-segment scoring outcome inside a batch
// response. Exactly one of Probabilities or Error is set; a failed sibling
// never affects the other items.
type PredictionResult struct {
	Index         int                `json:"index"`
	Airline       string             `json:"airline,omitempty"`
	Route         string             `json:"route,omitempty"`
	Classes       []string           `json:"classes,omitempty"`
	Probabilities map[string]float64 `json:"probabilities,omitempty"`
	Error         *SegmentError      `json:"error,omitempty"`
}

// SegmentError is the structured per-item error surfaced to the caller.
type SegmentError struct {
	Kind    string `json:"kind"`  // unresolvable_airport, malformed_timestamp, missing_required_field, internal
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// PredictionRecord is one scored segment persisted to the history store.
type PredictionRecord struct {
	ID            int64     `json:"id"`
	Airline       string    `json:"airline"`
	FlightNumber  string    `json:"flight_number"`
	Origin        string    `json:"origin"`
	Dest          string    `json:"dest"`
	DepartureTime string    `json:"departure_time"`
	TopClass      string    `json:"top_class"`
	TopProbability float64  `json:"top_probability"`
	CreatedAt     time.Time `json:"created_at"`
}
