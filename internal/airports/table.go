package airports

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/delaywise/flights-backend-go/internal/models"
)

// Info holds the reference data for one airport. Timezone may be empty when
// the timezone document does not cover the code; duration computation then
// fails for that airport instead of guessing an offset.
type Info struct {
	Lat      float64
	Lon      float64
	Timezone string
}

// Table is the read-only airport reference table. It is loaded once at
// process start and never mutated, so concurrent reads need no locking.
type Table struct {
	airports  map[string]Info
	locations map[string]*time.Location
}

// Option configures table loading.
type Option func(*loadOptions)

type loadOptions struct {
	fallback map[string][2]float64
}

// WithFallbackCoordinates admits a caller-supplied static coordinate map for
// codes absent from the primary file. This is the only permitted relaxation
// of the strict no-guessing contract; coordinates are never fabricated.
func WithFallbackCoordinates(coords map[string][2]float64) Option {
	return func(o *loadOptions) {
		o.fallback = coords
	}
}

// Load reads airport coordinates (CSV or JSON, chosen by extension) and the
// IATA -> IANA timezone JSON document, resolving every timezone eagerly so
// serve-time lookups never touch the filesystem.
func Load(coordPath, tzPath string, opts ...Option) (*Table, error) {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	coords, err := loadCoordinates(coordPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load airport coordinates: %w", err)
	}

	for code, ll := range o.fallback {
		code = strings.ToUpper(strings.TrimSpace(code))
		if _, ok := coords[code]; !ok {
			coords[code] = Info{Lat: ll[0], Lon: ll[1]}
		}
	}

	if tzPath != "" {
		zones, err := loadTimezones(tzPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load airport timezones: %w", err)
		}
		for code, zone := range zones {
			if info, ok := coords[code]; ok {
				info.Timezone = zone
				coords[code] = info
			}
		}
	}

	locations := make(map[string]*time.Location)
	for code, info := range coords {
		if info.Timezone == "" {
			continue
		}
		loc, err := time.LoadLocation(info.Timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid timezone %q for airport %s: %w", info.Timezone, code, err)
		}
		locations[code] = loc
	}

	return &Table{airports: coords, locations: locations}, nil
}

// NewTable builds a table directly from in-memory data. Used by tests and by
// callers that embed their reference data.
func NewTable(airports map[string]Info) (*Table, error) {
	coords := make(map[string]Info, len(airports))
	locations := make(map[string]*time.Location)
	for code, info := range airports {
		code = strings.ToUpper(strings.TrimSpace(code))
		coords[code] = info
		if info.Timezone == "" {
			continue
		}
		loc, err := time.LoadLocation(info.Timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid timezone %q for airport %s: %w", info.Timezone, code, err)
		}
		locations[code] = loc
	}
	return &Table{airports: coords, locations: locations}, nil
}

// Len returns the number of airports in the table.
func (t *Table) Len() int {
	return len(t.airports)
}

// Coordinates returns the latitude and longitude for an airport code.
func (t *Table) Coordinates(code string) (lat, lon float64, err error) {
	info, ok := t.airports[normalizeCode(code)]
	if !ok {
		return 0, 0, &models.UnresolvableAirportError{Code: code}
	}
	return info.Lat, info.Lon, nil
}

// Location returns the IANA timezone location for an airport code. An airport
// with coordinates but no timezone mapping is unresolvable for duration math.
func (t *Table) Location(code string) (*time.Location, error) {
	loc, ok := t.locations[normalizeCode(code)]
	if !ok {
		return nil, &models.UnresolvableAirportError{Code: code}
	}
	return loc, nil
}

// Has reports whether the code resolves to coordinates.
func (t *Table) Has(code string) bool {
	_, ok := t.airports[normalizeCode(code)]
	return ok
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func loadCoordinates(path string) (map[string]Info, error) {
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		return loadCoordinatesJSON(path)
	}
	return loadCoordinatesCSV(path)
}

func loadCoordinatesJSON(path string) (map[string]Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	coords := make(map[string]Info, len(raw))
	for code, ll := range raw {
		code = normalizeCode(code)
		if len(code) != 3 {
			continue
		}
		coords[code] = Info{Lat: ll.Lat, Lon: ll.Lon}
	}
	return coords, nil
}

// loadCoordinatesCSV accepts the header variants seen in public airport
// datasets: iata/iata_code/code/ident, lat/latitude/latitude_deg,
// lon/lng/longitude/longitude_deg.
func loadCoordinatesCSV(path string) (map[string]Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	codeIdx := findColumn(header, "iata", "iata_code", "code", "ident")
	latIdx := findColumn(header, "lat", "latitude", "latitude_deg", "lat_deg")
	lonIdx := findColumn(header, "lon", "lng", "longitude", "longitude_deg", "lon_deg")
	if codeIdx < 0 || latIdx < 0 || lonIdx < 0 {
		return nil, fmt.Errorf("CSV %s missing iata/lat/lon columns", path)
	}

	coords := make(map[string]Info)
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		code := normalizeCode(rec[codeIdx])
		if len(code) != 3 {
			continue
		}
		lat, err1 := strconv.ParseFloat(strings.TrimSpace(rec[latIdx]), 64)
		lon, err2 := strconv.ParseFloat(strings.TrimSpace(rec[lonIdx]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		coords[code] = Info{Lat: lat, Lon: lon}
	}
	return coords, nil
}

func loadTimezones(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	zones := make(map[string]string, len(raw))
	for code, zone := range raw {
		zones[normalizeCode(code)] = zone
	}
	return zones, nil
}

func findColumn(header []string, candidates ...string) int {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for _, cand := range candidates {
			if h == cand {
				return i
			}
		}
	}
	return -1
}
