package aggregate

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/delaywise/flights-backend-go/internal/temporal"
)

// Required corpus columns (BTS on-time performance schema)
var requiredColumns = []string{
	"Month", "DayofMonth", "DayOfWeek", "Reporting_Airline",
	"Origin", "Dest", "CRSDepTime", "CRSArrTime",
	"DepDelay", "ArrDelay", "CRSElapsedTime", "Distance",
	"is_christmas_eve", "is_thanksgiving",
}

// CorpusRecord is one validated row from a historical schedule file.
type CorpusRecord struct {
	Year           int
	Month          int
	DayOfMonth     int
	DayOfWeek      int // 1=Monday .. 7=Sunday
	Airline        string
	Origin         string
	Dest           string
	DepMinutes     int
	ArrMinutes     int
	DepDelay       float64
	ArrDelay       float64
	ElapsedMinutes float64
	Distance       float64
	IsChristmasEve bool
	IsThanksgiving bool
}

// FileStats summarizes one scanned corpus file for the run manifest.
type FileStats struct {
	File                  string `json:"file"`
	Year                  int    `json:"year"`
	Month                 int    `json:"month"`
	RowsIn                int    `json:"rows_in"`
	RowsValid             int    `json:"rows_valid"`
	DroppedMalformed      int    `json:"dropped_malformed"`
	DroppedUnknownAirport int    `json:"dropped_unknown_airport"`
}

// ListCorpusFiles walks <root>/<year>/*.csv in deterministic order. Year
// directories must be all digits; anything else is skipped.
func ListCorpusFiles(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus root %s: %w", root, err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() || !isAllDigits(e.Name()) {
			continue
		}
		yearDir := filepath.Join(root, e.Name())
		sub, err := os.ReadDir(yearDir)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", yearDir, err)
		}
		for _, f := range sub {
			if f.IsDir() || !strings.HasSuffix(f.Name(), ".csv") {
				continue
			}
			files = append(files, filepath.Join(yearDir, f.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

var fileYearMonthRe = regexp.MustCompile(`(\d{4})[\\/](?:\d{4}_)?(\d{1,2})\.csv$`)

// YearMonthFromPath extracts (year, month) from a corpus file path of the
// form <root>/<year>/<year>_<month>.csv (month suffix optional).
func YearMonthFromPath(path string) (int, int, error) {
	if m := fileYearMonthRe.FindStringSubmatch(path); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		return year, month, nil
	}
	// Fall back to the year directory alone
	dir := filepath.Base(filepath.Dir(path))
	if isAllDigits(dir) && len(dir) == 4 {
		year, _ := strconv.Atoi(dir)
		return year, 0, nil
	}
	return 0, 0, fmt.Errorf("cannot parse year/month from %s", path)
}

// scanFile streams one corpus CSV, invoking fn for each valid record and
// counting dropped rows. Records failing validation are dropped, never
// imputed.
func scanFile(path string, resolve func(code string) bool, fn func(CorpusRecord)) (FileStats, error) {
	year, month, err := YearMonthFromPath(path)
	if err != nil {
		return FileStats{}, err
	}
	st := FileStats{File: path, Year: year, Month: month}

	f, err := os.Open(path)
	if err != nil {
		return st, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.ReuseRecord = true
	header, err := r.Read()
	if err != nil {
		return st, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return st, fmt.Errorf("%s missing required column %q", path, col)
		}
	}

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return st, fmt.Errorf("failed to read row in %s: %w", path, err)
		}
		st.RowsIn++

		rec, ok := parseRow(row, idx, year)
		if !ok {
			st.DroppedMalformed++
			continue
		}
		if !resolve(rec.Origin) || !resolve(rec.Dest) {
			st.DroppedUnknownAirport++
			continue
		}
		st.RowsValid++
		fn(rec)
	}
	return st, nil
}

func parseRow(row []string, idx map[string]int, year int) (CorpusRecord, bool) {
	get := func(col string) string { return strings.TrimSpace(row[idx[col]]) }

	for _, col := range requiredColumns {
		if get(col) == "" {
			return CorpusRecord{}, false
		}
	}

	month, err1 := strconv.Atoi(get("Month"))
	dom, err2 := strconv.Atoi(get("DayofMonth"))
	dow, err3 := strconv.Atoi(get("DayOfWeek"))
	if err1 != nil || err2 != nil || err3 != nil {
		return CorpusRecord{}, false
	}

	depMin, okDep := temporal.HHMMToMinutes(get("CRSDepTime"))
	arrMin, okArr := temporal.HHMMToMinutes(get("CRSArrTime"))
	if !okDep || !okArr {
		return CorpusRecord{}, false
	}

	depDelay, err4 := strconv.ParseFloat(get("DepDelay"), 64)
	arrDelay, err5 := strconv.ParseFloat(get("ArrDelay"), 64)
	elapsed, err6 := strconv.ParseFloat(get("CRSElapsedTime"), 64)
	dist, err7 := strconv.ParseFloat(get("Distance"), 64)
	if err4 != nil || err5 != nil || err6 != nil || err7 != nil {
		return CorpusRecord{}, false
	}

	return CorpusRecord{
		Year:           year,
		Month:          month,
		DayOfMonth:     dom,
		DayOfWeek:      dow,
		Airline:        get("Reporting_Airline"),
		Origin:         strings.ToUpper(get("Origin")),
		Dest:           strings.ToUpper(get("Dest")),
		DepMinutes:     depMin,
		ArrMinutes:     arrMin,
		DepDelay:       depDelay,
		ArrDelay:       arrDelay,
		ElapsedMinutes: elapsed,
		Distance:       dist,
		IsChristmasEve: parseFlag(get("is_christmas_eve")),
		IsThanksgiving: parseFlag(get("is_thanksgiving")),
	}, true
}

func parseFlag(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
