package aggregate

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/delaywise/flights-backend-go/internal/airports"
	"github.com/delaywise/flights-backend-go/internal/models"
	"github.com/delaywise/flights-backend-go/internal/spatial"
	"github.com/delaywise/flights-backend-go/internal/stats"
	"github.com/delaywise/flights-backend-go/internal/temporal"
)

// BusynessPercentile caps raw airport appearance counts so outlier hubs
// cannot dominate the normalized score.
const BusynessPercentile = 95.0

// airlineAccum carries running sums for one airline. All fields merge by
// simple addition, so partial accumulators from parallel file scans can be
// reduced in any order.
type airlineAccum struct {
	midXYZ   [3]float64
	depSin   float64
	depCos   float64
	distance float64
	count    int
}

// Accumulator collects per-airline and per-airport running sums over a
// corpus scan.
type Accumulator struct {
	airlines      map[string]*airlineAccum
	airportCounts map[string]int
}

// NewAccumulator creates an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		airlines:      make(map[string]*airlineAccum),
		airportCounts: make(map[string]int),
	}
}

// Add folds one valid corpus record into the running sums. Coordinates must
// already be resolved; Add never fabricates them.
func (a *Accumulator) Add(rec CorpusRecord, oLat, oLon, dLat, dLon float64) {
	acc, ok := a.airlines[rec.Airline]
	if !ok {
		acc = &airlineAccum{}
		a.airlines[rec.Airline] = acc
	}

	mx, my, mz := spatial.MidpointXYZ(oLat, oLon, dLat, dLon)
	acc.midXYZ[0] += mx
	acc.midXYZ[1] += my
	acc.midXYZ[2] += mz

	s, c := spatial.SinCos(float64(rec.DepMinutes) / float64(temporal.MinutesPerDay))
	acc.depSin += s
	acc.depCos += c
	acc.distance += rec.Distance
	acc.count++

	a.airportCounts[rec.Origin]++
	a.airportCounts[rec.Dest]++
}

// Merge folds another accumulator into this one. Sums are commutative and
// associative, so merge order does not affect the finalized statistics.
func (a *Accumulator) Merge(other *Accumulator) {
	for al, o := range other.airlines {
		acc, ok := a.airlines[al]
		if !ok {
			acc = &airlineAccum{}
			a.airlines[al] = acc
		}
		acc.midXYZ[0] += o.midXYZ[0]
		acc.midXYZ[1] += o.midXYZ[1]
		acc.midXYZ[2] += o.midXYZ[2]
		acc.depSin += o.depSin
		acc.depCos += o.depCos
		acc.distance += o.distance
		acc.count += o.count
	}
	for code, n := range other.airportCounts {
		a.airportCounts[code] += n
	}
}

// Result holds the finalized aggregate tables.
type Result struct {
	AirlineStats    map[string]models.AirlineStats
	AirportBusyness map[string]float64
}

// Finalize converts running sums into the published statistics: airline
// centroid (mean midpoint vector), re-normalized circular-mean departure
// direction, mean distance, and percentile-capped airport busyness. Airports
// never seen in the corpus are absent from the busyness table rather than
// carrying a spurious zero.
func (a *Accumulator) Finalize() Result {
	res := Result{
		AirlineStats:    make(map[string]models.AirlineStats, len(a.airlines)),
		AirportBusyness: make(map[string]float64, len(a.airportCounts)),
	}

	for al, acc := range a.airlines {
		if acc.count <= 0 {
			continue
		}
		n := float64(acc.count)
		s, c := spatial.CircularMeanSinCos(acc.depSin, acc.depCos, acc.count)
		res.AirlineStats[al] = models.AirlineStats{
			CentroidXYZ:       [3]float64{acc.midXYZ[0] / n, acc.midXYZ[1] / n, acc.midXYZ[2] / n},
			TypicalDepSin:     s,
			TypicalDepCos:     c,
			MeanDistanceMiles: acc.distance / n,
		}
	}

	if len(a.airportCounts) > 0 {
		values := make([]float64, 0, len(a.airportCounts))
		for _, n := range a.airportCounts {
			values = append(values, float64(n))
		}
		cap95 := stats.Percentile(values, BusynessPercentile)
		if cap95 <= 0 {
			cap95 = stats.Max(values)
		}
		if cap95 <= 0 {
			cap95 = 1
		}
		for code, n := range a.airportCounts {
			score := float64(n) / cap95
			if score > 1 {
				score = 1
			}
			res.AirportBusyness[code] = score
		}
	}

	return res
}

// Builder scans a historical corpus and produces the aggregate tables.
type Builder struct {
	airports *airports.Table
	root     string
	workers  int
}

// NewBuilder creates a builder over the corpus root. workers bounds the
// number of files scanned concurrently; values below 1 mean sequential.
func NewBuilder(table *airports.Table, root string, workers int) *Builder {
	if workers < 1 {
		workers = 1
	}
	return &Builder{airports: table, root: root, workers: workers}
}

// Run performs the full corpus scan and returns the finalized tables along
// with per-file manifest statistics. The scan is embarrassingly parallel per
// file; partial accumulators are merged by sum-reduction, so re-running over
// an unchanged corpus reproduces identical statistics.
func (b *Builder) Run(ctx context.Context) (Result, []FileStats, error) {
	files, err := ListCorpusFiles(b.root)
	if err != nil {
		return Result{}, nil, err
	}
	if len(files) == 0 {
		return Result{}, nil, fmt.Errorf("no corpus files under %s", b.root)
	}

	type fileResult struct {
		index int
		acc   *Accumulator
		stats FileStats
		err   error
	}

	jobs := make(chan int)
	results := make(chan fileResult, len(files))

	var wg sync.WaitGroup
	for w := 0; w < b.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				acc := NewAccumulator()
				st, err := b.scanInto(files[i], acc)
				results <- fileResult{index: i, acc: acc, stats: st, err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range files {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	total := NewAccumulator()
	manifest := make([]FileStats, len(files))
	seen := 0
	for r := range results {
		if r.err != nil {
			return Result{}, nil, r.err
		}
		total.Merge(r.acc)
		manifest[r.index] = r.stats
		seen++
	}
	if err := ctx.Err(); err != nil {
		return Result{}, nil, err
	}
	if seen != len(files) {
		return Result{}, nil, fmt.Errorf("corpus scan incomplete: %d of %d files", seen, len(files))
	}

	for _, st := range manifest {
		log.Printf("Scanned %s: %d rows, %d valid, %d malformed, %d unknown airport",
			st.File, st.RowsIn, st.RowsValid, st.DroppedMalformed, st.DroppedUnknownAirport)
	}

	return total.Finalize(), manifest, nil
}

func (b *Builder) scanInto(path string, acc *Accumulator) (FileStats, error) {
	return scanFile(path, b.airports.Has, func(rec CorpusRecord) {
		oLat, oLon, _ := b.airports.Coordinates(rec.Origin)
		dLat, dLon, _ := b.airports.Coordinates(rec.Dest)
		acc.Add(rec, oLat, oLon, dLat, dLon)
	})
}
