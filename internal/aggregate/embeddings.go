package aggregate

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/delaywise/flights-backend-go/internal/airports"
	"github.com/delaywise/flights-backend-go/internal/features"
	"github.com/delaywise/flights-backend-go/internal/models"
)

// ExportEmbeddings re-scans the corpus and writes one embedding CSV per
// source file under <outDir>/<year>/<base>_embeddings.csv, using the already
// finalized aggregate tables. Rows dropped during the statistics scan are
// dropped here too, so the embedding files and the tables describe the same
// population.
func ExportEmbeddings(table *airports.Table, root, outDir string, airlineStats map[string]models.AirlineStats, busyness map[string]float64) ([]FileStats, error) {
	files, err := ListCorpusFiles(root)
	if err != nil {
		return nil, err
	}

	header := append([]string{"row_id"}, features.FeatureNames()...)
	var manifest []FileStats

	for _, path := range files {
		var rows [][]string
		st, err := scanFile(path, table.Has, func(rec CorpusRecord) {
			vec, err := features.Embedding(embedInputFromCorpus(rec), table, airlineStats, busyness)
			if err != nil {
				return
			}
			row := make([]string, 0, len(vec)+1)
			row = append(row, corpusRowID(rec))
			for _, v := range vec {
				row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
			}
			rows = append(rows, row)
		})
		if err != nil {
			return nil, err
		}

		yearDir := filepath.Join(outDir, strconv.Itoa(st.Year))
		if err := os.MkdirAll(yearDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", yearDir, err)
		}
		base := filepath.Base(path)
		base = base[:len(base)-len(filepath.Ext(base))]
		outPath := filepath.Join(yearDir, base+"_embeddings.csv")

		if err := writeCSV(outPath, header, rows); err != nil {
			return nil, err
		}
		manifest = append(manifest, st)
	}
	return manifest, nil
}

func embedInputFromCorpus(rec CorpusRecord) features.EmbedInput {
	return features.EmbedInput{
		Year:           rec.Year,
		Month:          rec.Month,
		DayOfMonth:     rec.DayOfMonth,
		DayOfWeek:      rec.DayOfWeek,
		Airline:        rec.Airline,
		Origin:         rec.Origin,
		Dest:           rec.Dest,
		DepMinutes:     rec.DepMinutes,
		ArrMinutes:     rec.ArrMinutes,
		DistanceMiles:  rec.Distance,
		ElapsedMinutes: rec.ElapsedMinutes,
		IsChristmasEve: rec.IsChristmasEve,
		IsThanksgiving: rec.IsThanksgiving,
		DepDelay:       rec.DepDelay,
		ArrDelay:       rec.ArrDelay,
	}
}

func corpusRowID(rec CorpusRecord) string {
	return fmt.Sprintf("%d-%02d-%02d_%s_%s-%s_%04d",
		rec.Year, rec.Month, rec.DayOfMonth, rec.Airline, rec.Origin, rec.Dest,
		rec.DepMinutes/60*100+rec.DepMinutes%60)
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}
	w.Flush()
	return w.Error()
}
