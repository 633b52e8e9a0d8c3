package main

import (
	"context"
	"flag"
	"log"

	"github.com/delaywise/flights-backend-go/internal/aggregate"
	"github.com/delaywise/flights-backend-go/internal/airports"
	"github.com/delaywise/flights-backend-go/internal/config"
	"github.com/delaywise/flights-backend-go/internal/features"
)

func main() {
	cfg := config.Load()

	root := flag.String("root", cfg.CorpusRoot, "historical corpus root (<root>/<year>/*.csv)")
	out := flag.String("out", cfg.StatsDir, "output directory for aggregate tables")
	workers := flag.Int("workers", cfg.ScanWorkers, "parallel corpus files")
	embeddings := flag.String("embeddings", "", "optional directory for per-file embedding CSVs")
	flag.Parse()

	airportTable, err := airports.Load(cfg.AirportsPath, cfg.TimezonesPath)
	if err != nil {
		log.Fatal("Failed to load airport reference table:", err)
	}
	log.Printf("Loaded %d airports", airportTable.Len())

	builder := aggregate.NewBuilder(airportTable, *root, *workers)
	res, fileStats, err := builder.Run(context.Background())
	if err != nil {
		log.Fatal("Corpus scan failed:", err)
	}
	log.Printf("Computed stats for %d airlines, busyness for %d airports",
		len(res.AirlineStats), len(res.AirportBusyness))

	manifest := aggregate.Manifest{Root: *root, Files: fileStats}
	if err := aggregate.WriteSnapshot(*out, res, manifest, features.FeatureNames()); err != nil {
		log.Fatal("Failed to write snapshot:", err)
	}
	log.Printf("Aggregate tables written to %s", *out)

	if *embeddings != "" {
		if _, err := aggregate.ExportEmbeddings(airportTable, *root, *embeddings, res.AirlineStats, res.AirportBusyness); err != nil {
			log.Fatal("Failed to export embeddings:", err)
		}
		log.Printf("Embeddings written to %s", *embeddings)
	}
}
