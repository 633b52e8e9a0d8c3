package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/delaywise/flights-backend-go/internal/models"
)

// PredictionRepository handles database operations for the prediction
// history store
type PredictionRepository struct {
	db *sql.DB
}

// NewPredictionRepository creates a new prediction repository
func NewPredictionRepository(db *sql.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

// InitSchema creates the predictions table if it does not exist
func (r *PredictionRepository) InitSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS predictions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			airline TEXT NOT NULL,
			flight_number TEXT NOT NULL,
			origin TEXT NOT NULL,
			dest TEXT NOT NULL,
			departure_time TEXT NOT NULL,
			top_class TEXT NOT NULL,
			top_probability REAL NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := r.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create predictions table: %w", err)
	}
	return nil
}

// Insert stores one scored prediction
func (r *PredictionRepository) Insert(rec *models.PredictionRecord) error {
	query := `
		INSERT INTO predictions (airline, flight_number, origin, dest, departure_time, top_class, top_probability)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.Exec(query,
		rec.Airline, rec.FlightNumber, rec.Origin, rec.Dest,
		rec.DepartureTime, rec.TopClass, rec.TopProbability)
	if err != nil {
		return fmt.Errorf("failed to insert prediction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get prediction id: %w", err)
	}
	rec.ID = id
	return nil
}

// Recent returns the most recently stored predictions, newest first
func (r *PredictionRepository) Recent(limit int) ([]models.PredictionRecord, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	query := `
		SELECT id, airline, flight_number, origin, dest, departure_time, top_class, top_probability, created_at
		FROM predictions
		ORDER BY id DESC
		LIMIT ?
	`
	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}
	defer rows.Close()

	var records []models.PredictionRecord
	for rows.Next() {
		var rec models.PredictionRecord
		var createdAt string
		if err := rows.Scan(&rec.ID, &rec.Airline, &rec.FlightNumber, &rec.Origin, &rec.Dest,
			&rec.DepartureTime, &rec.TopClass, &rec.TopProbability, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan prediction row: %w", err)
		}
		if t, err := time.Parse("2006-01-02 15:04:05", createdAt); err == nil {
			rec.CreatedAt = t
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Purge deletes all stored predictions
func (r *PredictionRepository) Purge() error {
	if _, err := r.db.Exec(`DELETE FROM predictions`); err != nil {
		return fmt.Errorf("failed to purge predictions: %w", err)
	}
	return nil
}
