package inference

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/delaywise/flights-backend-go/internal/features"
)

// SentinelIndex is the fixed encoding for a category not present in the
// training-time table. Unseen categories never raise.
const SentinelIndex = -1.0

// Encoder ordinal-encodes the wide row's string columns using a category
// table fixed at training time and persisted alongside the model artifact.
// The table is immutable after load, so encoding is stable across calls.
type Encoder struct {
	categories map[string]map[string]int
}

// NewEncoder builds an encoder from column -> ordered category list.
func NewEncoder(table map[string][]string) *Encoder {
	cats := make(map[string]map[string]int, len(table))
	for col, values := range table {
		m := make(map[string]int, len(values))
		for i, v := range values {
			m[v] = i
		}
		cats[col] = m
	}
	return &Encoder{categories: cats}
}

// LoadEncoder reads the persisted category table, a JSON document of
// column -> ordered category list.
func LoadEncoder(path string) (*Encoder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read category table: %w", err)
	}
	var table map[string][]string
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse category table %s: %w", path, err)
	}
	return NewEncoder(table), nil
}

// Transform flattens wide rows and replaces every categorical column with
// its ordinal index (sentinel for unseen values). Numeric columns pass
// through; an explicitly missing value stays nil.
func (e *Encoder) Transform(rows []features.WideRow) []map[string]interface{} {
	out := make([]map[string]interface{}, len(rows))
	for i := range rows {
		m := rows[i].AsMap()
		for _, col := range features.CategoricalColumns {
			raw, ok := m[col].(string)
			if !ok {
				m[col] = SentinelIndex
				continue
			}
			if idx, ok := e.categories[col][raw]; ok {
				m[col] = float64(idx)
			} else {
				m[col] = SentinelIndex
			}
		}
		out[i] = m
	}
	return out
}
