package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/julianstephens/cadence/internal/models"
)

func (s *Store) GetAllPatterns() ([]models.Pattern, error) {
	rows, err := s.db.Query("SELECT id, data FROM patterns ORDER BY type, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var patterns []models.Pattern
	for rows.Next() {
		var id string
		var data []byte
		if err := rows.Scan(&id, &data); err != nil {
			return nil, err
		}
		var p models.Pattern
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("failed to decode pattern %s: %w", id, err)
		}
		patterns = append(patterns, p)
	}
	return patterns, rows.Err()
}

func (s *Store) SavePattern(p models.Pattern) (models.Pattern, error) {
	if err := p.Validate(); err != nil {
		return models.Pattern{}, err
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	}
	data, err := json.Marshal(p)
	if err != nil {
		return models.Pattern{}, fmt.Errorf("failed to encode pattern %s: %w", p.ID, err)
	}

	_, err = s.db.Exec(`
		INSERT INTO patterns (id, type, task_id, period_category, sample_size, confidence, data, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			type = EXCLUDED.type,
			task_id = EXCLUDED.task_id,
			period_category = EXCLUDED.period_category,
			sample_size = EXCLUDED.sample_size,
			confidence = EXCLUDED.confidence,
			data = EXCLUDED.data,
			updated_at = EXCLUDED.updated_at`,
		p.ID, string(p.Type), p.TaskID, p.PeriodCategory, p.SampleSize, p.Confidence, string(data), p.UpdatedAt,
	)
	if err != nil {
		return models.Pattern{}, err
	}
	return p, nil
}
