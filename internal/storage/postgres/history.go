package postgres

import (
	"database/sql"
	"time"

	"github.com/julianstephens/cadence/internal/constants"
	"github.com/julianstephens/cadence/internal/models"
)

func (s *Store) AddHistoryEntry(entry models.HistoryEntry) error {
	var actual sql.NullInt64
	if entry.ActualDuration != nil {
		actual = sql.NullInt64{Int64: int64(*entry.ActualDuration), Valid: true}
	}
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO history (id, task_id, date, start_time, end_time, planned_duration, actual_duration, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		entry.ID, entry.TaskID, entry.Date, entry.StartTime, entry.EndTime,
		entry.PlannedDuration, actual, string(entry.Status), createdAt.UTC(),
	)
	return err
}

func (s *Store) GetAllHistory() ([]models.HistoryEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, task_id, date, start_time, end_time, planned_duration, actual_duration, status, created_at
		FROM history ORDER BY date, start_time, created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []models.HistoryEntry
	for rows.Next() {
		var h models.HistoryEntry
		var actual sql.NullInt64
		var status string
		if err := rows.Scan(&h.ID, &h.TaskID, &h.Date, &h.StartTime, &h.EndTime,
			&h.PlannedDuration, &actual, &status, &h.CreatedAt); err != nil {
			return nil, err
		}
		if actual.Valid {
			a := int(actual.Int64)
			h.ActualDuration = &a
		}
		h.Status = constants.HistoryStatus(status)
		history = append(history, h)
	}
	return history, rows.Err()
}
