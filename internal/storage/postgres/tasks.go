package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/cadence/internal/constants"
	"github.com/julianstephens/cadence/internal/models"
	"github.com/julianstephens/cadence/internal/storage"
)

const taskColumns = "id, name, category, default_duration, deleted_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (models.Task, error) {
	var t models.Task
	var category string
	var deletedAt sql.NullTime
	if err := row.Scan(&t.ID, &t.Name, &category, &t.DefaultDuration, &deletedAt); err != nil {
		return models.Task{}, err
	}
	t.Category = constants.TaskCategory(category)
	if deletedAt.Valid {
		ts := deletedAt.Time.UTC().Format(time.RFC3339)
		t.DeletedAt = &ts
	}
	return t, nil
}

func (s *Store) queryTasks(query string, args ...any) ([]models.Task, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *Store) AddTask(task models.Task) error {
	return s.UpdateTask(task)
}

func (s *Store) GetTask(id string) (models.Task, error) {
	row := s.db.QueryRow("SELECT "+taskColumns+" FROM tasks WHERE id = $1 AND deleted_at IS NULL", id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, fmt.Errorf("task %s: %w", id, storage.ErrNotFound)
	}
	return t, err
}

func (s *Store) GetAllTasks() ([]models.Task, error) {
	return s.queryTasks("SELECT " + taskColumns + " FROM tasks WHERE deleted_at IS NULL ORDER BY name")
}

func (s *Store) GetAllTasksIncludingDeleted() ([]models.Task, error) {
	return s.queryTasks("SELECT " + taskColumns + " FROM tasks ORDER BY name")
}

func (s *Store) UpdateTask(task models.Task) error {
	var deletedAt sql.NullTime
	if task.DeletedAt != nil {
		ts, err := time.Parse(time.RFC3339, *task.DeletedAt)
		if err != nil {
			return fmt.Errorf("invalid deleted_at for task %s: %w", task.ID, err)
		}
		deletedAt = sql.NullTime{Time: ts, Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO tasks (`+taskColumns+`)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			default_duration = EXCLUDED.default_duration,
			deleted_at = EXCLUDED.deleted_at`,
		task.ID, task.Name, string(task.Category), task.DefaultDuration, deletedAt,
	)
	return err
}

func (s *Store) DeleteTask(id string) error {
	var deletedAt sql.NullTime
	err := s.db.QueryRow("SELECT deleted_at FROM tasks WHERE id = $1", id).Scan(&deletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("task %s: %w", id, storage.ErrNotFound)
		}
		return fmt.Errorf("failed to check task existence: %w", err)
	}

	if deletedAt.Valid {
		return fmt.Errorf("task with id %s is already deleted", id)
	}

	_, err = s.db.Exec("UPDATE tasks SET deleted_at = NOW() WHERE id = $1", id)
	return err
}
