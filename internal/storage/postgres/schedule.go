package postgres

import "github.com/julianstephens/cadence/internal/models"

const scheduleColumns = "id, task_id, date, start_time, duration"

func (s *Store) AddScheduledInstance(inst models.ScheduledInstance) error {
	_, err := s.db.Exec(`
		INSERT INTO scheduled_instances (`+scheduleColumns+`)
		VALUES ($1, $2, $3, $4, $5)`,
		inst.ID, inst.TaskID, inst.Date, inst.StartTime, inst.Duration,
	)
	return err
}

func (s *Store) GetAllScheduledInstances() ([]models.ScheduledInstance, error) {
	return s.queryScheduledInstances("SELECT " + scheduleColumns + " FROM scheduled_instances ORDER BY date, start_time")
}

func (s *Store) GetScheduledInstancesForDate(date string) ([]models.ScheduledInstance, error) {
	return s.queryScheduledInstances("SELECT "+scheduleColumns+" FROM scheduled_instances WHERE date = $1 ORDER BY start_time", date)
}

func (s *Store) queryScheduledInstances(query string, args ...any) ([]models.ScheduledInstance, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ScheduledInstance
	for rows.Next() {
		var inst models.ScheduledInstance
		if err := rows.Scan(&inst.ID, &inst.TaskID, &inst.Date, &inst.StartTime, &inst.Duration); err != nil {
			return nil, err
		}
		out = append(out, inst)
	}
	return out, rows.Err()
}
