package constants

const (
	AppName            = "cadence"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/cadence/cadence.db"
	Version            = "v0.3.0"

	// Environment variables
	EnvDBConnection   = "CADENCE_DB_CONNECTION"
	EnvMigrationsPath = "CADENCE_MIGRATIONS_PATH"
)

// TaskCategory is one of the fixed task categories
type TaskCategory string

// HistoryStatus is the outcome recorded for a scheduled task instance
type HistoryStatus string

const (
	// Task categories
	CategoryWork     TaskCategory = "work"
	CategoryHealth   TaskCategory = "health"
	CategoryPersonal TaskCategory = "personal"
	CategoryLearning TaskCategory = "learning"
	CategorySocial   TaskCategory = "social"
	CategoryChores   TaskCategory = "chores"
	CategoryOther    TaskCategory = "other"

	// History statuses
	StatusCompleted HistoryStatus = "completed"
	StatusSkipped   HistoryStatus = "skipped"
)

// TaskCategories lists every valid task category in display order
var TaskCategories = []TaskCategory{
	CategoryWork,
	CategoryHealth,
	CategoryPersonal,
	CategoryLearning,
	CategorySocial,
	CategoryChores,
	CategoryOther,
}
