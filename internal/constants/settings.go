package constants

const (
	// General Settings
	SettingDayStart           = "day_start"
	SettingDayEnd             = "day_end"
	SettingDefaultDurationMin = "default_duration_min"
	SettingTimezone           = "timezone"

	// JSON-valued settings read by the insight engine
	SettingSpecialPeriods   = "specialPeriods"
	SettingPeriodCategories = "periodCategories"

	// Default Settings Values
	DefaultDayStart            = "07:00"
	DefaultDayEnd              = "22:00"
	DefaultDurationMin         = 30
	DefaultTimezone            = "Local" // Use system local timezone by default
	DefaultPeriodCategoryColor = "#8b5cf6"
)
