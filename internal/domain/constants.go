package domain

// Time format constants
const (
	TimeFormat     = "15:04"            // HH:MM
	DateFormat     = "2006-01-02"       // YYYY-MM-DD
	DateTimeFormat = "02.01.2006 15:04" // формат для сообщений пользователю
)

// Default rule values
const (
	DefaultMinGapDays     = 14
	DefaultCancelLeadTime = 120 // минут
	DefaultSlotMinutes    = 30
)
