package domain

// Slot granularity: every slot starts on a 30-minute step from the
// opening time, and service durations are multiples of this value.
const SlotDurationMinutes = 30

// Business validation constants
const (
	MinWeekday = 0 // Monday
	MaxWeekday = 6 // Sunday

	MaxServiceDurationMinutes   = 480 // 8 hours
	MaxNotesLength              = 500
	MaxClientNameLength         = 200
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultLocales supported for notifications.
var DefaultLocales = []string{"es", "pl", "en"}
