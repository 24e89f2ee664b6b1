package domain

import "time"

// AvailabilityPattern is a recurring weekly rule. DayOfWeek follows time.Weekday
// numbering (0 = Sunday .. 6 = Saturday). Start and end times are clock strings
// in "15:04" form. The pattern set of an employee is replaced wholesale when
// resaved.
type AvailabilityPattern struct {
	ID          int64     `json:"id"`
	EmployeeID  int64     `json:"employeeID"`
	DayOfWeek   int32     `json:"dayOfWeek"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	IsAvailable bool      `json:"isAvailable"`
	CreatedAt   time.Time `json:"createdAt"`
}

// AvailabilityException is a one-off override for a specific calendar date.
// It always takes precedence over a pattern for the same date. Start and end
// times are optional; when empty the exception covers the whole day.
type AvailabilityException struct {
	ID          int64     `json:"id"`
	EmployeeID  int64     `json:"employeeID"`
	Date        time.Time `json:"date"`
	StartTime   string    `json:"startTime,omitempty"`
	EndTime     string    `json:"endTime,omitempty"`
	IsAvailable bool      `json:"isAvailable"`
	Reason      string    `json:"reason"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TimeWindow is a clock-time interval within a single day.
type TimeWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Sources of an availability resolution, in order of authority.
const (
	AvailabilitySourceException     = "exception"
	AvailabilitySourcePattern       = "pattern"
	AvailabilitySourceDefaultPolicy = "default-policy"
)

// AvailabilityResult is the outcome of resolving an employee's availability
// for one date. Windows lists the day's available windows so a caller can
// suggest alternatives when the requested window did not fit.
type AvailabilityResult struct {
	IsAvailable bool         `json:"isAvailable"`
	Source      string       `json:"source"`
	Reason      string       `json:"reason,omitempty"`
	Windows     []TimeWindow `json:"windows,omitempty"`
}
