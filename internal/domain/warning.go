package domain

// Warning codes for compliance checks and availability hints on a shift
// mutation. Warnings are advisory: the planner keeps final authority, so a
// violated rule never blocks persistence.
const (
	WarningDailyHoursExceeded  = "daily_hours_exceeded"
	WarningWeeklyHoursExceeded = "weekly_hours_exceeded"
	WarningInsufficientRest    = "insufficient_rest"
	WarningEmployeeUnavailable = "employee_unavailable"
)

type ComplianceWarning struct {
	Code    string  `json:"code"`
	Message string  `json:"message"`
	Actual  float64 `json:"actual"`
	Limit   float64 `json:"limit"`
}
