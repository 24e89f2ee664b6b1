package domain

import "time"

type ShiftStatus string

const (
	ShiftStatusScheduled ShiftStatus = "scheduled"
	ShiftStatusCancelled ShiftStatus = "cancelled"
)

// Shift is one planned block of work. EmployeeID is nil for an open
// (unassigned) shift. EndTime is always strictly after StartTime; an overnight
// shift rolls its end onto the next calendar day.
type Shift struct {
	ID               int64       `json:"id"`
	EmployeeID       *int64      `json:"employeeID"`
	AssignmentID     *int64      `json:"assignmentID"`
	StartTime        time.Time   `json:"startTime"`
	EndTime          time.Time   `json:"endTime"`
	BreakMinutes     int32       `json:"breakMinutes"`
	Status           ShiftStatus `json:"status"`
	OverrideApproved bool        `json:"overrideApproved"`
	OverrideNote     string      `json:"overrideNote,omitempty"`
	TravelDistanceKm *float64    `json:"travelDistanceKm"`
	CreatedAt        time.Time   `json:"createdAt"`
	Version          int32       `json:"-"`
}

// WorkedHours is the shift duration minus the unpaid break.
func (s *Shift) WorkedHours() float64 {
	return s.EndTime.Sub(s.StartTime).Hours() - float64(s.BreakMinutes)/60
}
