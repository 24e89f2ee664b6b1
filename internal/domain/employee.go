package domain

import (
	"time"
)

type Role string

const (
	RoleEmployee Role = "employee"
	RolePlanner  Role = "planner"
	RoleAdmin    Role = "admin"
)

// CanApproveSwaps reports whether the role may approve or reject swap requests.
func (r Role) CanApproveSwaps() bool {
	return r == RolePlanner || r == RoleAdmin
}

// CanManageShifts reports whether the role may create, update or delete shifts
// and approve availability overrides.
func (r Role) CanManageShifts() bool {
	return r == RolePlanner || r == RoleAdmin
}

func (r Role) CanManageEmployees() bool {
	return r == RoleAdmin
}

type Employee struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
	// ManagesOwnAvailability marks a "Type A" employee: availability must be
	// declared explicitly. When false ("Type B") the employee counts as
	// available every day unless a pattern or exception says otherwise.
	ManagesOwnAvailability bool      `json:"managesOwnAvailability"`
	MaxHoursPerDay         float64   `json:"maxHoursPerDay"`
	MaxHoursPerWeek        float64   `json:"maxHoursPerWeek"`
	HomeAddress            string    `json:"homeAddress"`
	IsActive               bool      `json:"isActive"`
	CreatedAt              time.Time `json:"createdAt"`
	Version                int32     `json:"-"`
}
