package domain

// Notification types understood by the notifier worker.
const (
	NotificationShiftAssigned  = "shift_assigned"
	NotificationShiftChanged   = "shift_changed"
	NotificationShiftRemoved   = "shift_removed"
	NotificationShiftCancelled = "shift_cancelled"
	NotificationSwapRequested  = "swap_requested"
	NotificationSwapApproved   = "swap_approved"
	NotificationSwapRejected   = "swap_rejected"
	NotificationResetPassword  = "reset_password"
	NotificationAccountCreated = "account_created"
)

// NotificationMessage is the JSON payload published to the notification
// queue. Data carries type-specific fields for the mail template.
type NotificationMessage struct {
	Type       string `json:"type"`
	EmployeeID int64  `json:"employeeID"`
	Email      string `json:"email"`
	Title      string `json:"title"`
	Message    string `json:"message"`
	Link       string `json:"link,omitempty"`
	Data       any    `json:"data,omitempty"`
}

type AccountCreatedData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type ResetPasswordData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}
