package domain

import "time"

type SwapType string

const (
	SwapTypeTakeover SwapType = "takeover"
	SwapTypeSwap     SwapType = "swap"
)

type SwapRequestStatus string

const (
	SwapStatusPending   SwapRequestStatus = "pending"
	SwapStatusApproved  SwapRequestStatus = "approved"
	SwapStatusRejected  SwapRequestStatus = "rejected"
	SwapStatusCancelled SwapRequestStatus = "cancelled"
)

// SwapRequest is a request by a shift's assigned employee to hand the shift
// over. TargetEmployeeID is nil while the request is open to anyone; claim
// binds a target without leaving pending. All other transitions out of
// pending are terminal.
type SwapRequest struct {
	ID                   int64             `json:"id"`
	ShiftID              int64             `json:"shiftID"`
	RequestingEmployeeID int64             `json:"requestingEmployeeID"`
	TargetEmployeeID     *int64            `json:"targetEmployeeID"`
	SwapType             SwapType          `json:"swapType"`
	Status               SwapRequestStatus `json:"status"`
	Reason               string            `json:"reason"`
	ApproverID           *int64            `json:"approverID"`
	ResponseMessage      string            `json:"responseMessage,omitempty"`
	CreatedAt            time.Time         `json:"createdAt"`
	Version              int32             `json:"-"`
}
