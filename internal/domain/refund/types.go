package refund

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusCompleted  Status = "COMPLETED"
	StatusFailed     Status = "FAILED"
	StatusRejected   Status = "REJECTED"
)

func (s Status) String() string {
	return string(s)
}

// BlocksNewRequest marks the statuses that make a booking ineligible for a
// further refund request: anything still in flight or already paid out.
func (s Status) BlocksNewRequest() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted:
		return true
	default:
		return false
	}
}
