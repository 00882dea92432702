package payment

type Method string

const (
	MethodCash    Method = "CASH"
	MethodGateway Method = "GATEWAY"
)

func (m Method) String() string {
	return string(m)
}

func (m Method) IsValid() bool {
	switch m {
	case MethodCash, MethodGateway:
		return true
	default:
		return false
	}
}

// Status transitions are terminal per payment record: a failed attempt is
// never reused, a new record is created for retries.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}
