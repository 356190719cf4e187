package checkout

type Status string

const (
	StatusSubmitted       Status = "SUBMITTED"
	StatusIntentRequested Status = "INTENT_REQUESTED"
	StatusConfirming      Status = "CONFIRMING"
	StatusSucceeded       Status = "SUCCEEDED"
	StatusFailed          Status = "FAILED"
)

func (s Status) IsTerminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// String representation (for logging)
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo reports whether a checkout attempt may move from one status
// to the next. Attempts only move forward; terminal states are final.
func CanTransitionTo(from, to Status) bool {
	switch from {
	case StatusSubmitted:
		return to == StatusIntentRequested || to == StatusFailed
	case StatusIntentRequested:
		return to == StatusConfirming || to == StatusFailed
	case StatusConfirming:
		return to == StatusSucceeded || to == StatusFailed
	default:
		return false
	}
}
