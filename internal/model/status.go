package model

// Status represents the processing state of a task as reported by the
// WebODM server.
type Status int

const (
	// StatusUnknown is the zero value, used when the server omits the field.
	StatusUnknown Status = 0

	// StatusQueued means the task is waiting for a processing node.
	StatusQueued Status = 10

	// StatusRunning means the task is being processed.
	StatusRunning Status = 20

	// StatusFailed means processing ended with an error.
	StatusFailed Status = 30

	// StatusCompleted means processing finished successfully.
	StatusCompleted Status = 40

	// StatusCanceled means the task was canceled by a user.
	StatusCanceled Status = 50
)

// String returns the lowercase display name of the status.
func (s Status) String() string {
	switch s {
	case StatusQueued:
		return "queued"
	case StatusRunning:
		return "running"
	case StatusFailed:
		return "failed"
	case StatusCompleted:
		return "completed"
	case StatusCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// IsTerminal returns true if the task reached a final state.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCanceled
}

// IsCancelable returns true if a cancel request makes sense for the status.
// Only completed tasks are refused; failed and canceled tasks are accepted
// and rejected server-side, matching the server's own eligibility rule.
func (s Status) IsCancelable() bool {
	return s != StatusCompleted
}
