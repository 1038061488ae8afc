package error

import "errors"

// Task domain errors.
var (
	// ErrTaskNotFound is returned when a task is not found.
	ErrTaskNotFound = errors.New("task not found")

	// ErrTaskTitleRequired is returned when a task has no title.
	ErrTaskTitleRequired = errors.New("task title is required")

	// ErrInvalidTaskStatus is returned for an unknown task status.
	ErrInvalidTaskStatus = errors.New("invalid task status")

	// ErrInvalidTaskPriority is returned for an unknown task priority.
	ErrInvalidTaskPriority = errors.New("invalid task priority")
)

// TaskErrorCode defines error codes for task errors.
// Format: TSK-XXYYYY where XX is category and YYYY is specific error.
type TaskErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeTaskTitleRequired   TaskErrorCode = "TSK-010001"
	ErrCodeInvalidTaskStatus   TaskErrorCode = "TSK-010002"
	ErrCodeInvalidTaskPriority TaskErrorCode = "TSK-010003"
	ErrCodeMissingTaskFields   TaskErrorCode = "TSK-010004"

	// Lookup errors (02XXXX)
	ErrCodeTaskNotFound        TaskErrorCode = "TSK-020001"
	ErrCodeTaskProjectNotFound TaskErrorCode = "TSK-020002"
)

// TaskError represents a task error with code and message.
type TaskError struct {
	Code    TaskErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TaskError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TaskError) Unwrap() error {
	return e.Err
}

// NewTaskError creates a new TaskError with the given code and message.
func NewTaskError(code TaskErrorCode, message string, err error) *TaskError {
	return &TaskError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
