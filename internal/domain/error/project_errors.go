package error

import "errors"

// Project domain errors.
var (
	// ErrProjectNotFound is returned when a project is not found in the tenant.
	ErrProjectNotFound = errors.New("project not found")

	// ErrProjectNameRequired is returned when a project has no name.
	ErrProjectNameRequired = errors.New("project name is required")

	// ErrInvalidProjectStatus is returned for an unknown project status.
	ErrInvalidProjectStatus = errors.New("invalid project status")

	// ErrInvalidProjectDates is returned when the end date precedes the start date.
	ErrInvalidProjectDates = errors.New("project end date must not precede start date")

	// ErrProjectClientNotFound is returned when the project's client does not exist.
	ErrProjectClientNotFound = errors.New("client not found for project")
)

// ProjectErrorCode defines error codes for project errors.
// Format: PRJ-XXYYYY where XX is category and YYYY is specific error.
type ProjectErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeProjectNameRequired  ProjectErrorCode = "PRJ-010001"
	ErrCodeInvalidProjectStatus ProjectErrorCode = "PRJ-010002"
	ErrCodeInvalidProjectDates  ProjectErrorCode = "PRJ-010003"
	ErrCodeMissingProjectFields ProjectErrorCode = "PRJ-010004"
	ErrCodeInvalidHourlyRate    ProjectErrorCode = "PRJ-010005"

	// Lookup errors (02XXXX)
	ErrCodeProjectNotFound       ProjectErrorCode = "PRJ-020001"
	ErrCodeProjectClientNotFound ProjectErrorCode = "PRJ-020002"
)

// ProjectError represents a project error with code and message.
type ProjectError struct {
	Code    ProjectErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ProjectError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ProjectError) Unwrap() error {
	return e.Err
}

// NewProjectError creates a new ProjectError with the given code and message.
func NewProjectError(code ProjectErrorCode, message string, err error) *ProjectError {
	return &ProjectError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
