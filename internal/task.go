package internal

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Status indicates where a Task currently is in its lifecycle.
type Status uint8

const (
	StatusPending Status = iota
	StatusInProgress
	StatusCompleted
)

// statusValues are the wire values, in lifecycle order.
var statusValues = [...]string{
	"Pending",
	"In Progress",
	"Completed",
}

func (s Status) String() string {
	if int(s) >= len(statusValues) {
		return "invalid"
	}

	return statusValues[s]
}

// Next returns the status following this one, wrapping back to Pending after
// Completed. Used by the quick-advance action.
func (s Status) Next() Status {
	return Status((uint8(s) + 1) % uint8(len(statusValues)))
}

// Validate indicates whether the status is one of the known lifecycle values.
func (s Status) Validate() error {
	if int(s) >= len(statusValues) {
		return NewErrorf(ErrorCodeInvalidArgument, "unknown status: %d", s)
	}

	return nil
}

// ParseStatus converts the received wire value into a Status.
func ParseStatus(s string) (Status, error) {
	for i, v := range statusValues {
		if v == s {
			return Status(i), nil
		}
	}

	return StatusPending, NewErrorf(ErrorCodeInvalidArgument, "unknown status: %q", s)
}

// Priority describes how urgent a Task is.
type Priority uint8

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	}

	return "invalid"
}

// ParsePriority converts the received value into a Priority, unrecognized
// values are coerced to PriorityMedium.
func ParsePriority(s string) Priority {
	switch s {
	case "low":
		return PriorityLow
	case "high":
		return PriorityHigh
	}

	return PriorityMedium
}

// Validate indicates whether the priority is a known value.
func (p Priority) Validate() error {
	if p > PriorityHigh {
		return NewErrorf(ErrorCodeInvalidArgument, "unknown priority: %d", p)
	}

	return nil
}

// Task is a unit of work created by an admin, optionally assigned to a user.
type Task struct {
	ID          string
	Title       string
	Description string
	Status      Status
	Priority    Priority
	AssignedTo  *UserRef
	CreatedBy   UserRef
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateTaskParams defines the values required to create a task.
type CreateTaskParams struct {
	Title       string
	Description string
	Priority    Priority
	AssignedTo  string // optional user id, empty means unassigned
	CreatedBy   string
}

// Validate indicates whether the fields are valid for creating a task.
// AssignedTo is only checked syntactically, the referenced user is not
// required to exist.
func (p CreateTaskParams) Validate() error {
	if err := validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required),
		validation.Field(&p.CreatedBy, validation.Required),
	); err != nil {
		return WrapErrorf(err, ErrorCodeInvalidArgument, "validation.ValidateStruct")
	}

	if p.AssignedTo != "" {
		if _, err := uuid.Parse(p.AssignedTo); err != nil {
			return WrapErrorf(err, ErrorCodeInvalidArgument, "invalid id format")
		}
	}

	return p.Priority.Validate()
}

// UpdateTaskParams is a field-level patch, nil fields keep their stored
// value. An AssignedTo pointing at an empty string clears the assignment.
type UpdateTaskParams struct {
	Title       *string
	Description *string
	Status      *Status
	Priority    *Priority
	AssignedTo  *string
}

// Validate indicates whether the patch can be applied.
func (p UpdateTaskParams) Validate() error {
	if p.Title != nil && *p.Title == "" {
		return NewErrorf(ErrorCodeInvalidArgument, "title is required")
	}

	if p.Status != nil {
		if err := p.Status.Validate(); err != nil {
			return err
		}
	}

	if p.Priority != nil {
		if err := p.Priority.Validate(); err != nil {
			return err
		}
	}

	if p.AssignedTo != nil && *p.AssignedTo != "" {
		if _, err := uuid.Parse(*p.AssignedTo); err != nil {
			return WrapErrorf(err, ErrorCodeInvalidArgument, "invalid id format")
		}
	}

	return nil
}
