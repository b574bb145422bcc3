package habit

import "fmt"

// ValidationError reports a bad habit field. The message is safe to show to the user.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError is returned for habits that do not exist or belong to another owner.
// The two cases are indistinguishable.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return "habit not found"
}

// StateConflictError is returned when a mutation is not allowed in the habit's current state.
type StateConflictError struct {
	ID     string
	Reason string
}

func (e *StateConflictError) Error() string {
	return fmt.Sprintf("habit %s: %s", e.ID, e.Reason)
}
