package library

import "fmt"

// NotFoundError reports an operation that targeted an unknown id.
type NotFoundError struct {
	Resource string // "game" or "goal"
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func notFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}
