package graph

import "errors"

// ErrWorkflowNotFound is returned when a workflow ID cannot be found in a store.
var ErrWorkflowNotFound = errors.New("workflow not found")
