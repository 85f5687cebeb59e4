package container

import (
	"fmt"
	"strings"
)

// ── Error kinds ───────────────────────────────────────────────────────────────
//
// All container failures are configuration errors, not transient faults.
// None of them is retriable, and a failed Get leaves the registry untouched
// (resolution is read-only).

// InvalidArgumentError reports an illegal registry mutation: the reserved
// service id, a locked entry, or unsetting an id that was never registered.
type InvalidArgumentError struct {
	Message string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("InvalidArgument: %s", e.Message)
}

// NotFoundError reports a missing service or parameter id, or a dependency
// type with no registered service.
type NotFoundError struct {
	ID      string
	Message string
}

func (e *NotFoundError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("NotFound '%s'", e.ID)
	}
	return fmt.Sprintf("NotFound '%s': %s", e.ID, e.Message)
}

// ContainerError reports a service that exists but cannot be constructed:
// a descriptor that is not instantiable, an unresolvable non-class parameter,
// an ambiguous type lookup, or a constructor that returned an error.
type ContainerError struct {
	Message string
}

func (e *ContainerError) Error() string {
	return fmt.Sprintf("ContainerError: %s", e.Message)
}

// CyclicDependencyError reports a circular constructor dependency.
// Chain holds the resolution path, first id to the repeated one.
type CyclicDependencyError struct {
	Chain []string
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("CyclicDependency: %s", strings.Join(e.Chain, " -> "))
}

func invalidArgumentf(format string, args ...any) *InvalidArgumentError {
	return &InvalidArgumentError{Message: fmt.Sprintf(format, args...)}
}

func containerErrorf(format string, args ...any) *ContainerError {
	return &ContainerError{Message: fmt.Sprintf(format, args...)}
}
