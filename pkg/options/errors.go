package options

import "fmt"

// DuplicateOptionError reports a descriptor registered under a name that is
// already taken. It indicates a defect in the startup tables, not bad user
// input.
type DuplicateOptionError struct {
	Name string
}

func (e *DuplicateOptionError) Error() string {
	return fmt.Sprintf("option %q is already registered", e.Name)
}

// UnknownOptionError reports a lookup for a name that was never registered.
// Like DuplicateOptionError it is an internal consistency fault: a surface
// referenced an option missing from the registry.
type UnknownOptionError struct {
	Name string
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("option %q is not registered", e.Name)
}
