package projects

import (
	"fmt"
	"strings"
)

// DuplicateNameError is returned when a project name is already taken.
type DuplicateNameError struct {
	Name string
}

func (e DuplicateNameError) Error() string {
	return fmt.Sprintf("project %q already exists", e.Name)
}

// ProjectNotFoundError is returned when a project id or name does not exist.
type ProjectNotFoundError struct {
	ID   uint
	Name string
}

func (e ProjectNotFoundError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("project %q not found", e.Name)
	}
	return fmt.Sprintf("project id %v not found", e.ID)
}

// UnknownFunctionError is returned when a column rule names a function that does not exist.
type UnknownFunctionError struct {
	Table    string
	Column   string
	Function string
	Err      error
}

func (e UnknownFunctionError) Error() string {
	return fmt.Sprintf("table %v column %v: %v", e.Table, e.Column, e.Err)
}

func (e UnknownFunctionError) Unwrap() error {
	return e.Err
}

// ValidationError is returned for malformed input such as an empty project name.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// EmptyImportError is returned when there is nothing to import.
type EmptyImportError struct {
	Paths []string
}

func (e EmptyImportError) Error() string {
	if len(e.Paths) == 0 {
		return "nothing to import: both documents are empty"
	}
	return fmt.Sprintf("nothing to import from %v", strings.Join(e.Paths, ", "))
}
