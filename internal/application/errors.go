package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound         = errors.New("not found")
	ErrConfigMissing    = errors.New("configuration missing")
	ErrUnknownProvider  = errors.New("unknown provider")
	ErrWriteFailure     = errors.New("write failure")
	ErrInvalidAttribute = errors.New("invalid attribute")
	ErrFetchFailed      = errors.New("fetch failed")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotFoundError reports a missing node or a node of the wrong type
type NotFoundError struct {
	ID     string
	Reason string
}

func (e *NotFoundError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("node %s not found", e.ID)
	}
	return fmt.Sprintf("node %s not found: %s", e.ID, e.Reason)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ConfigMissingError reports that a required inherited setting could not
// be resolved for a container
type ConfigMissingError struct {
	ContainerID string
	Setting     string
}

func (e *ConfigMissingError) Error() string {
	return fmt.Sprintf("no %s found for container %s", e.Setting, e.ContainerID)
}

func (e *ConfigMissingError) Is(target error) bool {
	return target == ErrConfigMissing
}

// UnknownProviderError reports a provider name absent from the registry
type UnknownProviderError struct {
	Name string
}

func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("unknown provider: %s", e.Name)
}

func (e *UnknownProviderError) Is(target error) bool {
	return target == ErrUnknownProvider
}

// RecordError represents a store write rejected for one synced record
type RecordError struct {
	RemoteID string
	Op       string // "create" or "update"
	Err      error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("cannot %s record %s: %v", e.Op, e.RemoteID, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

func (e *RecordError) Is(target error) bool {
	return target == ErrWriteFailure
}
