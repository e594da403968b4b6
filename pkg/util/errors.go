// Package util provides utility functions and common error types.
package util

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for resolution and configuration failures
var (
	ErrUnknownDevice     = errors.New("device not found in inventory")
	ErrUnknownGroup      = errors.New("group not found in inventory")
	ErrUnknownSequence   = errors.New("command sequence not found")
	ErrMissingCredential = errors.New("credential not set")
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrValidationFailed  = errors.New("validation failed")
	ErrUnreachable       = errors.New("device unreachable")
)

// UnknownDeviceError reports a device name that is not present in the inventory.
type UnknownDeviceError struct {
	Name string
}

func (e *UnknownDeviceError) Error() string {
	return fmt.Sprintf("device '%s' not found in inventory", e.Name)
}

func (e *UnknownDeviceError) Unwrap() error {
	return ErrUnknownDevice
}

// NewUnknownDeviceError creates an unknown-device error
func NewUnknownDeviceError(name string) *UnknownDeviceError {
	return &UnknownDeviceError{Name: name}
}

// UnknownGroupError reports a group name that is not present in the inventory.
// Known group names are carried so callers can suggest alternatives.
type UnknownGroupError struct {
	Name  string
	Known []string
}

func (e *UnknownGroupError) Error() string {
	msg := fmt.Sprintf("group '%s' not found in inventory", e.Name)
	if len(e.Known) > 0 {
		msg += " (known groups: " + strings.Join(e.Known, ", ") + ")"
	}
	return msg
}

func (e *UnknownGroupError) Unwrap() error {
	return ErrUnknownGroup
}

// NewUnknownGroupError creates an unknown-group error
func NewUnknownGroupError(name string, known []string) *UnknownGroupError {
	return &UnknownGroupError{Name: name, Known: known}
}

// MissingCredentialError reports that a credential could not be resolved
// anywhere in the precedence chain, down to the default environment variable.
type MissingCredentialError struct {
	Kind   string // "user" or "password"
	EnvVar string // the default variable the user must set
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("no default %s configured: set the %s environment variable or add it to a .env file next to the inventory",
		e.Kind, e.EnvVar)
}

func (e *MissingCredentialError) Unwrap() error {
	return ErrMissingCredential
}

// NewMissingCredentialError creates a missing-credential error
func NewMissingCredentialError(kind, envVar string) *MissingCredentialError {
	return &MissingCredentialError{Kind: kind, EnvVar: envVar}
}

// UnknownSequenceError reports a command sequence that matched at no tier
// (global, vendor, device-local).
type UnknownSequenceError struct {
	Name   string
	Device string // optional device context
}

func (e *UnknownSequenceError) Error() string {
	if e.Device != "" {
		return fmt.Sprintf("command sequence '%s' not defined globally, for the vendor of '%s', or on any device", e.Name, e.Device)
	}
	return fmt.Sprintf("command sequence '%s' not defined", e.Name)
}

func (e *UnknownSequenceError) Unwrap() error {
	return ErrUnknownSequence
}

// NewUnknownSequenceError creates an unknown-sequence error
func NewUnknownSequenceError(name, device string) *UnknownSequenceError {
	return &UnknownSequenceError{Name: name, Device: device}
}

// ValidationError represents one or more validation failures
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return "validation failed: " + e.Errors[0]
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// NewValidationError creates a validation error from messages
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Errors: messages}
}

// ValidationBuilder helps accumulate validation errors
type ValidationBuilder struct {
	errors []string
}

// Add adds an error message if condition is false
func (v *ValidationBuilder) Add(condition bool, message string) *ValidationBuilder {
	if !condition {
		v.errors = append(v.errors, message)
	}
	return v
}

// AddError adds an error message unconditionally
func (v *ValidationBuilder) AddError(message string) *ValidationBuilder {
	v.errors = append(v.errors, message)
	return v
}

// AddErrorf adds a formatted error message
func (v *ValidationBuilder) AddErrorf(format string, args ...interface{}) *ValidationBuilder {
	v.errors = append(v.errors, fmt.Sprintf(format, args...))
	return v
}

// HasErrors returns true if there are validation errors
func (v *ValidationBuilder) HasErrors() bool {
	return len(v.errors) > 0
}

// Build returns the validation error or nil if no errors
func (v *ValidationBuilder) Build() error {
	if len(v.errors) == 0 {
		return nil
	}
	return &ValidationError{Errors: v.errors}
}
