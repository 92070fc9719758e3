// Package errors provides custom error types for the pr-merger application.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Common sentinel errors
var (
	// ErrMissingCredential indicates that no GitHub token was found in the
	// environment.
	ErrMissingCredential = errors.New("no GitHub token found: set GITHUB_PASSWORD")

	// ErrInvalidPRURL indicates that the provided PR URL could not be parsed.
	ErrInvalidPRURL = errors.New("invalid pull request URL format")
)

// ValidationError represents an error in configuration or input validation.
type ValidationError struct {
	Field string
	Value interface{}
	Msg   string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s (value: %v): %s", e.Field, e.Value, e.Msg)
}

// APIError represents a non-success response from the GitHub API. It carries
// the request URL, the HTTP status code, and the response body the API sent.
type APIError struct {
	URL        string
	StatusCode int
	Body       string
	Err        error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("GitHub API error for %s: status %d: %s", e.URL, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("GitHub API error for %s: status %d: %v", e.URL, e.StatusCode, e.Err)
}

// Unwrap returns the underlying error.
func (e *APIError) Unwrap() error {
	return e.Err
}

// ApprovalShortfallError indicates the pull request has fewer approving
// reviews than the configured threshold.
type ApprovalShortfallError struct {
	Approvals int
	Required  int
}

// Error implements the error interface.
func (e *ApprovalShortfallError) Error() string {
	return fmt.Sprintf("pull request has %d approvals, %d required", e.Approvals, e.Required)
}

// FailedChecksError indicates one or more required status checks are not
// passing.
type FailedChecksError struct {
	Checks []string
}

// Error implements the error interface.
func (e *FailedChecksError) Error() string {
	return fmt.Sprintf("required checks are not passing: %s", strings.Join(e.Checks, ", "))
}
