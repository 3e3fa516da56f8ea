package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Base error types
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrTimeout          = errors.New("timeout")
	ErrConnectionFailed = errors.New("connection failed")
	ErrInvalidInput     = errors.New("invalid input")

	// ErrCacheMiss is internal to the cache layer. It is always converted
	// into a live-fetch path and never surfaces to a caller.
	ErrCacheMiss = errors.New("cache miss")
)

// Source identifies one remote resource class.
type Source string

const (
	SourceInstance  Source = "instance"
	SourceBaremetal Source = "baremetal"
)

// RemoteQueryError is a failed query against a required source class.
// It aborts the whole aggregation: no partial inventory is populated and
// no cache write occurs.
type RemoteQueryError struct {
	Op         string // Operation that failed (e.g., "list_servers")
	Source     Source // Source class being queried
	Zone       string // Zone being queried, if applicable
	StatusCode int    // HTTP status code if applicable
	Err        error  // Underlying error
	Timestamp  time.Time
}

func (e *RemoteQueryError) Error() string {
	if e.Zone != "" {
		return fmt.Sprintf("%s failed for %s/%s: %v", e.Op, e.Source, e.Zone, e.Err)
	}
	return fmt.Sprintf("%s failed for %s: %v", e.Op, e.Source, e.Err)
}

func (e *RemoteQueryError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is interface
func (e *RemoteQueryError) Is(target error) bool {
	if target == nil {
		return false
	}
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == 401 || e.StatusCode == 403
	case ErrTimeout:
		return e.StatusCode == 408 || errors.Is(e.Err, ErrTimeout)
	case ErrConnectionFailed:
		return errors.Is(e.Err, ErrConnectionFailed)
	}
	return errors.Is(e.Err, target)
}

// NewRemoteQueryError creates a new RemoteQueryError
func NewRemoteQueryError(op string, source Source, zone string, err error) *RemoteQueryError {
	return &RemoteQueryError{
		Op:        op,
		Source:    source,
		Zone:      zone,
		Err:       err,
		Timestamp: time.Now(),
	}
}

// WithStatusCode adds the HTTP status code to the error
func (e *RemoteQueryError) WithStatusCode(code int) *RemoteQueryError {
	e.StatusCode = code
	return e
}

// NoHostnameError reports a host with no usable value among the configured
// hostname preference order. Fatal for the population pass in the
// reference policy.
type NoHostnameError struct {
	HostID      string
	Preferences []string
}

func (e *NoHostnameError) Error() string {
	return fmt.Sprintf("no hostname found for %s in [%s]", e.HostID, strings.Join(e.Preferences, ", "))
}

// IsAuthError checks if an error indicates an authentication failure
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}

	var qerr *RemoteQueryError
	if errors.As(err, &qerr) {
		if qerr.StatusCode == 401 || qerr.StatusCode == 403 {
			return true
		}
	}

	if errors.Is(err, ErrUnauthorized) {
		return true
	}

	errMsg := err.Error()
	return strings.Contains(errMsg, "authentication failed") ||
		strings.Contains(errMsg, "401") ||
		strings.Contains(errMsg, "403") ||
		strings.Contains(errMsg, "unauthorized") ||
		strings.Contains(errMsg, "forbidden")
}
