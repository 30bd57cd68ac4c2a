package types

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
)

// CustomError carries an HTTP status and an error type through Fiber's error handler.
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// ConnectionError reports that the pool could not produce a working connection.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection error during %s: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// QueryError reports a statement the database rejected.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query error during %s: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// NotFoundError reports a missing category or an empty joke table.
type NotFoundError struct {
	Resource string
	Name     string
	Message  string
}

func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Name == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s '%s' not found", e.Resource, e.Name)
}

// ValidationError reports missing or wrongly typed input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// InitializationError reports a failed schema setup.
type InitializationError struct {
	Step string
	Err  error
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("database initialization failed at %s: %v", e.Step, e.Err)
}

func (e *InitializationError) Unwrap() error { return e.Err }

// Classify wraps a raw driver or GORM error as a ConnectionError or a QueryError.
// Errors that already carry a kind are returned unchanged; nil stays nil.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var connErr *ConnectionError
	var queryErr *QueryError
	var notFound *NotFoundError
	var validation *ValidationError
	if errors.As(err, &connErr) || errors.As(err, &queryErr) ||
		errors.As(err, &notFound) || errors.As(err, &validation) {
		return err
	}

	if IsConnectionFailure(err) {
		return &ConnectionError{Op: op, Err: err}
	}
	return &QueryError{Op: op, Err: err}
}

// IsConnectionFailure reports whether err means the database could not be reached.
func IsConnectionFailure(err error) bool {
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
