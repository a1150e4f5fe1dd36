// Package errors provides an API for errors across the application.
package errors

// RequestError is an error with the HTTP status code it should be reported with.
type RequestError struct {
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	return e.Err.Error()
}

func (e *RequestError) Unwrap() error {
	return e.Err
}
