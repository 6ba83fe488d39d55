package client

import "fmt"

// TransportError is returned when the request never produced a response.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError is returned for non-2xx responses. Detail holds the message of
// the error body, if any.
type StatusError struct {
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.Code)
}

// APIError is an application level failure reported in the response body.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// UserMessage returns the server message unchanged; it is already meant for
// display.
func (e *APIError) UserMessage() string {
	return e.Message
}
