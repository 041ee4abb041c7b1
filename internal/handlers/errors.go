package handlers

import "fmt"

// ErrMessageInternal is the generic message for 500 responses. Internal
// details never reach the response body.
const ErrMessageInternal = "Something went wrong"

// HTTPError is an error with an HTTP status attached. Handlers return it for
// conditions they recognize (not found, forbidden, bad input); the central
// error renderer turns it into the error page.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// E builds an HTTPError.
func E(status int, message string) *HTTPError {
	return &HTTPError{Status: status, Message: message}
}
