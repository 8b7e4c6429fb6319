package client

import (
	"encoding/json"
	"fmt"
)

const NetworkErrorMessage = "Network Error"

// Error is a recognized transport failure: the request never produced a
// response, or the response status was not 2xx. Message is suitable for
// display as-is.
type Error struct {
	Op         string
	Message    string
	StatusCode int    // zero for network failures
	Body       string // bounded response body for status failures
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Detail extracts the server's explanation from an error body: the "detail"
// field, or the first entry of "non_field_errors". Empty when the body has
// neither.
func (e *Error) Detail() string {
	var body struct {
		Detail         string   `json:"detail"`
		NonFieldErrors []string `json:"non_field_errors"`
	}
	if json.Unmarshal([]byte(e.Body), &body) != nil {
		return ""
	}
	if body.Detail != "" {
		return body.Detail
	}
	if len(body.NonFieldErrors) > 0 {
		return body.NonFieldErrors[0]
	}
	return ""
}

func newStatusError(op string, status int, body string) *Error {
	return &Error{
		Op:         op,
		Message:    fmt.Sprintf("Request failed with status code %d", status),
		StatusCode: status,
		Body:       body,
	}
}
