package view

import (
	"errors"

	"github.com/kidandcat/projectview/internal/client"
)

var ErrMissingCredentials = errors.New("username and password are required")

// CheckCredentials rejects an empty username or password before any network
// call is made.
func CheckCredentials(username, password string) error {
	if username == "" || password == "" {
		return ErrMissingCredentials
	}
	return nil
}

// LoginErrorText is the line an auth gate shows after a failed login. It
// prefers the server's explanation over the bare status message.
func LoginErrorText(err error) string {
	const prefix = "Login failed: "
	if errors.Is(err, ErrMissingCredentials) {
		return prefix + "username and password are required"
	}
	var apiErr *client.Error
	if errors.As(err, &apiErr) {
		if detail := apiErr.Detail(); detail != "" {
			return prefix + detail
		}
		return prefix + apiErr.Message
	}
	return prefix + UnexpectedErrorMessage
}
