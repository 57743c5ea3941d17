package application

import "errors"

var (
	ErrInvalidCredentials = errors.New("unable to authenticate with provided credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUserNotFound       = errors.New("user not found")

	ErrEmailRequired = &ValidationError{Field: "email", Message: "users must have an email address"}
	ErrEmailTaken    = &ValidationError{Field: "email", Message: "user with this email already exists"}
	ErrPasswordLong  = &ValidationError{Field: "password", Message: "ensure this field has no more than 72 bytes"}
)

// ValidationError is a field-level input error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Details renders the error as a field -> message map.
func (e *ValidationError) Details() map[string]string {
	return map[string]string{e.Field: e.Message}
}
