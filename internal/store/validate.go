package store

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrPasswordTooShort is returned when a password has fewer than 6 characters.
	ErrPasswordTooShort = errors.New("password is too short")

	// ErrUsernameTooShort is returned when a username has fewer than 3 characters.
	ErrUsernameTooShort = errors.New("Username is too short")

	// ErrUsernameInvalid is returned when a username is not purely alphanumeric.
	ErrUsernameInvalid = errors.New("Username should be alphanumeric, and should not have spaces")

	// ErrEmailInvalid is returned when an email fails syntax validation.
	ErrEmailInvalid = errors.New("Email is not valid!")

	// ErrURLInvalid is returned when a bookmark url fails syntax validation.
	ErrURLInvalid = errors.New("Enter a valid url")

	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

	validate = validator.New()
)

// ValidatePassword checks the registration password length requirement.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return ErrPasswordTooShort
	}
	return nil
}

// ValidateUsername checks that username is at least 3 characters of plain
// alphanumerics with no spaces.
func ValidateUsername(username string) error {
	if len(username) < 3 {
		return ErrUsernameTooShort
	}
	if !usernameRe.MatchString(username) {
		return ErrUsernameInvalid
	}
	return nil
}

// ValidateEmail checks email syntax only. Uniqueness is handled by the
// pre-insert lookup and the unique index on users.email.
func ValidateEmail(email string) error {
	if err := validate.Var(email, "required,email"); err != nil {
		return ErrEmailInvalid
	}
	return nil
}

// ValidateURL checks bookmark url syntax (scheme and host required).
// Uniqueness is handled by the pre-insert lookup and the unique index on
// bookmarks.url.
func ValidateURL(url string) error {
	if err := validate.Var(url, "required,http_url"); err != nil {
		return ErrURLInvalid
	}
	return nil
}
