package domain

import (
	"errors"
	"net/mail"
	"strings"
)

// User validation errors
var (
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrEmptyFirstName      = errors.New("first name cannot be empty")
	ErrEmptyLastName       = errors.New("last name cannot be empty")
	ErrPasswordTooShort    = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// Password length bounds. The upper bound is bcrypt's input limit.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

// User is a registered account. Users are created at signup and are never
// modified afterwards.
type User struct {
	ID             int64  `json:"id"`
	Email          string `json:"email"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Password       string `json:"-"` // plaintext, only set during signup
	HashedPassword string `json:"-"`
}

// NewUser builds a User from signup data. The password is kept in plaintext
// and must be hashed by the caller before the user is stored.
func NewUser(email, firstName, lastName, password string) (*User, error) {
	if password == "" {
		return nil, ErrPasswordTooShort
	}

	user := &User{
		Email:     strings.TrimSpace(email),
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Password:  password,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks the user fields. A user without a plaintext password must
// carry a hash, which is the case for users loaded from storage.
func (u *User) Validate() error {
	if u.Email == "" {
		return ErrEmptyEmail
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return ErrInvalidEmail
	}
	if u.FirstName == "" {
		return ErrEmptyFirstName
	}
	if u.LastName == "" {
		return ErrEmptyLastName
	}

	if u.Password != "" {
		if len(u.Password) < MinPasswordLength {
			return ErrPasswordTooShort
		}
		if len(u.Password) > MaxPasswordLength {
			return ErrPasswordTooLong
		}
		return nil
	}

	if u.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}
	return nil
}

// DisplayName is the "first last" name shown next to tasks.
func (u *User) DisplayName() string {
	return DisplayName(u.FirstName, u.LastName)
}

// DisplayName joins a first and last name the way they are shown to clients.
func DisplayName(firstName, lastName string) string {
	return firstName + " " + lastName
}
