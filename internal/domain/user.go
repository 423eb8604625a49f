package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Password and username limits.
const (
	MinPasswordLength = 8
	// MaxPasswordLength is bcrypt's input limit in bytes.
	MaxPasswordLength = 72
	MaxUsernameLength = 64
	MaxEmailLength    = 254
)

// Common validation errors. Each wraps ErrValidation.
var (
	ErrEmptyUsername       = fmt.Errorf("%w: username cannot be empty", ErrValidation)
	ErrUsernameTooLong     = fmt.Errorf("%w: username must be at most 64 characters long", ErrValidation)
	ErrEmptyEmail          = fmt.Errorf("%w: email cannot be empty", ErrValidation)
	ErrInvalidEmail        = fmt.Errorf("%w: invalid email format", ErrValidation)
	ErrPasswordTooShort    = fmt.Errorf("%w: password must be at least 8 characters long", ErrValidation)
	ErrPasswordTooLong     = fmt.Errorf("%w: password must be at most 72 characters long", ErrValidation)
	ErrEmptyHashedPassword = fmt.Errorf("%w: hashed password cannot be empty", ErrValidation)
)

var emailValidator = validator.New()

// User represents a registered user of the study tracker.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext, only set during registration
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given username, email and password.
// Username and email are trimmed. The ID is assigned by the store on insert.
//
// The caller is responsible for hashing the password before storing the user.
func NewUser(username, email, password string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		Username:  strings.TrimSpace(username),
		Email:     strings.TrimSpace(email),
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.Username == "" {
		return NewValidationError("username", "", ErrEmptyUsername)
	}
	if len(u.Username) > MaxUsernameLength {
		return NewValidationError("username", "", ErrUsernameTooLong)
	}

	if u.Email == "" {
		return NewValidationError("email", "", ErrEmptyEmail)
	}
	if len(u.Email) > MaxEmailLength || emailValidator.Var(u.Email, "email") != nil {
		return NewValidationError("email", "", ErrInvalidEmail)
	}

	// A plaintext password is present only for new users; stored users
	// must carry a hash instead.
	if u.Password != "" {
		return ValidatePassword(u.Password)
	}
	if u.HashedPassword == "" {
		return NewValidationError("password", "", ErrEmptyHashedPassword)
	}

	return nil
}

// ValidatePassword checks a plaintext password against the length rules.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return NewValidationError("password", "", ErrPasswordTooShort)
	}
	if len(password) > MaxPasswordLength {
		return NewValidationError("password", "", ErrPasswordTooLong)
	}
	return nil
}
