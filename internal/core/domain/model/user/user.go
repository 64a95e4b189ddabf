package user

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

const MinPasswordLength = 8

var ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")

// User is a registered account. The password is only ever held as a hash.
type User struct {
	id            kernel.UUID
	firstName     string
	lastName      string
	email         string
	passwordHash  string
	isAdmin       bool
	createdAt     time.Time
	isConstructed bool
}

// Profile holds the personal attributes of a user.
type Profile struct {
	FirstName string
	LastName  string
	Email     string
}

// NewUser registers a regular (non-admin) user.
func NewUser(id kernel.UUID, profile Profile, passwordHash string, now time.Time) (*User, error) {
	return RestoreUser(id, profile, passwordHash, false, now)
}

// RestoreUser rebuilds a persisted user.
func RestoreUser(id kernel.UUID, profile Profile, passwordHash string, isAdmin bool, createdAt time.Time) (*User, error) {
	u := &User{isAdmin: isAdmin, createdAt: createdAt, isConstructed: true}

	if err := errors.Join(
		u.setID(id),
		u.setProfile(profile),
		u.setPasswordHash(passwordHash),
	); err != nil {
		return nil, err
	}

	return u, nil
}

func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

func (u *User) ID() kernel.UUID      { return u.id }
func (u *User) FirstName() string    { return u.firstName }
func (u *User) LastName() string     { return u.lastName }
func (u *User) Email() string        { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) IsAdmin() bool        { return u.isAdmin }
func (u *User) CreatedAt() time.Time { return u.createdAt }

// GrantAdmin gives the user administrator rights.
func (u *User) GrantAdmin() {
	u.isAdmin = true
}

// ChangePasswordHash replaces the stored hash.
func (u *User) ChangePasswordHash(hash string) error {
	return u.setPasswordHash(hash)
}

// NormalizeEmail trims and lowercases an address and checks its syntax.
func NormalizeEmail(email string) (string, error) {
	e := strings.ToLower(strings.TrimSpace(email))
	if e == "" {
		return "", errs.NewValueIsRequiredError("email")
	}
	addr, err := mail.ParseAddress(e)
	if err != nil || addr.Address != e {
		return "", errs.NewValueIsInvalidErrorWithCause("email is invalid", fmt.Errorf("%q is not an address", email))
	}
	return e, nil
}

// ValidatePassword checks a plain-text password before it is hashed.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return errs.NewValueIsInvalidErrorWithCause(
			"password is invalid",
			fmt.Errorf("must be at least %d characters", MinPasswordLength),
		)
	}
	return nil
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setProfile(p Profile) error {
	first := strings.TrimSpace(p.FirstName)
	last := strings.TrimSpace(p.LastName)

	var firstErr, lastErr error
	if first == "" {
		firstErr = errs.NewValueIsRequiredError("first name")
	}
	if last == "" {
		lastErr = errs.NewValueIsRequiredError("last name")
	}
	email, emailErr := NormalizeEmail(p.Email)

	if err := errors.Join(firstErr, lastErr, emailErr); err != nil {
		return err
	}

	u.firstName = first
	u.lastName = last
	u.email = email
	return nil
}

func (u *User) setPasswordHash(hash string) error {
	if hash == "" {
		return errs.NewValueIsRequiredError("password hash")
	}
	u.passwordHash = hash
	return nil
}
