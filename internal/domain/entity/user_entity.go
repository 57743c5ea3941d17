package entity

import (
	"strings"
	"time"
)

// User is the aggregate root for user domain
// Passwords are stored as bcrypt hashes in Password field
//
// Email is the login identifier and is kept in normalized form (see NormalizeEmail).
type User struct {
	ID          string
	Email       string
	Password    string
	Name        string
	IsActive    bool
	IsStaff     bool
	IsSuperuser bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewUser returns an active, unprivileged user with a normalized email.
func NewUser(email, passwordHash, name string) *User {
	return &User{
		Email:    NormalizeEmail(email),
		Password: passwordHash,
		Name:     name,
		IsActive: true,
	}
}

// NormalizeEmail lower-cases the domain part of an address and keeps the
// local part as given. Addresses without "@" are returned unchanged.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}

// CanAuthenticate reports whether the account may log in.
func (u *User) CanAuthenticate() bool {
	return u.IsActive
}

// HasAdminAccess is true for staff accounts; superusers always qualify.
func (u *User) HasAdminAccess() bool {
	return u.IsActive && (u.IsStaff || u.IsSuperuser)
}
