package domain

import "time"

// DefaultRoleName is the role assigned when a user is created without an explicit role.
const DefaultRoleName = "UTILISATEUR"

// Role is a named permission group. Roles are provisioned out of band; the
// service only resolves references to existing ones.
type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// User models an account record.
type User struct {
	ID            int64
	Username      string
	LastName      string
	FirstName     string
	Email         string
	BirthDate     time.Time
	PhotoPath     *string
	PasswordHash  string
	RememberToken *string
	Role          *Role
}

// Clone returns a deep copy so stores and callers never share mutable state.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	if u.PhotoPath != nil {
		p := *u.PhotoPath
		c.PhotoPath = &p
	}
	if u.RememberToken != nil {
		t := *u.RememberToken
		c.RememberToken = &t
	}
	if u.Role != nil {
		r := *u.Role
		c.Role = &r
	}
	return &c
}
