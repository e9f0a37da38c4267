// Package domain contains entities without logic, just meta-data.
package domain

import (
	"errors"
	"unicode/utf8"
)

const MaxNameLen = 36

var (
	ErrNameEmpty   = errors.New("display name empty")
	ErrNameTooLong = errors.New("display name too long")
	ErrUnknownRole = errors.New("unknown role")
)

// ConnID identifies one live connection. Components other than the
// registry hold it as a weak reference only.
type ConnID string

// Role is one of two complementary categories a participant declares.
// A match always pairs opposite roles.
type Role string

const (
	RoleSeeker   Role = "seeker"
	RoleListener Role = "listener"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleSeeker:
		return RoleSeeker, nil
	case RoleListener:
		return RoleListener, nil
	}
	return "", ErrUnknownRole
}

func (r Role) Opposite() Role {
	if r == RoleSeeker {
		return RoleListener
	}
	return RoleSeeker
}

type Participant struct {
	ID   ConnID `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// SetIdentity validates and applies the join-time identity.
func (p *Participant) SetIdentity(name string, role Role) error {
	if name == "" {
		return ErrNameEmpty
	}
	// Rune count, not bytes: multibyte names up to MaxNameLen are fine.
	if utf8.RuneCountInString(name) > MaxNameLen {
		return ErrNameTooLong
	}
	p.Name = name
	p.Role = role
	return nil
}
