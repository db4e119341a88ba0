package user

import (
	"strings"

	"github.com/google/uuid"
)

// User is the buyer/staff identity as far as bookings care. Account management
// lives in another service.
type User struct {
	id    uuid.UUID
	email Email
	name  string
	role  Role
}

func NewUser(id uuid.UUID, email Email, name string, role Role) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}
	return &User{
		id:    id,
		email: email,
		name:  name,
		role:  role,
	}, nil
}

func (u *User) ID() uuid.UUID { return u.id }
func (u *User) Email() Email  { return u.email }
func (u *User) Name() string  { return u.name }
func (u *User) Role() Role    { return u.role }
