package model

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email is already taken")
	ErrInvalidRole  = errors.New("invalid user role")
)

type Role int

const (
	RoleCustomer Role = iota
	RoleManager
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleCustomer:
		return "Customer"
	case RoleManager:
		return "Manager"
	case RoleAdmin:
		return "Admin"
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

func ParseRole(s string) (Role, error) {
	switch s {
	case "Customer":
		return RoleCustomer, nil
	case "Manager":
		return RoleManager, nil
	case "Admin":
		return RoleAdmin, nil
	}
	return RoleCustomer, fmt.Errorf("%w: %q is not one of Customer, Manager, Admin", ErrInvalidRole, s)
}

func (r Role) Value() (driver.Value, error) {
	return r.String(), nil
}

func (r *Role) Scan(src interface{}) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("cannot scan %T into Role", src)
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

type User struct {
	ID             uuid.UUID
	FirstName      string
	LastName       string
	Email          string
	HashedPassword string
	Role           Role
	Phone          string
	Address        string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (u *User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}

// UserPatch carries the optional fields of a partial profile update. Nil
// fields leave the current value untouched.
type UserPatch struct {
	FirstName *string
	LastName  *string
	Phone     *string
	Address   *string
}

func (p UserPatch) Apply(u *User) {
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Address != nil {
		u.Address = *p.Address
	}
}

type UserRepository interface {
	NextID() (uuid.UUID, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	Find(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PasswordManager interface {
	Hash(plainTextPassword string) (string, error)
	Check(hashedPassword, plainTextPassword string) (bool, error)
}

type TokenIssuer interface {
	Issue(user *User) (string, error)
}
