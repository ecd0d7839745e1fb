package user

import "errors"

var (
	ErrInvalidRole     = errors.New("invalid role")
	ErrMissingIdentity = errors.New("missing identity")
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleAdmin:
		return true
	default:
		return false
	}
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

// Identity is what the identity boundary hands to the core: an opaque owner id and a role.
// Users themselves are managed outside this service.
type Identity struct {
	OwnerID string
	Role    Role
}

func NewIdentity(ownerID string, role Role) (Identity, error) {
	if ownerID == "" {
		return Identity{}, ErrMissingIdentity
	}
	if !role.IsValid() {
		return Identity{}, ErrInvalidRole
	}
	return Identity{OwnerID: ownerID, Role: role}, nil
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
