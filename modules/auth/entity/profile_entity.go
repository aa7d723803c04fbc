package entity

import (
	"metra-api/core/entity"
)

// Role classifies what a profile does in the community.
type Role string

const (
	RoleDonor    Role = "donor"
	RoleReceiver Role = "receiver"
	RoleOrg      Role = "org"
)

func (r Role) Valid() bool {
	switch r {
	case RoleDonor, RoleReceiver, RoleOrg:
		return true
	}
	return false
}

// Visibility controls who can see a profile.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
	VisibilityLimited Visibility = "limited"
)

func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityPrivate, VisibilityLimited:
		return true
	}
	return false
}

// Profile is a user record keyed by the auth provider's stable id.
type Profile struct {
	AuthID     string     `db:"auth_id" json:"auth_id"`
	Email      *string    `db:"email" json:"email,omitempty"`
	Name       string     `db:"name" json:"name"`
	Role       Role       `db:"role" json:"role"`
	Visibility Visibility `db:"visibility" json:"visibility"`
	DMAllowed  bool       `db:"dm_allowed" json:"dm_allowed"`
	PostalCode *string    `db:"postal_code" json:"postal_code,omitempty"`
	entity.BaseEntity
}
