package types

import "github.com/m-mizutani/goerr/v2"

// Role represents the role slug of an authenticated actor
type Role string

const (
	RoleVisiteur     Role = "visiteur"
	RoleProprietaire Role = "proprietaire"
	RoleAgent        Role = "agent"
	RoleInvestisseur Role = "investisseur"
	RoleEntreprise   Role = "entreprise"
	RoleGestionnaire Role = "gestionnaire"
	RoleAdmin        Role = "admin"
)

// AllRoles returns all valid roles
func AllRoles() []Role {
	return []Role{
		RoleVisiteur,
		RoleProprietaire,
		RoleAgent,
		RoleInvestisseur,
		RoleEntreprise,
		RoleGestionnaire,
		RoleAdmin,
	}
}

// IsValid checks if the role is valid
func (r Role) IsValid() bool {
	switch r {
	case RoleVisiteur,
		RoleProprietaire,
		RoleAgent,
		RoleInvestisseur,
		RoleEntreprise,
		RoleGestionnaire,
		RoleAdmin:
		return true
	default:
		return false
	}
}

// IsStaff reports whether the role carries override rights
// (manager/admin review any entity regardless of assignment).
func (r Role) IsStaff() bool {
	return r == RoleGestionnaire || r == RoleAdmin
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// ParseRole parses a string into a Role
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", goerr.Wrap(ErrValidation, "invalid role", goerr.V("value", s))
	}
	return role, nil
}
