package model

import (
	"strings"
	"time"

	"github.com/teranga-immo/teranga/pkg/domain/types"
)

// Actor represents an authenticated user of the marketplace: a visitor,
// owner, agent, investor, partner company or staff member.
type Actor struct {
	ID        int64
	PublicID  types.PublicID
	Role      types.Role
	AgentType types.AgentType // set only for agents; empty = wildcard
	FirstName string
	LastName  string
	Email     string
	Phone     string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName returns the display name of the actor
func (a *Actor) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// IsStaff reports whether the actor holds a staff role
func (a *Actor) IsStaff() bool {
	return a.Role.IsStaff()
}
