package domain

import "time"

const (
	RoleAdmin      = "admin"
	RoleManagement = "management"
)

// AdministrativeRoles is the role set required for user/role administration.
// Any one of these grants access.
var AdministrativeRoles = []string{RoleAdmin, RoleManagement}

// Identity is the canonical record for an authenticated actor. The store owns
// it; the core only reads identity attributes and replaces role sets.
type Identity struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email,omitempty"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserSummary is the reduced projection returned by user listings.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email,omitempty"`
}

// Role is a named grant referenced by Identity.Roles via name. Names are
// unique; deleting a role does not cascade into identities that carry it.
type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
