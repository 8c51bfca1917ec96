// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

package sec

// # User Roles

// Role represents an authorization grant held by an account.
//
// Roles form a flat set, not a hierarchy: an endpoint names the roles it
// accepts and the account qualifies when the two sets intersect.
type Role string

const (
	// Unrestricted system access
	RoleAdmin Role = "admin"

	// Default role granted to every provisioned account
	RoleRegular Role = "regular"
)

// Roles is the set of grants held by a single account.
type Roles []Role

// HasAny reports whether the set contains at least one of the required roles.
func (roles Roles) HasAny(required ...Role) bool {
	for _, have := range roles {
		for _, want := range required {
			if have == want {
				return true
			}
		}
	}
	return false
}

// Strings converts the set to plain strings for storage drivers.
func (roles Roles) Strings() []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

// RolesFromStrings converts stored strings back into a [Roles] set.
func RolesFromStrings(values []string) Roles {
	out := make(Roles, len(values))
	for i, v := range values {
		out[i] = Role(v)
	}
	return out
}

// # Resolved Claims

// UserClaims is the slim, request-scoped view of a directory account.
//
// Middleware resolves the token identity against the user directory and
// stores this struct in the request context; handlers read the actor ID from
// it. The full profile stays in the auth package.
type UserClaims struct {
	UserID       string
	EmailAddress string
	Roles        Roles
}
