// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

package auth

import "context"

// # Repository Contracts

// Repository defines the persistence operations for the user directory.
type Repository interface {

	// Provision inserts the account or, if the email address is already
	// registered, refreshes it: the verified flag may only be raised,
	// never lowered, and profile fields from the identity fill gaps
	// without overwriting user edits. The stored row is returned either
	// way.
	Provision(ctx context.Context, user *User) (*User, error)

	// FindByEmail returns the account registered under the address, or
	// apperr.NotFound.
	FindByEmail(ctx context.Context, emailAddress string) (*User, error)

	// FindByID returns the account by id, or apperr.NotFound.
	FindByID(ctx context.Context, id string) (*User, error)

	// List pages through all accounts, newest first, with the total count.
	List(ctx context.Context, limit, offset int) ([]*User, int, error)

	// Update applies a partial profile modification. Zero matched rows
	// reports apperr.NotFound.
	Update(ctx context.Context, id string, update Update) error
}
