// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

package testsuite

import (
	"context"

	"github.com/hanvu/lectern/internal/content/lifecycle"
)

// # Repository Contracts

// Repository defines the persistence operations for test suites.
type Repository interface {

	// Create persists a new suite in the private state. A duplicate
	// handle yields apperr.Conflict.
	Create(ctx context.Context, suite *TestSuite) error

	// FindByID returns the suite if it is public or owned by the actor.
	FindByID(ctx context.Context, id, actorID string) (*TestSuite, error)

	// FindByHandle resolves the unique machine handle under the same
	// visibility rules as FindByID.
	FindByHandle(ctx context.Context, handle, actorID string) (*TestSuite, error)

	// ListOwned returns the actor's live suites plus the total count.
	// A non-empty search narrows by title substring.
	ListOwned(ctx context.Context, actorID, search string, limit, offset int) ([]*TestSuite, int, error)

	// ListPublic returns public suites plus the total count, optionally
	// narrowed by title substring.
	ListPublic(ctx context.Context, search string, limit, offset int) ([]*TestSuite, int, error)

	// Update applies a partial modification to a live suite owned by the
	// actor. Zero matched rows reports apperr.NotFound.
	Update(ctx context.Context, id, actorID string, update Update) error
}

// LifecycleEngine is the subset of the lifecycle engine the service uses.
type LifecycleEngine interface {
	SetStatus(ctx context.Context, descriptor lifecycle.Descriptor, id, actorID string, target lifecycle.Status) error
	Remove(ctx context.Context, descriptor lifecycle.Descriptor, id, actorID string) error
}
