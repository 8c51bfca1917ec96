// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

package course

import (
	"context"

	"github.com/hanvu/lectern/internal/content/lifecycle"
)

// # Repository Contracts

// Repository defines the persistence operations for courses.
//
// Every lookup takes the acting account id and applies the visibility rules
// in the query itself: callers never receive a row they are not allowed to
// see, and cannot distinguish hidden rows from missing ones.
type Repository interface {

	// Create persists a new course in the private state and hydrates the
	// database-assigned timestamps.
	Create(ctx context.Context, course *Course) error

	// FindByID returns the course if it is public or owned by the actor.
	// Deleted, foreign-private, and unknown ids all yield apperr.NotFound.
	FindByID(ctx context.Context, id, actorID string) (*Course, error)

	// FindBySlug resolves the canonical slug under the same visibility
	// rules as FindByID.
	FindBySlug(ctx context.Context, slugValue, actorID string) (*Course, error)

	// FindByIDs returns the visible subset of the requested ids, in the
	// requested order. Missing and hidden ids are dropped silently.
	FindByIDs(ctx context.Context, ids []string, actorID string) ([]*Course, error)

	// ListOwned returns the actor's live courses (any publication state)
	// plus the total count for pagination.
	ListOwned(ctx context.Context, actorID string, limit, offset int) ([]*Course, int, error)

	// ListPublic returns the public catalog page plus the total count.
	ListPublic(ctx context.Context, limit, offset int) ([]*Course, int, error)

	// Update applies a partial modification to a live course owned by the
	// actor. Zero matched rows reports apperr.NotFound.
	Update(ctx context.Context, id, actorID string, update Update) error

	// ChapterSummaries hydrates the curriculum entries visible to the
	// actor, preserving the given order.
	ChapterSummaries(ctx context.Context, ids []string, actorID string) ([]ChapterSummary, error)
}

// LifecycleEngine is the subset of the lifecycle engine the service uses.
// Declared here so tests can substitute a fake.
type LifecycleEngine interface {
	SetStatus(ctx context.Context, descriptor lifecycle.Descriptor, id, actorID string, target lifecycle.Status) error
	Remove(ctx context.Context, descriptor lifecycle.Descriptor, id, actorID string) error
}
