// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

package chapter

import (
	"context"

	"github.com/hanvu/lectern/internal/content/lifecycle"
)

// # Repository Contracts

// Repository defines the persistence operations for chapters. Lookups apply
// the visibility rules in the query itself, exactly as the course store does.
type Repository interface {

	// Create persists the chapter and appends its id to the parent
	// course's chapter list in one transaction. A parent that is missing,
	// deleted, or not owned by the chapter's creator yields
	// apperr.NotFound for the course.
	Create(ctx context.Context, chapter *Chapter) error

	// FindByID returns the chapter if it is public or owned by the actor.
	FindByID(ctx context.Context, id, actorID string) (*Chapter, error)

	// FindByIDs returns the visible subset of the requested ids, in the
	// requested order.
	FindByIDs(ctx context.Context, ids []string, actorID string) ([]*Chapter, error)

	// ListOwned returns the actor's live chapters plus the total count.
	ListOwned(ctx context.Context, actorID string, limit, offset int) ([]*Chapter, int, error)

	// ListPublic returns public chapters plus the total count.
	ListPublic(ctx context.Context, limit, offset int) ([]*Chapter, int, error)

	// Update applies a partial modification to a live chapter owned by
	// the actor. Zero matched rows reports apperr.NotFound.
	Update(ctx context.Context, id, actorID string, update Update) error

	// SectionSummaries hydrates the section list entries visible to the
	// actor, preserving the given order.
	SectionSummaries(ctx context.Context, ids []string, actorID string) ([]SectionSummary, error)
}

// LifecycleEngine is the subset of the lifecycle engine the service uses.
type LifecycleEngine interface {
	SetStatus(ctx context.Context, descriptor lifecycle.Descriptor, id, actorID string, target lifecycle.Status) error
	Remove(ctx context.Context, descriptor lifecycle.Descriptor, id, actorID string) error
}
