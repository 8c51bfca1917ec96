// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

package article

import (
	"context"

	"github.com/hanvu/lectern/internal/content/lifecycle"
)

// # Repository Contracts

// Repository defines the persistence operations for articles.
type Repository interface {

	// Create persists a new article in the private state.
	Create(ctx context.Context, article *Article) error

	// FindByID returns the article if it is public or owned by the actor.
	FindByID(ctx context.Context, id, actorID string) (*Article, error)

	// FindBySlug resolves the canonical slug under the same visibility
	// rules as FindByID.
	FindBySlug(ctx context.Context, slugValue, actorID string) (*Article, error)

	// FindByIDs returns the visible subset of the requested ids, in the
	// requested order.
	FindByIDs(ctx context.Context, ids []string, actorID string) ([]*Article, error)

	// ListOwned returns the actor's live articles plus the total count.
	ListOwned(ctx context.Context, actorID string, limit, offset int) ([]*Article, int, error)

	// ListPublic returns public articles plus the total count.
	ListPublic(ctx context.Context, limit, offset int) ([]*Article, int, error)

	// Update applies a partial modification to a live article owned by
	// the actor. Zero matched rows reports apperr.NotFound.
	Update(ctx context.Context, id, actorID string, update Update) error
}

// LifecycleEngine is the subset of the lifecycle engine the service uses.
type LifecycleEngine interface {
	SetStatus(ctx context.Context, descriptor lifecycle.Descriptor, id, actorID string, target lifecycle.Status) error
	Remove(ctx context.Context, descriptor lifecycle.Descriptor, id, actorID string) error
}
