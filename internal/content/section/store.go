// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

package section

import (
	"context"

	"github.com/hanvu/lectern/internal/content/lifecycle"
)

// # Repository Contracts

// Repository defines the persistence operations for sections.
type Repository interface {

	// Create persists the section and appends its id to the parent
	// chapter's section list in one transaction. A parent that is
	// missing, deleted, or not owned by the creator yields
	// apperr.NotFound for the chapter.
	Create(ctx context.Context, section *Section) error

	// FindByID returns the section if it is public or owned by the actor.
	FindByID(ctx context.Context, id, actorID string) (*Section, error)

	// FindByIDs returns the visible subset of the requested ids, in the
	// requested order.
	FindByIDs(ctx context.Context, ids []string, actorID string) ([]*Section, error)

	// ListOwned returns the actor's live sections plus the total count.
	ListOwned(ctx context.Context, actorID string, limit, offset int) ([]*Section, int, error)

	// ListPublic returns public sections plus the total count.
	ListPublic(ctx context.Context, limit, offset int) ([]*Section, int, error)

	// Update applies a partial modification to a live section owned by
	// the actor. Zero matched rows reports apperr.NotFound.
	Update(ctx context.Context, id, actorID string, update Update) error
}

// LifecycleEngine is the subset of the lifecycle engine the service uses.
type LifecycleEngine interface {
	SetStatus(ctx context.Context, descriptor lifecycle.Descriptor, id, actorID string, target lifecycle.Status) error
	Remove(ctx context.Context, descriptor lifecycle.Descriptor, id, actorID string) error
}
