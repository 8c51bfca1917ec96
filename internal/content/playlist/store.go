// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

package playlist

import (
	"context"

	"github.com/hanvu/lectern/internal/content/lifecycle"
)

// # Repository Contracts

// Repository defines the persistence operations for playlists.
type Repository interface {

	// Create persists a new playlist in the private state.
	Create(ctx context.Context, playlist *Playlist) error

	// FindByID returns the playlist if it is public or owned by the actor.
	FindByID(ctx context.Context, id, actorID string) (*Playlist, error)

	// FindByIDs returns the visible subset of the requested ids, in the
	// requested order.
	FindByIDs(ctx context.Context, ids []string, actorID string) ([]*Playlist, error)

	// ListOwned returns the actor's live playlists plus the total count.
	ListOwned(ctx context.Context, actorID string, limit, offset int) ([]*Playlist, int, error)

	// ListPublic returns public playlists plus the total count.
	ListPublic(ctx context.Context, limit, offset int) ([]*Playlist, int, error)

	// Update applies a partial modification to a live playlist owned by
	// the actor. Zero matched rows reports apperr.NotFound.
	Update(ctx context.Context, id, actorID string, update Update) error

	// CourseSummaries hydrates the referenced courses visible to the
	// actor, preserving the playlist order and dropping hidden entries.
	CourseSummaries(ctx context.Context, ids []string, actorID string) ([]CourseSummary, error)
}

// LifecycleEngine is the subset of the lifecycle engine the service uses.
type LifecycleEngine interface {
	SetStatus(ctx context.Context, descriptor lifecycle.Descriptor, id, actorID string, target lifecycle.Status) error
	Remove(ctx context.Context, descriptor lifecycle.Descriptor, id, actorID string) error
}
