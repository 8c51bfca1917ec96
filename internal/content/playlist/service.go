// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

package playlist

import (
	"context"
	"log/slog"

	"github.com/hanvu/lectern/internal/content/lifecycle"
	"github.com/hanvu/lectern/internal/platform/validate"
	"github.com/hanvu/lectern/pkg/slug"
	"github.com/hanvu/lectern/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates the business logic for playlists.
type Service struct {
	repo   Repository
	engine LifecycleEngine
	logger *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(repo Repository, engine LifecycleEngine, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		engine: engine,
		logger: logger,
	}
}

// # Playlist Creation

/*
CreatePlaylist initialises a new playlist. The course list may be seeded at
creation; the referenced ids are format-checked but not existence-checked,
since references are loose and hydration tolerates gaps.
*/
func (service *Service) CreatePlaylist(ctx context.Context, actorID string, playlist *Playlist) error {
	validator := &validate.Validator{}
	// An empty title is allowed; the slug then falls back to the bare id.
	validator.MaxLen(FieldTitle, playlist.Title, 200)
	validator.EachUUID(FieldCourses, playlist.Courses)

	if err := validator.Err(); err != nil {
		return err
	}

	playlist.ID = uuidv7.New()
	playlist.Slug = slug.WithID(playlist.Title, playlist.ID)
	playlist.Creator = actorID
	playlist.Status = lifecycle.StatusPrivate

	if playlist.Courses == nil {
		playlist.Courses = []string{}
	}

	if err := service.repo.Create(ctx, playlist); err != nil {
		return err
	}

	service.logger.Info("playlist_created",
		slog.String("playlist_id", playlist.ID),
		slog.String("creator", actorID),
		slog.Int("course_count", len(playlist.Courses)),
	)

	return nil
}

// # Playlist Lookups

/*
GetPlaylist fetches a single playlist visible to the actor, with the
referenced courses hydrated in playlist order. Courses the actor cannot see
are dropped, so the hydrated list may be shorter than the reference list.
*/
func (service *Service) GetPlaylist(ctx context.Context, id, actorID string) (*Playlist, []CourseSummary, error) {
	playlist, err := service.repo.FindByID(ctx, id, actorID)
	if err != nil {
		return nil, nil, err
	}

	summaries, err := service.repo.CourseSummaries(ctx, playlist.Courses, actorID)
	if err != nil {
		return nil, nil, err
	}

	return playlist, summaries, nil
}

// ListPlaylists retrieves the actor's own playlists (any publication state).
func (service *Service) ListPlaylists(ctx context.Context, actorID string, limit, offset int) ([]*Playlist, int, error) {
	return service.repo.ListOwned(ctx, actorID, limit, offset)
}

// ListPublicPlaylists retrieves the public playlist page.
func (service *Service) ListPublicPlaylists(ctx context.Context, limit, offset int) ([]*Playlist, int, error) {
	return service.repo.ListPublic(ctx, limit, offset)
}

/*
ListPlaylistsByIDs batch-fetches playlists for an explicit id list, keeping
the requested order and silently omitting anything the actor cannot see.
*/
func (service *Service) ListPlaylistsByIDs(ctx context.Context, ids []string, actorID string) ([]*Playlist, error) {
	validator := &validate.Validator{}
	validator.EachUUID("ids", ids)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	return service.repo.FindByIDs(ctx, ids, actorID)
}

// # Playlist Management

/*
UpdatePlaylist applies a partial modification to an owned playlist. Setting
Courses replaces the reference list wholesale; this is the one list column
that is edited directly rather than maintained by child creation.
*/
func (service *Service) UpdatePlaylist(ctx context.Context, id, actorID string, update Update) (*Playlist, error) {
	validator := &validate.Validator{}

	if update.Title != nil {
		validator.MaxLen(FieldTitle, *update.Title, 200)
	}
	if update.Courses != nil {
		validator.EachUUID(FieldCourses, *update.Courses)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Update(ctx, id, actorID, update); err != nil {
		return nil, err
	}

	service.logger.Info("playlist_updated",
		slog.String("playlist_id", id),
		slog.String("creator", actorID),
	)

	return service.repo.FindByID(ctx, id, actorID)
}

// PublishPlaylist makes an owned playlist publicly readable. Idempotent.
func (service *Service) PublishPlaylist(ctx context.Context, id, actorID string) (*Playlist, error) {
	if err := service.engine.SetStatus(ctx, Descriptor, id, actorID, lifecycle.StatusPublic); err != nil {
		return nil, err
	}
	return service.repo.FindByID(ctx, id, actorID)
}

// UnpublishPlaylist returns an owned playlist to the private state.
func (service *Service) UnpublishPlaylist(ctx context.Context, id, actorID string) (*Playlist, error) {
	if err := service.engine.SetStatus(ctx, Descriptor, id, actorID, lifecycle.StatusPrivate); err != nil {
		return nil, err
	}
	return service.repo.FindByID(ctx, id, actorID)
}

/*
DeletePlaylist tombstones an owned playlist. The referenced courses are
untouched: playlist membership is not containment.
*/
func (service *Service) DeletePlaylist(ctx context.Context, id, actorID string) error {
	return service.engine.Remove(ctx, Descriptor, id, actorID)
}
