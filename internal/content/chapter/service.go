// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

package chapter

import (
	"context"
	"log/slog"

	"github.com/hanvu/lectern/internal/content/lifecycle"
	"github.com/hanvu/lectern/internal/platform/validate"
	"github.com/hanvu/lectern/pkg/slug"
	"github.com/hanvu/lectern/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates the business logic for chapters.
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

// # Chapter Creation

/*
CreateChapter initialises a new chapter under one of the actor's courses.

Description: Validates the metadata, assigns identity and slug, and persists
the row together with the parent-list link in one transaction. The parent
course must be live and owned by the actor; otherwise the operation reports
"Course not found" and nothing is written.

Parameters:
  - ctx: context.Context
  - actorID: Account id of the creator
  - chapter: *Chapter (Input metadata; Course must carry the parent id)

Returns:
  - error: Validation, parent lookup, or persistence errors
*/
func (service *Service) CreateChapter(ctx context.Context, actorID string, chapter *Chapter) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, chapter.Title).MaxLen(FieldTitle, chapter.Title, 200)
	validator.MaxLen(FieldBrief, chapter.Brief, 500)
	validator.Required(FieldCourse, chapter.Course).UUID(FieldCourse, chapter.Course)

	if err := validator.Err(); err != nil {
		return err
	}

	chapter.ID = uuidv7.New()
	chapter.Slug = slug.WithID(chapter.Title, chapter.ID)
	chapter.Creator = actorID
	chapter.Status = lifecycle.StatusPrivate
	chapter.Sections = []string{}

	if err := service.repo.Create(ctx, chapter); err != nil {
		return err
	}

	service.logger.Info("chapter_created",
		slog.String("chapter_id", chapter.ID),
		slog.String("course_id", chapter.Course),
		slog.String("creator", actorID),
	)

	return nil
}

// # Chapter Lookups

/*
GetChapter fetches a single chapter visible to the actor, with its section
list hydrated into summaries.
*/
func (service *Service) GetChapter(ctx context.Context, id, actorID string) (*Chapter, []SectionSummary, error) {
	chapter, err := service.repo.FindByID(ctx, id, actorID)
	if err != nil {
		return nil, nil, err
	}

	summaries, err := service.repo.SectionSummaries(ctx, chapter.Sections, actorID)
	if err != nil {
		return nil, nil, err
	}

	return chapter, summaries, nil
}

// ListChapters retrieves the actor's own chapters (any publication state).
func (service *Service) ListChapters(ctx context.Context, actorID string, limit, offset int) ([]*Chapter, int, error) {
	return service.repo.ListOwned(ctx, actorID, limit, offset)
}

// ListPublicChapters retrieves the public chapter page.
func (service *Service) ListPublicChapters(ctx context.Context, limit, offset int) ([]*Chapter, int, error) {
	return service.repo.ListPublic(ctx, limit, offset)
}

/*
ListChaptersByIDs batch-fetches chapters for an explicit id list, keeping
the requested order and silently omitting anything the actor cannot see.
*/
func (service *Service) ListChaptersByIDs(ctx context.Context, ids []string, actorID string) ([]*Chapter, error) {
	validator := &validate.Validator{}
	validator.EachUUID("ids", ids)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	return service.repo.FindByIDs(ctx, ids, actorID)
}

// # Chapter Management

/*
UpdateChapter applies a partial modification to an owned chapter. The course
back-reference and the slug can never change.
*/
func (service *Service) UpdateChapter(ctx context.Context, id, actorID string, update Update) (*Chapter, error) {
	validator := &validate.Validator{}

	if update.Title != nil {
		validator.Required(FieldTitle, *update.Title).MaxLen(FieldTitle, *update.Title, 200)
	}
	if update.Brief != nil {
		validator.MaxLen(FieldBrief, *update.Brief, 500)
	}
	if update.Sections != nil {
		validator.EachUUID(FieldSections, *update.Sections)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Update(ctx, id, actorID, update); err != nil {
		return nil, err
	}

	service.logger.Info("chapter_updated",
		slog.String("chapter_id", id),
		slog.String("creator", actorID),
	)

	return service.repo.FindByID(ctx, id, actorID)
}

// PublishChapter makes an owned chapter publicly readable. Idempotent.
func (service *Service) PublishChapter(ctx context.Context, id, actorID string) (*Chapter, error) {
	if err := service.engine.SetStatus(ctx, Descriptor, id, actorID, lifecycle.StatusPublic); err != nil {
		return nil, err
	}
	return service.repo.FindByID(ctx, id, actorID)
}

// UnpublishChapter returns an owned chapter to the private state.
func (service *Service) UnpublishChapter(ctx context.Context, id, actorID string) (*Chapter, error) {
	if err := service.engine.SetStatus(ctx, Descriptor, id, actorID, lifecycle.StatusPrivate); err != nil {
		return nil, err
	}
	return service.repo.FindByID(ctx, id, actorID)
}

/*
DeleteChapter tombstones an owned chapter and its sections in one
transaction, and removes the chapter id from the parent course's list. The
section ids stay in the chapter's own list; hydration filters them out.
*/
func (service *Service) DeleteChapter(ctx context.Context, id, actorID string) error {
	return service.engine.Remove(ctx, Descriptor, id, actorID)
}
