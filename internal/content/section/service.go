// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

package section

import (
	"context"
	"log/slog"

	"github.com/hanvu/lectern/internal/content/lifecycle"
	"github.com/hanvu/lectern/internal/platform/validate"
	"github.com/hanvu/lectern/pkg/slug"
	"github.com/hanvu/lectern/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates the business logic for sections.
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

// # Section Creation

/*
CreateSection initialises a new section under one of the actor's chapters.

Description: Validates the metadata (the type is fixed here for life),
assigns identity and slug, and persists the row together with the parent
list link in one transaction. An exercise link is only accepted on quiz
sections.

Parameters:
  - ctx: context.Context
  - actorID: Account id of the creator
  - section: *Section (Input metadata; Chapter must carry the parent id)

Returns:
  - error: Validation, parent lookup, or persistence errors
*/
func (service *Service) CreateSection(ctx context.Context, actorID string, section *Section) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, section.Title).MaxLen(FieldTitle, section.Title, 200)
	validator.MaxLen(FieldBrief, section.Brief, 500)
	validator.Required(FieldChapter, section.Chapter).UUID(FieldChapter, section.Chapter)

	if section.Type == "" {
		section.Type = TypeArticle
	}
	validator.OneOf(FieldType, string(section.Type), string(TypeArticle), string(TypeQuiz))

	if section.Exercise != nil {
		validator.UUID(FieldExercise, *section.Exercise)
		validator.Custom(FieldExercise,
			section.Type != TypeQuiz,
			"Only quiz sections can link a test suite")
	}

	if err := validator.Err(); err != nil {
		return err
	}

	section.ID = uuidv7.New()
	section.Slug = slug.WithID(section.Title, section.ID)
	section.Creator = actorID
	section.Status = lifecycle.StatusPrivate

	if err := service.repo.Create(ctx, section); err != nil {
		return err
	}

	service.logger.Info("section_created",
		slog.String("section_id", section.ID),
		slog.String("chapter_id", section.Chapter),
		slog.String("type", string(section.Type)),
		slog.String("creator", actorID),
	)

	return nil
}

// # Section Lookups

// GetSection fetches a single section visible to the actor.
func (service *Service) GetSection(ctx context.Context, id, actorID string) (*Section, error) {
	return service.repo.FindByID(ctx, id, actorID)
}

// ListSections retrieves the actor's own sections (any publication state).
func (service *Service) ListSections(ctx context.Context, actorID string, limit, offset int) ([]*Section, int, error) {
	return service.repo.ListOwned(ctx, actorID, limit, offset)
}

// ListPublicSections retrieves the public section page.
func (service *Service) ListPublicSections(ctx context.Context, limit, offset int) ([]*Section, int, error) {
	return service.repo.ListPublic(ctx, limit, offset)
}

/*
ListSectionsByIDs batch-fetches sections for an explicit id list, keeping
the requested order and silently omitting anything the actor cannot see.
*/
func (service *Service) ListSectionsByIDs(ctx context.Context, ids []string, actorID string) ([]*Section, error) {
	validator := &validate.Validator{}
	validator.EachUUID("ids", ids)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	return service.repo.FindByIDs(ctx, ids, actorID)
}

// # Section Management

/*
UpdateSection applies a partial modification to an owned section. The type
and the chapter back-reference can never change; the exercise link can be
replaced or cleared with an empty string.
*/
func (service *Service) UpdateSection(ctx context.Context, id, actorID string, update Update) (*Section, error) {
	validator := &validate.Validator{}

	if update.Title != nil {
		validator.Required(FieldTitle, *update.Title).MaxLen(FieldTitle, *update.Title, 200)
	}
	if update.Brief != nil {
		validator.MaxLen(FieldBrief, *update.Brief, 500)
	}
	if update.Exercise != nil && *update.Exercise != "" {
		validator.UUID(FieldExercise, *update.Exercise)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Update(ctx, id, actorID, update); err != nil {
		return nil, err
	}

	service.logger.Info("section_updated",
		slog.String("section_id", id),
		slog.String("creator", actorID),
	)

	return service.repo.FindByID(ctx, id, actorID)
}

// PublishSection makes an owned section publicly readable. Idempotent.
func (service *Service) PublishSection(ctx context.Context, id, actorID string) (*Section, error) {
	if err := service.engine.SetStatus(ctx, Descriptor, id, actorID, lifecycle.StatusPublic); err != nil {
		return nil, err
	}
	return service.repo.FindByID(ctx, id, actorID)
}

// UnpublishSection returns an owned section to the private state.
func (service *Service) UnpublishSection(ctx context.Context, id, actorID string) (*Section, error) {
	if err := service.engine.SetStatus(ctx, Descriptor, id, actorID, lifecycle.StatusPrivate); err != nil {
		return nil, err
	}
	return service.repo.FindByID(ctx, id, actorID)
}

/*
DeleteSection tombstones an owned section and removes its id from the
parent chapter's list in one transaction.
*/
func (service *Service) DeleteSection(ctx context.Context, id, actorID string) error {
	return service.engine.Remove(ctx, Descriptor, id, actorID)
}
