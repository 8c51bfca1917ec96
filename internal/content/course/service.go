// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

package course

import (
	"context"
	"log/slog"

	"github.com/hanvu/lectern/internal/content/lifecycle"
	"github.com/hanvu/lectern/internal/platform/validate"
	"github.com/hanvu/lectern/pkg/slug"
	"github.com/hanvu/lectern/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates the business logic for the course catalog.
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

// # Course Creation

/*
CreateCourse initialises a new course for the acting account.

Description: Validates the metadata, assigns a UUID v7 identity, derives the
permanent slug from the title and id, and persists the row in the private
state. The caller becomes the owner; there is no way to create content on
someone else's behalf.

Parameters:
  - ctx: context.Context
  - actorID: Account id of the creator
  - course: *Course (Input metadata; identity fields are overwritten)

Returns:
  - error: Validation or persistence errors
*/
func (service *Service) CreateCourse(ctx context.Context, actorID string, course *Course) error {

	// Business attribute validation
	validator := &validate.Validator{}
	// An empty title is allowed; the slug then falls back to the bare id.
	validator.MaxLen(FieldTitle, course.Title, 200)
	validator.MaxLen(FieldBrief, course.Brief, 500)
	validator.NonNegative(FieldActualPrice, course.ActualPrice)
	validator.NonNegative(FieldDiscountedPrice, course.DiscountedPrice)
	validator.Custom(FieldDiscountedPrice,
		course.DiscountedPrice > course.ActualPrice,
		"Must not exceed the actual price")

	if course.Level == "" {
		course.Level = LevelAll
	}
	validator.OneOf(FieldLevel, string(course.Level),
		string(LevelBeginner),
		string(LevelIntermediate),
		string(LevelAdvanced),
		string(LevelAll),
	)

	if err := validator.Err(); err != nil {
		return err
	}

	// Identity, ownership, and lifecycle seed
	course.ID = uuidv7.New()
	course.Slug = slug.WithID(course.Title, course.ID)
	course.Creator = actorID
	course.Status = lifecycle.StatusPrivate
	course.Chapters = []string{}

	if course.Requirements == nil {
		course.Requirements = []string{}
	}
	if course.Objectives == nil {
		course.Objectives = []string{}
	}
	if course.Targets == nil {
		course.Targets = []string{}
	}
	if course.Resources == nil {
		course.Resources = []string{}
	}

	if err := service.repo.Create(ctx, course); err != nil {
		return err
	}

	service.logger.Info("course_created",
		slog.String("course_id", course.ID),
		slog.String("creator", actorID),
		slog.String("slug", course.Slug),
	)

	return nil
}

// # Course Lookups

/*
GetCourse fetches a single course visible to the actor, with its curriculum
hydrated into chapter summaries.

Parameters:
  - ctx: context.Context
  - id: Course UUID
  - actorID: Acting account id, or "" for anonymous

Returns:
  - *Course: The course entity
  - []ChapterSummary: Visible curriculum entries in course order
  - error: apperr.NotFound for missing, hidden, or deleted courses
*/
func (service *Service) GetCourse(ctx context.Context, id, actorID string) (*Course, []ChapterSummary, error) {
	course, err := service.repo.FindByID(ctx, id, actorID)
	if err != nil {
		return nil, nil, err
	}

	summaries, err := service.repo.ChapterSummaries(ctx, course.Chapters, actorID)
	if err != nil {
		return nil, nil, err
	}

	return course, summaries, nil
}

/*
GetCourseBySlug resolves a course by its canonical slug under the same
visibility and hydration rules as GetCourse.
*/
func (service *Service) GetCourseBySlug(ctx context.Context, slugValue, actorID string) (*Course, []ChapterSummary, error) {
	course, err := service.repo.FindBySlug(ctx, slugValue, actorID)
	if err != nil {
		return nil, nil, err
	}

	summaries, err := service.repo.ChapterSummaries(ctx, course.Chapters, actorID)
	if err != nil {
		return nil, nil, err
	}

	return course, summaries, nil
}

/*
ListCourses retrieves the actor's own courses (any publication state).
*/
func (service *Service) ListCourses(ctx context.Context, actorID string, limit, offset int) ([]*Course, int, error) {
	return service.repo.ListOwned(ctx, actorID, limit, offset)
}

/*
ListPublicCourses retrieves the public catalog page.
*/
func (service *Service) ListPublicCourses(ctx context.Context, limit, offset int) ([]*Course, int, error) {
	return service.repo.ListPublic(ctx, limit, offset)
}

/*
ListCoursesByIDs batch-fetches courses for an explicit id list (playlist
hydration, landing pages). The result keeps the requested order and silently
omits anything the actor cannot see.
*/
func (service *Service) ListCoursesByIDs(ctx context.Context, ids []string, actorID string) ([]*Course, error) {
	validator := &validate.Validator{}
	validator.EachUUID("ids", ids)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	return service.repo.FindByIDs(ctx, ids, actorID)
}

// # Course Management

/*
UpdateCourse applies a partial modification to an owned course.

Description: Validates only the fields being changed, then delegates to the
conditional update. The slug is never regenerated: links keep working after a
title edit. On success the fresh entity is fetched and returned.
*/
func (service *Service) UpdateCourse(ctx context.Context, id, actorID string, update Update) (*Course, error) {
	validator := &validate.Validator{}

	if update.Title != nil {
		validator.MaxLen(FieldTitle, *update.Title, 200)
	}
	if update.Brief != nil {
		validator.MaxLen(FieldBrief, *update.Brief, 500)
	}
	if update.Level != nil {
		validator.OneOf(FieldLevel, string(*update.Level),
			string(LevelBeginner),
			string(LevelIntermediate),
			string(LevelAdvanced),
			string(LevelAll),
		)
	}
	if update.ActualPrice != nil {
		validator.NonNegative(FieldActualPrice, *update.ActualPrice)
	}
	if update.DiscountedPrice != nil {
		validator.NonNegative(FieldDiscountedPrice, *update.DiscountedPrice)
	}
	if update.Chapters != nil {
		validator.EachUUID(FieldChapters, *update.Chapters)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Update(ctx, id, actorID, update); err != nil {
		return nil, err
	}

	service.logger.Info("course_updated",
		slog.String("course_id", id),
		slog.String("creator", actorID),
	)

	return service.repo.FindByID(ctx, id, actorID)
}

/*
PublishCourse makes an owned course publicly readable. Publishing an already
public course succeeds without effect.
*/
func (service *Service) PublishCourse(ctx context.Context, id, actorID string) (*Course, error) {
	if err := service.engine.SetStatus(ctx, Descriptor, id, actorID, lifecycle.StatusPublic); err != nil {
		return nil, err
	}
	return service.repo.FindByID(ctx, id, actorID)
}

/*
UnpublishCourse returns an owned course to the private state. Existing links
hit NotFound afterwards, exactly as if the course never existed.
*/
func (service *Service) UnpublishCourse(ctx context.Context, id, actorID string) (*Course, error) {
	if err := service.engine.SetStatus(ctx, Descriptor, id, actorID, lifecycle.StatusPrivate); err != nil {
		return nil, err
	}
	return service.repo.FindByID(ctx, id, actorID)
}

/*
DeleteCourse tombstones an owned course, its chapters, and their sections in
one transaction. The operation is terminal.
*/
func (service *Service) DeleteCourse(ctx context.Context, id, actorID string) error {
	return service.engine.Remove(ctx, Descriptor, id, actorID)
}
