// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

package testsuite

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hanvu/lectern/internal/content/lifecycle"
	"github.com/hanvu/lectern/internal/platform/validate"
	"github.com/hanvu/lectern/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates the business logic for test suites.
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

// # Suite Creation

/*
CreateTestSuite initialises a new suite for the acting account.

Description: The handle must be a well-formed machine name; uniqueness is
enforced by the store, so a duplicate surfaces as a conflict rather than a
validation error. The tests document defaults to an empty array.
*/
func (service *Service) CreateTestSuite(ctx context.Context, actorID string, suite *TestSuite) error {
	validator := &validate.Validator{}
	validator.Required(FieldHandle, suite.Handle).Handle(FieldHandle, suite.Handle)
	validator.Required(FieldTitle, suite.Title).MaxLen(FieldTitle, suite.Title, 200)
	validator.Custom(FieldTests,
		len(suite.Tests) > 0 && !json.Valid(suite.Tests),
		"Must be a valid JSON document")

	if err := validator.Err(); err != nil {
		return err
	}

	suite.ID = uuidv7.New()
	suite.Creator = actorID
	suite.Status = lifecycle.StatusPrivate

	if len(suite.Tests) == 0 {
		suite.Tests = json.RawMessage("[]")
	}

	if err := service.repo.Create(ctx, suite); err != nil {
		return err
	}

	service.logger.Info("test_suite_created",
		slog.String("suite_id", suite.ID),
		slog.String("handle", suite.Handle),
		slog.String("creator", actorID),
	)

	return nil
}

// # Suite Lookups

// GetTestSuite fetches a single suite visible to the actor.
func (service *Service) GetTestSuite(ctx context.Context, id, actorID string) (*TestSuite, error) {
	return service.repo.FindByID(ctx, id, actorID)
}

// GetTestSuiteByHandle resolves a suite by its unique machine handle.
func (service *Service) GetTestSuiteByHandle(ctx context.Context, handle, actorID string) (*TestSuite, error) {
	return service.repo.FindByHandle(ctx, handle, actorID)
}

// ListTestSuites retrieves the actor's own suites, optionally filtered by a
// title substring.
func (service *Service) ListTestSuites(ctx context.Context, actorID, search string, limit, offset int) ([]*TestSuite, int, error) {
	return service.repo.ListOwned(ctx, actorID, search, limit, offset)
}

// ListPublicTestSuites retrieves public suites with the same optional filter.
func (service *Service) ListPublicTestSuites(ctx context.Context, search string, limit, offset int) ([]*TestSuite, int, error) {
	return service.repo.ListPublic(ctx, search, limit, offset)
}

// # Suite Management

/*
UpdateTestSuite applies a partial modification to an owned suite. The handle
never changes; replacing the tests document swaps it wholesale.
*/
func (service *Service) UpdateTestSuite(ctx context.Context, id, actorID string, update Update) (*TestSuite, error) {
	validator := &validate.Validator{}

	if update.Title != nil {
		validator.Required(FieldTitle, *update.Title).MaxLen(FieldTitle, *update.Title, 200)
	}
	if update.Tests != nil {
		validator.Custom(FieldTests, !json.Valid(*update.Tests), "Must be a valid JSON document")
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Update(ctx, id, actorID, update); err != nil {
		return nil, err
	}

	service.logger.Info("test_suite_updated",
		slog.String("suite_id", id),
		slog.String("creator", actorID),
	)

	return service.repo.FindByID(ctx, id, actorID)
}

// PublishTestSuite makes an owned suite publicly readable. Idempotent.
func (service *Service) PublishTestSuite(ctx context.Context, id, actorID string) (*TestSuite, error) {
	if err := service.engine.SetStatus(ctx, Descriptor, id, actorID, lifecycle.StatusPublic); err != nil {
		return nil, err
	}
	return service.repo.FindByID(ctx, id, actorID)
}

// UnpublishTestSuite returns an owned suite to the private state.
func (service *Service) UnpublishTestSuite(ctx context.Context, id, actorID string) (*TestSuite, error) {
	if err := service.engine.SetStatus(ctx, Descriptor, id, actorID, lifecycle.StatusPrivate); err != nil {
		return nil, err
	}
	return service.repo.FindByID(ctx, id, actorID)
}

/*
DeleteTestSuite tombstones an owned suite. Sections keep their exercise
links; readers resolve them like any other hidden reference.
*/
func (service *Service) DeleteTestSuite(ctx context.Context, id, actorID string) error {
	return service.engine.Remove(ctx, Descriptor, id, actorID)
}
