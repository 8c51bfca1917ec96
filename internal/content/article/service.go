// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

package article

import (
	"context"
	"log/slog"

	"github.com/hanvu/lectern/internal/content/lifecycle"
	"github.com/hanvu/lectern/internal/platform/validate"
	"github.com/hanvu/lectern/pkg/slug"
	"github.com/hanvu/lectern/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates the business logic for articles.
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

// # Article Creation

/*
CreateArticle initialises a new article for the acting account, assigning
the identity, the permanent slug, and the private initial state.
*/
func (service *Service) CreateArticle(ctx context.Context, actorID string, article *Article) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, article.Title).MaxLen(FieldTitle, article.Title, 200)
	validator.MaxLen(FieldDescription, article.Description, 500)

	if err := validator.Err(); err != nil {
		return err
	}

	article.ID = uuidv7.New()
	article.Slug = slug.WithID(article.Title, article.ID)
	article.Author = actorID
	article.Status = lifecycle.StatusPrivate

	if err := service.repo.Create(ctx, article); err != nil {
		return err
	}

	service.logger.Info("article_created",
		slog.String("article_id", article.ID),
		slog.String("author", actorID),
		slog.String("slug", article.Slug),
	)

	return nil
}

// # Article Lookups

// GetArticle fetches a single article visible to the actor.
func (service *Service) GetArticle(ctx context.Context, id, actorID string) (*Article, error) {
	return service.repo.FindByID(ctx, id, actorID)
}

// GetArticleBySlug resolves an article by its canonical slug.
func (service *Service) GetArticleBySlug(ctx context.Context, slugValue, actorID string) (*Article, error) {
	return service.repo.FindBySlug(ctx, slugValue, actorID)
}

// ListArticles retrieves the actor's own articles (any publication state).
func (service *Service) ListArticles(ctx context.Context, actorID string, limit, offset int) ([]*Article, int, error) {
	return service.repo.ListOwned(ctx, actorID, limit, offset)
}

// ListPublicArticles retrieves the published article page.
func (service *Service) ListPublicArticles(ctx context.Context, limit, offset int) ([]*Article, int, error) {
	return service.repo.ListPublic(ctx, limit, offset)
}

/*
ListArticlesByIDs batch-fetches articles for an explicit id list, keeping
the requested order and silently omitting anything the actor cannot see.
*/
func (service *Service) ListArticlesByIDs(ctx context.Context, ids []string, actorID string) ([]*Article, error) {
	validator := &validate.Validator{}
	validator.EachUUID("ids", ids)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	return service.repo.FindByIDs(ctx, ids, actorID)
}

// # Article Management

/*
UpdateArticle applies a partial modification to an owned article. The slug
is never regenerated.
*/
func (service *Service) UpdateArticle(ctx context.Context, id, actorID string, update Update) (*Article, error) {
	validator := &validate.Validator{}

	if update.Title != nil {
		validator.Required(FieldTitle, *update.Title).MaxLen(FieldTitle, *update.Title, 200)
	}
	if update.Description != nil {
		validator.MaxLen(FieldDescription, *update.Description, 500)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Update(ctx, id, actorID, update); err != nil {
		return nil, err
	}

	service.logger.Info("article_updated",
		slog.String("article_id", id),
		slog.String("author", actorID),
	)

	return service.repo.FindByID(ctx, id, actorID)
}

// PublishArticle makes an owned article publicly readable. Idempotent.
func (service *Service) PublishArticle(ctx context.Context, id, actorID string) (*Article, error) {
	if err := service.engine.SetStatus(ctx, Descriptor, id, actorID, lifecycle.StatusPublic); err != nil {
		return nil, err
	}
	return service.repo.FindByID(ctx, id, actorID)
}

// UnpublishArticle returns an owned article to the private state.
func (service *Service) UnpublishArticle(ctx context.Context, id, actorID string) (*Article, error) {
	if err := service.engine.SetStatus(ctx, Descriptor, id, actorID, lifecycle.StatusPrivate); err != nil {
		return nil, err
	}
	return service.repo.FindByID(ctx, id, actorID)
}

// DeleteArticle tombstones an owned article. Articles have no children.
func (service *Service) DeleteArticle(ctx context.Context, id, actorID string) error {
	return service.engine.Remove(ctx, Descriptor, id, actorID)
}
