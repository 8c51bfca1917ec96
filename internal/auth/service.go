// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

package auth

import (
	"context"
	"log/slog"

	"github.com/hanvu/lectern/internal/platform/apperr"
	"github.com/hanvu/lectern/internal/platform/middleware"
	"github.com/hanvu/lectern/internal/platform/sec"
	"github.com/hanvu/lectern/internal/platform/validate"
	"github.com/hanvu/lectern/pkg/uuidv7"
)

// The middleware resolves accounts through this service.
var _ middleware.UserResolver = (*Service)(nil)

// # Service Layer

// Service orchestrates the user directory: session resolution, profile
// management, and the role lookups behind the authorization middleware.
type Service struct {
	repo   Repository
	cache  *Cache
	logger *slog.Logger
}

// NewService constructs a new [Service] with its dependencies. The cache
// may be nil, in which case every lookup goes to the database.
func NewService(repo Repository, cache *Cache, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// # Session Resolution

/*
ResolveSession turns a verified external identity into a directory account.

Description: On first sight of an email address a new account is provisioned
with the regular role. Repeat sign-ins refresh the row: the verified flag is
raised when the provider now reports the address verified, and is never
lowered again. The whole step is one atomic upsert, so concurrent first
sign-ins of the same address converge on one account.

Parameters:
  - ctx: context.Context
  - identity: Verified identity from the token boundary

Returns:
  - *User: The stored account, freshly provisioned or existing
  - error: Validation or persistence errors
*/
func (service *Service) ResolveSession(ctx context.Context, identity *sec.Identity) (*User, error) {
	validator := &validate.Validator{}
	validator.Required("email", identity.EmailAddress).Email("email", identity.EmailAddress)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	candidate := &User{
		ID:            uuidv7.New(),
		FirstName:     identity.FirstName,
		LastName:      identity.LastName,
		PictureURL:    identity.PictureURL,
		EmailAddress:  identity.EmailAddress,
		EmailVerified: identity.EmailVerified,
		Roles:         sec.Roles{sec.RoleRegular},
		Status:        StatusActive,
	}

	user, err := service.repo.Provision(ctx, candidate)
	if err != nil {
		return nil, err
	}

	if service.cache != nil {
		service.cache.Set(ctx, user)
	}

	service.logger.Info("session_resolved",
		slog.String("user_id", user.ID),
		slog.Bool("email_verified", user.EmailVerified),
	)

	return user, nil
}

/*
ResolveClaims answers the middleware's account lookup for a verified email
address, serving from the cache when possible.

This method implements middleware.UserResolver.
*/
func (service *Service) ResolveClaims(ctx context.Context, emailAddress string) (*sec.UserClaims, error) {
	if service.cache != nil {
		if user := service.cache.Get(ctx, emailAddress); user != nil {
			return user.Claims(), nil
		}
	}

	user, err := service.repo.FindByEmail(ctx, emailAddress)
	if err != nil {
		return nil, err
	}

	if user.Status != StatusActive {
		return nil, apperr.Forbidden("Account is disabled")
	}

	if service.cache != nil {
		service.cache.Set(ctx, user)
	}

	return user.Claims(), nil
}

// # Directory Operations

// GetUser fetches one account by id.
func (service *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return service.repo.FindByID(ctx, id)
}

// ListUsers pages through all accounts. The route mounting this is
// admin-gated; the service itself does not re-check.
func (service *Service) ListUsers(ctx context.Context, limit, offset int) ([]*User, int, error) {
	return service.repo.List(ctx, limit, offset)
}

/*
UpdateUser applies a self-service profile modification.

Only the account holder may edit their profile; anyone else gets NotFound,
matching the content rule that foreign rows are invisible rather than
forbidden. The cache entry is dropped so role-gated requests see the fresh
profile immediately.
*/
func (service *Service) UpdateUser(ctx context.Context, actorID, id string, update Update) (*User, error) {
	if actorID != id {
		return nil, apperr.NotFound("User")
	}

	validator := &validate.Validator{}
	if update.UserName != nil {
		validator.Required(FieldUserName, *update.UserName).MaxLen(FieldUserName, *update.UserName, 60)
	}
	if update.About != nil {
		validator.MaxLen(FieldAbout, *update.About, 2000)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Update(ctx, id, update); err != nil {
		return nil, err
	}

	user, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if service.cache != nil {
		service.cache.Invalidate(ctx, user.EmailAddress)
	}

	service.logger.Info("user_updated", slog.String("user_id", id))

	return user, nil
}
