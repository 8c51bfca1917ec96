// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

package auth

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanvu/lectern/internal/platform/apperr"
	"github.com/hanvu/lectern/internal/platform/sec"
)

// # Test Doubles

// fakeRepository is an in-memory directory honoring the upsert semantics.
type fakeRepository struct {
	byEmail map[string]*User
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{byEmail: make(map[string]*User)}
}

func (f *fakeRepository) Provision(_ context.Context, user *User) (*User, error) {
	if existing, ok := f.byEmail[user.EmailAddress]; ok {
		existing.EmailVerified = existing.EmailVerified || user.EmailVerified
		existing.PictureURL = user.PictureURL
		if existing.FirstName == "" {
			existing.FirstName = user.FirstName
		}
		if existing.LastName == "" {
			existing.LastName = user.LastName
		}
		existing.UpdatedAt = time.Now()
		clone := *existing
		return &clone, nil
	}

	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	f.byEmail[user.EmailAddress] = &clone
	result := clone
	return &result, nil
}

func (f *fakeRepository) FindByEmail(_ context.Context, emailAddress string) (*User, error) {
	user, ok := f.byEmail[emailAddress]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	clone := *user
	return &clone, nil
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*User, error) {
	for _, user := range f.byEmail {
		if user.ID == id {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeRepository) List(_ context.Context, limit, offset int) ([]*User, int, error) {
	var out []*User
	for _, user := range f.byEmail {
		clone := *user
		out = append(out, &clone)
	}
	return out, len(out), nil
}

func (f *fakeRepository) Update(_ context.Context, id string, update Update) error {
	for _, user := range f.byEmail {
		if user.ID != id {
			continue
		}
		if update.UserName != nil {
			user.UserName = *update.UserName
		}
		if update.About != nil {
			user.About = *update.About
		}
		user.UpdatedAt = time.Now()
		return nil
	}
	return apperr.NotFound("User")
}

func newTestService() (*Service, *fakeRepository) {
	repo := newFakeRepository()
	return NewService(repo, nil, slog.Default()), repo
}

// # Session Resolution

/*
TestResolveSession_FirstSight verifies first-sight provisioning: regular
role, active status, identity profile fields carried over.
*/
func TestResolveSession_FirstSight(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	user, err := service.ResolveSession(ctx, &sec.Identity{
		EmailAddress:  "han@example.com",
		EmailVerified: true,
		FirstName:     "Han",
		LastName:      "Vu",
		PictureURL:    "https://img.example.com/han.png",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "han@example.com", user.EmailAddress)
	assert.True(t, user.EmailVerified)
	assert.Equal(t, sec.Roles{sec.RoleRegular}, user.Roles)
	assert.Equal(t, StatusActive, user.Status)
	assert.Equal(t, "Han", user.FirstName)
}

/*
TestResolveSession_RepeatSignIn verifies idempotence and the monotonic
verified flag: a later unverified sign-in never demotes the account.
*/
func TestResolveSession_RepeatSignIn(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	first, err := service.ResolveSession(ctx, &sec.Identity{
		EmailAddress:  "han@example.com",
		EmailVerified: false,
	})
	require.NoError(t, err)
	assert.False(t, first.EmailVerified)

	second, err := service.ResolveSession(ctx, &sec.Identity{
		EmailAddress:  "han@example.com",
		EmailVerified: true,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.EmailVerified)

	third, err := service.ResolveSession(ctx, &sec.Identity{
		EmailAddress:  "han@example.com",
		EmailVerified: false,
	})
	require.NoError(t, err)
	assert.True(t, third.EmailVerified, "verified flag must never drop back")
}

func TestResolveSession_RejectsBadEmail(t *testing.T) {
	service, repo := newTestService()
	ctx := context.Background()

	for _, address := range []string{"", "not-an-email"} {
		_, err := service.ResolveSession(ctx, &sec.Identity{EmailAddress: address})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	}
	assert.Empty(t, repo.byEmail)
}

// # Claims Resolution

func TestResolveClaims(t *testing.T) {
	service, repo := newTestService()
	ctx := context.Background()

	user, err := service.ResolveSession(ctx, &sec.Identity{
		EmailAddress:  "han@example.com",
		EmailVerified: true,
	})
	require.NoError(t, err)

	t.Run("known_account", func(t *testing.T) {
		claims, err := service.ResolveClaims(ctx, "han@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.True(t, claims.Roles.HasAny(sec.RoleRegular))
	})

	t.Run("unknown_account", func(t *testing.T) {
		_, err := service.ResolveClaims(ctx, "nobody@example.com")
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("disabled_account", func(t *testing.T) {
		repo.byEmail["han@example.com"].Status = StatusDisabled
		_, err := service.ResolveClaims(ctx, "han@example.com")
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	})
}

// # Profile Updates

func TestUpdateUser_SelfOnly(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	user, err := service.ResolveSession(ctx, &sec.Identity{
		EmailAddress:  "han@example.com",
		EmailVerified: true,
	})
	require.NoError(t, err)

	userName := "hanvu"
	updated, err := service.UpdateUser(ctx, user.ID, user.ID, Update{UserName: &userName})
	require.NoError(t, err)
	assert.Equal(t, "hanvu", updated.UserName)

	// A foreign edit is indistinguishable from a missing account.
	_, err = service.UpdateUser(ctx, "someone-else", user.ID, Update{UserName: &userName})
	assert.True(t, apperr.IsNotFound(err))
}
