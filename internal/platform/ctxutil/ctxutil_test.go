// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hanvu/lectern/internal/platform/ctxutil"
	"github.com/hanvu/lectern/internal/platform/sec"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()
	requestID := "test-request-id"

	// 1. Initially should be empty
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithRequestID(ctx, requestID)
	assert.Equal(t, requestID, ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies that a custom logger can be stored in context.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// 1. Initially should return the default logger
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Equal(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_Identity verifies that the token identity can be stored in context.
*/
func TestContext_Identity(t *testing.T) {
	ctx := context.Background()
	identity := &sec.Identity{
		EmailAddress:  "learner@example.com",
		EmailVerified: true,
	}

	// 1. Initially should be nil
	assert.Nil(t, ctxutil.GetIdentity(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithIdentity(ctx, identity)
	retrieved := ctxutil.GetIdentity(ctx)

	assert.NotNil(t, retrieved)
	assert.Equal(t, "learner@example.com", retrieved.EmailAddress)
	assert.True(t, retrieved.EmailVerified)
}

/*
TestContext_User verifies that resolved user claims can be stored in context
and that ActorID falls back to the empty string for anonymous requests.
*/
func TestContext_User(t *testing.T) {
	ctx := context.Background()
	claims := &sec.UserClaims{
		UserID:       "user-123",
		EmailAddress: "learner@example.com",
		Roles:        sec.Roles{sec.RoleRegular},
	}

	// 1. Initially should be nil and anonymous
	assert.Nil(t, ctxutil.GetUser(ctx))
	assert.Empty(t, ctxutil.ActorID(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithUser(ctx, claims)
	retrieved := ctxutil.GetUser(ctx)

	assert.NotNil(t, retrieved)
	assert.Equal(t, "user-123", retrieved.UserID)
	assert.True(t, retrieved.Roles.HasAny(sec.RoleRegular))
	assert.Equal(t, "user-123", ctxutil.ActorID(ctx))
}
