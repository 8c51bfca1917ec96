// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

// Package ctxutil provides helpers for interacting with values stored in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/hanvu/lectern/internal/platform/ctxkey"
	"github.com/hanvu/lectern/internal/platform/sec"
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns an empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

// # Identity & Access

// WithIdentity returns a new context with the verified token identity attached.
func WithIdentity(ctx context.Context, identity *sec.Identity) context.Context {
	return context.WithValue(ctx, ctxkey.KeyIdentity, identity)
}

// GetIdentity retrieves the [*sec.Identity] from the [context.Context].
func GetIdentity(ctx context.Context) *sec.Identity {
	identity, ok := ctx.Value(ctxkey.KeyIdentity).(*sec.Identity)
	if !ok {
		return nil
	}
	return identity
}

// WithUser returns a new context with the resolved directory claims attached.
func WithUser(ctx context.Context, user *sec.UserClaims) context.Context {
	return context.WithValue(ctx, ctxkey.KeyUser, user)
}

// GetUser retrieves the [*sec.UserClaims] from the [context.Context].
func GetUser(ctx context.Context) *sec.UserClaims {
	claims, ok := ctx.Value(ctxkey.KeyUser).(*sec.UserClaims)
	if !ok {
		return nil
	}
	return claims
}

// ActorID returns the resolved account ID, or the empty string for an
// anonymous request. Stores interpret an empty actor as "match public only".
func ActorID(ctx context.Context) string {
	if claims := GetUser(ctx); claims != nil {
		return claims.UserID
	}
	return ""
}
