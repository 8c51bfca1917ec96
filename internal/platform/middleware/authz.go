// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

// Authentication and authorization middleware for the Lectern API server.
//
// # Architecture
//
// Authentication is split in two stages. [Authenticate] verifies the bearer
// ID token issued by the external identity provider and attaches the
// resulting [sec.Identity] to the context. [RequireRole] then resolves that
// identity against the user directory and checks the account's role grants.
// Routes that never need an account (public catalog reads) only pass through
// the first stage.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/hanvu/lectern/internal/platform/apperr"
	"github.com/hanvu/lectern/internal/platform/ctxutil"
	"github.com/hanvu/lectern/internal/platform/respond"
	"github.com/hanvu/lectern/internal/platform/sec"
)

// UserResolver looks up the directory account behind a verified identity.
//
// # Why an interface?
//
// Defining UserResolver here decouples the middleware from the `auth` service
// implementation, allowing us to easily inject mocks during unit testing.
type UserResolver interface {
	ResolveClaims(ctx context.Context, emailAddress string) (*sec.UserClaims, error)
}

// Authenticate extracts and verifies the ID token from the Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous.
//  3. If present, parse and verify the token via [sec.IdentityVerifier].
//  4. Inject [*sec.Identity] into the request context for downstream use.
//
// # Parameters
//   - verifier: The IdentityVerifier instance.
//
// # Returns
//   - An [http.Handler] middleware.
func Authenticate(verifier sec.IdentityVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			tokenStr := parts[1]
			identity, err := verifier.Verify(tokenStr)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithIdentity(request.Context(), identity)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that carry no verified identity.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
//
// # Flow
//  1. Check if [*sec.Identity] exists in context.
//  2. If missing, abort with HTTP 401 Unauthorized.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		identity := ctxutil.GetIdentity(request.Context())
		if identity == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// ResolveUser resolves the identity to a directory account when one is
// present, without requiring it.
//
// # Usage
//
// Mounted on read routes that serve both anonymous visitors and owners: the
// combined visibility filter takes the actor id when there is one and the
// empty string otherwise. Resolution failures fall through to anonymous
// rather than erroring, so a stale token still sees the public catalog.
func ResolveUser(resolver UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			identity := ctxutil.GetIdentity(request.Context())
			if identity == nil {
				next.ServeHTTP(writer, request)
				return
			}

			claims, err := resolver.ResolveClaims(request.Context(), identity.EmailAddress)
			if err != nil {
				next.ServeHTTP(writer, request)
				return
			}

			ctx := ctxutil.WithUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireRole resolves the identity to a directory account and blocks the
// request unless the account holds at least one of the required roles.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate]. It automatically
// implies [RequireAuth] so you don't need to mount both.
//
// # Flow
//  1. Check if [*sec.Identity] exists in context (implies AuthN).
//  2. Resolve the account via [UserResolver]; a missing account is Forbidden,
//     not NotFound, because the request did authenticate.
//  3. Intersect the account's role set with the required roles.
//  4. On success, inject [*sec.UserClaims] into the context for handlers.
func RequireRole(resolver UserResolver, roles ...sec.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Authentication Check ───────────────────────────────────────
			identity := ctxutil.GetIdentity(request.Context())
			if identity == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			// ── 2. Directory Resolution ───────────────────────────────────────
			claims, err := resolver.ResolveClaims(request.Context(), identity.EmailAddress)
			if err != nil {
				if apperr.IsNotFound(err) {
					respond.Error(writer, request, apperr.Forbidden("No account for this identity"))
					return
				}
				respond.Error(writer, request, err)
				return
			}

			// ── 3. Authorization Check ────────────────────────────────────────
			if !claims.Roles.HasAny(roles...) {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}
