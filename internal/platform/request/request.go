// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hanvu/lectern/internal/platform/apperr"
	"github.com/hanvu/lectern/internal/platform/ctxutil"
	"github.com/hanvu/lectern/internal/platform/sec"
	"github.com/hanvu/lectern/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ID retrieves a named URL parameter (UUID/Slug) from the request.
*/
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Identity extracts the verified token identity from the request context.

Returns nil if the request carries no valid bearer token.
*/
func Identity(request *http.Request) *sec.Identity {
	return ctxutil.GetIdentity(request.Context())
}

/*
RequiredIdentity ensures the request carries a verified token identity.

Returns:
  - *sec.Identity: The verified identity
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredIdentity(request *http.Request) (*sec.Identity, error) {
	identity := ctxutil.GetIdentity(request.Context())
	if identity == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return identity, nil
}

/*
User extracts the resolved directory claims from the request context.

Returns nil when no role-gated middleware ran for this route.
*/
func User(request *http.Request) *sec.UserClaims {
	return ctxutil.GetUser(request.Context())
}

/*
RequiredUser ensures the request passed through role resolution and returns
the resolved directory claims.

Returns:
  - *sec.UserClaims: The resolved account claims
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredUser(request *http.Request) (*sec.UserClaims, error) {
	claims := ctxutil.GetUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return claims, nil
}

/*
RequiredUserID returns the account ID of the currently logged-in user.

Returns:
  - string: User UUID
  - error: apperr.Unauthorized if not authenticated
*/
func RequiredUserID(request *http.Request) (string, error) {
	claims, err := RequiredUser(request)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

/*
ActorID returns the account ID for visibility filtering, or the empty string
for an anonymous request. Lookups with an empty actor match public rows only.
*/
func ActorID(request *http.Request) string {
	return ctxutil.ActorID(request.Context())
}
