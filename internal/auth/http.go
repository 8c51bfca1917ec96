// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

/*
HTTP interface for the user directory.

The session endpoint is semi-protected: it needs a verified identity token
but deliberately no role gate, because it is the call that creates the
account a role gate would look for. Profile reads and edits require a
resolved account; the full listing is admin only.
*/
package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/hanvu/lectern/internal/platform/request"
	"github.com/hanvu/lectern/internal/platform/respond"
	"github.com/hanvu/lectern/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for the user directory.
type Handler struct {
	service *Service

	// authenticated requires a verified identity; protect additionally
	// requires a resolved account with the regular role; admin requires
	// the admin role.
	authenticated func(http.Handler) http.Handler
	protect       func(http.Handler) http.Handler
	admin         func(http.Handler) http.Handler
}

// NewHandler constructs a directory [Handler].
func NewHandler(service *Service, authenticated, protect, admin func(http.Handler) http.Handler) *Handler {
	return &Handler{
		service:       service,
		authenticated: authenticated,
		protect:       protect,
		admin:         admin,
	}
}

// Routes returns a [chi.Router] with the directory endpoints mounted.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(session chi.Router) {
		session.Use(handler.authenticated)
		session.Post("/session", handler.resolveSession)
	})

	router.Group(func(account chi.Router) {
		account.Use(handler.protect)
		account.Get("/{id}", handler.getUser)
		account.Patch("/{id}", handler.updateUser)
	})

	router.Group(func(ops chi.Router) {
		ops.Use(handler.admin)
		ops.Get("/", handler.listUsers)
	})

	return router
}

// # Payload Shapes

type updateUserRequest struct {
	FirstName            *string   `json:"firstName"`
	LastName             *string   `json:"lastName"`
	UserName             *string   `json:"userName"`
	PictureURL           *string   `json:"pictureURL"`
	About                *string   `json:"about"`
	ContentLanguageCodes *[]string `json:"contentLanguageCodes"`
	DisplayLanguageCode  *string   `json:"displayLanguageCode"`
}

// # Endpoints

/*
POST /api/v1/users/session.

Description: Exchanges the verified identity for the internal account,
creating it on first sight. This is the only mutating route without a role
gate.

Response:
  - 200: User
  - 401: Missing or invalid identity token
*/
func (handler *Handler) resolveSession(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.ResolveSession(request.Context(), identity)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
GET /api/v1/users/{id}.

Response:
  - 200: User
  - 404: User not found
*/
func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.service.GetUser(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
PATCH /api/v1/users/{id}.

Description: Self-service profile update. Editing someone else's profile
reports NotFound.
*/
func (handler *Handler) updateUser(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateUserRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.UpdateUser(request.Context(), actorID, requestutil.ID(request, "id"), Update{
		FirstName:            input.FirstName,
		LastName:             input.LastName,
		UserName:             input.UserName,
		PictureURL:           input.PictureURL,
		About:                input.About,
		ContentLanguageCodes: input.ContentLanguageCodes,
		DisplayLanguageCode:  input.DisplayLanguageCode,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
GET /api/v1/users.

Description: Pages through all directory accounts. Admin only.
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	users, total, err := handler.service.ListUsers(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Page(writer, users, pagination.NewMeta(params.Page, params.Limit, total))
}
