// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

/*
HTTP interface for playlists. Same routing split as the other content kinds.
*/
package playlist

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/hanvu/lectern/internal/platform/request"
	"github.com/hanvu/lectern/internal/platform/respond"
	"github.com/hanvu/lectern/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for playlists.
type Handler struct {
	service *Service
	resolve func(http.Handler) http.Handler
	protect func(http.Handler) http.Handler
}

// NewHandler constructs a playlist [Handler].
func NewHandler(service *Service, resolve, protect func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, resolve: resolve, protect: protect}
}

// Routes returns a [chi.Router] with the playlist endpoints mounted.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/public", handler.listPublicPlaylists)
	router.Group(func(open chi.Router) {
		open.Use(handler.resolve)

		open.Get("/batch", handler.listPlaylistsByIDs)
		open.Get("/{id}", handler.getPlaylist)
	})

	router.Group(func(owner chi.Router) {
		owner.Use(handler.protect)

		owner.Get("/", handler.listPlaylists)
		owner.Post("/", handler.createPlaylist)
		owner.Patch("/{id}", handler.updatePlaylist)
		owner.Patch("/{id}/public", handler.publishPlaylist)
		owner.Patch("/{id}/private", handler.unpublishPlaylist)
		owner.Delete("/{id}", handler.deletePlaylist)
	})

	return router
}

// # Payload Shapes

// playlistDetail is the single-playlist payload with courses hydrated.
type playlistDetail struct {
	*Playlist
	CourseDetails []CourseSummary `json:"courseDetails"`
}

type createPlaylistRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Courses     []string `json:"courses"`
}

type updatePlaylistRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Courses     *[]string `json:"courses"`
}

// # Discovery Endpoints

// GET /api/v1/playlists/public.
func (handler *Handler) listPublicPlaylists(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	playlists, total, err := handler.service.ListPublicPlaylists(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Page(writer, playlists, pagination.NewMeta(params.Page, params.Limit, total))
}

// GET /api/v1/playlists.
func (handler *Handler) listPlaylists(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	playlists, total, err := handler.service.ListPlaylists(request.Context(), actorID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Page(writer, playlists, pagination.NewMeta(params.Page, params.Limit, total))
}

// GET /api/v1/playlists/batch?ids=a,b,c.
func (handler *Handler) listPlaylistsByIDs(writer http.ResponseWriter, request *http.Request) {
	raw := request.URL.Query().Get("ids")

	var ids []string
	if raw != "" {
		for _, id := range strings.Split(raw, ",") {
			ids = append(ids, strings.TrimSpace(id))
		}
	}

	playlists, err := handler.service.ListPlaylistsByIDs(request.Context(), ids, requestutil.ActorID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, playlists)
}

/*
GET /api/v1/playlists/{id}.

Description: Fetches one playlist with the referenced courses hydrated in
playlist order. Hidden courses are dropped, not errored.

Response:
  - 200: playlistDetail
  - 404: Playlist not found (also covers hidden and deleted)
*/
func (handler *Handler) getPlaylist(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	playlist, courses, err := handler.service.GetPlaylist(request.Context(), id, requestutil.ActorID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, playlistDetail{Playlist: playlist, CourseDetails: courses})
}

// # Mutation Endpoints

/*
POST /api/v1/playlists.

Response:
  - 201: Playlist
  - 400: Validation failure
*/
func (handler *Handler) createPlaylist(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createPlaylistRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	playlist := &Playlist{
		Title:       input.Title,
		Description: input.Description,
		Courses:     input.Courses,
	}

	if err := handler.service.CreatePlaylist(request.Context(), actorID, playlist); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, playlist)
}

// PATCH /api/v1/playlists/{id}.
func (handler *Handler) updatePlaylist(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updatePlaylistRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	playlist, err := handler.service.UpdatePlaylist(request.Context(), requestutil.ID(request, "id"), actorID, Update{
		Title:       input.Title,
		Description: input.Description,
		Courses:     input.Courses,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, playlist)
}

// PATCH /api/v1/playlists/{id}/public.
func (handler *Handler) publishPlaylist(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	playlist, err := handler.service.PublishPlaylist(request.Context(), requestutil.ID(request, "id"), actorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, playlist)
}

// PATCH /api/v1/playlists/{id}/private.
func (handler *Handler) unpublishPlaylist(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	playlist, err := handler.service.UnpublishPlaylist(request.Context(), requestutil.ID(request, "id"), actorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, playlist)
}

// DELETE /api/v1/playlists/{id}.
func (handler *Handler) deletePlaylist(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeletePlaylist(request.Context(), requestutil.ID(request, "id"), actorID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
