// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

/*
HTTP interface for section management. Same routing split as the other
content kinds. Sections have no slug route; they are reached through their
chapter.
*/
package section

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/hanvu/lectern/internal/platform/request"
	"github.com/hanvu/lectern/internal/platform/respond"
	"github.com/hanvu/lectern/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for sections.
type Handler struct {
	service *Service
	resolve func(http.Handler) http.Handler
	protect func(http.Handler) http.Handler
}

// NewHandler constructs a section [Handler].
func NewHandler(service *Service, resolve, protect func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, resolve: resolve, protect: protect}
}

// Routes returns a [chi.Router] with the section endpoints mounted.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/public", handler.listPublicSections)
	router.Group(func(open chi.Router) {
		open.Use(handler.resolve)

		open.Get("/batch", handler.listSectionsByIDs)
		open.Get("/{id}", handler.getSection)
	})

	router.Group(func(owner chi.Router) {
		owner.Use(handler.protect)

		owner.Get("/", handler.listSections)
		owner.Post("/", handler.createSection)
		owner.Patch("/{id}", handler.updateSection)
		owner.Patch("/{id}/public", handler.publishSection)
		owner.Patch("/{id}/private", handler.unpublishSection)
		owner.Delete("/{id}", handler.deleteSection)
	})

	return router
}

// # Payload Shapes

type createSectionRequest struct {
	Title       string  `json:"title"`
	Type        Type    `json:"type"`
	Description string  `json:"description"`
	Brief       string  `json:"brief"`
	Content     string  `json:"content"`
	Chapter     string  `json:"chapter"`
	Exercise    *string `json:"exercise"`
}

type updateSectionRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Brief       *string `json:"brief"`
	Content     *string `json:"content"`
	Exercise    *string `json:"exercise"`
}

// # Discovery Endpoints

// GET /api/v1/sections/public.
func (handler *Handler) listPublicSections(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	sections, total, err := handler.service.ListPublicSections(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Page(writer, sections, pagination.NewMeta(params.Page, params.Limit, total))
}

// GET /api/v1/sections.
func (handler *Handler) listSections(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	sections, total, err := handler.service.ListSections(request.Context(), actorID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Page(writer, sections, pagination.NewMeta(params.Page, params.Limit, total))
}

// GET /api/v1/sections/batch?ids=a,b,c.
func (handler *Handler) listSectionsByIDs(writer http.ResponseWriter, request *http.Request) {
	raw := request.URL.Query().Get("ids")

	var ids []string
	if raw != "" {
		for _, id := range strings.Split(raw, ",") {
			ids = append(ids, strings.TrimSpace(id))
		}
	}

	sections, err := handler.service.ListSectionsByIDs(request.Context(), ids, requestutil.ActorID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, sections)
}

/*
GET /api/v1/sections/{id}.

Response:
  - 200: Section
  - 404: Section not found (also covers hidden and deleted)
*/
func (handler *Handler) getSection(writer http.ResponseWriter, request *http.Request) {
	section, err := handler.service.GetSection(request.Context(), requestutil.ID(request, "id"), requestutil.ActorID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, section)
}

// # Mutation Endpoints

/*
POST /api/v1/sections.

Description: Creates a new private section under one of the actor's
chapters. The parent link is written in the same transaction.

Response:
  - 201: Section
  - 400: Validation failure
  - 404: Chapter not found (missing, foreign, or deleted parent)
*/
func (handler *Handler) createSection(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createSectionRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	section := &Section{
		Title:       input.Title,
		Type:        input.Type,
		Description: input.Description,
		Brief:       input.Brief,
		Content:     input.Content,
		Chapter:     input.Chapter,
		Exercise:    input.Exercise,
	}

	if err := handler.service.CreateSection(request.Context(), actorID, section); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, section)
}

// PATCH /api/v1/sections/{id}.
func (handler *Handler) updateSection(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateSectionRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	section, err := handler.service.UpdateSection(request.Context(), requestutil.ID(request, "id"), actorID, Update{
		Title:       input.Title,
		Description: input.Description,
		Brief:       input.Brief,
		Content:     input.Content,
		Exercise:    input.Exercise,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, section)
}

// PATCH /api/v1/sections/{id}/public.
func (handler *Handler) publishSection(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	section, err := handler.service.PublishSection(request.Context(), requestutil.ID(request, "id"), actorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, section)
}

// PATCH /api/v1/sections/{id}/private.
func (handler *Handler) unpublishSection(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	section, err := handler.service.UnpublishSection(request.Context(), requestutil.ID(request, "id"), actorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, section)
}

/*
DELETE /api/v1/sections/{id}.

Description: Tombstones the section and unlinks it from its chapter.
*/
func (handler *Handler) deleteSection(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteSection(request.Context(), requestutil.ID(request, "id"), actorID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
