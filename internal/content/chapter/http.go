// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

/*
HTTP interface for chapter management. Same routing split as courses: reads
go through the combined visibility filter, mutations require a resolved
account with the regular role. Chapters have no slug route; they are reached
through their course.
*/
package chapter

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/hanvu/lectern/internal/platform/request"
	"github.com/hanvu/lectern/internal/platform/respond"
	"github.com/hanvu/lectern/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for chapters.
type Handler struct {
	service *Service
	resolve func(http.Handler) http.Handler
	protect func(http.Handler) http.Handler
}

// NewHandler constructs a chapter [Handler].
func NewHandler(service *Service, resolve, protect func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, resolve: resolve, protect: protect}
}

// Routes returns a [chi.Router] with the chapter endpoints mounted.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/public", handler.listPublicChapters)
	router.Group(func(open chi.Router) {
		open.Use(handler.resolve)

		open.Get("/batch", handler.listChaptersByIDs)
		open.Get("/{id}", handler.getChapter)
	})

	router.Group(func(owner chi.Router) {
		owner.Use(handler.protect)

		owner.Get("/", handler.listChapters)
		owner.Post("/", handler.createChapter)
		owner.Patch("/{id}", handler.updateChapter)
		owner.Patch("/{id}/public", handler.publishChapter)
		owner.Patch("/{id}/private", handler.unpublishChapter)
		owner.Delete("/{id}", handler.deleteChapter)
	})

	return router
}

// # Payload Shapes

// chapterDetail is the single-chapter payload with sections hydrated.
type chapterDetail struct {
	*Chapter
	SectionDetails []SectionSummary `json:"sectionDetails"`
}

type createChapterRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Brief       string `json:"brief"`
	Course      string `json:"course"`
}

type updateChapterRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Brief       *string   `json:"brief"`
	Sections    *[]string `json:"sections"`
}

// # Discovery Endpoints

/*
GET /api/v1/chapters/public.

Description: Pages through public chapters. Anonymous.
*/
func (handler *Handler) listPublicChapters(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	chapters, total, err := handler.service.ListPublicChapters(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Page(writer, chapters, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /api/v1/chapters.

Description: Pages through the acting account's own chapters.
*/
func (handler *Handler) listChapters(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	chapters, total, err := handler.service.ListChapters(request.Context(), actorID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Page(writer, chapters, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /api/v1/chapters/batch?ids=a,b,c.

Description: Order-preserving batch lookup; hidden ids are omitted.
*/
func (handler *Handler) listChaptersByIDs(writer http.ResponseWriter, request *http.Request) {
	raw := request.URL.Query().Get("ids")

	var ids []string
	if raw != "" {
		for _, id := range strings.Split(raw, ",") {
			ids = append(ids, strings.TrimSpace(id))
		}
	}

	chapters, err := handler.service.ListChaptersByIDs(request.Context(), ids, requestutil.ActorID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, chapters)
}

/*
GET /api/v1/chapters/{id}.

Description: Fetches one chapter with its sections hydrated.

Response:
  - 200: chapterDetail
  - 404: Chapter not found (also covers hidden and deleted)
*/
func (handler *Handler) getChapter(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	chapter, sections, err := handler.service.GetChapter(request.Context(), id, requestutil.ActorID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, chapterDetail{Chapter: chapter, SectionDetails: sections})
}

// # Mutation Endpoints

/*
POST /api/v1/chapters.

Description: Creates a new private chapter under one of the actor's courses.
The parent link is written in the same transaction.

Response:
  - 201: Chapter
  - 400: Validation failure
  - 404: Course not found (missing, foreign, or deleted parent)
*/
func (handler *Handler) createChapter(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createChapterRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter := &Chapter{
		Title:       input.Title,
		Description: input.Description,
		Brief:       input.Brief,
		Course:      input.Course,
	}

	if err := handler.service.CreateChapter(request.Context(), actorID, chapter); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, chapter)
}

/*
PATCH /api/v1/chapters/{id}.

Description: Partially updates an owned chapter. The course back-reference
is not accepted; chapters cannot move between courses.
*/
func (handler *Handler) updateChapter(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateChapterRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter, err := handler.service.UpdateChapter(request.Context(), requestutil.ID(request, "id"), actorID, Update{
		Title:       input.Title,
		Description: input.Description,
		Brief:       input.Brief,
		Sections:    input.Sections,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, chapter)
}

// PATCH /api/v1/chapters/{id}/public.
func (handler *Handler) publishChapter(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter, err := handler.service.PublishChapter(request.Context(), requestutil.ID(request, "id"), actorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, chapter)
}

// PATCH /api/v1/chapters/{id}/private.
func (handler *Handler) unpublishChapter(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter, err := handler.service.UnpublishChapter(request.Context(), requestutil.ID(request, "id"), actorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, chapter)
}

/*
DELETE /api/v1/chapters/{id}.

Description: Tombstones the chapter and its sections atomically and unlinks
the chapter from its course.
*/
func (handler *Handler) deleteChapter(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteChapter(request.Context(), requestutil.ID(request, "id"), actorID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
