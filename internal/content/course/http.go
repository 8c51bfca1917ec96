// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

/*
HTTP interface for the course catalog.

# Routing Strategy

  - Public: the catalog listing and single-course reads are open; reads go
    through the combined visibility filter so an authenticated owner sees
    their private rows on the very same routes.
  - Restricted: creation, modification, publication, and deletion require a
    resolved account with the regular role.
*/
package course

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/hanvu/lectern/internal/platform/request"
	"github.com/hanvu/lectern/internal/platform/respond"
	"github.com/hanvu/lectern/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for course management and discovery.
type Handler struct {
	service *Service

	// resolve attaches the actor when a valid identity is present;
	// protect additionally requires the regular role.
	resolve func(http.Handler) http.Handler
	protect func(http.Handler) http.Handler
}

// NewHandler constructs a course [Handler].
func NewHandler(service *Service, resolve, protect func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, resolve: resolve, protect: protect}
}

// Routes returns a [chi.Router] with the course endpoints mounted.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Discovery (owner-aware via the combined filter)
	router.Get("/public", handler.listPublicCourses)
	router.Group(func(open chi.Router) {
		open.Use(handler.resolve)

		open.Get("/batch", handler.listCoursesByIDs)
		open.Get("/slug/{slug}", handler.getCourseBySlug)
		open.Get("/{id}", handler.getCourse)
	})

	// ## Authoring (owner only)
	router.Group(func(owner chi.Router) {
		owner.Use(handler.protect)

		owner.Get("/", handler.listCourses)
		owner.Post("/", handler.createCourse)
		owner.Patch("/{id}", handler.updateCourse)
		owner.Patch("/{id}/public", handler.publishCourse)
		owner.Patch("/{id}/private", handler.unpublishCourse)
		owner.Delete("/{id}", handler.deleteCourse)
	})

	return router
}

// # Response Shapes

// courseDetail is the single-course payload with the curriculum hydrated.
type courseDetail struct {
	*Course
	ChapterDetails []ChapterSummary `json:"chapterDetails"`
}

// # Request Payloads

// createCourseRequest defines the inbound JSON schema for course creation.
type createCourseRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Brief           string   `json:"brief"`
	Level           Level    `json:"level"`
	ImageURL        string   `json:"imageURL"`
	LanguageCode    string   `json:"languageCode"`
	Linear          bool     `json:"linear"`
	ActualPrice     float64  `json:"actualPrice"`
	DiscountedPrice float64  `json:"discountedPrice"`
	Requirements    []string `json:"requirements"`
	Objectives      []string `json:"objectives"`
	Targets         []string `json:"targets"`
	Resources       []string `json:"resources"`
}

// updateCourseRequest defines the inbound JSON schema for partial updates.
// Pointer fields distinguish "absent" from "set to zero value".
type updateCourseRequest struct {
	Title           *string   `json:"title"`
	Description     *string   `json:"description"`
	Brief           *string   `json:"brief"`
	Level           *Level    `json:"level"`
	ImageURL        *string   `json:"imageURL"`
	LanguageCode    *string   `json:"languageCode"`
	Linear          *bool     `json:"linear"`
	ActualPrice     *float64  `json:"actualPrice"`
	DiscountedPrice *float64  `json:"discountedPrice"`
	Requirements    *[]string `json:"requirements"`
	Objectives      *[]string `json:"objectives"`
	Targets         *[]string `json:"targets"`
	Resources       *[]string `json:"resources"`
	Chapters        *[]string `json:"chapters"`
}

// # Discovery Endpoints

/*
GET /api/v1/courses/public.

Description: Pages through the public catalog. Anonymous.

Request:
  - page: int (0-indexed)
  - limit: int

Response:
  - 200: Page envelope of Course records
*/
func (handler *Handler) listPublicCourses(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	courses, total, err := handler.service.ListPublicCourses(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Page(writer, courses, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /api/v1/courses.

Description: Pages through the acting account's own courses, drafts included.

Response:
  - 200: Page envelope of Course records
  - 401/403: Not authenticated / no account
*/
func (handler *Handler) listCourses(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	courses, total, err := handler.service.ListCourses(request.Context(), actorID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Page(writer, courses, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /api/v1/courses/batch?ids=a,b,c.

Description: Batch lookup preserving the requested order. Ids the actor
cannot see are omitted without error.

Response:
  - 200: []Course
*/
func (handler *Handler) listCoursesByIDs(writer http.ResponseWriter, request *http.Request) {
	raw := request.URL.Query().Get("ids")

	var ids []string
	if raw != "" {
		for _, id := range strings.Split(raw, ",") {
			ids = append(ids, strings.TrimSpace(id))
		}
	}

	courses, err := handler.service.ListCoursesByIDs(request.Context(), ids, requestutil.ActorID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, courses)
}

/*
GET /api/v1/courses/{id}.

Description: Fetches one course with its curriculum hydrated. Owners see
their private courses; everyone else sees public ones only.

Response:
  - 200: courseDetail
  - 404: Course not found (also covers hidden and deleted)
*/
func (handler *Handler) getCourse(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	course, chapters, err := handler.service.GetCourse(request.Context(), id, requestutil.ActorID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, courseDetail{Course: course, ChapterDetails: chapters})
}

/*
GET /api/v1/courses/slug/{slug}.

Description: Resolves the canonical slug, same visibility as by-id.
*/
func (handler *Handler) getCourseBySlug(writer http.ResponseWriter, request *http.Request) {
	slugValue := requestutil.Param(request, "slug")

	course, chapters, err := handler.service.GetCourseBySlug(request.Context(), slugValue, requestutil.ActorID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, courseDetail{Course: course, ChapterDetails: chapters})
}

// # Mutation Endpoints

/*
POST /api/v1/courses.

Description: Creates a new private course owned by the acting account.

Response:
  - 201: Course
  - 400: Validation failure
*/
func (handler *Handler) createCourse(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createCourseRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	course := &Course{
		Title:           input.Title,
		Description:     input.Description,
		Brief:           input.Brief,
		Level:           input.Level,
		ImageURL:        input.ImageURL,
		LanguageCode:    input.LanguageCode,
		Linear:          input.Linear,
		ActualPrice:     input.ActualPrice,
		DiscountedPrice: input.DiscountedPrice,
		Requirements:    input.Requirements,
		Objectives:      input.Objectives,
		Targets:         input.Targets,
		Resources:       input.Resources,
	}

	if err := handler.service.CreateCourse(request.Context(), actorID, course); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, course)
}

/*
PATCH /api/v1/courses/{id}.

Description: Partially updates an owned course. The slug never changes.

Response:
  - 200: Course (fresh state)
  - 404: Course not found (missing, foreign, or deleted)
*/
func (handler *Handler) updateCourse(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateCourseRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	course, err := handler.service.UpdateCourse(request.Context(), requestutil.ID(request, "id"), actorID, Update{
		Title:           input.Title,
		Description:     input.Description,
		Brief:           input.Brief,
		Level:           input.Level,
		ImageURL:        input.ImageURL,
		LanguageCode:    input.LanguageCode,
		Linear:          input.Linear,
		ActualPrice:     input.ActualPrice,
		DiscountedPrice: input.DiscountedPrice,
		Requirements:    input.Requirements,
		Objectives:      input.Objectives,
		Targets:         input.Targets,
		Resources:       input.Resources,
		Chapters:        input.Chapters,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, course)
}

/*
PATCH /api/v1/courses/{id}/public.

Description: Publishes an owned course. Idempotent.
*/
func (handler *Handler) publishCourse(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	course, err := handler.service.PublishCourse(request.Context(), requestutil.ID(request, "id"), actorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, course)
}

/*
PATCH /api/v1/courses/{id}/private.

Description: Unpublishes an owned course back to the private state.
*/
func (handler *Handler) unpublishCourse(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	course, err := handler.service.UnpublishCourse(request.Context(), requestutil.ID(request, "id"), actorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, course)
}

/*
DELETE /api/v1/courses/{id}.

Description: Tombstones the course and cascades to its chapters and
sections atomically.

Response:
  - 204: No Content
  - 404: Course not found
*/
func (handler *Handler) deleteCourse(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteCourse(request.Context(), requestutil.ID(request, "id"), actorID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
