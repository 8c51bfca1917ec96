// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

/*
HTTP interface for test suites. Same routing split as the other content
kinds, plus the handle lookup used by authoring tools and a title-search
query on the list endpoints.
*/
package testsuite

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/hanvu/lectern/internal/platform/request"
	"github.com/hanvu/lectern/internal/platform/respond"
	"github.com/hanvu/lectern/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for test suites.
type Handler struct {
	service *Service
	resolve func(http.Handler) http.Handler
	protect func(http.Handler) http.Handler
}

// NewHandler constructs a test-suite [Handler].
func NewHandler(service *Service, resolve, protect func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, resolve: resolve, protect: protect}
}

// Routes returns a [chi.Router] with the test-suite endpoints mounted.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/public", handler.listPublicTestSuites)
	router.Group(func(open chi.Router) {
		open.Use(handler.resolve)

		open.Get("/handle/{handle}", handler.getTestSuiteByHandle)
		open.Get("/{id}", handler.getTestSuite)
	})

	router.Group(func(owner chi.Router) {
		owner.Use(handler.protect)

		owner.Get("/", handler.listTestSuites)
		owner.Post("/", handler.createTestSuite)
		owner.Patch("/{id}", handler.updateTestSuite)
		owner.Patch("/{id}/public", handler.publishTestSuite)
		owner.Patch("/{id}/private", handler.unpublishTestSuite)
		owner.Delete("/{id}", handler.deleteTestSuite)
	})

	return router
}

// # Payload Shapes

type createTestSuiteRequest struct {
	Handle      string          `json:"handle"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Tests       json.RawMessage `json:"tests"`
}

type updateTestSuiteRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Tests       *json.RawMessage `json:"tests"`
}

// # Discovery Endpoints

// GET /api/v1/test-suites/public?search=...
func (handler *Handler) listPublicTestSuites(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	search := request.URL.Query().Get("search")

	suites, total, err := handler.service.ListPublicTestSuites(request.Context(), search, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Page(writer, suites, pagination.NewMeta(params.Page, params.Limit, total))
}

// GET /api/v1/test-suites?search=...
func (handler *Handler) listTestSuites(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	search := request.URL.Query().Get("search")

	suites, total, err := handler.service.ListTestSuites(request.Context(), actorID, search, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Page(writer, suites, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /api/v1/test-suites/{id}.

Response:
  - 200: TestSuite
  - 404: TestSuite not found (also covers hidden and deleted)
*/
func (handler *Handler) getTestSuite(writer http.ResponseWriter, request *http.Request) {
	suite, err := handler.service.GetTestSuite(request.Context(), requestutil.ID(request, "id"), requestutil.ActorID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, suite)
}

// GET /api/v1/test-suites/handle/{handle}.
func (handler *Handler) getTestSuiteByHandle(writer http.ResponseWriter, request *http.Request) {
	handle := requestutil.Param(request, "handle")

	suite, err := handler.service.GetTestSuiteByHandle(request.Context(), handle, requestutil.ActorID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, suite)
}

// # Mutation Endpoints

/*
POST /api/v1/test-suites.

Response:
  - 201: TestSuite
  - 400: Validation failure
  - 409: Handle already taken
*/
func (handler *Handler) createTestSuite(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createTestSuiteRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	suite := &TestSuite{
		Handle:      input.Handle,
		Title:       input.Title,
		Description: input.Description,
		Tests:       input.Tests,
	}

	if err := handler.service.CreateTestSuite(request.Context(), actorID, suite); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, suite)
}

// PATCH /api/v1/test-suites/{id}.
func (handler *Handler) updateTestSuite(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateTestSuiteRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	suite, err := handler.service.UpdateTestSuite(request.Context(), requestutil.ID(request, "id"), actorID, Update{
		Title:       input.Title,
		Description: input.Description,
		Tests:       input.Tests,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, suite)
}

// PATCH /api/v1/test-suites/{id}/public.
func (handler *Handler) publishTestSuite(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	suite, err := handler.service.PublishTestSuite(request.Context(), requestutil.ID(request, "id"), actorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, suite)
}

// PATCH /api/v1/test-suites/{id}/private.
func (handler *Handler) unpublishTestSuite(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	suite, err := handler.service.UnpublishTestSuite(request.Context(), requestutil.ID(request, "id"), actorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, suite)
}

// DELETE /api/v1/test-suites/{id}.
func (handler *Handler) deleteTestSuite(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteTestSuite(request.Context(), requestutil.ID(request, "id"), actorID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
