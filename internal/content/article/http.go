// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

/*
HTTP interface for articles. Same routing split as the other content kinds,
plus the slug lookup used by public article pages.
*/
package article

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/hanvu/lectern/internal/platform/request"
	"github.com/hanvu/lectern/internal/platform/respond"
	"github.com/hanvu/lectern/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for articles.
type Handler struct {
	service *Service
	resolve func(http.Handler) http.Handler
	protect func(http.Handler) http.Handler
}

// NewHandler constructs an article [Handler].
func NewHandler(service *Service, resolve, protect func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, resolve: resolve, protect: protect}
}

// Routes returns a [chi.Router] with the article endpoints mounted.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/public", handler.listPublicArticles)
	router.Group(func(open chi.Router) {
		open.Use(handler.resolve)

		open.Get("/batch", handler.listArticlesByIDs)
		open.Get("/slug/{slug}", handler.getArticleBySlug)
		open.Get("/{id}", handler.getArticle)
	})

	router.Group(func(owner chi.Router) {
		owner.Use(handler.protect)

		owner.Get("/", handler.listArticles)
		owner.Post("/", handler.createArticle)
		owner.Patch("/{id}", handler.updateArticle)
		owner.Patch("/{id}/public", handler.publishArticle)
		owner.Patch("/{id}/private", handler.unpublishArticle)
		owner.Delete("/{id}", handler.deleteArticle)
	})

	return router
}

// # Payload Shapes

type createArticleRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Content      string `json:"content"`
	ImageURL     string `json:"imageURL"`
	LanguageCode string `json:"languageCode"`
}

type updateArticleRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Content      *string `json:"content"`
	ImageURL     *string `json:"imageURL"`
	LanguageCode *string `json:"languageCode"`
}

// # Discovery Endpoints

// GET /api/v1/articles/public.
func (handler *Handler) listPublicArticles(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	articles, total, err := handler.service.ListPublicArticles(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Page(writer, articles, pagination.NewMeta(params.Page, params.Limit, total))
}

// GET /api/v1/articles.
func (handler *Handler) listArticles(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	articles, total, err := handler.service.ListArticles(request.Context(), actorID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Page(writer, articles, pagination.NewMeta(params.Page, params.Limit, total))
}

// GET /api/v1/articles/batch?ids=a,b,c.
func (handler *Handler) listArticlesByIDs(writer http.ResponseWriter, request *http.Request) {
	raw := request.URL.Query().Get("ids")

	var ids []string
	if raw != "" {
		for _, id := range strings.Split(raw, ",") {
			ids = append(ids, strings.TrimSpace(id))
		}
	}

	articles, err := handler.service.ListArticlesByIDs(request.Context(), ids, requestutil.ActorID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, articles)
}

/*
GET /api/v1/articles/{id}.

Response:
  - 200: Article
  - 404: Article not found (also covers hidden and deleted)
*/
func (handler *Handler) getArticle(writer http.ResponseWriter, request *http.Request) {
	article, err := handler.service.GetArticle(request.Context(), requestutil.ID(request, "id"), requestutil.ActorID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, article)
}

// GET /api/v1/articles/slug/{slug}.
func (handler *Handler) getArticleBySlug(writer http.ResponseWriter, request *http.Request) {
	slugValue := requestutil.Param(request, "slug")

	article, err := handler.service.GetArticleBySlug(request.Context(), slugValue, requestutil.ActorID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, article)
}

// # Mutation Endpoints

/*
POST /api/v1/articles.

Response:
  - 201: Article
  - 400: Validation failure
*/
func (handler *Handler) createArticle(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createArticleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	article := &Article{
		Title:        input.Title,
		Description:  input.Description,
		Content:      input.Content,
		ImageURL:     input.ImageURL,
		LanguageCode: input.LanguageCode,
	}

	if err := handler.service.CreateArticle(request.Context(), actorID, article); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, article)
}

// PATCH /api/v1/articles/{id}.
func (handler *Handler) updateArticle(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateArticleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	article, err := handler.service.UpdateArticle(request.Context(), requestutil.ID(request, "id"), actorID, Update{
		Title:        input.Title,
		Description:  input.Description,
		Content:      input.Content,
		ImageURL:     input.ImageURL,
		LanguageCode: input.LanguageCode,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, article)
}

// PATCH /api/v1/articles/{id}/public.
func (handler *Handler) publishArticle(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	article, err := handler.service.PublishArticle(request.Context(), requestutil.ID(request, "id"), actorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, article)
}

// PATCH /api/v1/articles/{id}/private.
func (handler *Handler) unpublishArticle(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	article, err := handler.service.UnpublishArticle(request.Context(), requestutil.ID(request, "id"), actorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, article)
}

// DELETE /api/v1/articles/{id}.
func (handler *Handler) deleteArticle(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteArticle(request.Context(), requestutil.ID(request, "id"), actorID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
