// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters
// and how the resulting metadata is delivered in the API response envelope.
// Pages are 0-indexed on the wire; the sentinel value -1 marks a missing
// previous or next page.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultLimit is the number of records per page if not specified.
	DefaultLimit = 12
	// MaxLimit is the upper bound for records per page to prevent system abuse.
	MaxLimit = 96
	// DefaultPage is the starting page (0-indexed).
	DefaultPage = 0
	// NoPage is the sentinel for a previous/next page that does not exist.
	NoPage = -1
)

// Params holds the parsed page and limit from a request's query string.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the SQL OFFSET value derived from [Page] and [Limit].
func (p Params) Offset() int {
	if p.Page <= 0 {
		return 0
	}
	return p.Page * p.Limit
}

// Meta is the navigation metadata included in API list responses.
type Meta struct {
	TotalRecords    int  `json:"totalRecords"`
	TotalPages      int  `json:"totalPages"`
	PreviousPage    int  `json:"previousPage"`
	NextPage        int  `json:"nextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
	HasNextPage     bool `json:"hasNextPage"`
}

// NewMeta constructs navigation metadata for a response.
//
// TotalPages is derived from the total count and limit; the previous/next
// fields carry [NoPage] at the edges so clients never have to guess.
func NewMeta(page, limit, total int) Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	meta := Meta{
		TotalRecords: total,
		TotalPages:   totalPages,
		PreviousPage: NoPage,
		NextPage:     NoPage,
	}

	if page > 0 && page <= totalPages {
		meta.PreviousPage = page - 1
		meta.HasPreviousPage = true
	}
	if page < totalPages-1 {
		meta.NextPage = page + 1
		meta.HasNextPage = true
	}

	return meta
}

// FromRequest parses "page" and "limit" query parameters from an HTTP request.
//
// # Clamping
//
// Invalid or negative values fall back to [DefaultPage] and [DefaultLimit].
// The limit is bounded to the [DefaultLimit]..[MaxLimit] window: requests
// below the minimum page size are raised to it, oversized ones capped.
func FromRequest(r *http.Request) Params {
	page := parseIntParam(r, "page", DefaultPage)
	limit := parseIntParam(r, "limit", DefaultLimit)

	if page < 0 {
		page = DefaultPage
	}

	if limit < DefaultLimit {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{Page: page, Limit: limit}
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}

	return n
}
