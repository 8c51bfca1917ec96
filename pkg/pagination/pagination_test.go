// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hanvu/lectern/pkg/pagination"
)

/*
TestNewMeta verifies page math and the -1 sentinels at both edges.
*/
func TestNewMeta(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		total     int
		wantPages int
		wantPrev  int
		wantNext  int
	}{
		{"first_of_many", 0, 12, 30, 3, pagination.NoPage, 1},
		{"middle", 1, 12, 30, 3, 0, 2},
		{"last", 2, 12, 30, 3, 1, pagination.NoPage},
		{"single_page", 0, 12, 5, 1, pagination.NoPage, pagination.NoPage},
		{"empty", 0, 12, 0, 0, pagination.NoPage, pagination.NoPage},
		{"exact_boundary", 0, 12, 24, 2, pagination.NoPage, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := pagination.NewMeta(tt.page, tt.limit, tt.total)

			assert.Equal(t, tt.total, meta.TotalRecords)
			assert.Equal(t, tt.wantPages, meta.TotalPages)
			assert.Equal(t, tt.wantPrev, meta.PreviousPage)
			assert.Equal(t, tt.wantNext, meta.NextPage)
			assert.Equal(t, tt.wantPrev != pagination.NoPage, meta.HasPreviousPage)
			assert.Equal(t, tt.wantNext != pagination.NoPage, meta.HasNextPage)
		})
	}
}

/*
TestFromRequest verifies query parsing and clamping of hostile values.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", 0, pagination.DefaultLimit},
		{"explicit", "?page=2&limit=24", 2, 24},
		{"negative_page", "?page=-4", 0, pagination.DefaultLimit},
		{"zero_limit", "?limit=0", 0, pagination.DefaultLimit},
		{"sub_minimum_limit", "?limit=5", 0, pagination.DefaultLimit},
		{"excessive_limit", "?limit=5000", 0, pagination.MaxLimit},
		{"garbage", "?page=abc&limit=xyz", 0, pagination.DefaultLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/courses"+tt.query, nil)
			params := pagination.FromRequest(r)

			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantLimit, params.Limit)
		})
	}
}

/*
TestParams_Offset verifies the SQL offset derivation for 0-indexed pages.
*/
func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, pagination.Params{Page: 0, Limit: 12}.Offset())
	assert.Equal(t, 12, pagination.Params{Page: 1, Limit: 12}.Offset())
	assert.Equal(t, 48, pagination.Params{Page: 2, Limit: 24}.Offset())
}
