// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

/*
Package article defines standalone written content published outside any
course. Articles follow the shared lifecycle but stand alone: no parent, no
children, no cascade. The owner column is named author here, the one place
the schema deviates from creator.
*/
package article

import (
	"time"

	"github.com/hanvu/lectern/internal/content/lifecycle"
)

// # Core Entity

// Article is a standalone blog-style piece.
type Article struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Slug         string `json:"slug"`
	Description  string `json:"description"`
	Content      string `json:"content"`
	ImageURL     string `json:"imageURL"`
	LanguageCode string `json:"languageCode"`

	Status lifecycle.Status `json:"status"`
	Author string           `json:"author"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Update carries a partial modification. Slug, status, and author are not
// updatable.
type Update struct {
	Title        *string
	Description  *string
	Content      *string
	ImageURL     *string
	LanguageCode *string
}

// # Lifecycle Mapping

// Descriptor maps the article kind onto its table. Articles are leaves:
// deletion tombstones the one row and nothing else.
var Descriptor = lifecycle.Descriptor{
	Kind:        "Article",
	Table:       "articles",
	OwnerColumn: "author",
}

// # Field Identifiers

const (
	FieldTitle        = "title"
	FieldDescription  = "description"
	FieldContent      = "content"
	FieldImageURL     = "imageURL"
	FieldLanguageCode = "languageCode"
)
