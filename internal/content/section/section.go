// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

/*
Package section defines the leaf learning unit of a course curriculum.

A section holds the actual lesson material, either a written article or a
quiz backed by a test suite. It belongs to exactly one chapter, assigned at
creation. Deleting a section removes it from the chapter's list; it has no
children of its own.
*/
package section

import (
	"time"

	"github.com/hanvu/lectern/internal/content/lifecycle"
)

// # Domain Enums

// Type distinguishes what a section renders.
type Type string

const (
	TypeArticle Type = "article"
	TypeQuiz    Type = "quiz"
)

// IsValid reports whether t is a recognised [Type] value.
func (t Type) IsValid() bool {
	return t == TypeArticle || t == TypeQuiz
}

// # Core Entity

// Section is one lesson inside a chapter.
type Section struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`

	// Type is fixed at creation; a quiz never becomes an article.
	Type Type `json:"type"`

	Description string `json:"description"`
	Brief       string `json:"brief"`

	// Content is the free-form lesson body (markdown for articles).
	Content string `json:"content"`

	// Chapter is the owning chapter id, fixed at creation.
	Chapter string `json:"chapter"`

	// Exercise optionally links a quiz section to a test suite.
	Exercise *string `json:"exercise"`

	Status  lifecycle.Status `json:"status"`
	Creator string           `json:"creator"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Update carries a partial modification. Type, chapter, slug, status, and
// creator are not updatable.
type Update struct {
	Title       *string
	Description *string
	Brief       *string
	Content     *string

	// Exercise replaces the test-suite link. An empty string clears it.
	Exercise *string
}

// # Lifecycle Mapping

// Descriptor maps the section kind onto its table. Sections cascade to
// nothing; deletion only unlinks them from the parent chapter's list.
var Descriptor = lifecycle.Descriptor{
	Kind:        "Section",
	Table:       "sections",
	OwnerColumn: "creator",
	Parent: &lifecycle.ParentLink{
		Table:      "chapters",
		FKColumn:   "chapter",
		ListColumn: "sections",
	},
}

// # Field Identifiers

const (
	FieldTitle       = "title"
	FieldType        = "type"
	FieldDescription = "description"
	FieldBrief       = "brief"
	FieldContent     = "content"
	FieldChapter     = "chapter"
	FieldExercise    = "exercise"
)
