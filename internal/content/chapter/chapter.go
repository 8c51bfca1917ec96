// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

/*
Package chapter defines the curriculum unit sitting between a course and its
sections.

A chapter belongs to exactly one course, assigned at creation and never
changed. Creating a chapter links it into the parent's chapter list in the
same transaction; deleting it tombstones its sections and unlinks it from the
parent, but never removes section ids from its own list.
*/
package chapter

import (
	"time"

	"github.com/hanvu/lectern/internal/content/lifecycle"
)

// # Core Entity

// Chapter groups an ordered run of sections inside one course.
type Chapter struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Brief       string `json:"brief"`

	// Course is the owning course id, fixed at creation. Chapters are
	// never re-parented.
	Course string `json:"course"`

	// Sections is the ordered section list. Ids of sections deleted by a
	// course-level cascade may linger; hydration drops them.
	Sections []string `json:"sections"`

	Status  lifecycle.Status `json:"status"`
	Creator string           `json:"creator"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SectionSummary is the hydrated view of one section list entry.
type SectionSummary struct {
	ID     string           `json:"id"`
	Title  string           `json:"title"`
	Type   string           `json:"type"`
	Status lifecycle.Status `json:"status"`
}

// Update carries a partial modification. The course back-reference, slug,
// status, and creator are not updatable.
type Update struct {
	Title       *string
	Description *string
	Brief       *string

	// Sections reorders the section list; linking happens on section
	// creation only.
	Sections *[]string
}

// # Lifecycle Mapping

// Descriptor maps the chapter kind onto its table. Deleting a chapter
// tombstones its sections and removes the chapter id from the parent
// course's list.
var Descriptor = lifecycle.Descriptor{
	Kind:        "Chapter",
	Table:       "chapters",
	OwnerColumn: "creator",
	Parent: &lifecycle.ParentLink{
		Table:      "courses",
		FKColumn:   "course",
		ListColumn: "chapters",
	},
	Cascades: []lifecycle.CascadeRule{
		{Table: "sections", FKColumn: "chapter"},
	},
}

// # Field Identifiers

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldBrief       = "brief"
	FieldCourse      = "course"
	FieldSections    = "sections"
)
