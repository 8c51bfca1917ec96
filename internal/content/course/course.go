// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

/*
Package course defines the top-level learning product of the Lectern catalog.

A course carries the sellable metadata (pricing, level, language, marketing
lists) and an ordered list of chapter ids. It follows the shared content
lifecycle: created private, published at the owner's discretion, and
tombstoned on delete together with its chapters and their sections.

Core Responsibility:

  - Catalog: Defines difficulty levels and pricing for discovery pages.
  - Structure: Owns the ordered chapter list (the course curriculum).
  - Lifecycle: Delegates state transitions and cascade rules to the
    lifecycle engine via [Descriptor].
*/
package course

import (
	"time"

	"github.com/hanvu/lectern/internal/content/lifecycle"
)

// # Domain Enums

// Level classifies the expected audience proficiency.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
	LevelAll          Level = "all"
)

// IsValid reports whether l is a recognised [Level] value.
func (l Level) IsValid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced, LevelAll:
		return true
	}
	return false
}

// # Core Entity

// Course is the central aggregate of the Lectern catalog.
type Course struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Slug         string `json:"slug"` // normalized title + "-" + id, fixed at creation
	Description  string `json:"description"`
	Brief        string `json:"brief"`
	Level        Level  `json:"level"`
	ImageURL     string `json:"imageURL"`
	LanguageCode string `json:"languageCode"`

	// Linear forces learners through chapters in order when true.
	Linear bool `json:"linear"`

	ActualPrice     float64 `json:"actualPrice"`
	DiscountedPrice float64 `json:"discountedPrice"`

	// Marketing lists rendered on the course landing page.
	Requirements []string `json:"requirements"`
	Objectives   []string `json:"objectives"`
	Targets      []string `json:"targets"`
	Resources    []string `json:"resources"`

	// Chapters is the ordered curriculum. Ids of deleted chapters may
	// linger here on cascade; hydration drops them.
	Chapters []string `json:"chapters"`

	Status  lifecycle.Status `json:"status"`
	Creator string           `json:"creator"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ChapterSummary is the hydrated view of one curriculum entry, produced by
// the batch lookup when a single course is fetched.
type ChapterSummary struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Status      lifecycle.Status `json:"status"`
}

// Update carries a partial modification. Nil fields are left untouched;
// Slug, Status, and Creator can never be set through an update.
type Update struct {
	Title           *string
	Description     *string
	Brief           *string
	Level           *Level
	ImageURL        *string
	LanguageCode    *string
	Linear          *bool
	ActualPrice     *float64
	DiscountedPrice *float64
	Requirements    *[]string
	Objectives      *[]string
	Targets         *[]string
	Resources       *[]string

	// Chapters replaces the curriculum list, typically to permute or drop
	// entries. The ids are format-checked but not verified against the
	// current list; hydration drops anything that does not resolve to a
	// visible chapter. Linking happens on chapter creation.
	Chapters *[]string
}

// # Lifecycle Mapping

// Descriptor maps the course kind onto its table for the lifecycle engine.
// Deleting a course tombstones its chapters and, through them, its sections.
var Descriptor = lifecycle.Descriptor{
	Kind:        "Course",
	Table:       "courses",
	OwnerColumn: "creator",
	Cascades: []lifecycle.CascadeRule{
		{Table: "chapters", FKColumn: "course"},
		{Table: "sections", FKColumn: "chapter", ViaTable: "chapters", ViaFKColumn: "course"},
	},
}

// # Field Identifiers

// Global field names for validation and dynamic query mapping.
const (
	FieldTitle           = "title"
	FieldDescription     = "description"
	FieldBrief           = "brief"
	FieldLevel           = "level"
	FieldImageURL        = "imageURL"
	FieldLanguageCode    = "languageCode"
	FieldLinear          = "linear"
	FieldActualPrice     = "actualPrice"
	FieldDiscountedPrice = "discountedPrice"
	FieldRequirements    = "requirements"
	FieldObjectives      = "objectives"
	FieldTargets         = "targets"
	FieldResources       = "resources"
	FieldChapters        = "chapters"
)
