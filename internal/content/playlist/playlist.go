// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

/*
Package playlist defines curated course collections.

A playlist references courses loosely: the list is replaced wholesale on
update, referenced courses may belong to anyone, and deleting a playlist
touches nothing but the playlist row. A referenced course that goes private
or gets deleted simply disappears from the hydrated view.
*/
package playlist

import (
	"time"

	"github.com/hanvu/lectern/internal/content/lifecycle"
)

// # Core Entity

// Playlist is an ordered, loosely coupled collection of courses.
type Playlist struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`

	// Courses is the ordered reference list. Unlike a curriculum these
	// are not containment edges: no cascade in either direction.
	Courses []string `json:"courses"`

	Status  lifecycle.Status `json:"status"`
	Creator string           `json:"creator"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CourseSummary is the hydrated view of one playlist entry.
type CourseSummary struct {
	ID       string           `json:"id"`
	Title    string           `json:"title"`
	Slug     string           `json:"slug"`
	Brief    string           `json:"brief"`
	ImageURL string           `json:"imageURL"`
	Status   lifecycle.Status `json:"status"`
}

// Update carries a partial modification. Courses replaces the whole list.
type Update struct {
	Title       *string
	Description *string
	Courses     *[]string
}

// # Lifecycle Mapping

// Descriptor maps the playlist kind onto its table. Playlists are leaves
// with no parent link; removal tombstones the single row.
var Descriptor = lifecycle.Descriptor{
	Kind:        "Playlist",
	Table:       "playlists",
	OwnerColumn: "creator",
}

// # Field Identifiers

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldCourses     = "courses"
)
