// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

/*
Package testsuite defines reusable quiz material linked from sections.

A test suite carries its test cases as an opaque JSON document; the backend
stores and serves them without interpreting individual cases. Suites are
addressed by a unique machine handle in addition to their id, because
authoring tools reference them by name.
*/
package testsuite

import (
	"encoding/json"
	"time"

	"github.com/hanvu/lectern/internal/content/lifecycle"
)

// # Core Entity

// TestSuite is a named collection of test cases for quiz sections.
type TestSuite struct {
	ID string `json:"id"`

	// Handle is the unique machine name (e.g. "go-basics-01"), fixed at
	// creation. Authoring tools key off it.
	Handle string `json:"handle"`

	Title       string `json:"title"`
	Description string `json:"description"`

	// Tests is the JSON array of test cases, stored verbatim.
	Tests json.RawMessage `json:"tests"`

	Status  lifecycle.Status `json:"status"`
	Creator string           `json:"creator"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Update carries a partial modification. The handle is not updatable.
type Update struct {
	Title       *string
	Description *string
	Tests       *json.RawMessage
}

// # Lifecycle Mapping

// Descriptor maps the test-suite kind onto its table. Suites are leaves;
// sections referencing a deleted suite keep a dangling exercise link, which
// readers treat like any other hidden reference.
var Descriptor = lifecycle.Descriptor{
	Kind:        "TestSuite",
	Table:       "test_suites",
	OwnerColumn: "creator",
}

// # Field Identifiers

const (
	FieldHandle      = "handle"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldTests       = "tests"
)
