// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hanvu/lectern/pkg/slug"
)

/*
TestFrom verifies Unicode normalization and hyphenation rules.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Learn Go", "learn-go"},
		{"accents", "Crème Brûlée Baking", "creme-brulee-baking"},
		{"punctuation", "C++ & Rust: a comparison!", "c-rust-a-comparison"},
		{"multi_space", "a   b", "a-b"},
		{"leading_trailing", "  --hello--  ", "hello"},
		{"digits", "Top 10 SQL tricks", "top-10-sql-tricks"},
		{"empty", "", ""},
		{"only_symbols", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}

/*
TestWithID verifies the canonical slug shape: normalized title + "-" + id.
*/
func TestWithID(t *testing.T) {
	id := "0191b2c3-d4e5-7f60-8899-aabbccddeeff"

	assert.Equal(t, "learn-go-"+id, slug.WithID("Learn Go", id))
	assert.Equal(t, id, slug.WithID("!!!", id))

	// Same title, different ids: slugs never collide.
	other := "0191b2c3-d4e5-7f60-8899-aabbccddee00"
	assert.NotEqual(t, slug.WithID("Learn Go", id), slug.WithID("Learn Go", other))
}
