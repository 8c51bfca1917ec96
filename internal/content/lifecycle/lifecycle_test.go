// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

package lifecycle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanvu/lectern/internal/content/lifecycle"
)

/*
TestStatus_Transitions verifies the state machine: private and public flip
freely, deleted is terminal.
*/
func TestStatus_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    lifecycle.Status
		to      lifecycle.Status
		allowed bool
	}{
		{"private_to_public", lifecycle.StatusPrivate, lifecycle.StatusPublic, true},
		{"public_to_private", lifecycle.StatusPublic, lifecycle.StatusPrivate, true},
		{"private_to_deleted", lifecycle.StatusPrivate, lifecycle.StatusDeleted, true},
		{"public_to_deleted", lifecycle.StatusPublic, lifecycle.StatusDeleted, true},
		{"publish_idempotent", lifecycle.StatusPublic, lifecycle.StatusPublic, true},
		{"deleted_to_public", lifecycle.StatusDeleted, lifecycle.StatusPublic, false},
		{"deleted_to_private", lifecycle.StatusDeleted, lifecycle.StatusPrivate, false},
		{"deleted_to_deleted", lifecycle.StatusDeleted, lifecycle.StatusDeleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

/*
TestStatus_Live verifies tombstone detection.
*/
func TestStatus_Live(t *testing.T) {
	assert.True(t, lifecycle.StatusPrivate.Live())
	assert.True(t, lifecycle.StatusPublic.Live())
	assert.False(t, lifecycle.StatusDeleted.Live())
	assert.False(t, lifecycle.Status("archived").Valid())
}

/*
TestDescriptor_Clauses verifies the generated WHERE fragments that every
store query embeds.
*/
func TestDescriptor_Clauses(t *testing.T) {
	d := lifecycle.Descriptor{
		Kind:        "Course",
		Table:       "courses",
		OwnerColumn: "creator",
	}

	assert.Equal(t,
		"status <> 'deleted' AND (status = 'public' OR creator = $2)",
		d.VisibleClause(2),
	)
	assert.Equal(t,
		"creator = $1 AND status <> 'deleted'",
		d.OwnedClause(1),
	)
	assert.Equal(t,
		"id = $1 AND creator = $2 AND status <> 'deleted'",
		d.MutableClause(1, 2),
	)
	assert.Equal(t, "status = 'public'", lifecycle.PublicClause)
}

/*
TestDescriptor_Clauses_OwnerColumn verifies the article variant, which owns
rows through "author" instead of "creator".
*/
func TestDescriptor_Clauses_OwnerColumn(t *testing.T) {
	d := lifecycle.Descriptor{Kind: "Article", Table: "articles", OwnerColumn: "author"}

	assert.Contains(t, d.VisibleClause(3), "author = $3")
	assert.Contains(t, d.OwnedClause(1), "author = $1")
}

/*
TestDescriptor_RemovalStatements verifies the three statements a delete
executes: the conditional tombstone, the dependent cascades in declared
order, and the backward-only parent unlink.
*/
func TestDescriptor_RemovalStatements(t *testing.T) {
	root := lifecycle.Descriptor{
		Kind:        "Course",
		Table:       "courses",
		OwnerColumn: "creator",
		Cascades: []lifecycle.CascadeRule{
			{Table: "chapters", FKColumn: "course"},
			{Table: "sections", FKColumn: "chapter", ViaTable: "chapters", ViaFKColumn: "course"},
		},
	}
	child := lifecycle.Descriptor{
		Kind:        "Chapter",
		Table:       "chapters",
		OwnerColumn: "creator",
		Parent: &lifecycle.ParentLink{
			Table:      "courses",
			FKColumn:   "course",
			ListColumn: "chapters",
		},
	}

	t.Run("tombstone_rechecks_owner_and_liveness", func(t *testing.T) {
		assert.Equal(t,
			"UPDATE courses SET status = 'deleted', updated_at = now() "+
				"WHERE id = $1 AND creator = $2 AND status <> 'deleted'",
			root.TombstoneQuery(),
		)
	})

	t.Run("tombstone_returns_parent_id_when_linked", func(t *testing.T) {
		assert.Equal(t,
			"UPDATE chapters SET status = 'deleted', updated_at = now() "+
				"WHERE id = $1 AND creator = $2 AND status <> 'deleted' RETURNING course",
			child.TombstoneQuery(),
		)
	})

	t.Run("cascades_cover_children_then_grandchildren", func(t *testing.T) {
		require.Len(t, root.Cascades, 2)

		// Direct children: no owner guard, containment wins over authorship.
		assert.Equal(t,
			"UPDATE chapters SET status = 'deleted', updated_at = now() "+
				"WHERE course = $1 AND status <> 'deleted'",
			root.Cascades[0].Query(),
		)

		// Grandchildren reach through the intermediate table.
		assert.Equal(t,
			"UPDATE sections SET status = 'deleted', updated_at = now() "+
				"WHERE chapter IN (SELECT id FROM chapters WHERE course = $1) AND status <> 'deleted'",
			root.Cascades[1].Query(),
		)
	})

	t.Run("unlink_touches_only_own_parent_list", func(t *testing.T) {
		assert.Equal(t,
			"UPDATE courses SET chapters = array_remove(chapters, $1::uuid), updated_at = now() WHERE id = $2",
			child.Parent.UnlinkQuery(),
		)
	})

	t.Run("leaf_kind_cascades_nothing", func(t *testing.T) {
		leaf := lifecycle.Descriptor{Kind: "Article", Table: "articles", OwnerColumn: "author"}
		assert.Empty(t, leaf.Cascades)
		assert.NotContains(t, leaf.TombstoneQuery(), "RETURNING")
	})
}

type ref struct{ id, title string }

/*
TestReorderByIDs verifies order preservation and silent dropping of missing
ids in batch lookups.
*/
func TestReorderByIDs(t *testing.T) {
	items := []ref{{"b", "Second"}, {"a", "First"}, {"c", "Third"}}
	idOf := func(r ref) string { return r.id }

	t.Run("restores_requested_order", func(t *testing.T) {
		got := lifecycle.ReorderByIDs([]string{"a", "b", "c"}, items, idOf)
		assert.Equal(t, []ref{{"a", "First"}, {"b", "Second"}, {"c", "Third"}}, got)
	})

	t.Run("drops_missing_without_gaps", func(t *testing.T) {
		got := lifecycle.ReorderByIDs([]string{"c", "deleted-or-hidden", "a"}, items, idOf)
		assert.Equal(t, []ref{{"c", "Third"}, {"a", "First"}}, got)
	})

	t.Run("duplicate_ids_duplicate_items", func(t *testing.T) {
		got := lifecycle.ReorderByIDs([]string{"a", "a"}, items, idOf)
		assert.Len(t, got, 2)
		assert.Equal(t, got[0], got[1])
	})

	t.Run("empty_request", func(t *testing.T) {
		assert.Empty(t, lifecycle.ReorderByIDs(nil, items, idOf))
	})
}
