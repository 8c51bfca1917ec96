// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

package lifecycle

import "fmt"

// Descriptor declares how one content kind maps onto its table, who owns its
// rows, and what depends on it. It is plain data: each kind package builds
// one Descriptor at init time and hands it to the [Engine] with every call.
type Descriptor struct {
	// Kind is the client-facing resource name used in error messages
	// (e.g. "Course").
	Kind string

	// Table is the PostgreSQL table holding rows of this kind.
	Table string

	// OwnerColumn is the column carrying the owner's account id. Courses,
	// chapters, and sections use "creator"; articles use "author".
	OwnerColumn string

	// Parent, when set, names the containing kind. Deleting a row of this
	// kind directly unlinks its id from that parent's list column. Deleting
	// the parent does NOT touch this row's own lists (unlinking is
	// backward-only).
	Parent *ParentLink

	// Cascades lists the dependent tables whose rows are tombstoned when a
	// row of this kind is deleted.
	Cascades []CascadeRule
}

// ParentLink names the containment edge from a child kind back to its parent.
type ParentLink struct {
	// Table is the parent's table (e.g. "courses").
	Table string

	// FKColumn is the column on the CHILD table holding the parent id
	// (e.g. "course" on chapters).
	FKColumn string

	// ListColumn is the uuid[] column on the PARENT table holding the
	// ordered child ids (e.g. "chapters" on courses).
	ListColumn string
}

// CascadeRule tombstones dependent rows when their ancestor is deleted.
//
// With ViaTable empty the rule matches direct children:
//
//	UPDATE <Table> SET status = 'deleted' WHERE <FKColumn> = ancestor
//
// With ViaTable set the rule matches grandchildren through the intermediate
// table:
//
//	UPDATE <Table> SET status = 'deleted'
//	WHERE <FKColumn> IN (SELECT id FROM <ViaTable> WHERE <ViaFKColumn> = ancestor)
type CascadeRule struct {
	Table       string
	FKColumn    string
	ViaTable    string
	ViaFKColumn string
}

// # Visibility Clauses
//
// Every read the system performs goes through one of three WHERE fragments.
// Keeping them here, next to the state machine, means no store can forget the
// tombstone check or leak a private row.

// VisibleClause returns the combined single-item visibility filter: the row
// is not deleted AND is either public or owned by the actor bound at argPos.
// An anonymous request binds the empty string, which matches no owner.
func (d Descriptor) VisibleClause(argPos int) string {
	return fmt.Sprintf("status <> 'deleted' AND (status = 'public' OR %s = $%d)",
		d.OwnerColumn, argPos)
}

// OwnedClause returns the owner-listing filter: every live row belonging to
// the actor bound at argPos, regardless of publication state.
func (d Descriptor) OwnedClause(argPos int) string {
	return fmt.Sprintf("%s = $%d AND status <> 'deleted'", d.OwnerColumn, argPos)
}

// PublicClause is the anonymous-listing filter. Public rows are by definition
// not deleted, so no tombstone check is needed.
const PublicClause = "status = 'public'"

// MutableClause returns the guard used by every write: the row must exist,
// belong to the actor bound at ownerArg, and not be tombstoned. A write whose
// guard matches nothing reports NotFound, never Forbidden.
func (d Descriptor) MutableClause(idArg, ownerArg int) string {
	return fmt.Sprintf("id = $%d AND %s = $%d AND status <> 'deleted'",
		idArg, d.OwnerColumn, ownerArg)
}

// # Removal Statements
//
// The three statements a delete executes, in order: tombstone the row,
// tombstone its dependents rule by rule, unlink the row from its parent's
// list. The engine binds the row id as $1 and the actor id as $2 in the
// tombstone; the cascade statements bind the row id as $1.

// TombstoneQuery returns the conditional delete of the row itself. When the
// kind has a parent the statement also returns the parent id, so the unlink
// step knows which parent row to touch.
func (d Descriptor) TombstoneQuery() string {
	query := fmt.Sprintf("UPDATE %s SET status = 'deleted', updated_at = now() WHERE %s",
		d.Table, d.MutableClause(1, 2))
	if d.Parent != nil {
		query += " RETURNING " + d.Parent.FKColumn
	}
	return query
}

// Query returns the dependent tombstone statement for one cascade rule.
// Dependents are matched regardless of who created them: containment wins
// over authorship, so no owner guard appears here.
func (r CascadeRule) Query() string {
	if r.ViaTable == "" {
		return fmt.Sprintf(
			"UPDATE %s SET status = 'deleted', updated_at = now() WHERE %s = $1 AND status <> 'deleted'",
			r.Table, r.FKColumn)
	}
	return fmt.Sprintf(
		"UPDATE %s SET status = 'deleted', updated_at = now() WHERE %s IN (SELECT id FROM %s WHERE %s = $1) AND status <> 'deleted'",
		r.Table, r.FKColumn, r.ViaTable, r.ViaFKColumn)
}

// UnlinkQuery returns the backward-only unlink: the deleted row's id ($1) is
// removed from its own parent's ($2) list column, and nothing else.
func (p ParentLink) UnlinkQuery() string {
	return fmt.Sprintf(
		"UPDATE %s SET %s = array_remove(%s, $1::uuid), updated_at = now() WHERE id = $2",
		p.Table, p.ListColumn, p.ListColumn)
}
