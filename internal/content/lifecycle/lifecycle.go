// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

/*
Package lifecycle implements the shared ownership-and-visibility state machine
for every content kind (courses, chapters, sections, articles, playlists,
test suites).

All content moves through the same three states:

	private ──publish──▶ public
	public ──unpublish─▶ private
	private/public ──delete──▶ deleted (terminal)

Deletion is a tombstone, never a row removal: deleted rows keep their data but
are excluded from every query the engine or the stores issue. Because the
exclusion happens inside the WHERE clause, a deleted row, a row owned by
someone else, and a row that never existed are indistinguishable to a caller.

The per-kind packages describe their table shape with a [Descriptor]; the
[Engine] executes the transitions, the cascading delete, and the
backward-only unlink generically against that description.
*/
package lifecycle

// Status is the lifecycle state of a content row.
type Status string

const (
	// StatusPrivate is the initial state: visible to the owner only.
	StatusPrivate Status = "private"

	// StatusPublic makes the row readable by anyone, including anonymous
	// requests. Mutation remains owner-only.
	StatusPublic Status = "public"

	// StatusDeleted is the terminal tombstone state. No operation ever
	// leaves it.
	StatusDeleted Status = "deleted"
)

// Valid reports whether s is one of the three known states.
func (s Status) Valid() bool {
	switch s {
	case StatusPrivate, StatusPublic, StatusDeleted:
		return true
	}
	return false
}

// Live reports whether the state is addressable at all (not tombstoned).
func (s Status) Live() bool {
	return s == StatusPrivate || s == StatusPublic
}

// CanTransitionTo reports whether the state machine permits moving from s to
// target. Publishing and unpublishing are idempotent; nothing leaves deleted.
func (s Status) CanTransitionTo(target Status) bool {
	if s == StatusDeleted {
		return false
	}
	return target.Valid()
}
