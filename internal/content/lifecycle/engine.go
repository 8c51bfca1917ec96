// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

package lifecycle

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hanvu/lectern/internal/platform/apperr"
	"github.com/hanvu/lectern/internal/platform/ctxutil"
	"github.com/hanvu/lectern/internal/platform/dberr"
)

// Engine executes lifecycle transitions against PostgreSQL.
//
// # Concurrency
//
// The engine never reads a row before writing it. Every transition is a
// single conditional UPDATE whose WHERE clause re-checks ownership and
// liveness, so two racing requests serialize on the row lock and the loser
// of a delete race observes NotFound. Cascading deletes run inside one
// transaction and commit atomically.
type Engine struct {
	pool *pgxpool.Pool
}

// NewEngine creates an Engine bound to the given connection pool.
func NewEngine(pool *pgxpool.Pool) *Engine {
	return &Engine{pool: pool}
}

/*
SetStatus moves a row between the private and public states.

The target must be [StatusPrivate] or [StatusPublic]; deletion goes through
[Engine.Remove] because it cascades. The row must be live and owned by the
actor or the call reports NotFound. Re-applying the current state succeeds
without observable effect.

Parameters:
  - ctx: Request context.
  - descriptor: Table mapping for the kind being updated.
  - id: Row UUID.
  - actorID: Account id of the caller.
  - target: The desired state.

Returns:
  - error: apperr.NotFound if no live owned row matched, otherwise nil.
*/
func (engine *Engine) SetStatus(ctx context.Context, descriptor Descriptor, id, actorID string, target Status) error {
	if target != StatusPrivate && target != StatusPublic {
		return apperr.Unprocessable("Unsupported status transition")
	}

	query := fmt.Sprintf(
		`UPDATE %s SET status = $1, updated_at = now() WHERE %s`,
		descriptor.Table,
		descriptor.MutableClause(2, 3),
	)

	tag, err := engine.pool.Exec(ctx, query, string(target), id, actorID)
	if err != nil {
		return dberr.Wrap(err, descriptor.Kind)
	}

	// Zero rows: missing, foreign, or already deleted. All the same answer.
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(descriptor.Kind)
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "content_status_changed",
		slog.String("kind", descriptor.Table),
		slog.String("id", id),
		slog.String("status", string(target)),
	)

	return nil
}

/*
Remove tombstones a row and everything contained in it, atomically.

Flow, all inside one transaction:
 1. Conditionally tombstone the row itself (owner + liveness re-checked in
    the WHERE clause). Zero rows matched aborts with NotFound before any
    dependent row is touched.
 2. Apply each [CascadeRule], tombstoning live dependents regardless of who
    created them: containment wins over authorship.
 3. If the kind has a parent, remove the row's id from the parent's list
    column. This is the only unlinking performed; the deleted row's own list
    columns keep their ids as tombstone metadata.

Returns:
  - error: apperr.NotFound if no live owned row matched, otherwise nil.
*/
func (engine *Engine) Remove(ctx context.Context, descriptor Descriptor, id, actorID string) error {
	tx, err := engine.pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, descriptor.Kind)
	}
	defer tx.Rollback(ctx)

	// ── 1. Tombstone the row itself ───────────────────────────────────────
	var parentID *string
	if descriptor.Parent != nil {
		if err := tx.QueryRow(ctx, descriptor.TombstoneQuery(), id, actorID).Scan(&parentID); err != nil {
			// ErrNoRows maps to NotFound: missing, foreign, and deleted
			// rows are indistinguishable.
			return dberr.Wrap(err, descriptor.Kind)
		}
	} else {
		tag, err := tx.Exec(ctx, descriptor.TombstoneQuery(), id, actorID)
		if err != nil {
			return dberr.Wrap(err, descriptor.Kind)
		}
		if tag.RowsAffected() == 0 {
			return apperr.NotFound(descriptor.Kind)
		}
	}

	// ── 2. Cascade to dependents ──────────────────────────────────────────
	cascaded := int64(0)
	for _, rule := range descriptor.Cascades {
		tag, err := tx.Exec(ctx, rule.Query(), id)
		if err != nil {
			return dberr.Wrap(err, descriptor.Kind)
		}
		cascaded += tag.RowsAffected()
	}

	// ── 3. Backward-only unlink from the parent list ──────────────────────
	if descriptor.Parent != nil && parentID != nil {
		if _, err := tx.Exec(ctx, descriptor.Parent.UnlinkQuery(), id, *parentID); err != nil {
			return dberr.Wrap(err, descriptor.Kind)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return dberr.Wrap(err, descriptor.Kind)
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "content_removed",
		slog.String("kind", descriptor.Table),
		slog.String("id", id),
		slog.Int64("cascaded", cascaded),
	)

	return nil
}
