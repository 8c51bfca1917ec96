// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

/*
PostgreSQL implementation of the test-suite repository. The tests document
lives in a JSONB column, written and read verbatim. The unique index on
handle turns duplicate creations into a constraint violation, which the
error translation surfaces as a conflict.
*/
package testsuite

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hanvu/lectern/internal/content/lifecycle"
	"github.com/hanvu/lectern/internal/platform/apperr"
	"github.com/hanvu/lectern/internal/platform/dberr"
)

// suiteColumns is the canonical SELECT list, kept in sync with scanSuite.
const suiteColumns = `id, handle, title, description, tests, status, creator,
	created_at, updated_at`

// # PostgreSQL Repository

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed test-suite store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// Create inserts a new suite row. Duplicate handles surface as Conflict.
func (repository *repository) Create(ctx context.Context, suite *TestSuite) error {
	query := `
		INSERT INTO test_suites (id, handle, title, description, tests, status, creator)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err := repository.pool.QueryRow(ctx, query,
		suite.ID,
		suite.Handle,
		suite.Title,
		suite.Description,
		suite.Tests,
		string(suite.Status),
		suite.Creator,
	).Scan(&suite.CreatedAt, &suite.UpdatedAt)

	if err != nil {
		return dberr.Wrap(err, Descriptor.Kind)
	}
	return nil
}

// FindByID fetches one suite under the combined visibility rule.
func (repository *repository) FindByID(ctx context.Context, id, actorID string) (*TestSuite, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM test_suites WHERE id = $1 AND %s`,
		suiteColumns, Descriptor.VisibleClause(2),
	)

	return scanSuite(repository.pool.QueryRow(ctx, query, id, actorID))
}

// FindByHandle resolves the machine handle with the same visibility rule.
func (repository *repository) FindByHandle(ctx context.Context, handle, actorID string) (*TestSuite, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM test_suites WHERE handle = $1 AND %s`,
		suiteColumns, Descriptor.VisibleClause(2),
	)

	return scanSuite(repository.pool.QueryRow(ctx, query, handle, actorID))
}

// ListOwned pages through the actor's live suites, optionally narrowed by a
// title substring, newest first.
func (repository *repository) ListOwned(ctx context.Context, actorID, search string, limit, offset int) ([]*TestSuite, int, error) {
	query := fmt.Sprintf(
		`SELECT %s, COUNT(*) OVER() AS total_count
		 FROM test_suites
		 WHERE %s AND ($2 = '' OR title ILIKE '%%' || $2 || '%%')
		 ORDER BY created_at DESC, id DESC
		 LIMIT $3 OFFSET $4`,
		suiteColumns, Descriptor.OwnedClause(1),
	)

	return repository.list(ctx, query, actorID, search, limit, offset)
}

// ListPublic pages through public suites with the same optional filter.
func (repository *repository) ListPublic(ctx context.Context, search string, limit, offset int) ([]*TestSuite, int, error) {
	query := fmt.Sprintf(
		`SELECT %s, COUNT(*) OVER() AS total_count
		 FROM test_suites
		 WHERE %s AND ($1 = '' OR title ILIKE '%%' || $1 || '%%')
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2 OFFSET $3`,
		suiteColumns, lifecycle.PublicClause,
	)

	return repository.list(ctx, query, search, limit, offset)
}

// Update applies a partial modification. The handle is structurally absent
// from the builder; external references stay valid for the suite's life.
func (repository *repository) Update(ctx context.Context, id, actorID string, update Update) error {
	var sets []string
	var args []any
	argID := 1

	set := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argID))
		args = append(args, value)
		argID++
	}

	if update.Title != nil {
		set("title", *update.Title)
	}
	if update.Description != nil {
		set("description", *update.Description)
	}
	if update.Tests != nil {
		set("tests", *update.Tests)
	}

	if len(sets) == 0 {
		return nil
	}

	query := fmt.Sprintf(
		`UPDATE test_suites SET %s, updated_at = now() WHERE %s`,
		strings.Join(sets, ", "),
		Descriptor.MutableClause(argID, argID+1),
	)
	args = append(args, id, actorID)

	tag, err := repository.pool.Exec(ctx, query, args...)
	if err != nil {
		return dberr.Wrap(err, Descriptor.Kind)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(Descriptor.Kind)
	}
	return nil
}

// # Scanning Helpers

func (repository *repository) list(ctx context.Context, query string, args ...any) ([]*TestSuite, int, error) {
	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, Descriptor.Kind)
	}
	defer rows.Close()

	var suites []*TestSuite
	var totalCount int

	for rows.Next() {
		suite := &TestSuite{}
		err := rows.Scan(
			&suite.ID,
			&suite.Handle,
			&suite.Title,
			&suite.Description,
			&suite.Tests,
			&suite.Status,
			&suite.Creator,
			&suite.CreatedAt,
			&suite.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, Descriptor.Kind)
		}
		suites = append(suites, suite)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, Descriptor.Kind)
	}

	return suites, totalCount, nil
}

// scanSuite maps one row onto the entity, translating ErrNoRows to NotFound.
func scanSuite(row pgx.Row) (*TestSuite, error) {
	suite := &TestSuite{}
	err := row.Scan(
		&suite.ID,
		&suite.Handle,
		&suite.Title,
		&suite.Description,
		&suite.Tests,
		&suite.Status,
		&suite.Creator,
		&suite.CreatedAt,
		&suite.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, Descriptor.Kind)
	}
	return suite, nil
}
