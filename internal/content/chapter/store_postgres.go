// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

/*
PostgreSQL implementation of the chapter repository.

Creation is the interesting path: the parent course's chapter list and the
new chapter row change together, so both statements run inside one
transaction. The parent update doubles as the authorization check: it is
conditional on the creator owning a live course, and zero affected rows
aborts the transaction before the chapter row exists.
*/
package chapter

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

// chapterColumns is the canonical SELECT list, kept in sync with scanChapter.
const chapterColumns = `id, title, slug, description, brief, course, sections,
	status, creator, created_at, updated_at`

// # PostgreSQL Repository

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed chapter store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

/*
Create inserts the chapter and links it into the parent course atomically.

The parent update runs first: its WHERE clause requires the course to be
live and owned by the chapter's creator, so a foreign or deleted course
makes the whole operation fail as "Course not found" with nothing written.
*/
func (repository *repository) Create(ctx context.Context, chapter *Chapter) error {
	tx, err := repository.pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, Descriptor.Kind)
	}
	defer tx.Rollback(ctx)

	linkQuery := `
		UPDATE courses
		SET chapters = array_append(chapters, $1), updated_at = now()
		WHERE id = $2 AND creator = $3 AND status <> 'deleted'`

	tag, err := tx.Exec(ctx, linkQuery, chapter.ID, chapter.Course, chapter.Creator)
	if err != nil {
		return dberr.Wrap(err, "Course")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Course")
	}

	insertQuery := `
		INSERT INTO chapters (
			id, title, slug, description, brief, course, sections, status, creator
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	err = tx.QueryRow(ctx, insertQuery,
		chapter.ID,
		chapter.Title,
		chapter.Slug,
		chapter.Description,
		chapter.Brief,
		chapter.Course,
		chapter.Sections,
		string(chapter.Status),
		chapter.Creator,
	).Scan(&chapter.CreatedAt, &chapter.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, Descriptor.Kind)
	}

	if err := tx.Commit(ctx); err != nil {
		return dberr.Wrap(err, Descriptor.Kind)
	}
	return nil
}

// FindByID fetches one chapter under the combined visibility rule.
func (repository *repository) FindByID(ctx context.Context, id, actorID string) (*Chapter, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM chapters WHERE id = $1 AND %s`,
		chapterColumns, Descriptor.VisibleClause(2),
	)

	return scanChapter(repository.pool.QueryRow(ctx, query, id, actorID))
}

// FindByIDs batch-fetches the visible subset of ids in the requested order.
func (repository *repository) FindByIDs(ctx context.Context, ids []string, actorID string) ([]*Chapter, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(
		`SELECT %s FROM chapters WHERE id = ANY($1::uuid[]) AND %s`,
		chapterColumns, Descriptor.VisibleClause(2),
	)

	rows, err := repository.pool.Query(ctx, query, ids, actorID)
	if err != nil {
		return nil, dberr.Wrap(err, Descriptor.Kind)
	}
	defer rows.Close()

	var chapters []*Chapter
	for rows.Next() {
		chapter, err := scanChapter(rows)
		if err != nil {
			return nil, err
		}
		chapters = append(chapters, chapter)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, Descriptor.Kind)
	}

	return lifecycle.ReorderByIDs(ids, chapters, func(c *Chapter) string { return c.ID }), nil
}

// ListOwned pages through the actor's live chapters, newest first.
func (repository *repository) ListOwned(ctx context.Context, actorID string, limit, offset int) ([]*Chapter, int, error) {
	query := fmt.Sprintf(
		`SELECT %s, COUNT(*) OVER() AS total_count
		 FROM chapters WHERE %s
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2 OFFSET $3`,
		chapterColumns, Descriptor.OwnedClause(1),
	)

	return repository.list(ctx, query, actorID, limit, offset)
}

// ListPublic pages through public chapters, newest first.
func (repository *repository) ListPublic(ctx context.Context, limit, offset int) ([]*Chapter, int, error) {
	query := fmt.Sprintf(
		`SELECT %s, COUNT(*) OVER() AS total_count
		 FROM chapters WHERE %s
		 ORDER BY created_at DESC, id DESC
		 LIMIT $1 OFFSET $2`,
		chapterColumns, lifecycle.PublicClause,
	)

	return repository.list(ctx, query, limit, offset)
}

/*
Update applies a partial modification through a dynamically built SET list.
The course back-reference is structurally absent from the builder: chapters
cannot be re-parented.
*/
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
	if update.Brief != nil {
		set("brief", *update.Brief)
	}
	if update.Sections != nil {
		set("sections", *update.Sections)
	}

	if len(sets) == 0 {
		return nil
	}

	query := fmt.Sprintf(
		`UPDATE chapters SET %s, updated_at = now() WHERE %s`,
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

/*
SectionSummaries hydrates section list entries from the sections table under
the actor's visibility, preserving the list order.
*/
func (repository *repository) SectionSummaries(ctx context.Context, ids []string, actorID string) ([]SectionSummary, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, title, type, status
		FROM sections
		WHERE id = ANY($1::uuid[])
		  AND status <> 'deleted' AND (status = 'public' OR creator = $2)`

	rows, err := repository.pool.Query(ctx, query, ids, actorID)
	if err != nil {
		return nil, dberr.Wrap(err, "Section")
	}
	defer rows.Close()

	var summaries []SectionSummary
	for rows.Next() {
		var summary SectionSummary
		if err := rows.Scan(&summary.ID, &summary.Title, &summary.Type, &summary.Status); err != nil {
			return nil, dberr.Wrap(err, "Section")
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "Section")
	}

	return lifecycle.ReorderByIDs(ids, summaries, func(s SectionSummary) string { return s.ID }), nil
}

// # Scanning Helpers

func (repository *repository) list(ctx context.Context, query string, args ...any) ([]*Chapter, int, error) {
	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, Descriptor.Kind)
	}
	defer rows.Close()

	var chapters []*Chapter
	var totalCount int

	for rows.Next() {
		chapter := &Chapter{}
		err := rows.Scan(
			&chapter.ID,
			&chapter.Title,
			&chapter.Slug,
			&chapter.Description,
			&chapter.Brief,
			&chapter.Course,
			&chapter.Sections,
			&chapter.Status,
			&chapter.Creator,
			&chapter.CreatedAt,
			&chapter.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, Descriptor.Kind)
		}
		chapters = append(chapters, chapter)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, Descriptor.Kind)
	}

	return chapters, totalCount, nil
}

// scanChapter maps one row onto the entity, translating ErrNoRows to NotFound.
func scanChapter(row pgx.Row) (*Chapter, error) {
	chapter := &Chapter{}
	err := row.Scan(
		&chapter.ID,
		&chapter.Title,
		&chapter.Slug,
		&chapter.Description,
		&chapter.Brief,
		&chapter.Course,
		&chapter.Sections,
		&chapter.Status,
		&chapter.Creator,
		&chapter.CreatedAt,
		&chapter.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, Descriptor.Kind)
	}
	return chapter, nil
}
