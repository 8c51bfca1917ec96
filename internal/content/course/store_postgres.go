// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

/*
PostgreSQL implementation of the course repository.

It leans on a few PostgreSQL features to keep round-trips down:
  - Window Functions: COUNT(*) OVER() folds the total count into list queries.
  - Arrays: the curriculum is a uuid[] column read straight into []string;
    batch lookups use id = ANY($1).
  - Conditional Writes: every mutation re-checks ownership and liveness in
    its WHERE clause, so concurrency control needs no explicit locking.
*/
package course

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

// courseColumns is the canonical SELECT list, kept in sync with scanCourse.
const courseColumns = `id, title, slug, description, brief, level, image_url, language_code,
	linear, actual_price, discounted_price, requirements, objectives, targets,
	resources, chapters, status, creator, created_at, updated_at`

// # PostgreSQL Repository

// repository implements [Repository] using pgx.
type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed course store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

/*
Create inserts a new course row.

The row is born with whatever status the service assigned (always private)
and an empty or caller-provided chapter list. Timestamps come back from the
database so the returned entity matches storage exactly.
*/
func (repository *repository) Create(ctx context.Context, course *Course) error {
	query := `
		INSERT INTO courses (
			id, title, slug, description, brief, level, image_url, language_code,
			linear, actual_price, discounted_price, requirements, objectives,
			targets, resources, chapters, status, creator
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING created_at, updated_at`

	err := repository.pool.QueryRow(ctx, query,
		course.ID,
		course.Title,
		course.Slug,
		course.Description,
		course.Brief,
		string(course.Level),
		course.ImageURL,
		course.LanguageCode,
		course.Linear,
		course.ActualPrice,
		course.DiscountedPrice,
		course.Requirements,
		course.Objectives,
		course.Targets,
		course.Resources,
		course.Chapters,
		string(course.Status),
		course.Creator,
	).Scan(&course.CreatedAt, &course.UpdatedAt)

	if err != nil {
		return dberr.Wrap(err, Descriptor.Kind)
	}
	return nil
}

/*
FindByID fetches one course under the combined visibility rule.

The WHERE clause is the only access check in the system: a tombstoned row, a
foreign private row, and an absent row are all pgx.ErrNoRows here and surface
as the same NotFound upstream.
*/
func (repository *repository) FindByID(ctx context.Context, id, actorID string) (*Course, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM courses WHERE id = $1 AND %s`,
		courseColumns, Descriptor.VisibleClause(2),
	)

	return scanCourse(repository.pool.QueryRow(ctx, query, id, actorID))
}

/*
FindBySlug resolves the canonical slug with the same visibility rule as
FindByID. Slugs are unique by construction (they embed the row id).
*/
func (repository *repository) FindBySlug(ctx context.Context, slugValue, actorID string) (*Course, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM courses WHERE slug = $1 AND %s`,
		courseColumns, Descriptor.VisibleClause(2),
	)

	return scanCourse(repository.pool.QueryRow(ctx, query, slugValue, actorID))
}

/*
FindByIDs batch-fetches the visible subset of the requested ids.

ANY($1) returns rows in storage order; the requested order is restored
afterwards. Hidden and unknown ids simply do not appear in the result.
*/
func (repository *repository) FindByIDs(ctx context.Context, ids []string, actorID string) ([]*Course, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(
		`SELECT %s FROM courses WHERE id = ANY($1::uuid[]) AND %s`,
		courseColumns, Descriptor.VisibleClause(2),
	)

	rows, err := repository.pool.Query(ctx, query, ids, actorID)
	if err != nil {
		return nil, dberr.Wrap(err, Descriptor.Kind)
	}
	defer rows.Close()

	var courses []*Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, Descriptor.Kind)
	}

	return lifecycle.ReorderByIDs(ids, courses, func(c *Course) string { return c.ID }), nil
}

/*
ListOwned pages through every live course belonging to the actor, newest
first. Private and public rows both appear; this is the owner's workbench
view.
*/
func (repository *repository) ListOwned(ctx context.Context, actorID string, limit, offset int) ([]*Course, int, error) {
	query := fmt.Sprintf(
		`SELECT %s, COUNT(*) OVER() AS total_count
		 FROM courses WHERE %s
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2 OFFSET $3`,
		courseColumns, Descriptor.OwnedClause(1),
	)

	return repository.list(ctx, query, actorID, limit, offset)
}

/*
ListPublic pages through the public catalog, newest first. No actor is
involved: this is what anonymous visitors browse.
*/
func (repository *repository) ListPublic(ctx context.Context, limit, offset int) ([]*Course, int, error) {
	query := fmt.Sprintf(
		`SELECT %s, COUNT(*) OVER() AS total_count
		 FROM courses WHERE %s
		 ORDER BY created_at DESC, id DESC
		 LIMIT $1 OFFSET $2`,
		courseColumns, lifecycle.PublicClause,
	)

	return repository.list(ctx, query, limit, offset)
}

/*
Update applies a partial modification through a dynamically built SET list.

Only fields present in the update are touched; slug, status, and creator are
structurally absent from the builder. The usual ownership guard sits in the
WHERE clause, so a non-owner "successfully" updates zero rows and gets
NotFound.
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
	if update.Level != nil {
		set("level", string(*update.Level))
	}
	if update.ImageURL != nil {
		set("image_url", *update.ImageURL)
	}
	if update.LanguageCode != nil {
		set("language_code", *update.LanguageCode)
	}
	if update.Linear != nil {
		set("linear", *update.Linear)
	}
	if update.ActualPrice != nil {
		set("actual_price", *update.ActualPrice)
	}
	if update.DiscountedPrice != nil {
		set("discounted_price", *update.DiscountedPrice)
	}
	if update.Requirements != nil {
		set("requirements", *update.Requirements)
	}
	if update.Objectives != nil {
		set("objectives", *update.Objectives)
	}
	if update.Targets != nil {
		set("targets", *update.Targets)
	}
	if update.Resources != nil {
		set("resources", *update.Resources)
	}
	if update.Chapters != nil {
		set("chapters", *update.Chapters)
	}

	if len(sets) == 0 {
		return nil
	}

	query := fmt.Sprintf(
		`UPDATE courses SET %s, updated_at = now() WHERE %s`,
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
ChapterSummaries hydrates curriculum entries from the chapters table under
the actor's visibility, preserving the curriculum order. Tombstoned chapter
ids lingering in the list vanish here.
*/
func (repository *repository) ChapterSummaries(ctx context.Context, ids []string, actorID string) ([]ChapterSummary, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, title, description, status
		FROM chapters
		WHERE id = ANY($1::uuid[])
		  AND status <> 'deleted' AND (status = 'public' OR creator = $2)`

	rows, err := repository.pool.Query(ctx, query, ids, actorID)
	if err != nil {
		return nil, dberr.Wrap(err, "Chapter")
	}
	defer rows.Close()

	var summaries []ChapterSummary
	for rows.Next() {
		var summary ChapterSummary
		if err := rows.Scan(&summary.ID, &summary.Title, &summary.Description, &summary.Status); err != nil {
			return nil, dberr.Wrap(err, "Chapter")
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "Chapter")
	}

	return lifecycle.ReorderByIDs(ids, summaries, func(s ChapterSummary) string { return s.ID }), nil
}

// # Scanning Helpers

// list runs a paged query whose SELECT list is courseColumns plus the
// total_count window column.
func (repository *repository) list(ctx context.Context, query string, args ...any) ([]*Course, int, error) {
	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, Descriptor.Kind)
	}
	defer rows.Close()

	var courses []*Course
	var totalCount int

	for rows.Next() {
		course := &Course{}
		err := rows.Scan(
			&course.ID,
			&course.Title,
			&course.Slug,
			&course.Description,
			&course.Brief,
			&course.Level,
			&course.ImageURL,
			&course.LanguageCode,
			&course.Linear,
			&course.ActualPrice,
			&course.DiscountedPrice,
			&course.Requirements,
			&course.Objectives,
			&course.Targets,
			&course.Resources,
			&course.Chapters,
			&course.Status,
			&course.Creator,
			&course.CreatedAt,
			&course.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, Descriptor.Kind)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, Descriptor.Kind)
	}

	return courses, totalCount, nil
}

// scanCourse maps one row onto the entity, translating ErrNoRows to NotFound.
func scanCourse(row pgx.Row) (*Course, error) {
	course := &Course{}
	err := row.Scan(
		&course.ID,
		&course.Title,
		&course.Slug,
		&course.Description,
		&course.Brief,
		&course.Level,
		&course.ImageURL,
		&course.LanguageCode,
		&course.Linear,
		&course.ActualPrice,
		&course.DiscountedPrice,
		&course.Requirements,
		&course.Objectives,
		&course.Targets,
		&course.Resources,
		&course.Chapters,
		&course.Status,
		&course.Creator,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, Descriptor.Kind)
	}
	return course, nil
}
