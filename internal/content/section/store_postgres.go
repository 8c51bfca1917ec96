// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

/*
PostgreSQL implementation of the section repository. Creation mirrors the
chapter store: the parent chapter's section list and the new row change in
one transaction, with the conditional parent update doubling as the
ownership check.
*/
package section

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

// sectionColumns is the canonical SELECT list, kept in sync with scanSection.
const sectionColumns = `id, title, slug, type, description, brief, content,
	chapter, exercise, status, creator, created_at, updated_at`

// # PostgreSQL Repository

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed section store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

/*
Create inserts the section and links it into the parent chapter atomically.
A foreign or deleted chapter makes the whole operation fail as "Chapter not
found" with nothing written.
*/
func (repository *repository) Create(ctx context.Context, section *Section) error {
	tx, err := repository.pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, Descriptor.Kind)
	}
	defer tx.Rollback(ctx)

	linkQuery := `
		UPDATE chapters
		SET sections = array_append(sections, $1), updated_at = now()
		WHERE id = $2 AND creator = $3 AND status <> 'deleted'`

	tag, err := tx.Exec(ctx, linkQuery, section.ID, section.Chapter, section.Creator)
	if err != nil {
		return dberr.Wrap(err, "Chapter")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Chapter")
	}

	insertQuery := `
		INSERT INTO sections (
			id, title, slug, type, description, brief, content, chapter,
			exercise, status, creator
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`

	err = tx.QueryRow(ctx, insertQuery,
		section.ID,
		section.Title,
		section.Slug,
		string(section.Type),
		section.Description,
		section.Brief,
		section.Content,
		section.Chapter,
		section.Exercise,
		string(section.Status),
		section.Creator,
	).Scan(&section.CreatedAt, &section.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, Descriptor.Kind)
	}

	if err := tx.Commit(ctx); err != nil {
		return dberr.Wrap(err, Descriptor.Kind)
	}
	return nil
}

// FindByID fetches one section under the combined visibility rule.
func (repository *repository) FindByID(ctx context.Context, id, actorID string) (*Section, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM sections WHERE id = $1 AND %s`,
		sectionColumns, Descriptor.VisibleClause(2),
	)

	return scanSection(repository.pool.QueryRow(ctx, query, id, actorID))
}

// FindByIDs batch-fetches the visible subset of ids in the requested order.
func (repository *repository) FindByIDs(ctx context.Context, ids []string, actorID string) ([]*Section, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(
		`SELECT %s FROM sections WHERE id = ANY($1::uuid[]) AND %s`,
		sectionColumns, Descriptor.VisibleClause(2),
	)

	rows, err := repository.pool.Query(ctx, query, ids, actorID)
	if err != nil {
		return nil, dberr.Wrap(err, Descriptor.Kind)
	}
	defer rows.Close()

	var sections []*Section
	for rows.Next() {
		section, err := scanSection(rows)
		if err != nil {
			return nil, err
		}
		sections = append(sections, section)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, Descriptor.Kind)
	}

	return lifecycle.ReorderByIDs(ids, sections, func(s *Section) string { return s.ID }), nil
}

// ListOwned pages through the actor's live sections, newest first.
func (repository *repository) ListOwned(ctx context.Context, actorID string, limit, offset int) ([]*Section, int, error) {
	query := fmt.Sprintf(
		`SELECT %s, COUNT(*) OVER() AS total_count
		 FROM sections WHERE %s
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2 OFFSET $3`,
		sectionColumns, Descriptor.OwnedClause(1),
	)

	return repository.list(ctx, query, actorID, limit, offset)
}

// ListPublic pages through public sections, newest first.
func (repository *repository) ListPublic(ctx context.Context, limit, offset int) ([]*Section, int, error) {
	query := fmt.Sprintf(
		`SELECT %s, COUNT(*) OVER() AS total_count
		 FROM sections WHERE %s
		 ORDER BY created_at DESC, id DESC
		 LIMIT $1 OFFSET $2`,
		sectionColumns, lifecycle.PublicClause,
	)

	return repository.list(ctx, query, limit, offset)
}

/*
Update applies a partial modification. The type and chapter columns are
structurally absent from the builder; a section keeps its kind and its
parent for life. An empty exercise value clears the link to NULL.
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
	if update.Content != nil {
		set("content", *update.Content)
	}
	if update.Exercise != nil {
		if *update.Exercise == "" {
			set("exercise", nil)
		} else {
			set("exercise", *update.Exercise)
		}
	}

	if len(sets) == 0 {
		return nil
	}

	query := fmt.Sprintf(
		`UPDATE sections SET %s, updated_at = now() WHERE %s`,
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

func (repository *repository) list(ctx context.Context, query string, args ...any) ([]*Section, int, error) {
	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, Descriptor.Kind)
	}
	defer rows.Close()

	var sections []*Section
	var totalCount int

	for rows.Next() {
		section := &Section{}
		err := rows.Scan(
			&section.ID,
			&section.Title,
			&section.Slug,
			&section.Type,
			&section.Description,
			&section.Brief,
			&section.Content,
			&section.Chapter,
			&section.Exercise,
			&section.Status,
			&section.Creator,
			&section.CreatedAt,
			&section.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, Descriptor.Kind)
		}
		sections = append(sections, section)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, Descriptor.Kind)
	}

	return sections, totalCount, nil
}

// scanSection maps one row onto the entity, translating ErrNoRows to NotFound.
func scanSection(row pgx.Row) (*Section, error) {
	section := &Section{}
	err := row.Scan(
		&section.ID,
		&section.Title,
		&section.Slug,
		&section.Type,
		&section.Description,
		&section.Brief,
		&section.Content,
		&section.Chapter,
		&section.Exercise,
		&section.Status,
		&section.Creator,
		&section.CreatedAt,
		&section.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, Descriptor.Kind)
	}
	return section, nil
}
