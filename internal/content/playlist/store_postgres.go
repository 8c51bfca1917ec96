// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

/*
PostgreSQL implementation of the playlist repository. Course hydration reads
the courses table directly with the combined visibility filter: a playlist
can reference anyone's course, but only public ones (or the actor's own)
survive into the hydrated view.
*/
package playlist

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

// playlistColumns is the canonical SELECT list, kept in sync with scanPlaylist.
const playlistColumns = `id, title, slug, description, courses, status, creator,
	created_at, updated_at`

// # PostgreSQL Repository

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed playlist store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// Create inserts a new playlist row.
func (repository *repository) Create(ctx context.Context, playlist *Playlist) error {
	query := `
		INSERT INTO playlists (id, title, slug, description, courses, status, creator)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err := repository.pool.QueryRow(ctx, query,
		playlist.ID,
		playlist.Title,
		playlist.Slug,
		playlist.Description,
		playlist.Courses,
		string(playlist.Status),
		playlist.Creator,
	).Scan(&playlist.CreatedAt, &playlist.UpdatedAt)

	if err != nil {
		return dberr.Wrap(err, Descriptor.Kind)
	}
	return nil
}

// FindByID fetches one playlist under the combined visibility rule.
func (repository *repository) FindByID(ctx context.Context, id, actorID string) (*Playlist, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM playlists WHERE id = $1 AND %s`,
		playlistColumns, Descriptor.VisibleClause(2),
	)

	return scanPlaylist(repository.pool.QueryRow(ctx, query, id, actorID))
}

// FindByIDs batch-fetches the visible subset of ids in the requested order.
func (repository *repository) FindByIDs(ctx context.Context, ids []string, actorID string) ([]*Playlist, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(
		`SELECT %s FROM playlists WHERE id = ANY($1::uuid[]) AND %s`,
		playlistColumns, Descriptor.VisibleClause(2),
	)

	rows, err := repository.pool.Query(ctx, query, ids, actorID)
	if err != nil {
		return nil, dberr.Wrap(err, Descriptor.Kind)
	}
	defer rows.Close()

	var playlists []*Playlist
	for rows.Next() {
		playlist, err := scanPlaylist(rows)
		if err != nil {
			return nil, err
		}
		playlists = append(playlists, playlist)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, Descriptor.Kind)
	}

	return lifecycle.ReorderByIDs(ids, playlists, func(p *Playlist) string { return p.ID }), nil
}

// ListOwned pages through the actor's live playlists, newest first.
func (repository *repository) ListOwned(ctx context.Context, actorID string, limit, offset int) ([]*Playlist, int, error) {
	query := fmt.Sprintf(
		`SELECT %s, COUNT(*) OVER() AS total_count
		 FROM playlists WHERE %s
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2 OFFSET $3`,
		playlistColumns, Descriptor.OwnedClause(1),
	)

	return repository.list(ctx, query, actorID, limit, offset)
}

// ListPublic pages through public playlists, newest first.
func (repository *repository) ListPublic(ctx context.Context, limit, offset int) ([]*Playlist, int, error) {
	query := fmt.Sprintf(
		`SELECT %s, COUNT(*) OVER() AS total_count
		 FROM playlists WHERE %s
		 ORDER BY created_at DESC, id DESC
		 LIMIT $1 OFFSET $2`,
		playlistColumns, lifecycle.PublicClause,
	)

	return repository.list(ctx, query, limit, offset)
}

// Update applies a partial modification through a dynamically built SET list.
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
	if update.Courses != nil {
		set("courses", *update.Courses)
	}

	if len(sets) == 0 {
		return nil
	}

	query := fmt.Sprintf(
		`UPDATE playlists SET %s, updated_at = now() WHERE %s`,
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
CourseSummaries hydrates playlist entries from the courses table under the
actor's visibility, preserving the playlist order. Private and deleted
courses silently vanish, so the result may be shorter than the input.
*/
func (repository *repository) CourseSummaries(ctx context.Context, ids []string, actorID string) ([]CourseSummary, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, title, slug, brief, image_url, status
		FROM courses
		WHERE id = ANY($1::uuid[])
		  AND status <> 'deleted' AND (status = 'public' OR creator = $2)`

	rows, err := repository.pool.Query(ctx, query, ids, actorID)
	if err != nil {
		return nil, dberr.Wrap(err, "Course")
	}
	defer rows.Close()

	var summaries []CourseSummary
	for rows.Next() {
		var summary CourseSummary
		err := rows.Scan(
			&summary.ID,
			&summary.Title,
			&summary.Slug,
			&summary.Brief,
			&summary.ImageURL,
			&summary.Status,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "Course")
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "Course")
	}

	return lifecycle.ReorderByIDs(ids, summaries, func(s CourseSummary) string { return s.ID }), nil
}

// # Scanning Helpers

func (repository *repository) list(ctx context.Context, query string, args ...any) ([]*Playlist, int, error) {
	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, Descriptor.Kind)
	}
	defer rows.Close()

	var playlists []*Playlist
	var totalCount int

	for rows.Next() {
		playlist := &Playlist{}
		err := rows.Scan(
			&playlist.ID,
			&playlist.Title,
			&playlist.Slug,
			&playlist.Description,
			&playlist.Courses,
			&playlist.Status,
			&playlist.Creator,
			&playlist.CreatedAt,
			&playlist.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, Descriptor.Kind)
		}
		playlists = append(playlists, playlist)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, Descriptor.Kind)
	}

	return playlists, totalCount, nil
}

// scanPlaylist maps one row onto the entity, translating ErrNoRows to NotFound.
func scanPlaylist(row pgx.Row) (*Playlist, error) {
	playlist := &Playlist{}
	err := row.Scan(
		&playlist.ID,
		&playlist.Title,
		&playlist.Slug,
		&playlist.Description,
		&playlist.Courses,
		&playlist.Status,
		&playlist.Creator,
		&playlist.CreatedAt,
		&playlist.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, Descriptor.Kind)
	}
	return playlist, nil
}
