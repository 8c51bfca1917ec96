// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

/*
PostgreSQL implementation of the article repository. The visibility clauses
come from the descriptor, which points them at the author column instead of
creator; everything else matches the other content stores.
*/
package article

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

// articleColumns is the canonical SELECT list, kept in sync with scanArticle.
const articleColumns = `id, title, slug, description, content, image_url,
	language_code, status, author, created_at, updated_at`

// # PostgreSQL Repository

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed article store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// Create inserts a new article row.
func (repository *repository) Create(ctx context.Context, article *Article) error {
	query := `
		INSERT INTO articles (
			id, title, slug, description, content, image_url, language_code,
			status, author
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	err := repository.pool.QueryRow(ctx, query,
		article.ID,
		article.Title,
		article.Slug,
		article.Description,
		article.Content,
		article.ImageURL,
		article.LanguageCode,
		string(article.Status),
		article.Author,
	).Scan(&article.CreatedAt, &article.UpdatedAt)

	if err != nil {
		return dberr.Wrap(err, Descriptor.Kind)
	}
	return nil
}

// FindByID fetches one article under the combined visibility rule.
func (repository *repository) FindByID(ctx context.Context, id, actorID string) (*Article, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM articles WHERE id = $1 AND %s`,
		articleColumns, Descriptor.VisibleClause(2),
	)

	return scanArticle(repository.pool.QueryRow(ctx, query, id, actorID))
}

// FindBySlug resolves the canonical slug with the same visibility rule.
func (repository *repository) FindBySlug(ctx context.Context, slugValue, actorID string) (*Article, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM articles WHERE slug = $1 AND %s`,
		articleColumns, Descriptor.VisibleClause(2),
	)

	return scanArticle(repository.pool.QueryRow(ctx, query, slugValue, actorID))
}

// FindByIDs batch-fetches the visible subset of ids in the requested order.
func (repository *repository) FindByIDs(ctx context.Context, ids []string, actorID string) ([]*Article, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(
		`SELECT %s FROM articles WHERE id = ANY($1::uuid[]) AND %s`,
		articleColumns, Descriptor.VisibleClause(2),
	)

	rows, err := repository.pool.Query(ctx, query, ids, actorID)
	if err != nil {
		return nil, dberr.Wrap(err, Descriptor.Kind)
	}
	defer rows.Close()

	var articles []*Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, Descriptor.Kind)
	}

	return lifecycle.ReorderByIDs(ids, articles, func(a *Article) string { return a.ID }), nil
}

// ListOwned pages through the actor's live articles, newest first.
func (repository *repository) ListOwned(ctx context.Context, actorID string, limit, offset int) ([]*Article, int, error) {
	query := fmt.Sprintf(
		`SELECT %s, COUNT(*) OVER() AS total_count
		 FROM articles WHERE %s
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2 OFFSET $3`,
		articleColumns, Descriptor.OwnedClause(1),
	)

	return repository.list(ctx, query, actorID, limit, offset)
}

// ListPublic pages through published articles, newest first.
func (repository *repository) ListPublic(ctx context.Context, limit, offset int) ([]*Article, int, error) {
	query := fmt.Sprintf(
		`SELECT %s, COUNT(*) OVER() AS total_count
		 FROM articles WHERE %s
		 ORDER BY created_at DESC, id DESC
		 LIMIT $1 OFFSET $2`,
		articleColumns, lifecycle.PublicClause,
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
	if update.Content != nil {
		set("content", *update.Content)
	}
	if update.ImageURL != nil {
		set("image_url", *update.ImageURL)
	}
	if update.LanguageCode != nil {
		set("language_code", *update.LanguageCode)
	}

	if len(sets) == 0 {
		return nil
	}

	query := fmt.Sprintf(
		`UPDATE articles SET %s, updated_at = now() WHERE %s`,
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

func (repository *repository) list(ctx context.Context, query string, args ...any) ([]*Article, int, error) {
	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, Descriptor.Kind)
	}
	defer rows.Close()

	var articles []*Article
	var totalCount int

	for rows.Next() {
		article := &Article{}
		err := rows.Scan(
			&article.ID,
			&article.Title,
			&article.Slug,
			&article.Description,
			&article.Content,
			&article.ImageURL,
			&article.LanguageCode,
			&article.Status,
			&article.Author,
			&article.CreatedAt,
			&article.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, Descriptor.Kind)
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, Descriptor.Kind)
	}

	return articles, totalCount, nil
}

// scanArticle maps one row onto the entity, translating ErrNoRows to NotFound.
func scanArticle(row pgx.Row) (*Article, error) {
	article := &Article{}
	err := row.Scan(
		&article.ID,
		&article.Title,
		&article.Slug,
		&article.Description,
		&article.Content,
		&article.ImageURL,
		&article.LanguageCode,
		&article.Status,
		&article.Author,
		&article.CreatedAt,
		&article.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, Descriptor.Kind)
	}
	return article, nil
}
