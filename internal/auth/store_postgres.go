// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

/*
PostgreSQL implementation of the user directory.

Provisioning uses INSERT ... ON CONFLICT so that first sign-in and repeat
sign-in are the same atomic statement: two concurrent first sign-ins of the
same address cannot create two accounts, the loser simply updates the row
the winner inserted.
*/
package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hanvu/lectern/internal/platform/apperr"
	"github.com/hanvu/lectern/internal/platform/dberr"
	"github.com/hanvu/lectern/internal/platform/sec"
)

// userColumns is the canonical SELECT list, kept in sync with scanUser.
const userColumns = `id, first_name, last_name, user_name, picture_url,
	email_address, email_verified, roles, about, content_language_codes,
	display_language_code, status, created_at, updated_at`

// # PostgreSQL Repository

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed directory store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

/*
Provision inserts or refreshes the account behind an identity.

On conflict the verified flag is OR-ed (monotonic false to true), the
picture is refreshed from the provider, and name fields only fill in where
the stored value is empty, so a user's own edits survive later sign-ins.
*/
func (repository *repository) Provision(ctx context.Context, user *User) (*User, error) {
	query := fmt.Sprintf(`
		INSERT INTO users (
			id, first_name, last_name, user_name, picture_url, email_address,
			email_verified, roles, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (email_address) DO UPDATE SET
			email_verified = users.email_verified OR EXCLUDED.email_verified,
			picture_url    = EXCLUDED.picture_url,
			first_name     = CASE WHEN users.first_name = '' THEN EXCLUDED.first_name ELSE users.first_name END,
			last_name      = CASE WHEN users.last_name = '' THEN EXCLUDED.last_name ELSE users.last_name END,
			updated_at     = now()
		RETURNING %s`, userColumns)

	row := repository.pool.QueryRow(ctx, query,
		user.ID,
		user.FirstName,
		user.LastName,
		user.UserName,
		user.PictureURL,
		user.EmailAddress,
		user.EmailVerified,
		user.Roles.Strings(),
		string(user.Status),
	)

	return scanUser(row)
}

// FindByEmail returns the account registered under the address.
func (repository *repository) FindByEmail(ctx context.Context, emailAddress string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email_address = $1`, userColumns)
	return scanUser(repository.pool.QueryRow(ctx, query, emailAddress))
}

// FindByID returns the account by id.
func (repository *repository) FindByID(ctx context.Context, id string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	return scanUser(repository.pool.QueryRow(ctx, query, id))
}

// List pages through all accounts, newest first.
func (repository *repository) List(ctx context.Context, limit, offset int) ([]*User, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM users
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`, userColumns)

	rows, err := repository.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "User")
	}
	defer rows.Close()

	var users []*User
	var totalCount int

	for rows.Next() {
		user := &User{}
		var roles []string
		err := rows.Scan(
			&user.ID,
			&user.FirstName,
			&user.LastName,
			&user.UserName,
			&user.PictureURL,
			&user.EmailAddress,
			&user.EmailVerified,
			&roles,
			&user.About,
			&user.ContentLanguageCodes,
			&user.DisplayLanguageCode,
			&user.Status,
			&user.CreatedAt,
			&user.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "User")
		}
		user.Roles = rolesFromColumn(roles)
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "User")
	}

	return users, totalCount, nil
}

// Update applies a partial profile modification.
func (repository *repository) Update(ctx context.Context, id string, update Update) error {
	var sets []string
	var args []any
	argID := 1

	set := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argID))
		args = append(args, value)
		argID++
	}

	if update.FirstName != nil {
		set("first_name", *update.FirstName)
	}
	if update.LastName != nil {
		set("last_name", *update.LastName)
	}
	if update.UserName != nil {
		set("user_name", *update.UserName)
	}
	if update.PictureURL != nil {
		set("picture_url", *update.PictureURL)
	}
	if update.About != nil {
		set("about", *update.About)
	}
	if update.ContentLanguageCodes != nil {
		set("content_language_codes", *update.ContentLanguageCodes)
	}
	if update.DisplayLanguageCode != nil {
		set("display_language_code", *update.DisplayLanguageCode)
	}

	if len(sets) == 0 {
		return nil
	}

	query := fmt.Sprintf(
		`UPDATE users SET %s, updated_at = now() WHERE id = $%d`,
		strings.Join(sets, ", "), argID,
	)
	args = append(args, id)

	tag, err := repository.pool.Exec(ctx, query, args...)
	if err != nil {
		return dberr.Wrap(err, "User")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}

// # Scanning Helpers

func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	var roles []string
	err := row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.UserName,
		&user.PictureURL,
		&user.EmailAddress,
		&user.EmailVerified,
		&roles,
		&user.About,
		&user.ContentLanguageCodes,
		&user.DisplayLanguageCode,
		&user.Status,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}
	user.Roles = rolesFromColumn(roles)
	return user, nil
}

// rolesFromColumn converts the text[] role column back to typed roles.
func rolesFromColumn(values []string) sec.Roles {
	return sec.RolesFromStrings(values)
}
