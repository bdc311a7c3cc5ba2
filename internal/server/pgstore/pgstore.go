// Package pgstore is the remote backend: a PostgreSQL database (Supabase or
// self-hosted) reached through the pgx driver. Tables are expected to exist;
// schema.sql documents their layout.
package pgstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/inkwell/internal/common"
	"github.com/dmitrijs2005/inkwell/internal/dbx"
	"github.com/dmitrijs2005/inkwell/internal/server/models"
	"github.com/dmitrijs2005/inkwell/internal/shared"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// SlugConstraint is the unique index on categories.slug.
const SlugConstraint = "categories_slug_key"

const uniqueViolation = "23505"

// Open connects to dsn and verifies the connection. Poolers such as
// PgBouncer need "default_query_exec_mode=simple_protocol" in the DSN.
func Open(ctx context.Context, dsn string, maxOpenConns int) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, common.NewStorageError("open database", err)
	}
	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
		db.SetMaxIdleConns(maxOpenConns)
	}
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, common.NewStorageError("ping database", err)
	}
	return db, nil
}

// IsUniqueViolation reports whether err is a unique violation of constraint
// (any constraint when constraint is empty).
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// Wrap turns a driver error into a common.StorageError tagged with op.
// sql.ErrNoRows is not expected here; repositories handle it first.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return common.NewStorageError(op, err)
}

// SeedCategories inserts models.DefaultCategories, skipping slugs that
// already exist. It returns how many rows were added.
func SeedCategories(ctx context.Context, db *sql.DB) (int, error) {
	query := `INSERT INTO categories (id, name, slug, description, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (slug) DO NOTHING`

	now := time.Now().UTC().Truncate(time.Microsecond)
	added := 0
	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, c := range models.DefaultCategories {
			res, err := tx.ExecContext(ctx, query,
				shared.NewID(), c.Name, shared.CategorySlug(c.Name, ""), c.Description, now)
			if err != nil {
				return fmt.Errorf("seed %s: %w", c.Name, err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("rows affected: %w", err)
			}
			added += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, Wrap("seed categories", err)
	}
	return added, nil
}

// NullString maps an optional reference onto a nullable column.
func NullString(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// StringPtr is the inverse of NullString.
func StringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// TimePtr converts a nullable timestamp.
func TimePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time.UTC()
	return &t
}
