// Package postgres persists the conversation log in PostgreSQL.
package postgres

import (
	"context"
	"embed"
	"fmt"
	"slices"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/jayviklabs/jarvis-core/core/transcript"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store implements transcript.Store on a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

var _ transcript.Store = (*Store)(nil)

// NewStore connects to the given DSN and brings the schema up to date.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := migrate(pool); err != nil {
		pool.Close()
		return nil, err
	}

	return &Store{pool: pool}, nil
}

func migrate(pool *pgxpool.Pool) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (s *Store) Append(ctx context.Context, scope transcript.Scope, entry transcript.Entry) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO conversations (id, user_id, role, message, created_at)
		 VALUES ($1, NULLIF($2, ''), $3, $4, $5)`,
		entry.ID, scope.UserID, entry.Role, entry.Content, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append transcript entry: %w", err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context, scope transcript.Scope, limit int) ([]transcript.Entry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, role, message, created_at
		 FROM conversations
		 WHERE user_id IS NOT DISTINCT FROM NULLIF($1, '')
		 ORDER BY created_at DESC
		 LIMIT $2`,
		scope.UserID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load transcript: %w", err)
	}
	defer rows.Close()

	entries := []transcript.Entry{}
	for rows.Next() {
		var entry transcript.Entry
		if err := rows.Scan(&entry.ID, &entry.Role, &entry.Content, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transcript entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transcript rows: %w", err)
	}

	// The query returns newest first so the limit applies to the most recent
	// entries; callers always see chronological order.
	slices.Reverse(entries)
	return entries, nil
}

func (s *Store) Clear(ctx context.Context, scope transcript.Scope) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM conversations WHERE user_id IS NOT DISTINCT FROM NULLIF($1, '')`,
		scope.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to clear transcript: %w", err)
	}
	return nil
}

func (s *Store) Close() {
	s.pool.Close()
}
