// Package postgres implements the store.Store interface backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/alfredjeanlab/golink/internal/model"
	"github.com/alfredjeanlab/golink/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresStore implements store.Store backed by a PostgreSQL database.
type PostgresStore struct {
	db *sql.DB
}

// Compile-time check that PostgresStore implements store.Store.
var _ store.Store = (*PostgresStore)(nil)

// New opens a connection to the PostgreSQL database at the given URL,
// configures the connection pool, and runs any pending migrations.
func New(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// Close closes the underlying database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) CreateLink(ctx context.Context, link *model.Link) error {
	return queryCreateLink(ctx, s.db, link)
}

func (s *PostgresStore) GetLink(ctx context.Context, keyword string) (*model.Link, error) {
	return queryGetLink(ctx, s.db, keyword)
}

func (s *PostgresStore) GetLinkByURL(ctx context.Context, url string) (*model.Link, error) {
	return queryGetLinkByURL(ctx, s.db, url)
}

func (s *PostgresStore) ListLinks(ctx context.Context, filter model.LinkFilter) ([]*model.Link, error) {
	return queryListLinks(ctx, s.db, filter)
}

func (s *PostgresStore) UpdateLink(ctx context.Context, link *model.Link) error {
	return queryUpdateLink(ctx, s.db, link)
}

func (s *PostgresStore) DeleteLink(ctx context.Context, keyword string) error {
	return queryDeleteLink(ctx, s.db, keyword)
}

func (s *PostgresStore) FindLinks(ctx context.Context, text string) ([]*model.Link, error) {
	return queryFindLinks(ctx, s.db, text)
}

func (s *PostgresStore) SetSearchEnabled(ctx context.Context, keyword string, enabled bool) error {
	return querySetSearchEnabled(ctx, s.db, keyword, enabled)
}

func (s *PostgresStore) CreateList(ctx context.Context, list *model.List) error {
	return queryCreateList(ctx, s.db, list)
}

func (s *PostgresStore) GetList(ctx context.Context, slug string) (*model.List, error) {
	return queryGetList(ctx, s.db, slug)
}

func (s *PostgresStore) ListLists(ctx context.Context) ([]*model.List, error) {
	return queryListLists(ctx, s.db)
}

func (s *PostgresStore) DeleteList(ctx context.Context, slug string) error {
	return queryDeleteList(ctx, s.db, slug)
}

func (s *PostgresStore) SetLinkLists(ctx context.Context, keyword string, slugs []string) error {
	return querySetLinkLists(ctx, s.db, keyword, slugs)
}

func (s *PostgresStore) GetLinkLists(ctx context.Context, keyword string) ([]string, error) {
	return queryGetLinkLists(ctx, s.db, keyword)
}

// RunInTransaction begins a database transaction, creates a txStore that
// delegates to it, calls fn, and commits on success or rolls back on error.
func (s *PostgresStore) RunInTransaction(ctx context.Context, fn func(tx store.Store) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	txS := &txStore{tx: tx}
	if err := fn(txS); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// txStore implements store.Store using a *sql.Tx.
type txStore struct {
	tx *sql.Tx
}

// Compile-time check that txStore implements store.Store.
var _ store.Store = (*txStore)(nil)

func (s *txStore) CreateLink(ctx context.Context, link *model.Link) error {
	return queryCreateLink(ctx, s.tx, link)
}

func (s *txStore) GetLink(ctx context.Context, keyword string) (*model.Link, error) {
	return queryGetLink(ctx, s.tx, keyword)
}

func (s *txStore) GetLinkByURL(ctx context.Context, url string) (*model.Link, error) {
	return queryGetLinkByURL(ctx, s.tx, url)
}

func (s *txStore) ListLinks(ctx context.Context, filter model.LinkFilter) ([]*model.Link, error) {
	return queryListLinks(ctx, s.tx, filter)
}

func (s *txStore) UpdateLink(ctx context.Context, link *model.Link) error {
	return queryUpdateLink(ctx, s.tx, link)
}

func (s *txStore) DeleteLink(ctx context.Context, keyword string) error {
	return queryDeleteLink(ctx, s.tx, keyword)
}

func (s *txStore) FindLinks(ctx context.Context, text string) ([]*model.Link, error) {
	return queryFindLinks(ctx, s.tx, text)
}

func (s *txStore) SetSearchEnabled(ctx context.Context, keyword string, enabled bool) error {
	return querySetSearchEnabled(ctx, s.tx, keyword, enabled)
}

func (s *txStore) CreateList(ctx context.Context, list *model.List) error {
	return queryCreateList(ctx, s.tx, list)
}

func (s *txStore) GetList(ctx context.Context, slug string) (*model.List, error) {
	return queryGetList(ctx, s.tx, slug)
}

func (s *txStore) ListLists(ctx context.Context) ([]*model.List, error) {
	return queryListLists(ctx, s.tx)
}

func (s *txStore) DeleteList(ctx context.Context, slug string) error {
	return queryDeleteList(ctx, s.tx, slug)
}

func (s *txStore) SetLinkLists(ctx context.Context, keyword string, slugs []string) error {
	return querySetLinkLists(ctx, s.tx, keyword, slugs)
}

func (s *txStore) GetLinkLists(ctx context.Context, keyword string) ([]string, error) {
	return queryGetLinkLists(ctx, s.tx, keyword)
}

// RunInTransaction on a txStore reuses the existing transaction (no nesting).
func (s *txStore) RunInTransaction(ctx context.Context, fn func(tx store.Store) error) error {
	return fn(s)
}

// Close is a no-op for a transaction store; the parent store owns the connection.
func (s *txStore) Close() error {
	return nil
}
