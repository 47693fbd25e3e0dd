// Package sqlite is a file-backed contact store built on the pure-Go
// modernc.org/sqlite driver. It needs no server and backs local development
// and the API test suites.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/baharkarakas/contact-manager/internal/models"
	"github.com/baharkarakas/contact-manager/internal/repository"
)

const schema = `
CREATE TABLE IF NOT EXISTS contacts (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL,
	phone      TEXT NOT NULL,
	message    TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_contacts_created_at ON contacts(created_at DESC, id DESC);
`

// Store is the SQLite implementation of repository.Contacts.
// created_at is stored as unix milliseconds.
type Store struct {
	conn *sql.DB
}

var _ repository.Contacts = (*Store)(nil)

// Open creates the database file (and its directory) when missing.
func Open(ctx context.Context, path string) (*Store, error) {
	file, _, _ := strings.Cut(path, "?")
	if dir := filepath.Dir(file); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// one writer at a time keeps SQLITE_BUSY out of concurrent requests
	conn.SetMaxOpenConns(1)

	if _, err := conn.ExecContext(ctx, schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initialize contacts table: %w", err)
	}
	return &Store{conn: conn}, nil
}

const pragmas = "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

// dsn appends the connection pragmas to path, which may already carry a query.
func dsn(path string) string {
	if strings.Contains(path, "?") {
		return path + "&" + pragmas
	}
	return path + "?" + pragmas
}

func (s *Store) Close() error { return s.conn.Close() }

const contactColumns = `id, name, email, phone, message, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanContact(row scanner) (models.Contact, error) {
	var (
		c  models.Contact
		ms int64
	)
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Message, &ms)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Contact{}, models.ErrNotFound
	}
	if err != nil {
		return models.Contact{}, err
	}
	c.CreatedAt = time.UnixMilli(ms).UTC()
	return c, nil
}

func (s *Store) Create(ctx context.Context, c *models.Contact) error {
	c.ID = uuid.NewString()
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO contacts(`+contactColumns+`) VALUES(?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Email, c.Phone, c.Message, c.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]models.Contact, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT `+contactColumns+` FROM contacts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	out := []models.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) GetByID(ctx context.Context, id string) (models.Contact, error) {
	return scanContact(s.conn.QueryRowContext(ctx,
		`SELECT `+contactColumns+` FROM contacts WHERE id = ?`, id))
}

func (s *Store) Update(ctx context.Context, c models.Contact) (models.Contact, error) {
	return scanContact(s.conn.QueryRowContext(ctx,
		`UPDATE contacts SET name = ?, email = ?, phone = ?, message = ?
		  WHERE id = ?
		  RETURNING `+contactColumns,
		c.Name, c.Email, c.Phone, c.Message, c.ID,
	))
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.conn.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error { return s.conn.PingContext(ctx) }
