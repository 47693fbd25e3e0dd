// Package storage opens the contact store named by a connection string.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/baharkarakas/contact-manager/internal/db"
	"github.com/baharkarakas/contact-manager/internal/repository"
	"github.com/baharkarakas/contact-manager/internal/repository/mongodb"
	"github.com/baharkarakas/contact-manager/internal/repository/postgres"
	"github.com/baharkarakas/contact-manager/internal/repository/sqlite"
)

type Backend string

const (
	Mongo    Backend = "mongodb"
	Postgres Backend = "postgres"
	SQLite   Backend = "sqlite"
)

type Store struct {
	Backend  Backend
	Contacts repository.Contacts
	closer   func(ctx context.Context) error
}

func (s *Store) Close(ctx context.Context) error {
	if s.closer == nil {
		return nil
	}
	return s.closer(ctx)
}

type Options struct {
	// Migrate applies the embedded SQL migrations (postgres only).
	Migrate bool
}

// Detect maps a connection string to its backend and the backend-specific
// address (a file path for sqlite, the url itself otherwise).
func Detect(url string) (Backend, string, error) {
	switch {
	case strings.HasPrefix(url, "mongodb://"), strings.HasPrefix(url, "mongodb+srv://"):
		return Mongo, url, nil
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return Postgres, url, nil
	case strings.HasPrefix(url, "sqlite://"):
		return SQLite, strings.TrimPrefix(url, "sqlite://"), nil
	case strings.HasPrefix(url, "file:"):
		return SQLite, strings.TrimPrefix(url, "file:"), nil
	}
	return "", "", fmt.Errorf("unsupported database url scheme: %q", redact(url))
}

func Open(ctx context.Context, url string, opts Options) (*Store, error) {
	backend, addr, err := Detect(url)
	if err != nil {
		return nil, err
	}

	switch backend {
	case Mongo:
		s, err := mongodb.Connect(ctx, addr)
		if err != nil {
			return nil, err
		}
		return &Store{Backend: backend, Contacts: s, closer: s.Close}, nil

	case Postgres:
		pool, err := db.NewPool(ctx, addr)
		if err != nil {
			return nil, err
		}
		if opts.Migrate {
			if err := db.RunMigrations(ctx, pool); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migrations: %w", err)
			}
		}
		repos := postgres.NewRepositories(pool)
		return &Store{
			Backend:  backend,
			Contacts: repos.Contacts,
			closer:   func(context.Context) error { pool.Close(); return nil },
		}, nil

	default:
		s, err := sqlite.Open(ctx, addr)
		if err != nil {
			return nil, err
		}
		slog.Debug("sqlite store opened", "path", addr)
		return &Store{
			Backend:  backend,
			Contacts: s,
			closer:   func(context.Context) error { return s.Close() },
		}, nil
	}
}

// redact drops everything after the scheme so credentials never reach logs.
func redact(url string) string {
	if i := strings.Index(url, "://"); i >= 0 {
		return url[:i+3] + "..."
	}
	if len(url) > 8 {
		return url[:8] + "..."
	}
	return url
}
