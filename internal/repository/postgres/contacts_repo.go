package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/baharkarakas/contact-manager/internal/models"
	"github.com/baharkarakas/contact-manager/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type contactsRepo struct{ pool *pgxpool.Pool }

var _ repository.Contacts = (*contactsRepo)(nil)

const contactColumns = `id, name, email, phone, message, created_at`

func scanContact(row pgx.Row) (models.Contact, error) {
	var c models.Contact
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Message, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Contact{}, models.ErrNotFound
	}
	if err == nil {
		c.CreatedAt = c.CreatedAt.UTC()
	}
	return c, err
}

func (r *contactsRepo) Create(ctx context.Context, c *models.Contact) error {
	c.ID = uuid.NewString()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO contacts(`+contactColumns+`) VALUES($1,$2,$3,$4,$5,$6)`,
		c.ID, c.Name, c.Email, c.Phone, c.Message, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

func (r *contactsRepo) List(ctx context.Context) ([]models.Contact, error) {
	rows, err := r.pool.Query(ctx,
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

func (r *contactsRepo) GetByID(ctx context.Context, id string) (models.Contact, error) {
	return scanContact(r.pool.QueryRow(ctx,
		`SELECT `+contactColumns+` FROM contacts WHERE id=$1`, id))
}

func (r *contactsRepo) Update(ctx context.Context, c models.Contact) (models.Contact, error) {
	return scanContact(r.pool.QueryRow(ctx,
		`UPDATE contacts SET name=$2, email=$3, phone=$4, message=$5
		  WHERE id=$1
		  RETURNING `+contactColumns,
		c.ID, c.Name, c.Email, c.Phone, c.Message,
	))
}

func (r *contactsRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM contacts WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *contactsRepo) Ping(ctx context.Context) error { return r.pool.Ping(ctx) }
