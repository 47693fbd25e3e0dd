package repository

import (
	"context"

	"github.com/baharkarakas/contact-manager/internal/models"
)

// Contacts is the contact store. Implementations return models.ErrNotFound
// for ids that do not resolve to a record, including malformed ids.
type Contacts interface {
	// Create assigns c.ID and persists c.
	Create(ctx context.Context, c *models.Contact) error
	// List returns every record, newest createdAt first.
	List(ctx context.Context) ([]models.Contact, error)
	GetByID(ctx context.Context, id string) (models.Contact, error)
	// Update replaces the editable fields of the record with c.ID and returns
	// the stored state. id and createdAt are left untouched.
	Update(ctx context.Context, c models.Contact) (models.Contact, error)
	Delete(ctx context.Context, id string) error

	Ping(ctx context.Context) error
}
