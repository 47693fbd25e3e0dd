package postgres

import (
	repo "github.com/baharkarakas/contact-manager/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repositories struct {
	Contacts repo.Contacts
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Contacts: &contactsRepo{pool},
	}
}
