package services

import (
	"context"
	"errors"
	"time"

	"github.com/baharkarakas/contact-manager/internal/metrics"
	"github.com/baharkarakas/contact-manager/internal/models"
	repo "github.com/baharkarakas/contact-manager/internal/repository"
	"github.com/baharkarakas/contact-manager/internal/validate"
)

type ContactService struct {
	r   repo.Contacts
	now func() time.Time
}

func NewContactService(r repo.Contacts) *ContactService {
	return &ContactService{r: r, now: time.Now}
}

// ----------------- Commands -----------------

// Create validates in and persists it with a server-assigned id and createdAt.
func (s *ContactService) Create(ctx context.Context, in models.ContactInput) (models.Contact, error) {
	c, err := models.NewContact(in)
	if err != nil {
		return models.Contact{}, s.observe("create", err)
	}
	// millisecond precision survives every backend unchanged
	c.CreatedAt = s.now().UTC().Truncate(time.Millisecond)
	if err := s.r.Create(ctx, &c); err != nil {
		return models.Contact{}, s.observe("create", err)
	}
	s.observe("create", nil)
	return c, nil
}

// Update overlays p onto the stored record and validates the merged result
// before writing. A missing id wins over invalid input.
func (s *ContactService) Update(ctx context.Context, id string, p models.ContactPatch) (models.Contact, error) {
	cur, err := s.r.GetByID(ctx, id)
	if err != nil {
		return models.Contact{}, s.observe("update", err)
	}
	p.Apply(&cur)
	if err := cur.Validate(); err != nil {
		return models.Contact{}, s.observe("update", err)
	}
	out, err := s.r.Update(ctx, cur)
	return out, s.observe("update", err)
}

func (s *ContactService) Delete(ctx context.Context, id string) error {
	return s.observe("delete", s.r.Delete(ctx, id))
}

// ----------------- Queries -----------------

func (s *ContactService) List(ctx context.Context) ([]models.Contact, error) {
	out, err := s.r.List(ctx)
	if err == nil {
		metrics.ContactsStored.Set(float64(len(out)))
	}
	return out, s.observe("list", err)
}

func (s *ContactService) Get(ctx context.Context, id string) (models.Contact, error) {
	c, err := s.r.GetByID(ctx, id)
	return c, s.observe("get", err)
}

func (s *ContactService) Ping(ctx context.Context) error { return s.r.Ping(ctx) }

// observe counts the call and hands err back unchanged.
func (s *ContactService) observe(op string, err error) error {
	metrics.ContactOperations.WithLabelValues(op, Outcome(err)).Inc()
	return err
}

// Outcome classifies err into the label used by metrics and logs.
func Outcome(err error) string {
	var verr validate.Errors
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &verr):
		return "invalid"
	case errors.Is(err, models.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
