// Package repotest holds the behaviour every repository.Contacts backend must share.
package repotest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/contact-manager/internal/models"
	"github.com/baharkarakas/contact-manager/internal/repository"
)

// Run exercises repo against the contract. newRepo must return an empty store.
func Run(t *testing.T, newRepo func(t *testing.T) repository.Contacts) {
	t.Run("CreateAssignsUniqueIDs", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		seen := map[string]bool{}
		for i := 0; i < 5; i++ {
			c := sample(time.Now().UTC().Add(time.Duration(i) * time.Millisecond))
			require.NoError(t, r.Create(ctx, &c))
			require.NotEmpty(t, c.ID)
			assert.False(t, seen[c.ID], "duplicate id %s", c.ID)
			seen[c.ID] = true
		}
	})

	t.Run("GetByID", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		c := sample(time.Now().UTC())
		require.NoError(t, r.Create(ctx, &c))

		got, err := r.GetByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, c.ID, got.ID)
		assert.Equal(t, c.Name, got.Name)
		assert.Equal(t, c.Email, got.Email)
		assert.Equal(t, c.Phone, got.Phone)
		assert.Equal(t, c.Message, got.Message)
		assert.True(t, c.CreatedAt.Equal(got.CreatedAt), "createdAt %v != %v", c.CreatedAt, got.CreatedAt)
	})

	t.Run("GetByIDMissing", func(t *testing.T) {
		r := newRepo(t)
		_, err := r.GetByID(context.Background(), missingID)
		assert.ErrorIs(t, err, models.ErrNotFound)

		_, err = r.GetByID(context.Background(), "not-an-id")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("ListNewestFirst", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		empty, err := r.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)

		base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		for _, offset := range []int{2, 0, 5, 1} {
			c := sample(base.Add(time.Duration(offset) * time.Hour))
			require.NoError(t, r.Create(ctx, &c))
		}

		list, err := r.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 4)
		for i := 1; i < len(list); i++ {
			assert.False(t, list[i-1].CreatedAt.Before(list[i].CreatedAt),
				"record %d (%v) listed before newer record %d (%v)", i-1, list[i-1].CreatedAt, i, list[i].CreatedAt)
		}
		assert.True(t, list[0].CreatedAt.Equal(base.Add(5*time.Hour)))
	})

	t.Run("UpdateKeepsIDAndCreatedAt", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		c := sample(time.Now().UTC())
		require.NoError(t, r.Create(ctx, &c))

		changed := c
		changed.Name = "John Roe"
		changed.Message = "hello"
		changed.CreatedAt = time.Time{}

		got, err := r.Update(ctx, changed)
		require.NoError(t, err)
		assert.Equal(t, c.ID, got.ID)
		assert.Equal(t, "John Roe", got.Name)
		assert.Equal(t, "hello", got.Message)
		assert.True(t, c.CreatedAt.Equal(got.CreatedAt))

		again, err := r.GetByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "hello", again.Message)
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		r := newRepo(t)
		c := sample(time.Now().UTC())
		c.ID = missingID
		_, err := r.Update(context.Background(), c)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("DeleteThenGet", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		c := sample(time.Now().UTC())
		require.NoError(t, r.Create(ctx, &c))
		require.NoError(t, r.Delete(ctx, c.ID))

		_, err := r.GetByID(ctx, c.ID)
		assert.ErrorIs(t, err, models.ErrNotFound)
		assert.ErrorIs(t, r.Delete(ctx, c.ID), models.ErrNotFound)
	})

	t.Run("Ping", func(t *testing.T) {
		assert.NoError(t, newRepo(t).Ping(context.Background()))
	})
}

// missingID is well-formed for every backend (24 hex chars is a valid ObjectID).
const missingID = "000000000000000000000000"

func sample(createdAt time.Time) models.Contact {
	return models.Contact{
		Name:      "Jane Doe",
		Email:     "jane@x.com",
		Phone:     "1234567890",
		Message:   `she said "hi"`,
		CreatedAt: createdAt.Truncate(time.Millisecond),
	}
}
