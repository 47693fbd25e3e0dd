package dashboard

import (
	"time"

	"github.com/baharkarakas/contact-manager/internal/models"
)

const recentWindow = 24 * time.Hour

type Stats struct {
	Total  int
	Recent int // created strictly within the last 24h
}

func ComputeStats(contacts []models.Contact, now time.Time) Stats {
	s := Stats{Total: len(contacts)}
	cutoff := now.Add(-recentWindow)
	for _, c := range contacts {
		if c.CreatedAt.After(cutoff) {
			s.Recent++
		}
	}
	return s
}
