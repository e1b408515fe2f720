// Package sessions persists the most recent tutoring-session snapshot to the
// local cache database so the sessions view can still render while the
// backend is unreachable. The backend remains the source of truth: every
// successful fetch replaces the snapshot wholesale.
package sessions

import (
	"context"

	"github.com/dmitrijs2005/tutorit/internal/client/models"
)

// Repository describes the session cache operations.
type Repository interface {
	// Upsert inserts a session record or updates an existing one by ID.
	Upsert(ctx context.Context, s *models.Session) error

	// GetAll returns all cached sessions.
	GetAll(ctx context.Context) ([]models.Session, error)

	// GetByID returns one cached session, or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.Session, error)

	// DeleteByID removes a session from the cache (hard-deleted upstream).
	DeleteByID(ctx context.Context, id string) error

	// ReplaceAll atomically replaces the whole snapshot with the given set.
	ReplaceAll(ctx context.Context, all []models.Session) error
}
