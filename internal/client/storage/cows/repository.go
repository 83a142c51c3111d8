// Package cows persists the last fetched cow list for offline reads.
package cows

import (
	"context"
	"database/sql"

	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/client/models"
)

// Repository is the offline cow cache. ReplaceAll mirrors the coordinator's
// cache-replace contract: every successful list fetch overwrites the whole
// table, nothing is ever merged.
type Repository interface {
	ReplaceAll(ctx context.Context, cows []models.Cow) error
	GetAll(ctx context.Context) ([]models.Cow, error)
	GetByID(ctx context.Context, id string) (*models.Cow, error)
}

// ErrNotFound is returned by GetByID when the cow is not cached.
var ErrNotFound = sql.ErrNoRows
