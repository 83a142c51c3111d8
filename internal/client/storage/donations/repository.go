// Package donations persists the last fetched donation history for offline
// reads.
package donations

import (
	"context"

	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/client/models"
)

// Repository is the offline donation cache, replace-on-fetch like the cow
// cache.
type Repository interface {
	ReplaceAll(ctx context.Context, donations []models.Donation) error
	GetAll(ctx context.Context) ([]models.Donation, error)
}
