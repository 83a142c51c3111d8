package session

import (
	"context"

	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/client/models"
)

// FetchCows lists cows with optional filter/sort parameters and replaces
// the cached collection wholesale. No merge: references into the previous
// slice stay valid but stale.
func (c *Coordinator) FetchCows(ctx context.Context, q *models.CowQuery) ([]models.Cow, error) {
	c.begin()

	cows, err := c.api.ListCows(ctx, q)
	if err != nil {
		return nil, c.fail(err, "error fetching cows")
	}

	c.mu.Lock()
	c.cows = cows
	c.loading = false
	c.mu.Unlock()

	c.log.Debug(ctx, "cow cache replaced", "count", len(cows))
	return cows, nil
}

// FetchCowByID fetches a single cow and returns it without touching the
// cached list; callers that want it in the list refetch with FetchCows.
func (c *Coordinator) FetchCowByID(ctx context.Context, id string) (*models.Cow, error) {
	c.begin()

	cow, err := c.api.GetCow(ctx, id)
	if err != nil {
		return nil, c.fail(err, "error fetching cow")
	}
	c.done()
	return cow, nil
}

// CreateCow creates a cow record (admin session required). The cache is
// not updated; refetch explicitly after a successful mutation.
func (c *Coordinator) CreateCow(ctx context.Context, in models.CowInput) (*models.Cow, error) {
	c.begin()

	cow, err := c.api.CreateCow(ctx, in)
	if err != nil {
		return nil, c.fail(err, "error creating cow")
	}
	c.done()
	return cow, nil
}

// UpdateCow updates a cow record (admin session required); no cache update.
func (c *Coordinator) UpdateCow(ctx context.Context, id string, in models.CowInput) (*models.Cow, error) {
	c.begin()

	cow, err := c.api.UpdateCow(ctx, id, in)
	if err != nil {
		return nil, c.fail(err, "error updating cow")
	}
	c.done()
	return cow, nil
}

// DeleteCow deletes a cow record (admin session required); no cache update.
func (c *Coordinator) DeleteCow(ctx context.Context, id string) error {
	c.begin()

	if err := c.api.DeleteCow(ctx, id); err != nil {
		return c.fail(err, "error deleting cow")
	}
	c.done()
	return nil
}
