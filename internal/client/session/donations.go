package session

import (
	"context"

	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/client/models"
)

// CreateDonation records a donation. The cached donation list is not
// updated; refetch explicitly after success.
func (c *Coordinator) CreateDonation(ctx context.Context, in models.DonationInput) (*models.Donation, error) {
	c.begin()

	d, err := c.api.CreateDonation(ctx, in)
	if err != nil {
		return nil, c.fail(err, "error creating donation")
	}
	c.done()
	return d, nil
}

// FetchDonationHistory lists the calling identity's donations and replaces
// the cached collection.
func (c *Coordinator) FetchDonationHistory(ctx context.Context) ([]models.Donation, error) {
	c.begin()

	ds, err := c.api.DonationHistory(ctx)
	if err != nil {
		return nil, c.fail(err, "error fetching donation history")
	}

	c.mu.Lock()
	c.donations = ds
	c.loading = false
	c.mu.Unlock()
	return ds, nil
}

// FetchAllDonations lists every donation (admin session required). It
// replaces the same cache slot FetchDonationHistory uses; the two views
// cannot coexist, so do not interleave them expecting both.
func (c *Coordinator) FetchAllDonations(ctx context.Context) ([]models.Donation, error) {
	c.begin()

	ds, err := c.api.AllDonations(ctx)
	if err != nil {
		return nil, c.fail(err, "error fetching donations")
	}

	c.mu.Lock()
	c.donations = ds
	c.loading = false
	c.mu.Unlock()
	return ds, nil
}
