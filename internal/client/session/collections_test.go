package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchCows_ReplacesCacheWholesale(t *testing.T) {
	fc := &fakeClient{ListCowsRet: []models.Cow{{ID: "c1", Name: "Ganga"}, {ID: "c2", Name: "Yamuna"}}}
	c := newTestCoordinator(fc)
	ctx := context.Background()

	_, err := c.FetchCows(ctx, nil)
	require.NoError(t, err)
	require.Len(t, c.State().Cows, 2)

	fc.ListCowsRet = []models.Cow{{ID: "c3", Name: "Saraswati"}}
	_, err = c.FetchCows(ctx, nil)
	require.NoError(t, err)

	cows := c.State().Cows
	require.Len(t, cows, 1, "second fetch replaces, never merges")
	assert.Equal(t, "c3", cows[0].ID)
}

func TestFetchCows_PassesQuery(t *testing.T) {
	fc := &fakeClient{}
	c := newTestCoordinator(fc)

	q := &models.CowQuery{Name: "ganga", Sick: true, Sort: "name"}
	_, err := c.FetchCows(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, q, fc.LastCowQuery)
}

func TestFetchCowByID_DoesNotTouchCache(t *testing.T) {
	fc := &fakeClient{
		ListCowsRet: []models.Cow{{ID: "c1"}},
		GetCowRet:   &models.Cow{ID: "c9", Name: "Kamdhenu"},
	}
	c := newTestCoordinator(fc)
	ctx := context.Background()

	_, err := c.FetchCows(ctx, nil)
	require.NoError(t, err)

	cow, err := c.FetchCowByID(ctx, "c9")
	require.NoError(t, err)
	assert.Equal(t, "c9", cow.ID)

	cows := c.State().Cows
	require.Len(t, cows, 1)
	assert.Equal(t, "c1", cows[0].ID)
}

func TestFetchCowByID_FailureDualSurfaced(t *testing.T) {
	fc := &fakeClient{GetCowErr: errors.New("not found")}
	c := newTestCoordinator(fc)

	_, err := c.FetchCowByID(context.Background(), "x")
	require.Error(t, err)
	assert.Equal(t, "not found", err.Error())
	assert.Equal(t, "not found", c.LastError())
}

func TestCowMutations_NeverPatchCache(t *testing.T) {
	fc := &fakeClient{
		ListCowsRet:  []models.Cow{{ID: "c1", Name: "Ganga"}},
		CreateCowRet: &models.Cow{ID: "c2", Name: "New"},
		UpdateCowRet: &models.Cow{ID: "c1", Name: "Renamed"},
	}
	c := newTestCoordinator(fc)
	ctx := context.Background()

	_, err := c.FetchCows(ctx, nil)
	require.NoError(t, err)
	before := c.State().Cows

	_, err = c.CreateCow(ctx, models.CowInput{Name: "New", Age: 2})
	require.NoError(t, err)
	_, err = c.UpdateCow(ctx, "c1", models.CowInput{Name: "Renamed"})
	require.NoError(t, err)
	require.NoError(t, c.DeleteCow(ctx, "c1"))

	after := c.State().Cows
	assert.Equal(t, before, after, "mutations leave the cache to an explicit refetch")
}

func TestCreateDonation_NoCacheUpdate(t *testing.T) {
	fc := &fakeClient{
		HistoryRet:        []models.Donation{{ID: "d1", Amount: 100}},
		CreateDonationRet: &models.Donation{ID: "d2", Amount: 500},
	}
	c := newTestCoordinator(fc)
	ctx := context.Background()

	_, err := c.FetchDonationHistory(ctx)
	require.NoError(t, err)

	d, err := c.CreateDonation(ctx, models.DonationInput{
		Amount: 500, Tier: models.TierGold, DonationType: models.DonationOneTime,
	})
	require.NoError(t, err)
	assert.Equal(t, "d2", d.ID)

	ds := c.State().Donations
	require.Len(t, ds, 1)
	assert.Equal(t, "d1", ds[0].ID)
}

func TestDonationFetches_ShareOneCacheSlot(t *testing.T) {
	fc := &fakeClient{
		HistoryRet:      []models.Donation{{ID: "mine"}},
		AllDonationsRet: []models.Donation{{ID: "a"}, {ID: "b"}},
	}
	c := newTestCoordinator(fc)
	ctx := context.Background()

	_, err := c.FetchDonationHistory(ctx)
	require.NoError(t, err)
	require.Len(t, c.State().Donations, 1)

	_, err = c.FetchAllDonations(ctx)
	require.NoError(t, err)
	ds := c.State().Donations
	require.Len(t, ds, 2, "admin fetch replaces the same slot")

	_, err = c.FetchDonationHistory(ctx)
	require.NoError(t, err)
	require.Len(t, c.State().Donations, 1)
}

func TestFetchDonationHistory_FailureKeepsCache(t *testing.T) {
	fc := &fakeClient{HistoryRet: []models.Donation{{ID: "d1"}}}
	c := newTestCoordinator(fc)
	ctx := context.Background()

	_, err := c.FetchDonationHistory(ctx)
	require.NoError(t, err)

	fc.HistoryErr = errors.New("boom")
	_, err = c.FetchDonationHistory(ctx)
	require.Error(t, err)

	assert.Len(t, c.State().Donations, 1, "failed fetch leaves the old cache")
	assert.Equal(t, "boom", c.LastError())
}

// alternatingCowsClient is safe for concurrent ListCows calls; each call
// returns one of two fixed result sets.
type alternatingCowsClient struct {
	*fakeClient
	calls atomic.Int64
	sets  [2][]models.Cow
}

func (f *alternatingCowsClient) ListCows(ctx context.Context, q *models.CowQuery) ([]models.Cow, error) {
	n := f.calls.Add(1)
	return f.sets[n%2], nil
}

func TestFetchCows_ConcurrentCallersLastWriteWins(t *testing.T) {
	fc := &alternatingCowsClient{
		fakeClient: &fakeClient{},
		sets: [2][]models.Cow{
			{{ID: "c1", Name: "Ganga"}, {ID: "c2", Name: "Yamuna"}},
			{{ID: "c3", Name: "Saraswati"}},
		},
	}
	c := newTestCoordinator(fc)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				_, err := c.FetchCows(ctx, nil)
				assert.NoError(t, err)
				_ = c.State()
			}
		}()
	}
	wg.Wait()

	// Whichever fetch settled last, the cache holds one result set
	// wholesale, never a mix of the two.
	cows := c.State().Cows
	if !assert.ObjectsAreEqual(fc.sets[0], cows) {
		assert.Equal(t, fc.sets[1], cows)
	}
	assert.False(t, c.IsLoading())
	assert.Empty(t, c.LastError())
}

func TestStateSnapshot_IsStable(t *testing.T) {
	fc := &fakeClient{ListCowsRet: []models.Cow{{ID: "c1", Name: "Ganga"}}}
	c := newTestCoordinator(fc)
	ctx := context.Background()

	_, err := c.FetchCows(ctx, nil)
	require.NoError(t, err)

	snap := c.State()
	fc.ListCowsRet = []models.Cow{{ID: "c2"}}
	_, err = c.FetchCows(ctx, nil)
	require.NoError(t, err)

	require.Len(t, snap.Cows, 1)
	assert.Equal(t, "c1", snap.Cows[0].ID, "snapshot unaffected by later fetches")
}
