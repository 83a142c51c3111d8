package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/client/api"
	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/client/models"
)

// Donate records a donation for the signed-in user.
func (a *App) Donate(ctx context.Context) error {
	amountText, err := GetSimpleText(a.reader, "Enter amount", a.out)
	if err != nil {
		return err
	}
	amount, err := strconv.ParseFloat(amountText, 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amountText, err)
	}

	tierText, err := GetSimpleText(a.reader, "Enter tier (bronze/silver/gold)", a.out)
	if err != nil {
		return err
	}
	var tier models.DonationTier
	switch strings.ToLower(tierText) {
	case "bronze":
		tier = models.TierBronze
	case "silver":
		tier = models.TierSilver
	case "gold":
		tier = models.TierGold
	default:
		return fmt.Errorf("unknown tier %q", tierText)
	}

	recurring, err := GetYesNo(a.reader, "Recurring donation?", a.out)
	if err != nil {
		return err
	}
	in := models.DonationInput{
		Amount:       amount,
		Tier:         tier,
		DonationType: models.DonationOneTime,
	}
	if recurring {
		in.DonationType = models.DonationRecurring
		freq, err := GetSimpleText(a.reader, "Enter frequency (monthly/yearly)", a.out)
		if err != nil {
			return err
		}
		in.RecurringFrequency = freq
	}

	cowID, err := GetSimpleText(a.reader, "Cow id to sponsor (optional)", a.out)
	if err != nil {
		return err
	}
	in.CowID = cowID

	d, err := a.coordinator.CreateDonation(ctx, in)
	if err != nil {
		a.reportError(err)
		return err
	}
	fmt.Fprintf(a.out, "Thank you! Donation %s recorded.\n", d.ID)
	return nil
}

// History shows the signed-in user's donations, from the cache when the
// backend is unreachable.
func (a *App) History(ctx context.Context) error {
	donations, err := a.coordinator.FetchDonationHistory(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnavailable) {
			donations, cacheErr := a.cache.Donations.GetAll(ctx)
			if cacheErr != nil {
				a.reportError(err)
				return err
			}
			fmt.Fprintln(a.out, "Server unavailable, showing cached history")
			a.printDonations(donations)
			return nil
		}
		a.reportError(err)
		return err
	}

	if err := a.cache.Donations.ReplaceAll(ctx, donations); err != nil {
		a.log.Warn(ctx, "error refreshing donation cache", "error", err)
	}

	a.printDonations(donations)
	return nil
}

// AllDonations shows every donation across users (admin only). Not cached;
// the offline cache holds only the user's own history.
func (a *App) AllDonations(ctx context.Context) error {
	donations, err := a.coordinator.FetchAllDonations(ctx)
	if err != nil {
		a.reportError(err)
		return err
	}
	a.printDonations(donations)
	return nil
}

func (a *App) printDonations(donations []models.Donation) {
	if len(donations) == 0 {
		fmt.Fprintln(a.out, "No donations found")
		return
	}
	for _, d := range donations {
		line := fmt.Sprintf("%s  %.2f %s %s", d.ID, d.Amount, d.Tier, d.DonationType)
		if d.RecurringFrequency != "" {
			line += " (" + d.RecurringFrequency + ")"
		}
		if d.CowID != "" {
			line += " cow:" + d.CowID
		}
		if !d.CreatedAt.IsZero() {
			line += " " + d.CreatedAt.Format("2006-01-02")
		}
		fmt.Fprintln(a.out, line)
	}
}
