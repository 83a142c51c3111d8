package donations

import (
	"context"
	"database/sql"
	"time"

	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/client/models"
	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/dbx"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// ReplaceAll swaps the cached history in one transaction.
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, donations []models.Donation) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM donations"); err != nil {
			return err
		}
		for _, d := range donations {
			var createdAt string
			if !d.CreatedAt.IsZero() {
				createdAt = d.CreatedAt.UTC().Format(time.RFC3339Nano)
			}
			_, err := tx.ExecContext(ctx,
				`INSERT INTO donations (id, user_id, cow_id, amount, tier, donation_type, recurring_frequency, created_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				d.ID, d.UserID, d.CowID, d.Amount,
				string(d.Tier), string(d.DonationType),
				d.RecurringFrequency, createdAt)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Donation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, cow_id, amount, tier, donation_type, recurring_frequency, created_at
		 FROM donations ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.Donation
	for rows.Next() {
		var d models.Donation
		var tier, dtype, createdAt string
		err := rows.Scan(&d.ID, &d.UserID, &d.CowID, &d.Amount,
			&tier, &dtype, &d.RecurringFrequency, &createdAt)
		if err != nil {
			return nil, err
		}
		d.Tier = models.DonationTier(tier)
		d.DonationType = models.DonationType(dtype)
		if createdAt != "" {
			if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
				d.CreatedAt = t
			}
		}
		result = append(result, d)
	}
	return result, rows.Err()
}
