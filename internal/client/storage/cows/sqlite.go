package cows

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/client/models"
	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/dbx"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// ReplaceAll swaps the cached list in one transaction.
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, cows []models.Cow) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM cows"); err != nil {
			return err
		}
		for _, c := range cows {
			if c.Photos == nil {
				c.Photos = models.Photos{}
			}
			photos, err := json.Marshal(c.Photos)
			if err != nil {
				return err
			}
			_, err = tx.ExecContext(ctx,
				`INSERT INTO cows (id, name, photos, age, sick, aged, adopted, gender, description)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				c.ID, c.Name, string(photos), c.Age,
				c.SicknessStatus, c.AgedStatus, c.AdoptionStatus,
				c.Gender, c.Description)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Cow, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, photos, age, sick, aged, adopted, gender, description
		 FROM cows ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.Cow
	for rows.Next() {
		c, err := scanCow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}
	return result, rows.Err()
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Cow, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, photos, age, sick, aged, adopted, gender, description
		 FROM cows WHERE id = ?`, id)
	c, err := scanCow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return c, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCow(s scanner) (*models.Cow, error) {
	var c models.Cow
	var photos string
	err := s.Scan(&c.ID, &c.Name, &photos, &c.Age,
		&c.SicknessStatus, &c.AgedStatus, &c.AdoptionStatus,
		&c.Gender, &c.Description)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(photos), &c.Photos); err != nil {
		return nil, err
	}
	return &c, nil
}
