package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"famfeed/internal/models"
)

type familyRepository struct {
	db *sqlx.DB
}

func NewFamilyRepository(db *sqlx.DB) FamilyRepository {
	return &familyRepository{db: db}
}

func (r *familyRepository) GetFamilyByID(ctx context.Context, id int64) (*models.Family, error) {
	var family models.Family

	query := `SELECT * FROM families WHERE id = $1`

	err := r.db.GetContext(ctx, &family, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get family: %w", err)
	}

	return &family, nil
}
