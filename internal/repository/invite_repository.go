package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"famfeed/internal/models"
)

// ErrInviteUsed is returned when a redemption loses the race for a code.
var ErrInviteUsed = errors.New("invite code already used")

type inviteRepository struct {
	db *sqlx.DB
}

func NewInviteRepository(db *sqlx.DB) InviteRepository {
	return &inviteRepository{db: db}
}

func (r *inviteRepository) CreateInviteCode(ctx context.Context, familyID int64) (*models.InviteCode, error) {
	code := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:12])

	query := `
		INSERT INTO invite_codes (code, family_id)
		VALUES ($1, $2)
		RETURNING id, code, family_id, is_used, created_at
	`

	var invite models.InviteCode
	err := r.db.GetContext(ctx, &invite, query, code, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to create invite code: %w", err)
	}

	return &invite, nil
}

func (r *inviteRepository) GetInviteCodeByCode(ctx context.Context, code string) (*models.InviteCode, error) {
	var invite models.InviteCode

	query := `SELECT * FROM invite_codes WHERE code = $1`

	err := r.db.GetContext(ctx, &invite, query, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get invite code: %w", err)
	}

	return &invite, nil
}

// MarkInviteCodeUsed flips is_used for a still-unused code and reports how
// many rows changed. The transition is monotonic; re-running it is safe.
func (r *inviteRepository) MarkInviteCodeUsed(ctx context.Context, id int64) (int64, error) {
	query := `UPDATE invite_codes SET is_used = TRUE WHERE id = $1 AND is_used = FALSE`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("failed to mark invite code used: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check updated rows: %w", err)
	}

	return rowsAffected, nil
}

// RedeemInvite inserts the new profile and marks the invite code used in one
// transaction, so a code can never be consumed without its user existing.
// Returns ErrInviteUsed if a concurrent redemption got there first.
func (r *inviteRepository) RedeemInvite(ctx context.Context, profile CreateProfileParams, inviteID int64) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	markQuery := `UPDATE invite_codes SET is_used = TRUE WHERE id = $1 AND is_used = FALSE`

	result, err := tx.ExecContext(ctx, markQuery, inviteID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark invite code used: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check updated rows: %w", err)
	}
	if rowsAffected == 0 {
		return 0, ErrInviteUsed
	}

	insertQuery := `
		INSERT INTO users (open_id, email, full_name, family_id, login_method, role, last_signed_in)
		VALUES ($1, $2, $3, $4, $5, 'user', CURRENT_TIMESTAMP)
		RETURNING id
	`

	var userID int64
	err = tx.GetContext(ctx, &userID, insertQuery,
		profile.OpenID, profile.Email, profile.FullName, profile.FamilyID, profile.LoginMethod)
	if err != nil {
		return 0, fmt.Errorf("failed to create user profile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return userID, nil
}
