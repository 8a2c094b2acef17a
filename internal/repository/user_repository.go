package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"famfeed/internal/models"
)

type userRepository struct {
	db          *sqlx.DB
	ownerOpenID string
}

func NewUserRepository(db *sqlx.DB, ownerOpenID string) UserRepository {
	return &userRepository{db: db, ownerOpenID: ownerOpenID}
}

// UpsertUser inserts or updates a profile keyed by open_id. Only fields
// present in params are written; absent fields keep their stored values.
// The configured owner identity is promoted to admin unless a role is given.
func (r *userRepository) UpsertUser(ctx context.Context, params UpsertUserParams) error {
	if params.OpenID == "" {
		return fmt.Errorf("openId is required for upsert")
	}

	cols := []string{"open_id"}
	args := []interface{}{params.OpenID}
	set := []string{}

	add := func(col string, value interface{}) {
		cols = append(cols, col)
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
	}

	if params.Name != nil {
		add("name", *params.Name)
	}
	if params.Email != nil {
		add("email", *params.Email)
	}
	if params.LoginMethod != nil {
		add("login_method", *params.LoginMethod)
	}
	if params.FullName != nil {
		add("full_name", *params.FullName)
	}
	if params.AvatarURL != nil {
		add("avatar_url", *params.AvatarURL)
	}
	if params.FamilyID != nil {
		add("family_id", *params.FamilyID)
	}
	if params.Role != nil {
		add("role", *params.Role)
	} else if r.ownerOpenID != "" && params.OpenID == r.ownerOpenID {
		add("role", models.RoleAdmin)
	}

	lastSignedIn := time.Now()
	if params.LastSignedIn != nil {
		lastSignedIn = *params.LastSignedIn
	}
	add("last_signed_in", lastSignedIn)
	set = append(set, "updated_at = CURRENT_TIMESTAMP")

	placeholders := make([]string, len(args))
	for i := range args {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(`
		INSERT INTO users (%s)
		VALUES (%s)
		ON CONFLICT (open_id) DO UPDATE SET %s
	`,
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(set, ", "),
	)

	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}

	return nil
}

func (r *userRepository) GetUserByOpenID(ctx context.Context, openID string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE open_id = $1`

	err := r.db.GetContext(ctx, &user, query, openID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by openId: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE id = $1`

	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetFamilyMembers(ctx context.Context, familyID int64) ([]models.User, error) {
	query := `
		SELECT * FROM users
		WHERE family_id = $1
		ORDER BY created_at ASC
	`

	var members []models.User
	err := r.db.SelectContext(ctx, &members, query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get family members: %w", err)
	}

	return members, nil
}
