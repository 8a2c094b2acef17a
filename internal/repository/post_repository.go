package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"famfeed/internal/models"
)

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, userID, familyID int64, content string, imageURL *string) (int64, error) {
	query := `
		INSERT INTO posts (user_id, family_id, content, image_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := r.db.GetContext(ctx, &id, query, userID, familyID, content, imageURL)
	if err != nil {
		return 0, fmt.Errorf("failed to create post: %w", err)
	}

	return id, nil
}

// ListByFamily returns the family's posts newest-first with the author
// summary joined in. The id tiebreak keeps the order stable for posts
// created within the same timestamp.
func (r *postRepository) ListByFamily(ctx context.Context, familyID int64) ([]models.Post, error) {
	query := `
		SELECT p.id, p.user_id, p.family_id, p.content, p.image_url, p.created_at,
		       u.id AS "author.id",
		       u.full_name AS "author.full_name",
		       u.avatar_url AS "author.avatar_url"
		FROM posts p
		LEFT JOIN users u ON u.id = p.user_id
		WHERE p.family_id = $1
		ORDER BY p.created_at DESC, p.id DESC
	`

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return posts, nil
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query := `
		SELECT p.id, p.user_id, p.family_id, p.content, p.image_url, p.created_at,
		       u.id AS "author.id",
		       u.full_name AS "author.full_name",
		       u.avatar_url AS "author.avatar_url"
		FROM posts p
		LEFT JOIN users u ON u.id = p.user_id
		WHERE p.id = $1
	`

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return &post, nil
}

// Delete removes the post only when userID matches its author and reports
// how many rows went away. Comments on the post are removed with it so the
// read gate never resolves an orphaned parent.
func (r *postRepository) Delete(ctx context.Context, id, userID int64) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`DELETE FROM comments WHERE post_id = $1
		 AND EXISTS (SELECT 1 FROM posts WHERE id = $1 AND user_id = $2)`,
		id, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete post comments: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check deleted rows: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return rowsAffected, nil
}
