package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"famfeed/internal/models"
)

// UpsertUserParams carries an identity-keyed profile update. Nil fields are
// left untouched on update; updated_at and last_signed_in always advance.
type UpsertUserParams struct {
	OpenID       string
	Name         *string
	Email        *string
	LoginMethod  *string
	Role         *string
	FamilyID     *int64
	FullName     *string
	AvatarURL    *string
	LastSignedIn *time.Time
}

// CreateProfileParams is the profile inserted during invite redemption.
type CreateProfileParams struct {
	OpenID      string
	Email       string
	FullName    string
	FamilyID    int64
	LoginMethod string
}

type UserRepository interface {
	UpsertUser(ctx context.Context, params UpsertUserParams) error
	GetUserByOpenID(ctx context.Context, openID string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetFamilyMembers(ctx context.Context, familyID int64) ([]models.User, error)
}

type FamilyRepository interface {
	GetFamilyByID(ctx context.Context, id int64) (*models.Family, error)
}

type InviteRepository interface {
	CreateInviteCode(ctx context.Context, familyID int64) (*models.InviteCode, error)
	GetInviteCodeByCode(ctx context.Context, code string) (*models.InviteCode, error)
	MarkInviteCodeUsed(ctx context.Context, id int64) (int64, error)
	RedeemInvite(ctx context.Context, profile CreateProfileParams, inviteID int64) (int64, error)
}

type PostRepository interface {
	Create(ctx context.Context, userID, familyID int64, content string, imageURL *string) (int64, error)
	ListByFamily(ctx context.Context, familyID int64) ([]models.Post, error)
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	Delete(ctx context.Context, id, userID int64) (int64, error)
}

type CommentRepository interface {
	Create(ctx context.Context, postID, userID int64, content string) (int64, error)
	ListByPost(ctx context.Context, postID int64) ([]models.Comment, error)
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	Delete(ctx context.Context, id, userID int64) (int64, error)
}

type Repository struct {
	User    UserRepository
	Family  FamilyRepository
	Invite  InviteRepository
	Post    PostRepository
	Comment CommentRepository
}

func NewRepository(db *sqlx.DB, ownerOpenID string) *Repository {
	return &Repository{
		User:    NewUserRepository(db, ownerOpenID),
		Family:  NewFamilyRepository(db),
		Invite:  NewInviteRepository(db),
		Post:    NewPostRepository(db),
		Comment: NewCommentRepository(db),
	}
}
