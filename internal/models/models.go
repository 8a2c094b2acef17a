package models

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           int64      `json:"id" db:"id"`
	OpenID       string     `json:"openId" db:"open_id"`
	Name         *string    `json:"name" db:"name"`
	Email        *string    `json:"email" db:"email"`
	LoginMethod  *string    `json:"loginMethod" db:"login_method"`
	Role         string     `json:"role" db:"role"`
	FamilyID     *int64     `json:"familyId" db:"family_id"`
	FullName     *string    `json:"fullName" db:"full_name"`
	AvatarURL    *string    `json:"avatarUrl" db:"avatar_url"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at"`
	LastSignedIn time.Time  `json:"lastSignedIn" db:"last_signed_in"`
}

type Family struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type InviteCode struct {
	ID        int64     `json:"id" db:"id"`
	Code      string    `json:"code" db:"code"`
	FamilyID  int64     `json:"familyId" db:"family_id"`
	IsUsed    bool      `json:"isUsed" db:"is_used"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Author is the denormalized user summary returned alongside posts and
// comments. Fields are pointers because the joined user row may be gone.
type Author struct {
	ID        *int64  `json:"id" db:"id"`
	FullName  *string `json:"fullName" db:"full_name"`
	AvatarURL *string `json:"avatarUrl" db:"avatar_url"`
}

type Post struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	FamilyID  int64     `json:"familyId" db:"family_id"`
	Content   string    `json:"content" db:"content"`
	ImageURL  *string   `json:"imageUrl" db:"image_url"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	Author    Author    `json:"author" db:"author"`
}

type Comment struct {
	ID        int64     `json:"id" db:"id"`
	PostID    int64     `json:"postId" db:"post_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	Author    Author    `json:"author" db:"author"`
}
