package service

import (
	"context"
	"io"

	"famfeed/internal/config"
	"famfeed/internal/models"
	"famfeed/internal/repository"
	"famfeed/internal/storage"
)

type PostService interface {
	List(ctx context.Context, actor *models.User) ([]models.Post, error)
	Create(ctx context.Context, actor *models.User, content string, imageURL *string) (int64, error)
	GetByID(ctx context.Context, actor *models.User, id int64) (*models.Post, error)
	Delete(ctx context.Context, actor *models.User, id int64) error
	UploadImage(ctx context.Context, actor *models.User, fileName string, file io.Reader, size int64) (string, error)
}

type postService struct {
	postRepo repository.PostRepository
	storage  storage.Storage
	cfg      *config.Config
}

func NewPostService(postRepo repository.PostRepository, storage storage.Storage, cfg *config.Config) PostService {
	return &postService{
		postRepo: postRepo,
		storage:  storage,
		cfg:      cfg,
	}
}

// List returns the actor's family feed, newest-first. Actors without a
// family get an empty feed, not an error.
func (s *postService) List(ctx context.Context, actor *models.User) ([]models.Post, error) {
	if actor.FamilyID == nil {
		return []models.Post{}, nil
	}

	posts, err := s.postRepo.ListByFamily(ctx, *actor.FamilyID)
	if err != nil {
		return nil, Internal("failed to list posts", err)
	}
	if posts == nil {
		posts = []models.Post{}
	}

	return posts, nil
}

// Create stamps the post with the actor's own familyId; the request never
// carries one.
func (s *postService) Create(ctx context.Context, actor *models.User, content string, imageURL *string) (int64, error) {
	if actor.FamilyID == nil {
		return 0, BadRequest("you have not joined a family yet")
	}

	id, err := s.postRepo.Create(ctx, actor.ID, *actor.FamilyID, content, imageURL)
	if err != nil {
		return 0, Internal("failed to create post", err)
	}

	return id, nil
}

func (s *postService) GetByID(ctx context.Context, actor *models.User, id int64) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, Internal("failed to load post", err)
	}
	if post == nil {
		return nil, NotFound("post not found")
	}

	if actor.FamilyID == nil || *actor.FamilyID != post.FamilyID {
		return nil, Forbidden("you do not have access to this post")
	}

	return post, nil
}

// Delete removes the actor's own post. Posts in another family answer
// NotFound rather than Forbidden so deletion probes cannot confirm that a
// post id exists outside the actor's family.
func (s *postService) Delete(ctx context.Context, actor *models.User, id int64) error {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return Internal("failed to load post", err)
	}
	if post == nil {
		return NotFound("post not found")
	}

	if actor.FamilyID == nil || *actor.FamilyID != post.FamilyID {
		return NotFound("post not found")
	}
	if post.UserID != actor.ID {
		return Forbidden("you do not have permission to delete this post")
	}

	deleted, err := s.postRepo.Delete(ctx, id, actor.ID)
	if err != nil {
		return Internal("failed to delete post", err)
	}
	if deleted == 0 {
		// Lost a race with another delete of the same post.
		return NotFound("post not found")
	}

	return nil
}

func (s *postService) UploadImage(ctx context.Context, actor *models.User, fileName string, file io.Reader, size int64) (string, error) {
	if actor.FamilyID == nil {
		return "", BadRequest("you have not joined a family yet")
	}
	if size > s.cfg.MaxUploadSize {
		return "", BadRequest("file is too large")
	}

	_, imageURL, err := s.storage.UploadImage(ctx, actor.ID, fileName, file, size)
	if err != nil {
		return "", Internal("failed to upload image", err)
	}

	return imageURL, nil
}
