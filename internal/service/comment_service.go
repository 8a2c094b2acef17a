package service

import (
	"context"

	"famfeed/internal/models"
	"famfeed/internal/repository"
)

type CommentService interface {
	List(ctx context.Context, actor *models.User, postID int64) ([]models.Comment, error)
	Create(ctx context.Context, actor *models.User, postID int64, content string) (int64, error)
	Delete(ctx context.Context, actor *models.User, id int64) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// Comments carry no family tag of their own; every access resolves the
// parent post first and gates on its family.
func (s *commentService) resolveParent(ctx context.Context, actor *models.User, postID int64) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
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

func (s *commentService) List(ctx context.Context, actor *models.User, postID int64) ([]models.Comment, error) {
	if _, err := s.resolveParent(ctx, actor, postID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, Internal("failed to list comments", err)
	}
	if comments == nil {
		comments = []models.Comment{}
	}

	return comments, nil
}

func (s *commentService) Create(ctx context.Context, actor *models.User, postID int64, content string) (int64, error) {
	if _, err := s.resolveParent(ctx, actor, postID); err != nil {
		return 0, err
	}

	id, err := s.commentRepo.Create(ctx, postID, actor.ID, content)
	if err != nil {
		return 0, Internal("failed to create comment", err)
	}

	return id, nil
}

// Delete removes the actor's own comment. A comment whose parent post is
// gone or belongs to another family answers NotFound.
func (s *commentService) Delete(ctx context.Context, actor *models.User, id int64) error {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return Internal("failed to load comment", err)
	}
	if comment == nil {
		return NotFound("comment not found")
	}

	post, err := s.postRepo.GetByID(ctx, comment.PostID)
	if err != nil {
		return Internal("failed to load post", err)
	}
	if post == nil {
		return NotFound("comment not found")
	}
	if actor.FamilyID == nil || *actor.FamilyID != post.FamilyID {
		return NotFound("comment not found")
	}

	if comment.UserID != actor.ID {
		return Forbidden("you do not have permission to delete this comment")
	}

	deleted, err := s.commentRepo.Delete(ctx, id, actor.ID)
	if err != nil {
		return Internal("failed to delete comment", err)
	}
	if deleted == 0 {
		return NotFound("comment not found")
	}

	return nil
}
