package service

import (
	"famfeed/internal/config"
	"famfeed/internal/identity"
	"famfeed/internal/repository"
	"famfeed/internal/storage"
)

type Service struct {
	Auth    AuthService
	Family  FamilyService
	Post    PostService
	Comment CommentService
}

func NewService(rep *repository.Repository, provider identity.Provider, storage storage.Storage, cfg *config.Config) *Service {
	return &Service{
		Auth:    NewAuthService(rep.User, rep.Family, rep.Invite, provider),
		Family:  NewFamilyService(rep.User, rep.Family, rep.Invite),
		Post:    NewPostService(rep.Post, storage, cfg),
		Comment: NewCommentService(rep.Comment, rep.Post),
	}
}
