package service

import (
	"context"

	"famfeed/internal/models"
	"famfeed/internal/repository"
)

type FamilyService interface {
	GetMyFamily(ctx context.Context, actor *models.User) (*models.Family, error)
	GetMembers(ctx context.Context, actor *models.User) ([]models.User, error)
	CreateInviteCode(ctx context.Context, actor *models.User) (*models.InviteCode, error)
}

type familyService struct {
	userRepo   repository.UserRepository
	familyRepo repository.FamilyRepository
	inviteRepo repository.InviteRepository
}

func NewFamilyService(userRepo repository.UserRepository, familyRepo repository.FamilyRepository, inviteRepo repository.InviteRepository) FamilyService {
	return &familyService{
		userRepo:   userRepo,
		familyRepo: familyRepo,
		inviteRepo: inviteRepo,
	}
}

// GetMyFamily returns nil for actors who have not joined a family yet.
func (s *familyService) GetMyFamily(ctx context.Context, actor *models.User) (*models.Family, error) {
	if actor.FamilyID == nil {
		return nil, nil
	}

	family, err := s.familyRepo.GetFamilyByID(ctx, *actor.FamilyID)
	if err != nil {
		return nil, Internal("failed to load family", err)
	}

	return family, nil
}

func (s *familyService) GetMembers(ctx context.Context, actor *models.User) ([]models.User, error) {
	if actor.FamilyID == nil {
		return []models.User{}, nil
	}

	members, err := s.userRepo.GetFamilyMembers(ctx, *actor.FamilyID)
	if err != nil {
		return nil, Internal("failed to load family members", err)
	}

	return members, nil
}

// CreateInviteCode mints a fresh single-use code for the actor's own family.
// Admins only.
func (s *familyService) CreateInviteCode(ctx context.Context, actor *models.User) (*models.InviteCode, error) {
	if actor.Role != models.RoleAdmin {
		return nil, Forbidden("only admins can create invite codes")
	}
	if actor.FamilyID == nil {
		return nil, BadRequest("you have not joined a family yet")
	}

	invite, err := s.inviteRepo.CreateInviteCode(ctx, *actor.FamilyID)
	if err != nil {
		return nil, Internal("failed to create invite code", err)
	}

	return invite, nil
}
