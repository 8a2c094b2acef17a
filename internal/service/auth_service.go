package service

import (
	"context"
	"errors"

	"famfeed/internal/identity"
	"famfeed/internal/models"
	"famfeed/internal/repository"
)

type SignUpRequest struct {
	Email      string
	Password   string
	FullName   string
	InviteCode string
}

type AuthService interface {
	SignUp(ctx context.Context, req SignUpRequest) (*models.User, error)
	SignIn(ctx context.Context, email, password string) (*models.User, *identity.Session, error)
	ValidateInviteCode(ctx context.Context, code string) (string, error)
	Logout(ctx context.Context, accessToken string) error
}

type authService struct {
	userRepo   repository.UserRepository
	familyRepo repository.FamilyRepository
	inviteRepo repository.InviteRepository
	provider   identity.Provider
}

func NewAuthService(userRepo repository.UserRepository, familyRepo repository.FamilyRepository, inviteRepo repository.InviteRepository, provider identity.Provider) AuthService {
	return &authService{
		userRepo:   userRepo,
		familyRepo: familyRepo,
		inviteRepo: inviteRepo,
		provider:   provider,
	}
}

// SignUp runs the invite redemption workflow. The familyId on the new
// profile comes from the invite code, never from the request, and the
// profile insert plus code marking commit together.
func (s *authService) SignUp(ctx context.Context, req SignUpRequest) (*models.User, error) {
	invite, err := s.inviteRepo.GetInviteCodeByCode(ctx, req.InviteCode)
	if err != nil {
		return nil, Internal("failed to look up invite code", err)
	}
	if invite == nil {
		return nil, NotFound("invite code not found")
	}
	if invite.IsUsed {
		return nil, AlreadyUsed("this invite code has already been used")
	}

	ident, err := s.provider.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrConflict):
			// Possible partial prior success: the identity exists but the
			// profile may not. The caller should try signing in instead.
			return nil, Conflict("this email is already registered")
		case errors.Is(err, identity.ErrInvalidCredentials):
			return nil, InvalidCredentials("identity provider rejected the credentials")
		default:
			return nil, Internal("failed to create identity", err)
		}
	}

	profile := repository.CreateProfileParams{
		OpenID:      ident.ID,
		Email:       req.Email,
		FullName:    req.FullName,
		FamilyID:    invite.FamilyID,
		LoginMethod: "email",
	}

	userID, err := s.inviteRepo.RedeemInvite(ctx, profile, invite.ID)
	if err != nil {
		if errors.Is(err, repository.ErrInviteUsed) {
			return nil, AlreadyUsed("this invite code has already been used")
		}
		return nil, Internal("failed to redeem invite code", err)
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil || user == nil {
		return nil, Internal("failed to load created profile", err)
	}

	return user, nil
}

func (s *authService) SignIn(ctx context.Context, email, password string) (*models.User, *identity.Session, error) {
	ident, session, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			return nil, nil, InvalidCredentials("invalid email or password")
		}
		return nil, nil, Internal("failed to sign in", err)
	}

	user, err := s.userRepo.GetUserByOpenID(ctx, ident.ID)
	if err != nil {
		return nil, nil, Internal("failed to load profile", err)
	}
	if user == nil {
		return nil, nil, Internal("no profile exists for this identity", nil)
	}

	// Advance last_signed_in; everything else is left untouched.
	if err := s.userRepo.UpsertUser(ctx, repository.UpsertUserParams{OpenID: ident.ID}); err != nil {
		return nil, nil, Internal("failed to record sign-in", err)
	}

	return user, session, nil
}

// ValidateInviteCode is the read-only probe behind the "you are joining X"
// screen. It repeats the first two sign-up checks without mutating anything.
func (s *authService) ValidateInviteCode(ctx context.Context, code string) (string, error) {
	invite, err := s.inviteRepo.GetInviteCodeByCode(ctx, code)
	if err != nil {
		return "", Internal("failed to look up invite code", err)
	}
	if invite == nil {
		return "", NotFound("invite code not found")
	}
	if invite.IsUsed {
		return "", AlreadyUsed("this invite code has already been used")
	}

	family, err := s.familyRepo.GetFamilyByID(ctx, invite.FamilyID)
	if err != nil {
		return "", Internal("failed to look up family", err)
	}
	if family == nil {
		return "unknown family", nil
	}

	return family.Name, nil
}

func (s *authService) Logout(ctx context.Context, accessToken string) error {
	if err := s.provider.SignOut(ctx, accessToken); err != nil {
		return Internal("failed to sign out", err)
	}
	return nil
}
