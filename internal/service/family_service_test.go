package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"famfeed/internal/models"
)

func newFamilyService() (*MockUserRepository, *MockFamilyRepository, *MockInviteRepository, FamilyService) {
	userRepo := new(MockUserRepository)
	familyRepo := new(MockFamilyRepository)
	inviteRepo := new(MockInviteRepository)
	svc := NewFamilyService(userRepo, familyRepo, inviteRepo)
	return userRepo, familyRepo, inviteRepo, svc
}

func TestFamilyService_GetMyFamily(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the actor's family", func(t *testing.T) {
		_, familyRepo, _, svc := newFamilyService()

		familyRepo.On("GetFamilyByID", ctx, int64(7)).
			Return(&models.Family{ID: 7, Name: "Yamada"}, nil)

		family, err := svc.GetMyFamily(ctx, actorInFamily(1, 7))

		require.NoError(t, err)
		require.NotNil(t, family)
		assert.Equal(t, "Yamada", family.Name)
	})

	t.Run("actors without a family get nil, not an error", func(t *testing.T) {
		_, familyRepo, _, svc := newFamilyService()

		family, err := svc.GetMyFamily(ctx, actorWithoutFamily(1))

		require.NoError(t, err)
		assert.Nil(t, family)
		familyRepo.AssertNotCalled(t, "GetFamilyByID", mock.Anything, mock.Anything)
	})
}

func TestFamilyService_GetMembers(t *testing.T) {
	ctx := context.Background()

	t.Run("lists the family roster", func(t *testing.T) {
		userRepo, _, _, svc := newFamilyService()

		roster := []models.User{
			{ID: 1, OpenID: "open-1", FamilyID: int64Ptr(7)},
			{ID: 2, OpenID: "open-2", FamilyID: int64Ptr(7)},
		}
		userRepo.On("GetFamilyMembers", ctx, int64(7)).Return(roster, nil)

		members, err := svc.GetMembers(ctx, actorInFamily(1, 7))

		require.NoError(t, err)
		assert.Len(t, members, 2)
	})

	t.Run("actors without a family get an empty roster", func(t *testing.T) {
		userRepo, _, _, svc := newFamilyService()

		members, err := svc.GetMembers(ctx, actorWithoutFamily(1))

		require.NoError(t, err)
		assert.Empty(t, members)
		userRepo.AssertNotCalled(t, "GetFamilyMembers", mock.Anything, mock.Anything)
	})
}

func TestFamilyService_CreateInviteCode(t *testing.T) {
	ctx := context.Background()

	admin := &models.User{ID: 1, OpenID: "open-1", Role: models.RoleAdmin, FamilyID: int64Ptr(7)}

	t.Run("admins mint codes for their own family", func(t *testing.T) {
		_, _, inviteRepo, svc := newFamilyService()

		inviteRepo.On("CreateInviteCode", ctx, int64(7)).
			Return(&models.InviteCode{ID: 5, Code: "FAM123", FamilyID: 7}, nil)

		invite, err := svc.CreateInviteCode(ctx, admin)

		require.NoError(t, err)
		assert.Equal(t, "FAM123", invite.Code)
	})

	t.Run("regular members fail Forbidden", func(t *testing.T) {
		_, _, inviteRepo, svc := newFamilyService()

		_, err := svc.CreateInviteCode(ctx, actorInFamily(1, 7))

		assert.Equal(t, KindForbidden, KindOf(err))
		inviteRepo.AssertNotCalled(t, "CreateInviteCode", mock.Anything, mock.Anything)
	})

	t.Run("admins without a family fail BadRequest", func(t *testing.T) {
		_, _, _, svc := newFamilyService()

		familyless := &models.User{ID: 1, OpenID: "open-1", Role: models.RoleAdmin}
		_, err := svc.CreateInviteCode(ctx, familyless)

		assert.Equal(t, KindBadRequest, KindOf(err))
	})
}
