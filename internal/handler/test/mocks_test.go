package test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"famfeed/internal/config"
	handlers "famfeed/internal/handler"
	"famfeed/internal/identity"
	"famfeed/internal/models"
	"famfeed/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SignUp(ctx context.Context, req service.SignUpRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) SignIn(ctx context.Context, email, password string) (*models.User, *identity.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.User), args.Get(1).(*identity.Session), args.Error(2)
}

func (m *MockAuthService) ValidateInviteCode(ctx context.Context, code string) (string, error) {
	args := m.Called(ctx, code)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, accessToken string) error {
	args := m.Called(ctx, accessToken)
	return args.Error(0)
}

type MockFamilyService struct {
	mock.Mock
}

func (m *MockFamilyService) GetMyFamily(ctx context.Context, actor *models.User) (*models.Family, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Family), args.Error(1)
}

func (m *MockFamilyService) GetMembers(ctx context.Context, actor *models.User) ([]models.User, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockFamilyService) CreateInviteCode(ctx context.Context, actor *models.User) (*models.InviteCode, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InviteCode), args.Error(1)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) List(ctx context.Context, actor *models.User) ([]models.Post, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostService) Create(ctx context.Context, actor *models.User, content string, imageURL *string) (int64, error) {
	args := m.Called(ctx, actor, content, imageURL)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostService) GetByID(ctx context.Context, actor *models.User, id int64) (*models.Post, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) Delete(ctx context.Context, actor *models.User, id int64) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func (m *MockPostService) UploadImage(ctx context.Context, actor *models.User, fileName string, file io.Reader, size int64) (string, error) {
	args := m.Called(ctx, actor, fileName, file, size)
	return args.String(0), args.Error(1)
}

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) List(ctx context.Context, actor *models.User, postID int64) ([]models.Comment, error) {
	args := m.Called(ctx, actor, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockCommentService) Create(ctx context.Context, actor *models.User, postID int64, content string) (int64, error) {
	args := m.Called(ctx, actor, postID, content)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentService) Delete(ctx context.Context, actor *models.User, id int64) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func createTestHandlers() (*handlers.Handlers, *MockAuthService, *MockFamilyService, *MockPostService, *MockCommentService) {
	auth := new(MockAuthService)
	family := new(MockFamilyService)
	post := new(MockPostService)
	comment := new(MockCommentService)

	h := &handlers.Handlers{
		AuthService:    auth,
		FamilyService:  family,
		PostService:    post,
		CommentService: comment,
		Cfg:            &config.Config{MaxUploadSize: 10 * 1024 * 1024},
		Validate:       validator.New(),
	}
	return h, auth, family, post, comment
}

func int64Ptr(v int64) *int64 { return &v }

func member(id, familyID int64) *models.User {
	return &models.User{ID: id, OpenID: "open", Role: models.RoleUser, FamilyID: int64Ptr(familyID)}
}

// withActor simulates the auth middleware resolving the request's profile.
func withActor(req *http.Request, actor *models.User) *http.Request {
	return req.WithContext(handlers.ContextWithActor(req.Context(), actor))
}

func assertJSONError(t *testing.T, rr *httptest.ResponseRecorder, expectedStatus int, expectedError string) {
	t.Helper()
	assert.Equal(t, expectedStatus, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var response map[string]string
	err := json.Unmarshal(rr.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Contains(t, response["error"], expectedError)
}
