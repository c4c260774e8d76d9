package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Jins0l/ai-board-project/internal/config"
	"github.com/Jins0l/ai-board-project/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func(repo *MockUserRepository)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "Success",
			body: map[string]string{
				"username": "testuser",
				"email":    "test@example.com",
				"password": "Password123!",
			},
			mockSetup: func(repo *MockUserRepository) {
				repo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
					// The digest is stored, never the raw password
					return u.Username == "testuser" && u.Password != "Password123!"
				})).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Missing Fields",
			body: map[string]string{
				"username": "testuser",
			},
			mockSetup:      func(repo *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   models.CodeValidation,
		},
		{
			name: "Duplicate Username",
			body: map[string]string{
				"username": "exists",
				"email":    "new@example.com",
				"password": "Password123!",
			},
			mockSetup: func(repo *MockUserRepository) {
				repo.On("Create", mock.Anything, mock.Anything).
					Return(models.NewDuplicateError("Username or email already exists"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   models.CodeDuplicate,
		},
		{
			name: "Store Unavailable",
			body: map[string]string{
				"username": "testuser",
				"email":    "test@example.com",
				"password": "Password123!",
			},
			mockSetup: func(repo *MockUserRepository) {
				repo.On("Create", mock.Anything, mock.Anything).
					Return(models.NewStoreUnavailableError())
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   models.CodeStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			mockRepo := new(MockUserRepository)
			s := &Server{
				config:   &config.Config{JWTSecret: "test_secret"},
				userRepo: mockRepo,
			}
			app.Post("/auth/register", s.Register)
			tt.mockSetup(mockRepo)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedCode != "" {
				var errResp models.ErrorResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
				assert.Equal(t, tt.expectedCode, errResp.Code)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestRegister_ResponseBody(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockUserRepository)
	s := &Server{
		config:   &config.Config{JWTSecret: "test_secret"},
		userRepo: mockRepo,
	}
	app.Post("/auth/register", s.Register)

	mockRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*models.User).ID = 42
	}).Return(nil)

	body, _ := json.Marshal(map[string]string{
		"username": "testuser",
		"email":    "test@example.com",
		"password": "Password123!",
	})
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out struct {
		Message string `json:"message"`
		UserID  uint   `json:"userId"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, uint(42), out.UserID)
	assert.NotEmpty(t, out.Message)
}

func TestLogin(t *testing.T) {
	digest, err := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.DefaultCost)
	require.NoError(t, err)

	storedUser := &models.User{
		ID:       1,
		Username: "testuser",
		Email:    "test@example.com",
		Password: string(digest),
	}

	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func(repo *MockUserRepository)
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{
				"username": "testuser",
				"password": "Password123!",
			},
			mockSetup: func(repo *MockUserRepository) {
				repo.On("GetByUsername", mock.Anything, "testuser").Return(storedUser, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Missing Fields",
			body: map[string]string{
				"username": "testuser",
			},
			mockSetup:      func(repo *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Unknown User",
			body: map[string]string{
				"username": "nobody",
				"password": "Password123!",
			},
			mockSetup: func(repo *MockUserRepository) {
				repo.On("GetByUsername", mock.Anything, "nobody").Return(nil, nil)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Wrong Password",
			body: map[string]string{
				"username": "testuser",
				"password": "not-the-password",
			},
			mockSetup: func(repo *MockUserRepository) {
				repo.On("GetByUsername", mock.Anything, "testuser").Return(storedUser, nil)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Store Unavailable",
			body: map[string]string{
				"username": "testuser",
				"password": "Password123!",
			},
			mockSetup: func(repo *MockUserRepository) {
				repo.On("GetByUsername", mock.Anything, "testuser").
					Return(nil, models.NewStoreUnavailableError())
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			mockRepo := new(MockUserRepository)
			s := &Server{
				config:   &config.Config{JWTSecret: "test_secret"},
				userRepo: mockRepo,
			}
			app.Post("/auth/login", s.Login)
			tt.mockSetup(mockRepo)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestLogin_NoCredentialLeak(t *testing.T) {
	// Unknown user and wrong password must be indistinguishable.
	digest, err := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.DefaultCost)
	require.NoError(t, err)

	app := fiber.New()
	mockRepo := new(MockUserRepository)
	s := &Server{
		config:   &config.Config{JWTSecret: "test_secret"},
		userRepo: mockRepo,
	}
	app.Post("/auth/login", s.Login)

	mockRepo.On("GetByUsername", mock.Anything, "nobody").Return(nil, nil)
	mockRepo.On("GetByUsername", mock.Anything, "testuser").Return(&models.User{
		ID: 1, Username: "testuser", Password: string(digest),
	}, nil)

	readBody := func(username, password string) (int, string) {
		body, _ := json.Marshal(map[string]string{"username": username, "password": password})
		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		raw, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, string(raw)
	}

	unknownStatus, unknownBody := readBody("nobody", "whatever")
	wrongStatus, wrongBody := readBody("testuser", "wrong-password")

	assert.Equal(t, http.StatusUnauthorized, unknownStatus)
	assert.Equal(t, http.StatusUnauthorized, wrongStatus)
	assert.Equal(t, unknownBody, wrongBody)
}

func TestLogin_ResponseShape(t *testing.T) {
	digest, err := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.DefaultCost)
	require.NoError(t, err)

	app := fiber.New()
	mockRepo := new(MockUserRepository)
	s := &Server{
		config:   &config.Config{JWTSecret: "test_secret"},
		userRepo: mockRepo,
	}
	app.Post("/auth/login", s.Login)

	mockRepo.On("GetByUsername", mock.Anything, "testuser").Return(&models.User{
		ID: 1, Username: "testuser", Email: "test@example.com", Password: string(digest),
	}, nil)

	body, _ := json.Marshal(map[string]string{"username": "testuser", "password": "Password123!"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out struct {
		Message string `json:"message"`
		Token   string `json:"token"`
		User    struct {
			ID       uint   `json:"id"`
			Username string `json:"username"`
			Email    string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, uint(1), out.User.ID)
	assert.Equal(t, "testuser", out.User.Username)
	assert.Equal(t, "test@example.com", out.User.Email)

	// The digest must never appear anywhere in the response.
	assert.NotContains(t, string(raw), string(digest))
}
