package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caboai_backend/internal/feature/auth/domain/entity"
	"caboai_backend/internal/feature/auth/usecase"
)

// TestMain puts Gin into test mode before running the tests.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// mockAuthUsecase is a mock implementation of the AuthUsecase interface.
type mockAuthUsecase struct {
	RegisterFunc func(ctx context.Context, email, password, firstName, lastName string) (*entity.User, error)
	LoginFunc    func(ctx context.Context, email, password string) (string, error)
}

// Register is the mock implementation of the Register method.
func (m *mockAuthUsecase) Register(ctx context.Context, email, password, firstName, lastName string) (*entity.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, email, password, firstName, lastName)
	}
	return &entity.User{ID: 1, Email: email, FirstName: firstName, LastName: lastName}, nil
}

// Login is the mock implementation of the Login method.
func (m *mockAuthUsecase) Login(ctx context.Context, email, password string) (string, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return "mock-token", nil
}

// doRequest runs a handler against a JSON body and returns the recorder.
func doRequest(t *testing.T, handlerFunc gin.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")

	handlerFunc(c)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("successful registration returns 201 without password", func(t *testing.T) {
		now := time.Now()
		h := NewAuthHandler(&mockAuthUsecase{
			RegisterFunc: func(ctx context.Context, email, password, firstName, lastName string) (*entity.User, error) {
				return &entity.User{
					ID:        1,
					Email:     email,
					Password:  "$2a$10$secret-hash",
					FirstName: firstName,
					LastName:  lastName,
					CreatedAt: now,
					UpdatedAt: now,
				}, nil
			},
		})

		w := doRequest(t, h.Register, gin.H{
			"email":     "alice@example.com",
			"password":  "Secret123",
			"firstName": "Alice",
		})

		assert.Equal(t, http.StatusCreated, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "alice@example.com", body["email"])
		assert.Equal(t, "Alice", body["firstName"])
		assert.NotEmpty(t, body["id"])
		// The hash must never be echoed back in any shape.
		assert.NotContains(t, body, "password")
		assert.NotContains(t, w.Body.String(), "secret-hash")
	})

	t.Run("malformed email returns 400", func(t *testing.T) {
		h := NewAuthHandler(&mockAuthUsecase{})

		w := doRequest(t, h.Register, gin.H{"email": "not-an-email", "password": "Secret123"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("short password returns 400", func(t *testing.T) {
		h := NewAuthHandler(&mockAuthUsecase{})

		w := doRequest(t, h.Register, gin.H{"email": "alice@example.com", "password": "short"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("password over 72 bytes returns 400", func(t *testing.T) {
		h := NewAuthHandler(&mockAuthUsecase{
			RegisterFunc: func(ctx context.Context, email, password, firstName, lastName string) (*entity.User, error) {
				t.Error("usecase must not be called when binding rejects the password")
				return nil, nil
			},
		})

		w := doRequest(t, h.Register, gin.H{
			"email":    "alice@example.com",
			"password": strings.Repeat("p", 80),
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("usecase password rejection returns 400", func(t *testing.T) {
		h := NewAuthHandler(&mockAuthUsecase{
			RegisterFunc: func(ctx context.Context, email, password, firstName, lastName string) (*entity.User, error) {
				return nil, usecase.ErrInvalidPassword
			},
		})

		w := doRequest(t, h.Register, gin.H{"email": "alice@example.com", "password": "Secret123"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate email returns 409", func(t *testing.T) {
		h := NewAuthHandler(&mockAuthUsecase{
			RegisterFunc: func(ctx context.Context, email, password, firstName, lastName string) (*entity.User, error) {
				return nil, usecase.ErrEmailAlreadyExists
			},
		})

		w := doRequest(t, h.Register, gin.H{"email": "alice@example.com", "password": "Secret123"})

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("hashing failure returns 500", func(t *testing.T) {
		h := NewAuthHandler(&mockAuthUsecase{
			RegisterFunc: func(ctx context.Context, email, password, firstName, lastName string) (*entity.User, error) {
				return nil, assert.AnError
			},
		})

		w := doRequest(t, h.Register, gin.H{"email": "alice@example.com", "password": "Secret123"})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("successful login returns access token", func(t *testing.T) {
		h := NewAuthHandler(&mockAuthUsecase{
			LoginFunc: func(ctx context.Context, email, password string) (string, error) {
				return "signed.jwt.token", nil
			},
		})

		w := doRequest(t, h.Login, gin.H{"email": "alice@example.com", "password": "Secret123"})

		assert.Equal(t, http.StatusOK, w.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "signed.jwt.token", body["access_token"])
	})

	t.Run("invalid credentials return 401", func(t *testing.T) {
		h := NewAuthHandler(&mockAuthUsecase{
			LoginFunc: func(ctx context.Context, email, password string) (string, error) {
				return "", usecase.ErrInvalidCredentials
			},
		})

		w := doRequest(t, h.Login, gin.H{"email": "alice@example.com", "password": "wrong"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing fields return 400", func(t *testing.T) {
		h := NewAuthHandler(&mockAuthUsecase{})

		w := doRequest(t, h.Login, gin.H{"email": "alice@example.com"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
