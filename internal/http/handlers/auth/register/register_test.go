package register_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/trading-signals/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/trading-signals/internal/lib/errs"
	"github.com/magabrotheeeer/trading-signals/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Register(ctx context.Context, username, email, rawPassword string) (string, *models.PublicUser, error) {
	args := m.Called(ctx, username, email, rawPassword)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*models.PublicUser), args.Error(2)
}

func TestRegisterHandler(t *testing.T) {
	newUser := &models.PublicUser{
		ID:       7,
		Username: "testuser",
		Email:    "test@example.com",
	}

	tests := []struct {
		name       string
		body       string
		setupMock  func(s *ServiceMock)
		wantStatus int
		wantError  string
	}{
		{
			name: "успешная регистрация",
			body: `{"username": "testuser", "email": "test@example.com", "password": "password123"}`,
			setupMock: func(s *ServiceMock) {
				s.On("Register", mock.Anything, "testuser", "test@example.com", "password123").
					Return("jwt-token-123", newUser, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "дубликат username или email",
			body: `{"username": "testuser", "email": "test@example.com", "password": "password123"}`,
			setupMock: func(s *ServiceMock) {
				s.On("Register", mock.Anything, "testuser", "test@example.com", "password123").
					Return("", nil, errs.ErrUserExists).Once()
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "username or email already taken",
		},
		{
			name:       "некорректный JSON",
			body:       `{"username": `,
			setupMock:  func(_ *ServiceMock) {},
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid request body",
		},
		{
			name:       "слишком короткий username",
			body:       `{"username": "ab", "email": "test@example.com", "password": "password123"}`,
			setupMock:  func(_ *ServiceMock) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "слишком короткий пароль",
			body:       `{"username": "testuser", "email": "test@example.com", "password": "12345"}`,
			setupMock:  func(_ *ServiceMock) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "email не является адресом",
			body:       `{"username": "testuser", "email": "not-an-email", "password": "password123"}`,
			setupMock:  func(_ *ServiceMock) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "ошибка хранилища",
			body: `{"username": "testuser", "email": "test@example.com", "password": "password123"}`,
			setupMock: func(s *ServiceMock) {
				s.On("Register", mock.Anything, "testuser", "test@example.com", "password123").
					Return("", nil, errors.New("db error")).Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantError:  "failed to register user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(ServiceMock)
			tt.setupMock(service)

			log := slog.New(slog.NewTextHandler(io.Discard, nil))
			handler := register.New(log, service)

			req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, resp["error"])
			}
			if tt.wantStatus == http.StatusOK {
				data, ok := resp["data"].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, "jwt-token-123", data["token"])

				user, ok := data["user"].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, "testuser", user["username"])
				assert.Equal(t, "test@example.com", user["email"])
			}

			service.AssertExpectations(t)
		})
	}
}
