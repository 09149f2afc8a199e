package login_test

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

	"github.com/magabrotheeeer/trading-signals/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/trading-signals/internal/lib/errs"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Login(ctx context.Context, email, rawPassword string) (string, error) {
	args := m.Called(ctx, email, rawPassword)
	return args.String(0), args.Error(1)
}

func TestLoginHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMock  func(s *ServiceMock)
		wantStatus int
		wantError  string
	}{
		{
			name: "успешная авторизация",
			body: `{"email": "test@example.com", "password": "password123"}`,
			setupMock: func(s *ServiceMock) {
				s.On("Login", mock.Anything, "test@example.com", "password123").
					Return("jwt-token-123", nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "неверные учетные данные",
			body: `{"email": "test@example.com", "password": "wrongpass"}`,
			setupMock: func(s *ServiceMock) {
				s.On("Login", mock.Anything, "test@example.com", "wrongpass").
					Return("", errs.ErrInvalidCredentials).Once()
			},
			wantStatus: http.StatusUnauthorized,
			wantError:  "invalid credentials",
		},
		{
			// Неизвестный email неотличим от неверного пароля.
			name: "несуществующий email",
			body: `{"email": "nobody@example.com", "password": "password123"}`,
			setupMock: func(s *ServiceMock) {
				s.On("Login", mock.Anything, "nobody@example.com", "password123").
					Return("", errs.ErrInvalidCredentials).Once()
			},
			wantStatus: http.StatusUnauthorized,
			wantError:  "invalid credentials",
		},
		{
			name:       "некорректный JSON",
			body:       `{"email": `,
			setupMock:  func(_ *ServiceMock) {},
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid request body",
		},
		{
			name:       "email не является адресом",
			body:       `{"email": "not-an-email", "password": "password123"}`,
			setupMock:  func(_ *ServiceMock) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "пустой пароль",
			body:       `{"email": "test@example.com", "password": ""}`,
			setupMock:  func(_ *ServiceMock) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "ошибка хранилища",
			body: `{"email": "test@example.com", "password": "password123"}`,
			setupMock: func(s *ServiceMock) {
				s.On("Login", mock.Anything, "test@example.com", "password123").
					Return("", errors.New("db error")).Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantError:  "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(ServiceMock)
			tt.setupMock(service)

			log := slog.New(slog.NewTextHandler(io.Discard, nil))
			handler := login.New(log, service)

			req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(tt.body))
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
			}

			service.AssertExpectations(t)
		})
	}
}
