package middlewarectx_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/trading-signals/internal/http/middlewarectx"
	"github.com/magabrotheeeer/trading-signals/internal/lib/errs"
	"github.com/magabrotheeeer/trading-signals/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) ResolveToken(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestJWTMiddleware(t *testing.T) {
	storedUser := &models.User{
		ID:              5,
		Username:        "testuser",
		Email:           "test@example.com",
		ConsentAccepted: true,
	}

	tests := []struct {
		name       string
		authHeader string
		setupMock  func(s *ServiceMock)
		wantStatus int
		wantUser   bool
	}{
		{
			name:       "валидный токен пропускает запрос дальше",
			authHeader: "Bearer valid-token",
			setupMock: func(s *ServiceMock) {
				s.On("ResolveToken", mock.Anything, "valid-token").Return(storedUser, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantUser:   true,
		},
		{
			name:       "отсутствующий заголовок",
			authHeader: "",
			setupMock:  func(_ *ServiceMock) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "заголовок без префикса Bearer",
			authHeader: "Basic dXNlcjpwYXNz",
			setupMock:  func(_ *ServiceMock) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "невалидный токен",
			authHeader: "Bearer bad-token",
			setupMock: func(s *ServiceMock) {
				s.On("ResolveToken", mock.Anything, "bad-token").
					Return(nil, errs.ErrInvalidToken).Once()
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			// Удалённый пользователь неотличим от невалидного токена.
			name:       "пользователь удалён после выдачи токена",
			authHeader: "Bearer valid-token",
			setupMock: func(s *ServiceMock) {
				s.On("ResolveToken", mock.Anything, "valid-token").
					Return(nil, errs.ErrUserNotFound).Once()
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "ошибка хранилища",
			authHeader: "Bearer valid-token",
			setupMock: func(s *ServiceMock) {
				s.On("ResolveToken", mock.Anything, "valid-token").
					Return(nil, errors.New("db error")).Once()
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(ServiceMock)
			tt.setupMock(service)

			log := slog.New(slog.NewTextHandler(io.Discard, nil))

			var gotUser *models.User
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser, _ = middlewarectx.UserFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			handler := middlewarectx.JWTMiddleware(service, log)(next)

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantUser {
				require.NotNil(t, gotUser)
				assert.Equal(t, storedUser, gotUser)
			} else {
				assert.Nil(t, gotUser)
			}

			service.AssertExpectations(t)
		})
	}
}

func TestUserFromContext_Missing(t *testing.T) {
	user, ok := middlewarectx.UserFromContext(context.Background())
	assert.False(t, ok)
	assert.Nil(t, user)
}
