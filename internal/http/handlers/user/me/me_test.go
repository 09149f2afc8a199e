package me_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/trading-signals/internal/http/handlers/user/me"
	"github.com/magabrotheeeer/trading-signals/internal/http/middlewarectx"
	"github.com/magabrotheeeer/trading-signals/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) GetActive(ctx context.Context, userID int64) (*models.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func newRequest(user *models.User) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if user != nil {
		ctx := context.WithValue(req.Context(), middlewarectx.User, user)
		req = req.WithContext(ctx)
	}
	return req
}

func TestMeHandler(t *testing.T) {
	authedUser := &models.User{
		ID:              1,
		Username:        "testuser",
		Email:           "test@example.com",
		PasswordHash:    "$2a$10$secret",
		ConsentAccepted: true,
	}
	activeSub := &models.Subscription{
		ID:       10,
		UserID:   1,
		PlanType: models.PlanYearly,
		EndDate:  time.Now().UTC().AddDate(1, 0, 0),
		IsActive: true,
	}

	tests := []struct {
		name       string
		user       *models.User
		setupMock  func(s *ServiceMock)
		wantStatus int
		wantSub    bool
	}{
		{
			name: "пользователь с активной подпиской",
			user: authedUser,
			setupMock: func(s *ServiceMock) {
				s.On("GetActive", mock.Anything, int64(1)).Return(activeSub, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantSub:    true,
		},
		{
			name: "пользователь без подписки получает null",
			user: authedUser,
			setupMock: func(s *ServiceMock) {
				s.On("GetActive", mock.Anything, int64(1)).Return(nil, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantSub:    false,
		},
		{
			name:       "пользователь отсутствует в контексте",
			user:       nil,
			setupMock:  func(_ *ServiceMock) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "ошибка хранилища",
			user: authedUser,
			setupMock: func(s *ServiceMock) {
				s.On("GetActive", mock.Anything, int64(1)).
					Return(nil, errors.New("db error")).Once()
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(ServiceMock)
			tt.setupMock(service)

			log := slog.New(slog.NewTextHandler(io.Discard, nil))
			handler := me.New(log, service)

			req := newRequest(tt.user)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}

			var resp map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			data, ok := resp["data"].(map[string]any)
			require.True(t, ok)

			user, ok := data["user"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, "testuser", user["username"])
			// Хэш пароля не попадает в ответ.
			assert.NotContains(t, rec.Body.String(), "secret")

			if tt.wantSub {
				sub, ok := data["subscription"].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, "yearly", sub["type"])
			} else {
				assert.Nil(t, data["subscription"])
			}

			service.AssertExpectations(t)
		})
	}
}
