package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneykeeper/internal/service"
	"moneykeeper/internal/utils"
	"moneykeeper/models"
)

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	router := newTestHandler(t, nil).Init()

	req := httptest.NewRequest(http.MethodGet, "/api/expenses/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Authorization")
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	router := newTestHandler(t, nil).Init()

	tests := []struct {
		name   string
		header string
	}{
		{"no token", "Bearer"},
		{"empty token", "Bearer "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/expenses/", nil)
			req.Header.Set("Authorization", tt.header)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	auth := &mockAuthService{
		parseTokenFn: func(ctx context.Context, tokenString string) (models.Token, error) {
			return models.Token{}, service.ErrTokenIsExpiredOrInvalid
		},
	}
	router := newTestHandler(t, testServices(auth, nil, nil, nil)).Init()

	req := httptest.NewRequest(http.MethodGet, "/api/expenses/", nil)
	req.Header.Set("Authorization", "Bearer expired-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_PutsUserIDIntoContext(t *testing.T) {
	auth := &mockAuthService{
		parseTokenFn: func(ctx context.Context, tokenString string) (models.Token, error) {
			require.Equal(t, "good-token", tokenString)
			return models.Token{UserID: 77}, nil
		},
	}
	var gotUserID int64
	expenses := &mockRecordService{
		listFn: func(ctx context.Context, userID int64, filter models.RecordFilter) ([]models.Record, error) {
			gotUserID = userID
			return nil, nil
		},
	}
	router := newTestHandler(t, testServices(auth, expenses, nil, nil)).Init()

	req := httptest.NewRequest(http.MethodGet, "/api/expenses/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(77), gotUserID)
}

func TestGetTokenFromAuthHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{"bearer", "Bearer abc.def.ghi", "abc.def.ghi", nil},
		{"single part", "Bearer", "", ErrInvalidAuthorizationHeader},
		{"empty token part", "Bearer ", "", ErrEmptyToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := getTokenFromAuthHeader(tt.header)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetUserIDFromContext_RoundTrip(t *testing.T) {
	ctx := context.WithValue(context.Background(), utils.UserIDCtxKey, int64(42))

	userID, ok := utils.GetUserIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(42), userID)
}
