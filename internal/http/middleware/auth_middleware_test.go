package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/gatesvc/domain"
	"github.com/you/gatesvc/internal/mocks"
)

func protectedRouterForTest(t *testing.T, tokenSvc domain.TokenService, sessionRepo domain.SessionRepository) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(tokenSvc, sessionRepo), func(c *gin.Context) {
		personID, _ := c.Get("person_id")
		role, _ := c.Get("person_role")
		c.JSON(http.StatusOK, gin.H{"person_id": personID, "role": role})
	})
	return r
}

func validOperatorClaims() *domain.TokenClaims {
	return &domain.TokenClaims{
		PersonID:  7,
		Role:      string(domain.RoleOperator),
		SessionID: "sess_7_1",
		IssuedAt:  time.Now().Unix(),
		ExpiresAt: time.Now().Add(15 * time.Minute).Unix(),
	}
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		setupMocks     func(*mocks.MockTokenService, *mocks.MockSessionRepository)
		expectedStatus int
	}{
		{
			name:       "valid token with live session passes",
			authHeader: "Bearer good-token",
			setupMocks: func(tokenSvc *mocks.MockTokenService, sessionRepo *mocks.MockSessionRepository) {
				tokenSvc.ValidateAccessTokenFunc = func(token string) (*domain.TokenClaims, error) {
					return validOperatorClaims(), nil
				}
				sessionRepo.FindByIDFunc = func(ctx context.Context, sessionID string) (*domain.Session, error) {
					return &domain.Session{ID: sessionID, PersonID: 7, ExpiresAt: time.Now().Add(time.Hour)}, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing header is a 401",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "non-bearer header is a 401",
			authHeader:     "Basic abc123",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired token is a 401",
			authHeader: "Bearer stale-token",
			setupMocks: func(tokenSvc *mocks.MockTokenService, sessionRepo *mocks.MockSessionRepository) {
				tokenSvc.ValidateAccessTokenFunc = func(token string) (*domain.TokenClaims, error) {
					return nil, domain.ErrTokenExpired
				}
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:       "logged-out session kills a valid token",
			authHeader: "Bearer good-token",
			setupMocks: func(tokenSvc *mocks.MockTokenService, sessionRepo *mocks.MockSessionRepository) {
				tokenSvc.ValidateAccessTokenFunc = func(token string) (*domain.TokenClaims, error) {
					return validOperatorClaims(), nil
				}
				sessionRepo.FindByIDFunc = func(ctx context.Context, sessionID string) (*domain.Session, error) {
					return nil, domain.ErrSessionNotFound
				}
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:       "session owned by another person is a 401",
			authHeader: "Bearer good-token",
			setupMocks: func(tokenSvc *mocks.MockTokenService, sessionRepo *mocks.MockSessionRepository) {
				tokenSvc.ValidateAccessTokenFunc = func(token string) (*domain.TokenClaims, error) {
					return validOperatorClaims(), nil
				}
				sessionRepo.FindByIDFunc = func(ctx context.Context, sessionID string) (*domain.Session, error) {
					return &domain.Session{ID: sessionID, PersonID: 99, ExpiresAt: time.Now().Add(time.Hour)}, nil
				}
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenSvc := mocks.NewMockTokenService()
			sessionRepo := mocks.NewMockSessionRepository()
			if tt.setupMocks != nil {
				tt.setupMocks(tokenSvc, sessionRepo)
			}

			r := protectedRouterForTest(t, tokenSvc, sessionRepo)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, tt.expectedStatus, w.Code, "body: %s", w.Body.String())
			if tt.expectedStatus == http.StatusOK {
				assert.Contains(t, w.Body.String(), `"person_id":"7"`)
				assert.Contains(t, w.Body.String(), `"role":"operator"`)
			}
		})
	}
}
