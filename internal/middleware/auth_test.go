package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"edunova_backend/internal/config"
	"edunova_backend/internal/model"
	"edunova_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = time.Hour
	return cfg
}

func issueToken(t *testing.T, role model.UserRole) string {
	t.Helper()
	token, err := util.GenerateJWT(&model.User{
		UUIDBase: model.UUIDBase{ID: "user-1"},
		Role:     role,
		Grade:    "5",
	}, "test-secret", time.Hour)
	require.NoError(t, err)
	return token
}

func authTestRouter(cfg *config.Config, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers := append([]gin.HandlerFunc{AuthMiddleware(cfg)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		c.JSON(http.StatusOK, gin.H{"userId": claims.UserID})
	})
	router.GET("/protected", handlers...)
	return router
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	router := authTestRouter(testConfig())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	router := authTestRouter(testConfig())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_BearerHeader(t *testing.T) {
	router := authTestRouter(testConfig())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, model.Student))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_QueryToken(t *testing.T) {
	router := authTestRouter(testConfig())

	req := httptest.NewRequest(http.MethodGet, "/protected?token="+issueToken(t, model.Student), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoleMiddleware(t *testing.T) {
	cases := []struct {
		name string
		role model.UserRole
		want int
	}{
		{"student forbidden", model.Student, http.StatusForbidden},
		{"teacher allowed", model.Teacher, http.StatusOK},
		{"admin always allowed", model.Admin, http.StatusOK},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			router := authTestRouter(testConfig(), RoleMiddleware(model.Teacher))

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+issueToken(t, c.role))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, c.want, w.Code)
		})
	}
}

type fakeActivityRepo struct {
	mu    sync.Mutex
	seen  []string
	calls chan struct{}
}

func (f *fakeActivityRepo) UpdateLastSeen(userID string) error {
	f.mu.Lock()
	f.seen = append(f.seen, userID)
	f.mu.Unlock()
	f.calls <- struct{}{}
	return nil
}

func TestActivityMiddleware(t *testing.T) {
	repo := &fakeActivityRepo{calls: make(chan struct{}, 1)}
	router := authTestRouter(testConfig(), ActivityMiddleware(repo))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, model.Student))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	select {
	case <-repo.calls:
	case <-time.After(time.Second):
		t.Fatal("UpdateLastSeen was not called")
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()
	assert.Equal(t, []string{"user-1"}, repo.seen)
}
