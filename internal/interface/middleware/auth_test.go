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

	"github.com/okisetiawan/go-product-catalog/internal/domain/entity"
	repo "github.com/okisetiawan/go-product-catalog/internal/domain/repository"
	"github.com/okisetiawan/go-product-catalog/pkg/helpers"
)

type stubUserRepo struct {
	users map[string]*entity.User
}

func (s *stubUserRepo) Create(_ context.Context, _ *entity.User) error { return nil }

func (s *stubUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return u, nil
}

func (s *stubUserRepo) GetByEmail(_ context.Context, _ string) (*entity.User, error) {
	return nil, repo.ErrNotFound
}

func newGuardedRouter(jwt *helpers.JWTManager, users repo.UserRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	auth := r.Group("/", Auth(jwt))
	auth.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString(CtxUserIDKey)})
	})
	admin := auth.Group("/", RequireRole(users, entity.RoleAdmin))
	admin.GET("/admin/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func doGet(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_MissingToken(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	r := newGuardedRouter(jwt, &stubUserRepo{})

	w := doGet(r, "/ping", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuth_MalformedHeader(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	r := newGuardedRouter(jwt, &stubUserRepo{})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Token abcdef")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuth_InvalidToken(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	r := newGuardedRouter(jwt, &stubUserRepo{})

	w := doGet(r, "/ping", "garbage.token.value")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_WrongSecret(t *testing.T) {
	other := helpers.NewJWTManager("other-secret", time.Hour)
	token, _, err := other.Generate(&entity.User{ID: "u1", Email: "a@x.com", Role: entity.RoleUser})
	require.NoError(t, err)

	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	r := newGuardedRouter(jwt, &stubUserRepo{})

	w := doGet(r, "/ping", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_ExpiredToken(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	expired := helpers.NewJWTManager("test-secret", -time.Minute)
	token, _, err := expired.Generate(&entity.User{ID: "u1", Email: "a@x.com", Role: entity.RoleUser})
	require.NoError(t, err)

	r := newGuardedRouter(jwt, &stubUserRepo{})

	w := doGet(r, "/ping", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_ValidToken(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	token, _, err := jwt.Generate(&entity.User{ID: "u1", Email: "a@x.com", Role: entity.RoleUser})
	require.NoError(t, err)

	r := newGuardedRouter(jwt, &stubUserRepo{})

	w := doGet(r, "/ping", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "u1")
}

func TestRequireRole_Admin(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	admin := &entity.User{ID: "u1", Email: "a@x.com", Role: entity.RoleAdmin}
	token, _, err := jwt.Generate(admin)
	require.NoError(t, err)

	users := &stubUserRepo{users: map[string]*entity.User{"u1": admin}}
	r := newGuardedRouter(jwt, users)

	w := doGet(r, "/admin/ping", token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole_UserDenied(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	user := &entity.User{ID: "u1", Email: "a@x.com", Role: entity.RoleUser}
	token, _, err := jwt.Generate(user)
	require.NoError(t, err)

	users := &stubUserRepo{users: map[string]*entity.User{"u1": user}}
	r := newGuardedRouter(jwt, users)

	w := doGet(r, "/admin/ping", token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRole_StaleTokenRole(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	// Token says ADMIN, but the store has since downgraded the user.
	token, _, err := jwt.Generate(&entity.User{ID: "u1", Email: "a@x.com", Role: entity.RoleAdmin})
	require.NoError(t, err)

	users := &stubUserRepo{users: map[string]*entity.User{
		"u1": {ID: "u1", Email: "a@x.com", Role: entity.RoleUser},
	}}
	r := newGuardedRouter(jwt, users)

	w := doGet(r, "/admin/ping", token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRole_UserGone(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	token, _, err := jwt.Generate(&entity.User{ID: "u1", Email: "a@x.com", Role: entity.RoleAdmin})
	require.NoError(t, err)

	users := &stubUserRepo{users: map[string]*entity.User{}}
	r := newGuardedRouter(jwt, users)

	w := doGet(r, "/admin/ping", token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
