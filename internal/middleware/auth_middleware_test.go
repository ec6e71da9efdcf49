package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ecosync-hub/config"
	"ecosync-hub/internal/domain/user"
	"ecosync-hub/internal/services"
	ecosync_errors "ecosync-hub/pkg/errors"
	"ecosync-hub/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type stubUserRepo struct {
	users map[uint]user.User
}

func (r *stubUserRepo) Create(ctx context.Context, u *user.User) error {
	u.ID = uint(len(r.users) + 1)
	r.users[u.ID] = *u
	return nil
}

func (r *stubUserRepo) GetByID(ctx context.Context, id uint) (user.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return user.User{}, ecosync_errors.ErrNotFound
}

func (r *stubUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, ecosync_errors.ErrNotFound
}

func (r *stubUserRepo) Search(ctx context.Context, usernameLike string, limit int) ([]user.PublicProfile, error) {
	return nil, nil
}

func (r *stubUserRepo) UpdateRole(ctx context.Context, id uint, fromRole, toRole string) error {
	return nil
}

func (r *stubUserRepo) CreditCarbon(ctx context.Context, id uint, points int, carbonKg float64, trees int) error {
	return nil
}

func (r *stubUserRepo) TopByCarbon(ctx context.Context, limit int) ([]user.PublicProfile, error) {
	return nil, nil
}

func (r *stubUserRepo) CountUsers(ctx context.Context) (int64, error) { return 0, nil }

func (r *stubUserRepo) TotalCarbonSaved(ctx context.Context) (float64, error) { return 0, nil }

func authFixture(t *testing.T) (*gin.Engine, *services.AuthService, *stubUserRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := &stubUserRepo{users: make(map[uint]user.User)}
	auth := services.NewAuthService(repo, &config.Config{JWTSecret: "test-secret", JWTExpiryMin: 60})

	r := gin.New()
	r.GET("/whoami", AuthMiddleware(auth, logger.NewNop()), func(c *gin.Context) {
		id, _ := services.IdentityFromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"id": id.ID, "role": id.Role})
	})
	return r, auth, repo
}

func loginToken(t *testing.T, auth *services.AuthService) string {
	t.Helper()
	if _, err := auth.Register(context.Background(), services.RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "hunter22",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	resp, err := auth.Login(context.Background(), "alice@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	return resp.Token
}

func TestAuthMissingTokenIs401(t *testing.T) {
	r, _, _ := authFixture(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAuthInvalidTokenIs403(t *testing.T) {
	r, _, _ := authFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer garbage.token.value")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}

func TestAuthValidToken(t *testing.T) {
	r, auth, _ := authFixture(t)
	token := loginToken(t, auth)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"role":"user"`) {
		t.Fatalf("role missing from response: %s", w.Body.String())
	}
}

func TestAuthBackfillsMissingRoleClaim(t *testing.T) {
	r, auth, repo := authFixture(t)
	loginToken(t, auth)
	// Promote after token issuance to prove the store is consulted.
	u := repo.users[1]
	u.Role = user.RoleAdmin
	repo.users[1] = u

	// Mint a legacy token without a role claim.
	now := time.Now()
	claims := services.AccessClaims{
		UserID:   1,
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"role":"admin"`) {
		t.Fatalf("expected backfilled admin role: %s", w.Body.String())
	}
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin-only",
		func(c *gin.Context) {
			ctx := services.WithIdentity(c.Request.Context(), services.Identity{ID: 1, Role: user.RoleUser})
			c.Request = c.Request.WithContext(ctx)
		},
		RequireRole("admin"),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin-only", nil))

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}
