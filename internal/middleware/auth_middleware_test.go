package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"pizza_this_backend/internal/models"
	"pizza_this_backend/internal/services"
)

type stubUserLoader struct {
	users map[string]*models.User
}

func (l *stubUserLoader) GetUser(id string) (*models.User, error) {
	if u, ok := l.users[id]; ok {
		return u, nil
	}
	return nil, services.ErrUserNotFound
}

func testRouter(t *testing.T) (*gin.Engine, services.TokenService, *stubUserLoader) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := services.NewTokenService("test-secret", time.Hour)
	loader := &stubUserLoader{users: map[string]*models.User{
		"USER00010": {ID: "USER00010", Role: models.RoleClient},
		"USER00020": {ID: "USER00020", Role: models.RoleAdmin},
	}}

	engine := gin.New()
	engine.GET("/private", AuthMiddleware(tokens, loader), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": CurrentUser(c).ID})
	})
	engine.GET("/admin", AuthMiddleware(tokens, loader), RoleAuthMiddleware(models.RoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	engine.GET("/open", OptionalAuthMiddleware(tokens, loader), func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.JSON(http.StatusOK, gin.H{"user": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user.ID})
	})
	return engine, tokens, loader
}

func perform(engine *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	engine, _, _ := testRouter(t)

	w := perform(engine, "/private", "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Non authentifié") {
		t.Errorf("body %q lacks the auth error message", w.Body.String())
	}
}

func TestAuthMiddlewareRejectsGarbageToken(t *testing.T) {
	engine, _, _ := testRouter(t)

	for _, token := range []string{"garbage", "a.b.c"} {
		if w := perform(engine, "/private", token); w.Code != http.StatusUnauthorized {
			t.Errorf("token %q: status = %d, want 401", token, w.Code)
		}
	}
}

func TestAuthMiddlewareRejectsDeletedAccount(t *testing.T) {
	engine, tokens, _ := testRouter(t)

	token, err := tokens.Issue("USER00099")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if w := perform(engine, "/private", token); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthMiddlewarePassesValidToken(t *testing.T) {
	engine, tokens, _ := testRouter(t)

	token, err := tokens.Issue("USER00010")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	w := perform(engine, "/private", token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "USER00010") {
		t.Errorf("body %q lacks the user code", w.Body.String())
	}
}

func TestRoleAuthMiddleware(t *testing.T) {
	engine, tokens, _ := testRouter(t)

	clientToken, err := tokens.Issue("USER00010")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	adminToken, err := tokens.Issue("USER00020")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	w := perform(engine, "/admin", clientToken)
	if w.Code != http.StatusForbidden {
		t.Errorf("client on admin route: status = %d, want 403", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Accès non autorisé") {
		t.Errorf("body %q lacks the forbidden message", w.Body.String())
	}

	if w := perform(engine, "/admin", adminToken); w.Code != http.StatusOK {
		t.Errorf("admin on admin route: status = %d, want 200", w.Code)
	}
}

func TestOptionalAuthMiddleware(t *testing.T) {
	engine, tokens, _ := testRouter(t)

	if w := perform(engine, "/open", ""); w.Code != http.StatusOK {
		t.Errorf("anonymous: status = %d, want 200", w.Code)
	}
	if w := perform(engine, "/open", "garbage"); w.Code != http.StatusOK {
		t.Errorf("garbage token: status = %d, want 200", w.Code)
	}

	token, err := tokens.Issue("USER00010")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	w := perform(engine, "/open", token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "USER00010") {
		t.Errorf("body %q lacks the user code", w.Body.String())
	}
}
