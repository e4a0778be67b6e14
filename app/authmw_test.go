package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"Gin_postgres_redis_inventory_tracker/models"
	"Gin_postgres_redis_inventory_tracker/session"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func newTestSessions(t *testing.T) *session.AppSessionStore {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return session.NewAppSessionStore(rdb, time.Minute)
}

func newTestRouter(appSess *session.AppSessionStore, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{AuthRequired(appSess)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, H{"userID": CurrentUserID(c), "roleID": CurrentRole(c)})
	})
	r.GET("/probe", handlers...)
	return r
}

func doProbe(r *gin.Engine, sessionID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: AppSessionCookie, Value: sessionID})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequiredRejectsMissingCookie(t *testing.T) {
	r := newTestRouter(newTestSessions(t))
	if w := doProbe(r, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("no cookie: got %d", w.Code)
	}
}

func TestAuthRequiredRejectsUnknownSession(t *testing.T) {
	r := newTestRouter(newTestSessions(t))
	if w := doProbe(r, "bogus"); w.Code != http.StatusUnauthorized {
		t.Fatalf("unknown session: got %d", w.Code)
	}
}

func TestAuthRequiredSetsIdentityFromSession(t *testing.T) {
	appSess := newTestSessions(t)
	if err := appSess.Create(context.Background(), "sid", 42, models.RoleAdmin); err != nil {
		t.Fatalf("create session: %v", err)
	}
	r := newTestRouter(appSess)

	w := doProbe(r, "sid")
	if w.Code != http.StatusOK {
		t.Fatalf("valid session: got %d", w.Code)
	}
	body := w.Body.String()
	if body != `{"roleID":2,"userID":42}` {
		t.Fatalf("unexpected identity payload: %s", body)
	}
}

func TestRequireStaff(t *testing.T) {
	appSess := newTestSessions(t)
	if err := appSess.Create(context.Background(), "user-sid", 1, models.RoleUser); err != nil {
		t.Fatalf("create session: %v", err)
	}
	if err := appSess.Create(context.Background(), "admin-sid", 2, models.RoleAdmin); err != nil {
		t.Fatalf("create session: %v", err)
	}
	r := newTestRouter(appSess, RequireStaff())

	if w := doProbe(r, "user-sid"); w.Code != http.StatusForbidden {
		t.Fatalf("regular user: got %d", w.Code)
	}
	if w := doProbe(r, "admin-sid"); w.Code != http.StatusOK {
		t.Fatalf("admin: got %d", w.Code)
	}
}

func TestRequireSuperadmin(t *testing.T) {
	appSess := newTestSessions(t)
	if err := appSess.Create(context.Background(), "admin-sid", 2, models.RoleAdmin); err != nil {
		t.Fatalf("create session: %v", err)
	}
	if err := appSess.Create(context.Background(), "root-sid", 3, models.RoleSuperadmin); err != nil {
		t.Fatalf("create session: %v", err)
	}
	r := newTestRouter(appSess, RequireSuperadmin())

	if w := doProbe(r, "admin-sid"); w.Code != http.StatusForbidden {
		t.Fatalf("admin: got %d", w.Code)
	}
	if w := doProbe(r, "root-sid"); w.Code != http.StatusOK {
		t.Fatalf("superadmin: got %d", w.Code)
	}
}
