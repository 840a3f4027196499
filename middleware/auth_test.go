package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"staybook-backend/config"
	"staybook-backend/models"
	"staybook-backend/services"
	"staybook-backend/utils"
)

var testSecret = []byte("middleware-test-secret")

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	if err := config.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func newGuardedRouter(t *testing.T, db *gorm.DB, required ...models.Role) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	users := services.NewUserService(db)

	r := gin.New()
	r.GET("/guarded",
		Authenticate(testSecret),
		RequireRole(users, required...),
		func(c *gin.Context) {
			user, ok := Principal(c)
			if !ok {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "principal missing"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"id": user.ID})
		})
	return r
}

func doGet(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticateMissingToken(t *testing.T) {
	db := newTestDB(t)
	r := newGuardedRouter(t, db, models.RoleGuest)

	if w := doGet(r, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAuthenticateBadToken(t *testing.T) {
	db := newTestDB(t)
	r := newGuardedRouter(t, db, models.RoleGuest)

	if w := doGet(r, "not-a-token"); w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}

	wrongKey, err := utils.CreateAccessToken([]byte("other-secret"), 1)
	if err != nil {
		t.Fatalf("CreateAccessToken: %v", err)
	}
	if w := doGet(r, wrongKey); w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong secret: status = %d, want 401", w.Code)
	}
}

func TestRequireRoleUnknownPrincipal(t *testing.T) {
	db := newTestDB(t)
	r := newGuardedRouter(t, db, models.RoleGuest)

	token, err := utils.CreateAccessToken(testSecret, 999)
	if err != nil {
		t.Fatalf("CreateAccessToken: %v", err)
	}
	if w := doGet(r, token); w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestRequireRoleForbidden(t *testing.T) {
	db := newTestDB(t)
	guest := &models.User{Name: "G", Email: "g@example.com", Password: "x", Role: models.RoleGuest}
	if err := db.Create(guest).Error; err != nil {
		t.Fatalf("create guest: %v", err)
	}
	r := newGuardedRouter(t, db, models.RoleAdmin)

	token, err := utils.CreateAccessToken(testSecret, guest.ID)
	if err != nil {
		t.Fatalf("CreateAccessToken: %v", err)
	}
	if w := doGet(r, token); w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}

func TestRequireRoleAdmits(t *testing.T) {
	db := newTestDB(t)
	host := &models.User{Name: "H", Email: "h@example.com", Password: "x", Role: models.RoleHost}
	if err := db.Create(host).Error; err != nil {
		t.Fatalf("create host: %v", err)
	}
	r := newGuardedRouter(t, db, models.RoleGuest, models.RoleHost)

	token, err := utils.CreateAccessToken(testSecret, host.ID)
	if err != nil {
		t.Fatalf("CreateAccessToken: %v", err)
	}
	if w := doGet(r, token); w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}
}

func TestOptionalAuthenticateAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/open", OptionalAuthenticate(testSecret), func(c *gin.Context) {
		_, authed := PrincipalID(c)
		c.JSON(http.StatusOK, gin.H{"authed": authed})
	})

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}
