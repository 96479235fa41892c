package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"staymate/internal/shared/config"
	"staymate/internal/shared/constants"
)

const testSecret = "test-secret"

func testConfig() *config.Config {
	return &config.Config{JWT: config.JWTConfig{Secret: testSecret, ExpiresIn: time.Hour}}
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func sessionClaims(userID int64, role string) jwt.MapClaims {
	return jwt.MapClaims{
		"type":       "session",
		"user_id":    userID,
		"role":       role,
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"exp":        time.Now().Add(time.Hour).Unix(),
	}
}

func protectedRouter(cfg *config.Config, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	handlers := append([]gin.HandlerFunc{JWTAuth(cfg)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		session, _ := SessionFromContext(c)
		c.JSON(http.StatusOK, gin.H{"user_id": session.UserID, "role": session.Role})
	})
	engine.GET("/protected", handlers...)
	return engine
}

func request(t *testing.T, engine *gin.Engine, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuthAcceptsSessionToken(t *testing.T) {
	cfg := testConfig()
	engine := protectedRouter(cfg)

	rec := request(t, engine, signToken(t, sessionClaims(5, string(constants.RoleUser))))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
	engine := protectedRouter(testConfig())

	if rec := request(t, engine, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", rec.Code)
	}
}

func TestJWTAuthRejectsWrongTokenType(t *testing.T) {
	claims := sessionClaims(5, string(constants.RoleUser))
	claims["type"] = "refresh"
	engine := protectedRouter(testConfig())

	if rec := request(t, engine, signToken(t, claims)); rec.Code != http.StatusUnauthorized {
		t.Fatalf("a non-session token must be rejected, got %d", rec.Code)
	}
}

func TestJWTAuthRejectsExpiredToken(t *testing.T) {
	claims := sessionClaims(5, string(constants.RoleUser))
	claims["exp"] = time.Now().Add(-time.Minute).Unix()
	engine := protectedRouter(testConfig())

	if rec := request(t, engine, signToken(t, claims)); rec.Code != http.StatusUnauthorized {
		t.Fatalf("an expired token must be rejected, got %d", rec.Code)
	}
}

func TestJWTAuthRejectsWrongSignature(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims(5, string(constants.RoleUser))).
		SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	engine := protectedRouter(testConfig())

	if rec := request(t, engine, token); rec.Code != http.StatusUnauthorized {
		t.Fatalf("a foreign signature must be rejected, got %d", rec.Code)
	}
}

func TestRequireAdminBlocksUsers(t *testing.T) {
	cfg := testConfig()
	engine := protectedRouter(cfg, RequireAdmin())

	rec := request(t, engine, signToken(t, sessionClaims(5, string(constants.RoleUser))))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for a plain user, got %d", rec.Code)
	}

	rec = request(t, engine, signToken(t, sessionClaims(5, string(constants.RoleAdmin))))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for an admin, got %d", rec.Code)
	}
}

func TestSessionCarriesIdentity(t *testing.T) {
	cfg := testConfig()
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	var got Session
	engine.GET("/whoami", JWTAuth(cfg), func(c *gin.Context) {
		got, _ = SessionFromContext(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, sessionClaims(7, string(constants.RoleAdmin))))
	engine.ServeHTTP(httptest.NewRecorder(), req)

	if got.UserID != 7 || !got.IsAdmin() {
		t.Errorf("unexpected session %+v", got)
	}
	if got.FirstName != "Ada" || got.LastName != "Lovelace" {
		t.Errorf("name claims must travel with the session, got %+v", got)
	}
}
