package middleware

import (
	"net/http"
	"strings"

	"staymate/internal/shared/config"
	"staymate/internal/shared/constants"
	"staymate/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

const sessionKey = "session"

// Session is the authenticated identity attached to a request. Handlers
// receive it explicitly instead of reading ambient storage.
type Session struct {
	UserID    int64
	Role      string
	FirstName string
	LastName  string
}

// IsAdmin reports whether the session belongs to an admin.
func (s Session) IsAdmin() bool {
	return s.Role == string(constants.RoleAdmin)
}

// SessionFromContext returns the session set by JWTAuth.
func SessionFromContext(c *gin.Context) (Session, bool) {
	value, exists := c.Get(sessionKey)
	if !exists {
		return Session{}, false
	}
	session, ok := value.(Session)
	return session, ok
}

// JWTAuth creates a JWT authentication middleware
func JWTAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := sessionFromHeader(c, cfg)
		if !ok {
			c.Abort()
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

// OptionalAuth attaches a session when a valid token is present but lets
// anonymous requests through.
func OptionalAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		if session, ok := parseBearer(c.GetHeader("Authorization"), cfg); ok {
			c.Set(sessionKey, session)
		}
		c.Next()
	}
}

// RequireRoles checks that the session role is one of the required roles.
func RequireRoles(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := SessionFromContext(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "session not found in context", nil)
			c.Abort()
			return
		}

		hasRole := false
		for _, role := range requiredRoles {
			if session.Role == role {
				hasRole = true
				break
			}
		}

		if !hasRole {
			response.Error(c, http.StatusForbidden, "Insufficient permissions", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAdmin requires the admin role.
func RequireAdmin() gin.HandlerFunc {
	return RequireRoles(string(constants.RoleAdmin))
}

func sessionFromHeader(c *gin.Context, cfg *config.Config) (Session, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		response.Error(c, http.StatusUnauthorized, "Authorization header is required", nil)
		return Session{}, false
	}

	session, ok := parseBearer(authHeader, cfg)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "invalid or expired token", nil)
		return Session{}, false
	}
	return session, true
}

func parseBearer(authHeader string, cfg *config.Config) (Session, bool) {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return Session{}, false
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil || !token.Valid {
		return Session{}, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Session{}, false
	}
	if tokenType, ok := claims["type"]; !ok || tokenType != "session" {
		return Session{}, false
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return Session{}, false
	}

	role, _ := claims["role"].(string)
	firstName, _ := claims["first_name"].(string)
	lastName, _ := claims["last_name"].(string)

	return Session{
		UserID:    int64(userID),
		Role:      role,
		FirstName: firstName,
		LastName:  lastName,
	}, true
}
