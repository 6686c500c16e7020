package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/roan2008/dpti-rocket-system-sub001/internal/domain"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/response"
)

// PrincipalKey is the gin context key holding the authenticated domain.Principal
const PrincipalKey = "principal"

// Auth returns a middleware that validates HMAC-signed JWT bearer tokens and
// stores the resulting principal in the request context. Tokens without a
// role claim are treated as viewers.
func Auth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "Invalid token claims")
			return
		}

		principal, err := principalFromClaims(claims)
		if err != nil {
			abortUnauthorized(c, err.Error())
			return
		}

		c.Set(PrincipalKey, principal)
		c.Next()
	}
}

// RequireRole aborts with 403 unless the principal holds one of roles
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			abortUnauthorized(c, "Authentication required")
			return
		}
		if !principal.HasRole(roles...) {
			response.SendError(c, http.StatusForbidden, response.ErrCodeForbidden, "Insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetPrincipal returns the principal stored by Auth
func GetPrincipal(c *gin.Context) (domain.Principal, bool) {
	value, exists := c.Get(PrincipalKey)
	if !exists {
		return domain.Principal{}, false
	}
	principal, ok := value.(domain.Principal)
	return principal, ok
}

func principalFromClaims(claims jwt.MapClaims) (domain.Principal, error) {
	var userIDStr string
	if uid, ok := claims["user_id"].(string); ok {
		userIDStr = uid
	} else if sub, ok := claims["sub"].(string); ok {
		userIDStr = sub
	} else {
		return domain.Principal{}, errString("User ID not found in token")
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return domain.Principal{}, errString("Invalid user ID format")
	}

	role := domain.RoleViewer
	if raw, ok := claims["role"].(string); ok && raw != "" {
		role = domain.Role(strings.ToLower(raw))
		if !role.IsValid() {
			return domain.Principal{}, errString("Unknown role in token")
		}
	}

	return domain.Principal{UserID: userID, Role: role}, nil
}

type errString string

func (e errString) Error() string { return string(e) }

func abortUnauthorized(c *gin.Context, message string) {
	response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, message)
	c.Abort()
}
