package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/dzstore/internal/domain"
	"github.com/fsdevblog/dzstore/internal/service/tokens"
)

var ErrTokenNotExist = errors.New("token not exist")

const (
	CurrentUserIDKey   = "currentUserID"
	CurrentUserRoleKey = "currentUserRole"
)

const bearerPrefix = "Bearer "

// checkAuthorization extracts the bearer token from the Authorization header and validates it.
// A missing token yields ErrTokenNotExist.
func checkAuthorization(c *gin.Context, jwtTokenSecret []byte) (*tokens.UserClaims, error) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		return nil, ErrTokenNotExist
	}
	return tokens.ValidateUserJWT(header[len(bearerPrefix):], jwtTokenSecret) //nolint:wrapcheck
}

// AuthRequired puts the id and role of the authorized user into the context under
// CurrentUserIDKey and CurrentUserRoleKey.
func AuthRequired(jwtTokenSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := checkAuthorization(c, jwtTokenSecret)
		if err != nil {
			if !errors.Is(err, ErrTokenNotExist) {
				_ = c.Error(err).SetType(gin.ErrorTypePrivate)
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set(CurrentUserIDKey, claims.ID)
		c.Set(CurrentUserRoleKey, claims.Role)
		c.Next()
	}
}

// AdminRequired must run after AuthRequired. Besides the role claim it checks the stored account,
// so a demoted or banned admin loses access before the token expires.
func AdminRequired(users UserProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(CurrentUserRoleKey)
		if r, ok := role.(domain.UserRole); !ok || r != domain.UserRoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}

		user, err := users.GetUser(c, c.GetInt64(CurrentUserIDKey))
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
				return
			}
			_ = c.Error(err).SetType(gin.ErrorTypePrivate)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		if !user.IsAdmin() || user.IsRestricted() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

// NonAuthRequired rejects requests that already carry a valid token.
func NonAuthRequired(jwtTokenSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := checkAuthorization(c, jwtTokenSecret); err == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "already authorized"})
			return
		}
		c.Next()
	}
}
