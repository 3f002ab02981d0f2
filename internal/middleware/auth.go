package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/inkflow/blog-core/internal/models"
	"github.com/inkflow/blog-core/internal/pkg/jwt"
	"github.com/inkflow/blog-core/internal/pkg/response"
	"gorm.io/gorm"
)

const ContextKeyUser = "auth_user"

// Auth enforces bearer-token authentication. Claims are never trusted for
// role/status: the user row is re-read so bans and role changes take effect
// on the next request.
func Auth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := resolveUser(db, extractToken(c))
		if err != nil {
			response.Unauthorized(c, authFailureMessage(err))
			return
		}
		c.Set(ContextKeyUser, user)
		c.Next()
	}
}

// OptionalAuth resolves the user when a valid token is present, but does not
// block the request.
func OptionalAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, err := resolveUser(db, extractToken(c)); err == nil {
			c.Set(ContextKeyUser, user)
		}
		c.Next()
	}
}

// RequireAdmin rejects non-admin callers. Must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin() {
			response.Forbidden(c, "无权限访问")
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user, or nil.
func CurrentUser(c *gin.Context) *models.User {
	v, _ := c.Get(ContextKeyUser)
	user, _ := v.(*models.User)
	return user
}

// IsAuthenticated reports whether the request carries a valid identity.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentUser(c) != nil
}

var (
	errTokenRequired = errors.New("token is required")
	errUserNotFound  = errors.New("token user not found")
)

func resolveUser(db *gorm.DB, token string) (*models.User, error) {
	if token == "" {
		return nil, errTokenRequired
	}
	claims, err := jwt.Parse(token)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := db.First(&user, "id = ?", claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func authFailureMessage(err error) string {
	switch {
	case errors.Is(err, errTokenRequired):
		return "未登录，请先登录"
	case errors.Is(err, errUserNotFound):
		return "用户不存在"
	default:
		return "Token无效或已过期"
	}
}

func extractToken(c *gin.Context) string {
	auth := strings.TrimSpace(c.GetHeader("Authorization"))
	if auth == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return auth
}
