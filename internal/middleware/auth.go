package middleware

import (
	"strings"

	"schoolnet_backend/internal/config"
	"schoolnet_backend/internal/model"
	"schoolnet_backend/internal/repository"
	"schoolnet_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// extractToken 按优先级取会话令牌：Cookie > Authorization Bearer
func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(util.TokenCookieName); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// AuthMiddleware 要求有效会话，否则 401
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}

// TryAuthMiddleware 尽力解析身份但从不拦截，游客可访问的列表接口用
func TryAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := extractToken(c); tokenString != "" {
			if claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret); err == nil {
				c.Set("user", claims)
			}
		}
		c.Next()
	}
}

// RequireApproved 社交功能（好友、私信、搜索、上传）要求账号已通过审核。
// 状态从存储实时读取，不信任令牌签发时的旧状态
func RequireApproved(userRepo *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		if claims == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		user := userRepo.GetByID(claims.UserID)
		if user == nil || user.Status != model.StatusApproved {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAdmin 管理接口要求 admin 角色，角色同样实时读取
func RequireAdmin(userRepo *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		if claims == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		user := userRepo.GetByID(claims.UserID)
		if user == nil || user.Role != model.RoleAdmin {
			util.Forbidden(c)
			c.Abort()
			return
		}

		c.Next()
	}
}
