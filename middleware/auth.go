package middleware

import (
	"net/http"
	"strings"

	"github.com/Stevekk11/PersonalCloud/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the authenticated principal to a stable owner id
// and makes it available to handlers. Token issuance is the identity
// provider's concern; only validation happens here.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Error(c, http.StatusUnauthorized, "unauthorized", "未提供认证令牌")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.Error(c, http.StatusUnauthorized, "unauthorized", "认证令牌格式错误")
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(parts[1])
		if err != nil {
			utils.Error(c, http.StatusUnauthorized, "unauthorized", "认证令牌无效或已过期")
			c.Abort()
			return
		}

		c.Set("owner_id", claims.OwnerID)
		c.Next()
	}
}
