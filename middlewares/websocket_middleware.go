package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/warungku/warung-app/utils"
)

// WebSocketAuthMiddleware mengambil token dari query string karena browser
// tidak bisa mengirim header Authorization saat upgrade websocket.
func WebSocketAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.AbortWithStatus(401)
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			c.AbortWithStatus(401)
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("is_super_admin", claims.IsSuperAdmin)

		c.Next()
	}
}
