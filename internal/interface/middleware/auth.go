package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/ymgta/go-todo-clean-architecture/pkg/helpers"
	"github.com/ymgta/go-todo-clean-architecture/pkg/response"
)

// Auth validates the access token and ensures an active session exists
// in Redis. It sets userID and userName in the Gin context on success;
// handlers pass the id into Commands, and privilege checks load the
// actor from storage rather than trusting token claims.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing access token", nil)
			c.Abort()
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid access token", err.Error())
			c.Abort()
			return
		}

		if rdb != nil {
			key := "user:session:" + claims.UserID
			data, err := rdb.HGetAll(c.Request.Context(), key).Result()
			if err != nil || len(data) == 0 {
				response.Error[any](c, http.StatusUnauthorized, "session not found", nil)
				c.Abort()
				return
			}
			if sid := data["sid"]; sid != "" && sid != claims.SessionID {
				response.Error[any](c, http.StatusUnauthorized, "session superseded", nil)
				c.Abort()
				return
			}
		}

		c.Set("userID", claims.UserID)
		c.Set("userName", claims.Username)
		c.Next()
	}
}
