package app

import (
	"net/http"
	"strings"

	"fieldops-backend/db"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Identity headers set by the upstream gateway after it has authenticated
// the caller. This service trusts them and never sees credentials.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUserName = "X-User-Name"
)

// IdentityRequired resolves the gateway-provided identity into a user row
// and places userID/username/isAdmin into the request context.
func IdentityRequired(repo *db.Repo, cfg Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.GetHeader(HeaderUserName)
		if username == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "missing identity headers"})
			return
		}

		u, err := repo.FindOrCreateUser(c.Request.Context(), username, uuid.NewString())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}

		isAdmin := u.IsAdmin
		name := strings.ToLower(u.Username)
		for _, admin := range cfg.AdminUsernames {
			if name == admin {
				isAdmin = true
				break
			}
		}

		c.Set("userID", u.ID)
		c.Set("username", u.Username)
		c.Set("isAdmin", isAdmin)
		c.Next()
	}
}

func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get("isAdmin")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		if admin, _ := v.(bool); !admin {
			c.AbortWithStatusJSON(http.StatusForbidden, H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
