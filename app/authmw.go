package app

import (
	"Gin_postgres_redis_inventory_tracker/models"
	"Gin_postgres_redis_inventory_tracker/session"
	"net/http"

	"github.com/gin-gonic/gin"
)

const AppSessionCookie = "app_session"

const (
	ctxUserID = "userID"
	ctxRoleID = "roleID"
)

// AuthRequired resolves the session cookie into the caller's identity. Role
// and user id are re-derived from the server-side session on every request;
// any roleID/userID fields a client sends in a body are ignored.
func AuthRequired(appSess *session.AppSessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ck, err := c.Request.Cookie(AppSessionCookie)
		if err != nil || ck.Value == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"success": false, "message": "Unauthorized"})
			return
		}
		as, err := appSess.Get(c.Request.Context(), ck.Value)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"success": false, "message": "Invalid session"})
			return
		}
		c.Set(ctxUserID, as.UserID)
		c.Set(ctxRoleID, as.RoleID)
		c.Next()
	}
}

// RequireStaff gates Admin/Superadmin-only mutations.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !models.IsStaff(CurrentRole(c)) {
			c.AbortWithStatusJSON(http.StatusForbidden, H{"success": false, "message": "Access Denied."})
			return
		}
		c.Next()
	}
}

// RequireSuperadmin gates user management and system settings.
func RequireSuperadmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentRole(c) != models.RoleSuperadmin {
			c.AbortWithStatusJSON(http.StatusForbidden, H{"success": false, "message": "Access Denied."})
			return
		}
		c.Next()
	}
}

func CurrentUserID(c *gin.Context) uint {
	if v, ok := c.Get(ctxUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

func CurrentRole(c *gin.Context) int {
	if v, ok := c.Get(ctxRoleID); ok {
		if role, ok := v.(int); ok {
			return role
		}
	}
	return 0
}
