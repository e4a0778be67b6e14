package controllers

import (
	"errors"
	"log"
	"net/http"

	"Gin_postgres_redis_inventory_tracker/app"
	"Gin_postgres_redis_inventory_tracker/db"

	"github.com/gin-gonic/gin"
)

type NotificationController struct{ repo *db.Repo }

func NewNotificationController(repo *db.Repo) *NotificationController {
	return &NotificationController{repo: repo}
}

// GET /api/notifications returns the bell dropdown, capped at the latest ten.
func (nc *NotificationController) List(c *gin.Context) {
	nc.list(c, 10)
}

// GET /api/notifications/all
func (nc *NotificationController) ListAll(c *gin.Context) {
	nc.list(c, 0)
}

func (nc *NotificationController) list(c *gin.Context, limit int) {
	ns, err := nc.repo.ListNotifications(c.Request.Context(), app.CurrentUserID(c), limit)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, app.H{"success": false, "message": "User not found"})
			return
		}
		log.Printf("[ERROR] list notifications: %v", err)
		c.JSON(http.StatusInternalServerError, app.H{"error": "Failed to fetch notifications"})
		return
	}
	c.JSON(http.StatusOK, ns)
}

// PUT /api/notifications/:id/read
func (nc *NotificationController) MarkRead(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := nc.repo.MarkNotificationRead(c.Request.Context(), id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, app.H{"success": false, "message": "Notification not found"})
			return
		}
		log.Printf("[ERROR] mark notification %d read: %v", id, err)
		c.JSON(http.StatusInternalServerError, app.H{"success": false, "message": "Database error"})
		return
	}
	c.JSON(http.StatusOK, app.H{"success": true})
}

// PUT /api/notifications/mark-all-read
func (nc *NotificationController) MarkAllRead(c *gin.Context) {
	n, err := nc.repo.MarkAllNotificationsRead(c.Request.Context(), app.CurrentUserID(c))
	if err != nil {
		log.Printf("[ERROR] mark all notifications read: %v", err)
		c.JSON(http.StatusInternalServerError, app.H{"success": false, "message": "Database error"})
		return
	}
	c.JSON(http.StatusOK, app.H{"success": true, "updated": n})
}
