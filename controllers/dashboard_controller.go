package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"Gin_postgres_redis_inventory_tracker/app"
	"Gin_postgres_redis_inventory_tracker/db"

	"github.com/gin-gonic/gin"
)

type DashboardController struct{ repo *db.Repo }

func NewDashboardController(repo *db.Repo) *DashboardController {
	return &DashboardController{repo: repo}
}

// GET /api/dashboard/stats
func (dc *DashboardController) Stats(c *gin.Context) {
	totalItems, err := dc.repo.CountItems(c.Request.Context())
	if err != nil {
		log.Printf("[ERROR] count items: %v", err)
		c.JSON(http.StatusInternalServerError, app.H{"error": "Failed to fetch stats"})
		return
	}
	borrowed, err := dc.repo.CountOpenBorrowings(c.Request.Context())
	if err != nil {
		log.Printf("[ERROR] count open borrowings: %v", err)
		c.JSON(http.StatusInternalServerError, app.H{"error": "Failed to fetch stats"})
		return
	}
	c.JSON(http.StatusOK, app.H{"totalItems": totalItems, "borrowedItems": borrowed})
}

// GET /api/dashboard/low-stock
func (dc *DashboardController) LowStock(c *gin.Context) {
	rows, err := dc.repo.ListLowStock(c.Request.Context())
	if err != nil {
		log.Printf("[ERROR] list low stock: %v", err)
		c.JSON(http.StatusInternalServerError, app.H{"error": "Failed to fetch low stock items"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

func parseParamID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"success": false, "message": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}

// GET /api/dashboard/activity/:userId
func (dc *DashboardController) RecentActivity(c *gin.Context) {
	userID, ok := parseParamID(c, "userId")
	if !ok {
		return
	}
	rows, ok := dc.fetchHistory(c, userID, 5)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, recentActivityView(rows))
}

// GET /api/history/:userId
func (dc *DashboardController) History(c *gin.Context) {
	userID, ok := parseParamID(c, "userId")
	if !ok {
		return
	}
	rows, ok := dc.fetchHistory(c, userID, 0)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (dc *DashboardController) fetchHistory(c *gin.Context, userID uint, limit int) ([]db.HistoryRow, bool) {
	rows, err := dc.repo.ListHistory(c.Request.Context(), userID, app.CurrentUserID(c), app.CurrentRole(c), limit)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, app.H{"success": false, "message": "User not found"})
			return nil, false
		}
		log.Printf("[ERROR] list history for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, app.H{"error": "Failed to fetch history"})
		return nil, false
	}
	return rows, true
}

// recentActivityView reshapes log rows for the dashboard activity feed.
func recentActivityView(rows []db.HistoryRow) []app.H {
	out := make([]app.H, 0, len(rows))
	for _, r := range rows {
		out = append(out, app.H{
			"title":       r.Type,
			"description": r.Details,
			"timestamp":   r.Date,
		})
	}
	return out
}
