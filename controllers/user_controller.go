package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"Gin_postgres_redis_inventory_tracker/app"
	"Gin_postgres_redis_inventory_tracker/db"
	"Gin_postgres_redis_inventory_tracker/models"
	"Gin_postgres_redis_inventory_tracker/session"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type UserController struct {
	repo    *db.Repo
	appSess *session.AppSessionStore
}

func NewUserController(repo *db.Repo, appSess *session.AppSessionStore) *UserController {
	return &UserController{repo: repo, appSess: appSess}
}

// GET /api/users
func (uc *UserController) ListUsers(c *gin.Context) {
	users, err := uc.repo.ListUsers(c.Request.Context())
	if err != nil {
		log.Printf("[ERROR] list users: %v", err)
		c.JSON(http.StatusInternalServerError, app.H{"success": false, "message": "Failed to fetch users"})
		return
	}

	out := make([]app.H, 0, len(users))
	for _, u := range users {
		out = append(out, app.H{
			"id":        u.ID,
			"name":      u.FullName,
			"email":     u.Email,
			"roleID":    u.RoleID,
			"role":      models.RoleName(u.RoleID),
			"status":    u.Status,
			"lastLogin": u.LastLoginAt,
		})
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/users (Superadmin only, enforced by middleware)
func (uc *UserController) CreateUser(c *gin.Context) {
	var in struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Role     string `json:"role"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"success": false, "message": "Missing required fields"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[ERROR] hash temp password: %v", err)
		c.JSON(http.StatusInternalServerError, app.H{"success": false, "message": "Server error"})
		return
	}

	u, err := uc.repo.CreateUser(c.Request.Context(), in.Name, in.Email, string(hash), models.RoleIDFromName(in.Role))
	if err != nil {
		log.Printf("[ERROR] create user %s: %v", in.Email, err)
		c.JSON(http.StatusInternalServerError, app.H{"success": false, "message": "Database error"})
		return
	}

	uc.repo.Notify(c.Request.Context(),
		fmt.Sprintf("System Alert: New user %q (%s) has been added.", u.FullName, models.RoleName(u.RoleID)), nil, nil)
	c.JSON(http.StatusOK, app.H{"success": true, "message": "User added successfully"})
}

// DELETE /api/users/:id (Superadmin only, enforced by middleware)
func (uc *UserController) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"success": false, "message": "Invalid user id"})
		return
	}
	userID := uint(id)

	if app.CurrentUserID(c) == userID {
		c.JSON(http.StatusBadRequest, app.H{"success": false, "message": "Cannot remove yourself"})
		return
	}

	alreadyRemoved, err := uc.repo.SoftDeleteUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, app.H{"success": false, "message": "User not found"})
			return
		}
		log.Printf("[ERROR] soft delete user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, app.H{"success": false, "message": "Failed to remove user"})
		return
	}
	if alreadyRemoved {
		c.JSON(http.StatusOK, app.H{"success": true, "message": "User already removed."})
		return
	}

	_ = uc.appSess.RevokeAllForUser(c.Request.Context(), userID)
	c.JSON(http.StatusOK, app.H{"success": true, "message": "User removed (soft delete)."})
}
