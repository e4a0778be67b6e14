package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"Gin_postgres_redis_inventory_tracker/app"
	"Gin_postgres_redis_inventory_tracker/db"
	"Gin_postgres_redis_inventory_tracker/models"
	"Gin_postgres_redis_inventory_tracker/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthController struct {
	repo    *db.Repo
	appSess *session.AppSessionStore
	cfg     app.Config
}

func NewAuthController(repo *db.Repo, appSess *session.AppSessionStore, cfg app.Config) *AuthController {
	return &AuthController{repo: repo, appSess: appSess, cfg: cfg}
}

type loginUser struct {
	ID       uint   `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	RoleID   int    `json:"roleId"`
	Status   string `json:"status"`
}

func toLoginUser(u *models.User) loginUser {
	return loginUser{ID: u.ID, FullName: u.FullName, Email: u.Email, RoleID: u.RoleID, Status: u.Status}
}

// POST /api/login
func (ac *AuthController) Login(c *gin.Context) {
	var in struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"success": false, "message": "Missing data"})
		return
	}

	u, err := ac.repo.FindUserByEmail(c.Request.Context(), in.Email)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			// Same rejection as a wrong password: do not reveal which it was.
			c.JSON(http.StatusUnauthorized, app.H{"success": false, "message": "Invalid credentials"})
			return
		}
		log.Printf("[ERROR] login lookup for %s: %v", in.Email, err)
		c.JSON(http.StatusInternalServerError, app.H{"success": false, "message": "Server error"})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(in.Password)) != nil {
		c.JSON(http.StatusUnauthorized, app.H{"success": false, "message": "Invalid credentials"})
		return
	}
	if u.Status == models.StatusRemoved {
		c.JSON(http.StatusUnauthorized, app.H{"success": false, "message": "Invalid credentials"})
		return
	}

	// Inactive accounts must set a new password before a session is issued.
	if u.Status == models.StatusInactive {
		c.JSON(http.StatusOK, app.H{
			"success":               true,
			"requirePasswordChange": true,
			"userID":                u.ID,
			"message":               "First time login: Please update your password.",
		})
		return
	}

	if err := ac.repo.TouchUserLogin(c.Request.Context(), u.ID); err != nil {
		log.Printf("[WARN] touch last login for user %d: %v", u.ID, err)
	}
	if err := ac.issueSession(c.Request.Context(), c.Writer, u.ID, u.RoleID); err != nil {
		log.Printf("[ERROR] issue session for user %d: %v", u.ID, err)
		c.JSON(http.StatusInternalServerError, app.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, app.H{"success": true, "user": toLoginUser(u)})
}

// POST /api/auth/first-login
func (ac *AuthController) FirstLogin(c *gin.Context) {
	var in struct {
		UserID      uint   `json:"userID" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"success": false, "message": "Missing data"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[ERROR] hash new password: %v", err)
		c.JSON(http.StatusInternalServerError, app.H{"success": false, "message": "Server error"})
		return
	}

	u, err := ac.repo.ActivateFirstLogin(c.Request.Context(), in.UserID, string(hash))
	if err != nil {
		switch {
		case errors.Is(err, db.ErrNotFound):
			c.JSON(http.StatusNotFound, app.H{"success": false, "message": "User not found"})
		case errors.Is(err, db.ErrAlreadyActivated):
			c.JSON(http.StatusConflict, app.H{"success": false, "message": "Password already set. Please log in."})
		default:
			log.Printf("[ERROR] first login for user %d: %v", in.UserID, err)
			c.JSON(http.StatusInternalServerError, app.H{"success": false, "message": "Database error"})
		}
		return
	}

	if err := ac.issueSession(c.Request.Context(), c.Writer, u.ID, u.RoleID); err != nil {
		log.Printf("[ERROR] issue session for user %d: %v", u.ID, err)
		c.JSON(http.StatusInternalServerError, app.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, app.H{"success": true, "message": "Password updated!", "user": toLoginUser(u)})
}

// POST /api/logout
func (ac *AuthController) Logout(c *gin.Context) {
	if ck, err := c.Request.Cookie(app.AppSessionCookie); err == nil && ck.Value != "" {
		_ = ac.appSess.Delete(c.Request.Context(), ck.Value)
	}
	ac.setAppCookie(c.Writer, "", -time.Second)
	c.JSON(http.StatusOK, app.H{"success": true})
}

func (ac *AuthController) issueSession(ctx context.Context, w http.ResponseWriter, userID uint, roleID int) error {
	id := uuid.NewString()
	if err := ac.appSess.Create(ctx, id, userID, roleID); err != nil {
		return err
	}
	ac.setAppCookie(w, id, ac.cfg.SessionTTL)
	return nil
}

func (ac *AuthController) setAppCookie(w http.ResponseWriter, sessionID string, maxAge time.Duration) {
	secure := strings.HasPrefix(ac.cfg.WebOrigin, "https://")
	http.SetCookie(w, &http.Cookie{
		Name:     app.AppSessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
		MaxAge:   int(maxAge / time.Second),
	})
}
