package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"Gin_postgres_redis_inventory_tracker/app"
	"Gin_postgres_redis_inventory_tracker/db"
	"Gin_postgres_redis_inventory_tracker/models"

	"github.com/gin-gonic/gin"
)

// SettingsController manages the dropdown reference tables (committees,
// units, item types). All routes are Superadmin-only, enforced by middleware.
type SettingsController struct{ repo *db.Repo }

func NewSettingsController(repo *db.Repo) *SettingsController {
	return &SettingsController{repo: repo}
}

// POST /api/settings/committees
func (sc *SettingsController) CreateCommittee(c *gin.Context) {
	name, ok := bindName(c)
	if !ok {
		return
	}
	sc.create(c, "committee", sc.repo.CreateCommittee(c.Request.Context(), name))
}

// DELETE /api/settings/committees/:id
func (sc *SettingsController) DeleteCommittee(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	sc.delete(c, "committee", sc.repo.DeleteCommittee(c.Request.Context(), id))
}

// POST /api/settings/units
func (sc *SettingsController) CreateUnit(c *gin.Context) {
	name, ok := bindName(c)
	if !ok {
		return
	}
	sc.create(c, "unit", sc.repo.CreateUnit(c.Request.Context(), name))
}

// DELETE /api/settings/units/:id
func (sc *SettingsController) DeleteUnit(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	sc.delete(c, "unit", sc.repo.DeleteUnit(c.Request.Context(), id))
}

// POST /api/settings/types
func (sc *SettingsController) CreateType(c *gin.Context) {
	var in struct {
		Name           string `json:"name" binding:"required"`
		Classification string `json:"classification"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || strings.TrimSpace(in.Name) == "" {
		c.JSON(http.StatusBadRequest, app.H{"success": false, "message": "Name is required"})
		return
	}
	classification := in.Classification
	if classification != models.ClassificationConsumable {
		classification = models.ClassificationAsset
	}
	sc.create(c, "type", sc.repo.CreateType(c.Request.Context(), strings.TrimSpace(in.Name), classification))
}

// DELETE /api/settings/types/:id
func (sc *SettingsController) DeleteType(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	sc.delete(c, "type", sc.repo.DeleteType(c.Request.Context(), id))
}

func (sc *SettingsController) create(c *gin.Context, kind string, err error) {
	if err != nil {
		log.Printf("[ERROR] create %s: %v", kind, err)
		c.JSON(http.StatusInternalServerError, app.H{"success": false, "message": "Database error"})
		return
	}
	c.JSON(http.StatusOK, app.H{"success": true, "message": "Option added"})
}

func (sc *SettingsController) delete(c *gin.Context, kind string, err error) {
	if err != nil {
		switch {
		case errors.Is(err, db.ErrReferenceInUse):
			c.JSON(http.StatusBadRequest, app.H{
				"success": false,
				"message": "Cannot delete: This option is currently being used by an active item.",
			})
		case errors.Is(err, db.ErrNotFound):
			c.JSON(http.StatusNotFound, app.H{"success": false, "message": "Option not found"})
		default:
			log.Printf("[ERROR] delete %s: %v", kind, err)
			c.JSON(http.StatusInternalServerError, app.H{"success": false, "message": "Database error"})
		}
		return
	}
	c.JSON(http.StatusOK, app.H{"success": true, "message": "Option removed"})
}

func bindName(c *gin.Context) (string, bool) {
	var in struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || strings.TrimSpace(in.Name) == "" {
		c.JSON(http.StatusBadRequest, app.H{"success": false, "message": "Name is required"})
		return "", false
	}
	return strings.TrimSpace(in.Name), true
}
