package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"Gin_postgres_redis_inventory_tracker/app"
	"Gin_postgres_redis_inventory_tracker/db"

	"github.com/gin-gonic/gin"
)

type InventoryController struct{ repo *db.Repo }

func NewInventoryController(repo *db.Repo) *InventoryController {
	return &InventoryController{repo: repo}
}

// GET /api/inventory
func (ic *InventoryController) List(c *gin.Context) {
	rows, err := ic.repo.ListInventory(c.Request.Context())
	if err != nil {
		log.Printf("[ERROR] list inventory: %v", err)
		c.JSON(http.StatusInternalServerError, app.H{"error": "Failed to fetch inventory"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GET /api/inventory/references
func (ic *InventoryController) References(c *gin.Context) {
	refs, err := ic.repo.ListReferences(c.Request.Context())
	if err != nil {
		log.Printf("[ERROR] list references: %v", err)
		c.JSON(http.StatusInternalServerError, app.H{"error": "Failed to fetch options"})
		return
	}
	c.JSON(http.StatusOK, refs)
}

// GET /api/inventory/types-list
func (ic *InventoryController) TypesList(c *gin.Context) {
	names, err := ic.repo.ListTypeNames(c.Request.Context())
	if err != nil {
		log.Printf("[ERROR] list type names: %v", err)
		c.JSON(http.StatusInternalServerError, app.H{"error": "Failed to fetch type list"})
		return
	}
	c.JSON(http.StatusOK, names)
}

// POST /api/inventory (staff only, enforced by middleware)
func (ic *InventoryController) Create(c *gin.Context) {
	var in struct {
		ItemName    string `json:"itemName"`
		CommitteeID *uint  `json:"committeeID"`
		TypeID      *uint  `json:"typeID"`
		Quantity    int    `json:"quantity"`
		UnitID      *uint  `json:"unitID"`
		Location    string `json:"location"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"success": false, "message": "Missing required fields"})
		return
	}
	if strings.TrimSpace(in.ItemName) == "" || in.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, app.H{"success": false, "message": "Missing required fields"})
		return
	}

	res, err := ic.repo.AddOrRestockItem(c.Request.Context(), db.AddItemInput{
		Name:        in.ItemName,
		CommitteeID: in.CommitteeID,
		TypeID:      in.TypeID,
		UnitID:      in.UnitID,
		Quantity:    in.Quantity,
		Location:    in.Location,
		ActorID:     app.CurrentUserID(c),
	})
	if err != nil {
		log.Printf("[ERROR] add item %q: %v", in.ItemName, err)
		c.JSON(http.StatusInternalServerError, app.H{"success": false, "message": "Database error"})
		return
	}

	if res.Restocked {
		c.JSON(http.StatusOK, app.H{
			"success": true,
			"message": fmt.Sprintf("Item %q exists. Qty updated to %d.", strings.TrimSpace(in.ItemName), res.NewTotal),
		})
		return
	}
	c.JSON(http.StatusOK, app.H{"success": true, "message": "New item added successfully", "code": res.Code})
}

// PUT /api/inventory/:id (staff only, enforced by middleware)
func (ic *InventoryController) Update(c *gin.Context) {
	itemID, ok := parseID(c)
	if !ok {
		return
	}
	var in struct {
		ItemName    string `json:"itemName"`
		CommitteeID *uint  `json:"committeeID"`
		TypeID      *uint  `json:"typeID"`
		Quantity    int    `json:"quantity"`
		UnitID      *uint  `json:"unitID"`
		Location    string `json:"location"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"success": false, "message": "Missing required fields"})
		return
	}
	if strings.TrimSpace(in.ItemName) == "" || in.Quantity < 0 {
		c.JSON(http.StatusBadRequest, app.H{"success": false, "message": "Missing required fields"})
		return
	}

	err := ic.repo.UpdateItem(c.Request.Context(), itemID, db.UpdateItemInput{
		Name:        in.ItemName,
		CommitteeID: in.CommitteeID,
		TypeID:      in.TypeID,
		UnitID:      in.UnitID,
		Quantity:    in.Quantity,
		Location:    in.Location,
		ActorID:     app.CurrentUserID(c),
	})
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, app.H{"success": false, "message": "Item not found"})
			return
		}
		log.Printf("[ERROR] update item %d: %v", itemID, err)
		c.JSON(http.StatusInternalServerError, app.H{"success": false, "message": "Database error"})
		return
	}
	c.JSON(http.StatusOK, app.H{"success": true, "message": "Item updated successfully"})
}

// DELETE /api/inventory/:id (staff only, enforced by middleware)
func (ic *InventoryController) Delete(c *gin.Context) {
	itemID, ok := parseID(c)
	if !ok {
		return
	}

	err := ic.repo.DeleteItem(c.Request.Context(), itemID, app.CurrentUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, db.ErrItemBorrowed):
			c.JSON(http.StatusBadRequest, app.H{"success": false, "message": "Cannot delete item currently being borrowed."})
		case errors.Is(err, db.ErrNotFound):
			c.JSON(http.StatusNotFound, app.H{"success": false, "message": "Item not found"})
		default:
			log.Printf("[ERROR] delete item %d: %v", itemID, err)
			c.JSON(http.StatusInternalServerError, app.H{"success": false, "message": "Failed to delete item (Database Error)"})
		}
		return
	}
	c.JSON(http.StatusOK, app.H{"success": true, "message": "Item deleted"})
}

// GET /api/inventory/items
func (ic *InventoryController) ConsumableItems(c *gin.Context) {
	rows, err := ic.repo.ListConsumableItems(c.Request.Context())
	if err != nil {
		log.Printf("[ERROR] list consumables: %v", err)
		c.JSON(http.StatusInternalServerError, app.H{"error": "Failed to fetch items"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// PUT /api/inventory/items/:id/threshold (Superadmin only, enforced by middleware)
func (ic *InventoryController) UpdateThreshold(c *gin.Context) {
	itemID, ok := parseID(c)
	if !ok {
		return
	}
	var in struct {
		Threshold *int `json:"threshold" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"success": false, "message": "Missing threshold"})
		return
	}

	if err := ic.repo.UpdateThreshold(c.Request.Context(), itemID, *in.Threshold); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, app.H{"success": false, "message": "Item not found"})
			return
		}
		log.Printf("[ERROR] update threshold for item %d: %v", itemID, err)
		c.JSON(http.StatusInternalServerError, app.H{"error": "Failed to update threshold"})
		return
	}
	c.JSON(http.StatusOK, app.H{"success": true, "message": "Threshold updated"})
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"success": false, "message": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}
