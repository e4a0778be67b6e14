package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"Gin_postgres_redis_inventory_tracker/app"
	"Gin_postgres_redis_inventory_tracker/db"
	"Gin_postgres_redis_inventory_tracker/models"

	"github.com/gin-gonic/gin"
)

type BorrowingController struct{ repo *db.Repo }

func NewBorrowingController(repo *db.Repo) *BorrowingController {
	return &BorrowingController{repo: repo}
}

const displayDate = "Jan 02, 2006"

// GET /api/borrowing
func (bc *BorrowingController) List(c *gin.Context) {
	rows, err := bc.repo.ListBorrowings(c.Request.Context())
	if err != nil {
		log.Printf("[ERROR] list borrowings: %v", err)
		c.JSON(http.StatusInternalServerError, app.H{"error": "Failed to fetch borrowing history"})
		return
	}

	now := time.Now()
	out := make([]app.H, 0, len(rows))
	for _, r := range rows {
		returned := "-"
		if r.DateReturned != nil {
			returned = r.DateReturned.Format(displayDate)
		}
		out = append(out, app.H{
			"id":             r.ID,
			"code":           r.ItemCode,
			"name":           r.ItemName,
			"borrower":       r.BorrowerName,
			"committee":      r.Committee,
			"qty":            r.Quantity,
			"dateBorrowed":   r.DateBorrowed.Format(displayDate),
			"dateExpected":   r.ExpectedReturn.Format(displayDate),
			"dateReturned":   returned,
			"approvalStatus": r.ApprovalStatus,
			"status":         models.DeriveStatus(r.ApprovalStatus, r.DateReturned, r.ExpectedReturn, now),
		})
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/borrowing
func (bc *BorrowingController) Create(c *gin.Context) {
	var in struct {
		ItemID         uint   `json:"itemID"`
		BorrowerName   string `json:"borrowerName"`
		CommitteeID    *uint  `json:"committeeID"`
		Quantity       int    `json:"quantity"`
		DateBorrowed   string `json:"dateBorrowed"`
		ExpectedReturn string `json:"expectedReturn"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"success": false, "message": "Missing fields"})
		return
	}
	if in.ItemID == 0 || strings.TrimSpace(in.BorrowerName) == "" || in.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, app.H{"success": false, "message": "Missing fields"})
		return
	}
	dateBorrowed, err := parseDate(in.DateBorrowed, time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"success": false, "message": "Invalid dateBorrowed"})
		return
	}
	expectedReturn, err := parseDate(in.ExpectedReturn, dateBorrowed)
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"success": false, "message": "Invalid expectedReturn"})
		return
	}

	res, err := bc.repo.CreateBorrowing(c.Request.Context(), db.CreateBorrowingInput{
		ItemID:         in.ItemID,
		BorrowerName:   strings.TrimSpace(in.BorrowerName),
		CommitteeID:    in.CommitteeID,
		Quantity:       in.Quantity,
		DateBorrowed:   dateBorrowed,
		ExpectedReturn: expectedReturn,
		RequesterID:    app.CurrentUserID(c),
		RequesterRole:  app.CurrentRole(c),
	})
	if err != nil {
		var stockErr *db.InsufficientStockError
		switch {
		case errors.As(err, &stockErr):
			c.JSON(http.StatusBadRequest, app.H{"success": false, "message": stockErr.Error()})
		case errors.Is(err, db.ErrNotFound):
			c.JSON(http.StatusBadRequest, app.H{"success": false, "message": "Item not found"})
		default:
			log.Printf("[ERROR] create borrowing for item %d: %v", in.ItemID, err)
			c.JSON(http.StatusInternalServerError, app.H{"success": false, "message": "Database error"})
		}
		return
	}

	msg := "Item borrowed."
	if res.Pending {
		msg = "Request submitted!"
	}
	c.JSON(http.StatusOK, app.H{"success": true, "message": msg})
}

// PUT /api/borrowing/approve/:id (staff only, enforced by middleware)
func (bc *BorrowingController) Approve(c *gin.Context) {
	bc.decide(c, true)
}

// PUT /api/borrowing/reject/:id (staff only, enforced by middleware)
func (bc *BorrowingController) Reject(c *gin.Context) {
	bc.decide(c, false)
}

func (bc *BorrowingController) decide(c *gin.Context, approve bool) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var err error
	if approve {
		err = bc.repo.ApproveBorrowing(c.Request.Context(), id, app.CurrentUserID(c))
	} else {
		err = bc.repo.RejectBorrowing(c.Request.Context(), id, app.CurrentUserID(c))
	}
	if err != nil {
		switch {
		case errors.Is(err, db.ErrNotFound):
			c.JSON(http.StatusNotFound, app.H{"success": false, "message": "Transaction not found"})
		case errors.Is(err, db.ErrNotPending):
			c.JSON(http.StatusConflict, app.H{"success": false, "message": "Request is no longer pending"})
		default:
			log.Printf("[ERROR] decide borrowing %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, app.H{"success": false, "message": "Database error"})
		}
		return
	}

	msg := "Request approved."
	if !approve {
		msg = "Request rejected."
	}
	c.JSON(http.StatusOK, app.H{"success": true, "message": msg})
}

// PUT /api/borrowing/return/:id (staff only, enforced by middleware)
func (bc *BorrowingController) Return(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := bc.repo.ReturnBorrowing(c.Request.Context(), id, app.CurrentUserID(c)); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, app.H{"success": false, "message": "Transaction not found"})
			return
		}
		log.Printf("[ERROR] return borrowing %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, app.H{"success": false, "message": "Failed to return item"})
		return
	}
	c.JSON(http.StatusOK, app.H{"success": true, "message": "Item returned successfully"})
}

func parseDate(s string, fallback time.Time) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		y, m, d := fallback.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse("2006-01-02", s)
}
