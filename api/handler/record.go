package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imadama/Bol-scrapper/models"
	"github.com/imadama/Bol-scrapper/sheet"
)

// Pending is the pending-store surface the edit/confirm handlers need.
type Pending interface {
	Get(id string) (models.Listing, bool)
	Update(id string, u *models.RecordUpdate) (models.Listing, bool)
	Remove(id string) (models.Listing, bool)
}

// GetRecord returns a handler for GET /api/v1/records/:id.
func GetRecord(ps Pending) gin.HandlerFunc {
	return func(c *gin.Context) {
		listing, ok := ps.Get(c.Param("id"))
		if !ok {
			respondRecordNotFound(c)
			return
		}
		c.JSON(http.StatusOK, models.RecordResponse{
			Success:  true,
			RecordID: c.Param("id"),
			Listing:  &listing,
		})
	}
}

// UpdateRecord returns a handler for PUT /api/v1/records/:id.
//
// Edits apply to the pending copy only; the extraction output itself is
// never mutated. The handler does not validate edited values beyond JSON
// shape — the operator owns them.
func UpdateRecord(ps Pending) gin.HandlerFunc {
	return func(c *gin.Context) {
		var update models.RecordUpdate
		if err := c.ShouldBindJSON(&update); err != nil {
			c.JSON(http.StatusBadRequest, models.RecordResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}

		listing, ok := ps.Update(c.Param("id"), &update)
		if !ok {
			respondRecordNotFound(c)
			return
		}
		c.JSON(http.StatusOK, models.RecordResponse{
			Success:  true,
			RecordID: c.Param("id"),
			Listing:  &listing,
		})
	}
}

// ConfirmRecord returns a handler for POST /api/v1/records/:id/confirm.
// Confirming appends the listing to the workbook and drops it from the
// pending store; a failed append keeps the listing pending so the operator
// can retry.
func ConfirmRecord(ps Pending, store *sheet.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		listing, ok := ps.Get(id)
		if !ok {
			respondRecordNotFound(c)
			return
		}

		if err := store.Append(&listing); err != nil {
			scrapeErr, isTyped := err.(*models.ScrapeError)
			if !isTyped {
				scrapeErr = models.NewScrapeError(models.ErrCodeSheetWrite, err.Error(), err)
			}
			c.JSON(http.StatusInternalServerError, models.RecordResponse{
				Success: false,
				Error:   scrapeErr.ToDetail(),
			})
			return
		}

		ps.Remove(id)
		c.JSON(http.StatusOK, models.RecordResponse{
			Success:  true,
			RecordID: id,
			Listing:  &listing,
		})
	}
}

func respondRecordNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, models.RecordResponse{
		Success: false,
		Error: &models.ErrorDetail{
			Code:    models.ErrCodeNotFound,
			Message: "no pending record with that id (expired or already confirmed)",
		},
	})
}
