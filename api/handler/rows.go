package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imadama/Bol-scrapper/models"
	"github.com/imadama/Bol-scrapper/sheet"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Rows returns a handler for GET /api/v1/rows: every saved workbook row.
func Rows(store *sheet.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := store.Rows()
		if err != nil {
			scrapeErr, isTyped := err.(*models.ScrapeError)
			if !isTyped {
				scrapeErr = models.NewScrapeError(models.ErrCodeSheetWrite, err.Error(), err)
			}
			c.JSON(http.StatusInternalServerError, models.RowsResponse{
				Success: false,
				Error:   scrapeErr.ToDetail(),
			})
			return
		}

		c.JSON(http.StatusOK, models.RowsResponse{
			Success: true,
			Columns: sheet.Columns,
			Rows:    rows,
		})
	}
}

// Export returns a handler for GET /api/v1/export: the workbook download.
func Export(store *sheet.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := store.Export()
		if err != nil {
			scrapeErr, isTyped := err.(*models.ScrapeError)
			if !isTyped {
				scrapeErr = models.NewScrapeError(models.ErrCodeSheetWrite, err.Error(), err)
			}
			c.JSON(http.StatusInternalServerError, models.RowsResponse{
				Success: false,
				Error:   scrapeErr.ToDetail(),
			})
			return
		}

		c.Header("Content-Disposition", `attachment; filename="bol_export.xlsx"`)
		c.Data(http.StatusOK, xlsxContentType, data)
	}
}
