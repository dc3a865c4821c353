package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"rustico-backend/models"
	"rustico-backend/services"
	"rustico-backend/utils"
)

type ReportController struct {
	Reports  *services.ReportService
	Bookings *services.BookingService
}

func NewReportController(reports *services.ReportService, bookings *services.BookingService) *ReportController {
	return &ReportController{Reports: reports, Bookings: bookings}
}

func (r *ReportController) loadBooking(c *gin.Context, id string) (*models.Booking, bool) {
	booking, err := r.Bookings.FindOne(id)
	if err != nil {
		utils.JSONDomainError(c, err)
		return nil, false
	}
	return booking, true
}

// documentFilename builds the attachment name from the raw lowercase id
// prefix; the uppercased Reference is for document bodies only.
func documentFilename(kind string, booking *models.Booking) string {
	return fmt.Sprintf("%s-%s.pdf", kind, strings.ToLower(booking.Reference()))
}

func (r *ReportController) BookingConfirmationPDF(c *gin.Context) {
	booking, ok := r.loadBooking(c, c.Param("id"))
	if !ok {
		return
	}
	pdf, err := r.Reports.BookingConfirmationPDF(c.Request.Context(), booking.ID)
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	name := documentFilename("buchungsbestaetigung", booking)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (r *ReportController) InvoicePDF(c *gin.Context) {
	booking, ok := r.loadBooking(c, c.Param("id"))
	if !ok {
		return
	}
	pdf, err := r.Reports.InvoicePDF(c.Request.Context(), booking.ID)
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	name := documentFilename("rechnung", booking)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// PeriodReport streams the period report. Query parameters: startDate and
// endDate as YYYY-MM-DD, format "pdf" (default) or "excel".
func (r *ReportController) PeriodReport(c *gin.Context) {
	start, err := time.Parse("2006-01-02", c.Query("startDate"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "startDate must be a YYYY-MM-DD date")
		return
	}
	end, err := time.Parse("2006-01-02", c.Query("endDate"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "endDate must be a YYYY-MM-DD date")
		return
	}
	if end.Before(start) {
		utils.JSONError(c, http.StatusBadRequest, "endDate must not be before startDate")
		return
	}

	format := c.DefaultQuery("format", "pdf")
	if format != "pdf" && format != "excel" {
		utils.JSONError(c, http.StatusBadRequest, "format must be pdf or excel")
		return
	}

	data, err := r.Reports.PeriodReport(c.Request.Context(), start, end, format)
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}

	ext := "pdf"
	contentType := "application/pdf"
	if format == "excel" {
		ext = "xlsx"
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	name := fmt.Sprintf("report-%s-%s.%s", c.Query("startDate"), c.Query("endDate"), ext)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, contentType, data)
}
