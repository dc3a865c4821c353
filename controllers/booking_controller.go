package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rustico-backend/services"
	"rustico-backend/utils"
)

type BookingController struct {
	Bookings *services.BookingService
}

func NewBookingController(bookings *services.BookingService) *BookingController {
	return &BookingController{Bookings: bookings}
}

func (b *BookingController) CreateBooking(c *gin.Context) {
	var in services.CreateBookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	booking, err := b.Bookings.Create(in)
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, booking)
}

func (b *BookingController) GetBookings(c *gin.Context) {
	bookings, err := b.Bookings.FindAll()
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

// GetUpcomingBookings must be routed before /:id.
func (b *BookingController) GetUpcomingBookings(c *gin.Context) {
	bookings, err := b.Bookings.FindUpcoming()
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

func (b *BookingController) GetDashboardStats(c *gin.Context) {
	stats, err := b.Bookings.GetDashboardStats()
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stats)
}

func (b *BookingController) GetBookingByID(c *gin.Context) {
	booking, err := b.Bookings.FindOne(c.Param("id"))
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (b *BookingController) UpdateBooking(c *gin.Context) {
	var in services.UpdateBookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	booking, err := b.Bookings.Update(c.Param("id"), in)
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (b *BookingController) DeleteBooking(c *gin.Context) {
	if err := b.Bookings.Remove(c.Param("id")); err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": true})
}
