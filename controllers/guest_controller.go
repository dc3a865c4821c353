package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rustico-backend/services"
	"rustico-backend/utils"
)

type GuestController struct {
	Guests *services.GuestService
}

func NewGuestController(guests *services.GuestService) *GuestController {
	return &GuestController{Guests: guests}
}

func (g *GuestController) CreateGuest(c *gin.Context) {
	var in services.CreateGuestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	guest, err := g.Guests.Create(in)
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, guest)
}

// GetGuests lists every guest, or runs a search with ?search=term.
func (g *GuestController) GetGuests(c *gin.Context) {
	if term := c.Query("search"); term != "" {
		guests, err := g.Guests.Search(term)
		if err != nil {
			utils.JSONDomainError(c, err)
			return
		}
		utils.JSONSuccess(c, http.StatusOK, guests)
		return
	}

	guests, err := g.Guests.FindAll()
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guests)
}

func (g *GuestController) GetActiveGuests(c *gin.Context) {
	guests, err := g.Guests.FindActive()
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guests)
}

func (g *GuestController) GetGuestByID(c *gin.Context) {
	guest, err := g.Guests.FindOne(c.Param("id"))
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guest)
}

func (g *GuestController) GetGuestByRegistrationNumber(c *gin.Context) {
	guest, err := g.Guests.FindByRegistrationNumber(c.Param("number"))
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guest)
}

func (g *GuestController) UpdateGuest(c *gin.Context) {
	var in services.UpdateGuestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	guest, err := g.Guests.Update(c.Param("id"), in)
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guest)
}

func (g *GuestController) RegenerateRegistrationNumber(c *gin.Context) {
	guest, err := g.Guests.RegenerateRegistrationNumber(c.Param("id"))
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guest)
}

func (g *GuestController) DeleteGuest(c *gin.Context) {
	if err := g.Guests.Remove(c.Param("id")); err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": true})
}
