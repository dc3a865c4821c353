package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rustico-backend/services"
	"rustico-backend/utils"
)

type ServiceController struct {
	Services *services.ServiceService
}

func NewServiceController(svc *services.ServiceService) *ServiceController {
	return &ServiceController{Services: svc}
}

func (s *ServiceController) CreateService(c *gin.Context) {
	var in services.CreateServiceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	svc, err := s.Services.Create(in)
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, svc)
}

func (s *ServiceController) GetServices(c *gin.Context) {
	list, err := s.Services.FindAll()
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

func (s *ServiceController) GetActiveServices(c *gin.Context) {
	list, err := s.Services.FindActive()
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

func (s *ServiceController) GetServiceByID(c *gin.Context) {
	svc, err := s.Services.FindOne(c.Param("id"))
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, svc)
}

func (s *ServiceController) UpdateService(c *gin.Context) {
	var in services.UpdateServiceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	svc, err := s.Services.Update(c.Param("id"), in)
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, svc)
}

func (s *ServiceController) DeleteService(c *gin.Context) {
	if err := s.Services.Remove(c.Param("id")); err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": true})
}
