package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"rustico-backend/services"
	"rustico-backend/utils"
)

type SettingsController struct {
	Settings *services.SettingsService
}

func NewSettingsController(settings *services.SettingsService) *SettingsController {
	return &SettingsController{Settings: settings}
}

func (s *SettingsController) GetSettings(c *gin.Context) {
	settings, err := s.Settings.Get()
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, settings)
}

func (s *SettingsController) UpdateSettings(c *gin.Context) {
	var patch services.SettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	settings, err := s.Settings.Update(patch)
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, settings)
}

// GetCompanyInfo is the public slice of the settings used on documents.
func (s *SettingsController) GetCompanyInfo(c *gin.Context) {
	info, err := s.Settings.GetCompanyInfo()
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, info)
}

// UploadLogo accepts a multipart form with the image under the "logo" field.
func (s *SettingsController) UploadLogo(c *gin.Context) {
	file, header, err := c.Request.FormFile("logo")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "logo file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "could not read logo file")
		return
	}

	settings, err := s.Settings.UploadLogo(header.Filename, data)
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, settings)
}

func (s *SettingsController) DeleteLogo(c *gin.Context) {
	settings, err := s.Settings.DeleteLogo()
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, settings)
}
