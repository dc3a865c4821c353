package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rustico-backend/services"
	"rustico-backend/utils"
)

type AuthController struct {
	Users *services.UserService
}

func NewAuthController(users *services.UserService) *AuthController {
	return &AuthController{Users: users}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type verifyRequest struct {
	Token string `json:"token" binding:"required"`
}

// Login exchanges valid credentials for a signed access token.
func (a *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := a.Users.ValidateCredentials(req.Username, req.Password)
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}

	token, err := utils.SignToken(user)
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"access_token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
		},
	})
}

// Verify checks a token posted in the body and returns its claims.
func (a *AuthController) Verify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "token is required")
		return
	}

	claims, err := utils.VerifyToken(req.Token)
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"id":       claims.Subject,
		"username": claims.Username,
		"role":     claims.Role,
	})
}
