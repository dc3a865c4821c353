package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rustico-backend/services"
	"rustico-backend/utils"
)

type UserController struct {
	Users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{Users: users}
}

func (u *UserController) CreateUser(c *gin.Context) {
	var in services.CreateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	user, err := u.Users.Create(in)
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, user)
}

func (u *UserController) GetUsers(c *gin.Context) {
	users, err := u.Users.FindAll()
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, users)
}

func (u *UserController) GetUserByID(c *gin.Context) {
	user, err := u.Users.FindOne(c.Param("id"))
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, user)
}

func (u *UserController) UpdateUser(c *gin.Context) {
	var in services.UpdateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	user, err := u.Users.Update(c.Param("id"), in)
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, user)
}

func (u *UserController) DeleteUser(c *gin.Context) {
	if err := u.Users.Remove(c.Param("id")); err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": true})
}
