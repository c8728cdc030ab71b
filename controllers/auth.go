package controllers

import (
	"net/http"
	"strings"

	"salonbook-backend/models"
	"salonbook-backend/services"
	"salonbook-backend/utils"

	"github.com/gin-gonic/gin"
)

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	Auth *services.AuthService
	// SecureCookie is off for plain-HTTP local development.
	SecureCookie bool
}

func userJSON(u models.User) gin.H {
	return gin.H{
		"id":    u.ID,
		"email": u.Email,
		"name":  u.Name,
		"phone": u.Phone,
		"role":  u.Role,
	}
}

func (ac *AuthController) setTokenCookie(c *gin.Context, token string) {
	c.SetCookie("token", token, utils.TokenMaxAge(), "/", "", ac.SecureCookie, true)
}

func (ac *AuthController) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	user, token, err := ac.Auth.Register(c.Request.Context(), services.RegisterInput{
		Email:    input.Email,
		Password: input.Password,
		Name:     input.Name,
		Phone:    input.Phone,
	})
	if err != nil {
		respondServiceError(c, err, "Failed to create user")
		return
	}

	ac.setTokenCookie(c, token)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"token":   token,
		"user":    userJSON(user),
	})
}

func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	user, token, err := ac.Auth.Login(c.Request.Context(), strings.TrimSpace(input.Email), input.Password)
	if err != nil {
		respondServiceError(c, err, "Login failed")
		return
	}

	ac.setTokenCookie(c, token)
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  userJSON(user),
	})
}

func (ac *AuthController) Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", ac.SecureCookie, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me must run after AuthMiddleware.
func (ac *AuthController) Me(c *gin.Context) {
	user, err := ac.Auth.Get(c.Request.Context(), c.GetString("userId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": userJSON(user)})
}
