package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"staybook-backend/services"
	"staybook-backend/utils"
)

type AuthController struct {
	Users     *services.UserService
	JWTSecret []byte
}

func NewAuthController(users *services.UserService, jwtSecret []byte) *AuthController {
	return &AuthController{Users: users, JWTSecret: jwtSecret}
}

type registerPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (ctrl *AuthController) Register(c *gin.Context) {
	var payload registerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONMessage(c, http.StatusBadRequest, "Missing required fields")
		return
	}
	if payload.Name == "" || payload.Email == "" || payload.Password == "" || payload.Role == "" {
		utils.JSONMessage(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	_, err := ctrl.Users.Register(services.RegisterInput{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
		Role:     payload.Role,
	})
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		utils.JSONMessage(c, http.StatusBadRequest, fmt.Sprintf("User already exists on %s", payload.Email))
		return
	case errors.Is(err, services.ErrUnknownRole):
		utils.JSONMessage(c, http.StatusBadRequest, "Invalid role")
		return
	case err != nil:
		utils.JSONMessage(c, http.StatusInternalServerError, "Failed to register user")
		return
	}

	utils.JSONMessage(c, http.StatusCreated, "User registered successfully")
}

func (ctrl *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONMessage(c, http.StatusBadRequest, "Missing required fields")
		return
	}
	if payload.Email == "" || payload.Password == "" {
		utils.JSONMessage(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	user, err := ctrl.Users.Authenticate(payload.Email, payload.Password)
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		utils.JSONMessage(c, http.StatusBadRequest, "User does not exist")
		return
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.JSONMessage(c, http.StatusBadRequest, "Invalid password")
		return
	case err != nil:
		utils.JSONMessage(c, http.StatusInternalServerError, "Failed to login")
		return
	}

	token, err := utils.CreateAccessToken(ctrl.JWTSecret, user.ID)
	if err != nil {
		utils.JSONMessage(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "User logged in successfully",
		"access_token": token,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}
