package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yogurt-cleaning/internal/models"
	"yogurt-cleaning/internal/services"
)

type AuthHandler struct {
	service services.AuthService
}

func NewAuthHandler(service services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	token, user, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

type registerClientRequest struct {
	models.Client
	Password string `json:"password" binding:"required,min=8"`
}

func (h *AuthHandler) RegisterClient(c *gin.Context) {
	var req registerClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if err := h.service.RegisterClient(c.Request.Context(), &req.Client, req.Password); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, req.Client)
}

type registerCleanerRequest struct {
	models.Cleaner
	Password string `json:"password" binding:"required,min=8"`
}

func (h *AuthHandler) RegisterCleaner(c *gin.Context) {
	var req registerCleanerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if err := h.service.RegisterCleaner(c.Request.Context(), &req.Cleaner, req.Password); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, req.Cleaner)
}
