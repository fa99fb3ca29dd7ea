package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"yogurt-cleaning/internal/services"
)

type RatingHandler struct {
	service services.RatingService
}

func NewRatingHandler(service services.RatingService) *RatingHandler {
	return &RatingHandler{service: service}
}

func (h *RatingHandler) GetCleanerRating(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}
	rating, err := h.service.GetCleanerRating(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rating": rating})
}

func (h *RatingHandler) GetClientRating(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}
	rating, err := h.service.GetClientRating(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rating": rating})
}
