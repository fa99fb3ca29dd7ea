package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"yogurt-cleaning/internal/models"
	"yogurt-cleaning/internal/services"
)

type CleaningObjectHandler struct {
	service services.CleaningObjectService
}

func NewCleaningObjectHandler(service services.CleaningObjectService) *CleaningObjectHandler {
	return &CleaningObjectHandler{service: service}
}

func (h *CleaningObjectHandler) Create(c *gin.Context) {
	clientID, err := services.ParseUserID(c.GetString("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user"})
		return
	}
	var object models.CleaningObject
	if err := c.ShouldBindJSON(&object); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	object.ClientID = clientID
	if err := h.service.Create(c.Request.Context(), &object); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, object)
}

func (h *CleaningObjectHandler) Update(c *gin.Context) {
	clientID, err := services.ParseUserID(c.GetString("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user"})
		return
	}
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}
	var object models.CleaningObject
	if err := c.ShouldBindJSON(&object); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	object.ID = id
	if err := h.service.Update(c.Request.Context(), clientID, &object); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, object)
}

func (h *CleaningObjectHandler) Delete(c *gin.Context) {
	clientID, err := services.ParseUserID(c.GetString("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user"})
		return
	}
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}
	if err := h.service.Delete(c.Request.Context(), clientID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cleaning object deleted"})
}

func (h *CleaningObjectHandler) GetMy(c *gin.Context) {
	clientID, err := services.ParseUserID(c.GetString("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user"})
		return
	}
	objects, err := h.service.GetByClient(c.Request.Context(), clientID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, objects)
}
