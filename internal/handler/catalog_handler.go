package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yogurt-cleaning/internal/models"
	"yogurt-cleaning/internal/services"
)

type CatalogHandler struct {
	service services.CatalogService
}

func NewCatalogHandler(service services.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func (h *CatalogHandler) GetBundles(c *gin.Context) {
	bundles, err := h.service.GetBundles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bundles)
}

func (h *CatalogHandler) CreateBundle(c *gin.Context) {
	var bundle models.Bundle
	if err := c.ShouldBindJSON(&bundle); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if err := h.service.CreateBundle(c.Request.Context(), &bundle); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bundle)
}

func (h *CatalogHandler) UpdateBundle(c *gin.Context) {
	var bundle models.Bundle
	if err := c.ShouldBindJSON(&bundle); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if err := h.service.UpdateBundle(c.Request.Context(), &bundle); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bundle)
}

func (h *CatalogHandler) SetBundleStatus(c *gin.Context) {
	var body struct {
		IsActive bool `json:"isActive"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if err := h.service.SetBundleStatus(c.Request.Context(), c.Param("id"), body.IsActive); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bundle status updated"})
}

func (h *CatalogHandler) GetServices(c *gin.Context) {
	servicesList, err := h.service.GetServices(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, servicesList)
}

func (h *CatalogHandler) CreateService(c *gin.Context) {
	var service models.CleaningService
	if err := c.ShouldBindJSON(&service); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if err := h.service.CreateService(c.Request.Context(), &service); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, service)
}

func (h *CatalogHandler) UpdateService(c *gin.Context) {
	var service models.CleaningService
	if err := c.ShouldBindJSON(&service); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if err := h.service.UpdateService(c.Request.Context(), &service); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, service)
}

func (h *CatalogHandler) SetServiceStatus(c *gin.Context) {
	var body struct {
		IsActive bool `json:"isActive"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if err := h.service.SetServiceStatus(c.Request.Context(), c.Param("id"), body.IsActive); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service status updated"})
}
