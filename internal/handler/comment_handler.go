package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"yogurt-cleaning/internal/models"
	"yogurt-cleaning/internal/services"
)

type CommentHandler struct {
	service services.CommentService
}

func NewCommentHandler(service services.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

type createCommentRequest struct {
	OrderID primitive.ObjectID `json:"order_id" binding:"required"`
	Rating  int                `json:"rating" binding:"required"`
	Text    string             `json:"text"`
}

// CreateComment resolves the author tag once, from the authenticated
// user, so a comment always carries exactly one author reference.
func (h *CommentHandler) CreateComment(c *gin.Context) {
	authorID, err := services.ParseUserID(c.GetString("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user"})
		return
	}
	role := models.Role(c.GetString("role"))
	if role != models.RoleClient && role != models.RoleCleaner {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only clients and cleaners can comment"})
		return
	}

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	comment := models.Comment{
		OrderID: req.OrderID,
		Author:  models.CommentAuthor{Role: role, ID: authorID},
		Rating:  req.Rating,
		Text:    req.Text,
	}
	if err := h.service.AddComment(c.Request.Context(), &comment); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}
	if err := h.service.DeleteComment(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}

func (h *CommentHandler) GetCommentsByOrder(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}
	comments, err := h.service.GetCommentsByOrder(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}
