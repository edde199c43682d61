// internal/interfaces/http/handlers/feedback.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/coffeeshop-backend/internal/domain/feedback"
	"gorm.io/gorm"
)

// FeedbackHandler handles customer feedback endpoints
type FeedbackHandler struct {
	feedbackService *feedback.Service
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(db *gorm.DB) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedback.NewService(db),
	}
}

// Submit handles POST /feedback - public submission
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req feedback.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	entry, err := h.feedbackService.Submit(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to submit feedback",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Feedback submitted successfully",
		"data":    entry,
	})
}

// List handles GET /admin/feedback with optional ?status= filter
func (h *FeedbackHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	status := c.Query("status")

	response, err := h.feedbackService.List(c.Request.Context(), page, status)
	if err != nil {
		if errors.Is(err, feedback.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid feedback status",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve feedback",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Feedback retrieved successfully",
		"data":    response,
	})
}

// Get handles GET /admin/feedback/:id. Opening a new entry marks it read.
func (h *FeedbackHandler) Get(c *gin.Context) {
	feedbackID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid feedback ID",
		})
		return
	}

	entry, err := h.feedbackService.Get(c.Request.Context(), uint(feedbackID))
	if err != nil {
		if errors.Is(err, feedback.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Feedback not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve feedback",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Feedback retrieved successfully",
		"data":    entry,
	})
}

// UpdateStatus handles PUT /admin/feedback/:id/status
func (h *FeedbackHandler) UpdateStatus(c *gin.Context) {
	feedbackID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid feedback ID",
		})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	entry, err := h.feedbackService.UpdateStatus(c.Request.Context(), uint(feedbackID), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, feedback.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid feedback status",
			})
		case errors.Is(err, feedback.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Feedback not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to update feedback status",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Feedback status updated successfully",
		"data":    entry,
	})
}

// Delete handles DELETE /admin/feedback/:id
func (h *FeedbackHandler) Delete(c *gin.Context) {
	feedbackID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid feedback ID",
		})
		return
	}

	if err := h.feedbackService.Delete(c.Request.Context(), uint(feedbackID)); err != nil {
		if errors.Is(err, feedback.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Feedback not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete feedback",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Feedback deleted successfully",
	})
}
