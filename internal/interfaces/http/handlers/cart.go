// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/your-org/coffeeshop-backend/internal/config"
	"github.com/your-org/coffeeshop-backend/internal/domain/cart"
	"github.com/your-org/coffeeshop-backend/internal/domain/catalog"
	redisdb "github.com/your-org/coffeeshop-backend/internal/infrastructure/database/redis"
	"github.com/your-org/coffeeshop-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	cartService *cart.Service
	config      *config.Config
}

// NewCartHandler creates a new cart handler
func NewCartHandler(db *gorm.DB, redisClient *redisdb.Client, cfg *config.Config) *CartHandler {
	return &CartHandler{
		cartService: cart.NewService(redisClient, catalog.NewService(db, cfg), cfg),
		config:      cfg,
	}
}

// AddToCartRequest represents the add-to-cart payload
type AddToCartRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Note      string `json:"note"`
}

// RemoveItemsRequest represents a batch item removal
type RemoveItemsRequest struct {
	ProductIDs []uint `json:"product_ids" binding:"required,min=1"`
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID := h.getOrCreateSessionID(c)

	userCart, err := h.cartService.Get(c.Request.Context(), sessionID, h.userIDPtr(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    userCart,
	})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	sessionID := h.getOrCreateSessionID(c)

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	userCart, err := h.cartService.AddItem(c.Request.Context(), sessionID, h.userIDPtr(c), req.ProductID, req.Note)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
		case errors.Is(err, cart.ErrCartFull):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Cart is full",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to add item to cart",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    userCart,
	})
}

// RemoveItems handles DELETE /cart/items
func (h *CartHandler) RemoveItems(c *gin.Context) {
	sessionID := h.getOrCreateSessionID(c)

	var req RemoveItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	userCart, err := h.cartService.RemoveItems(c.Request.Context(), sessionID, h.userIDPtr(c), req.ProductIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to remove items from cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Items removed from cart successfully",
		"data":    userCart,
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	sessionID := h.getOrCreateSessionID(c)

	if err := h.cartService.Clear(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to clear cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
	})
}

// userIDPtr returns the authenticated user's ID, or nil for guests
func (h *CartHandler) userIDPtr(c *gin.Context) *uint {
	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		return &userID
	}
	return nil
}

// getOrCreateSessionID gets session ID from cookie or creates a new one
func (h *CartHandler) getOrCreateSessionID(c *gin.Context) string {
	sessionID, err := c.Cookie("session_id")
	if err != nil || sessionID == "" {
		sessionID = uuid.New().String()

		// Cookie lifetime mirrors the cart TTL
		c.SetCookie("session_id", sessionID, int(h.config.Cart.TTL.Seconds()), "/", "", false, true)
	}

	return sessionID
}
