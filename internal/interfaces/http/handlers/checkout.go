// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/coffeeshop-backend/internal/config"
	"github.com/your-org/coffeeshop-backend/internal/domain/cart"
	"github.com/your-org/coffeeshop-backend/internal/domain/catalog"
	"github.com/your-org/coffeeshop-backend/internal/domain/checkout"
	"github.com/your-org/coffeeshop-backend/internal/domain/order"
	"github.com/your-org/coffeeshop-backend/internal/domain/user"
	redisdb "github.com/your-org/coffeeshop-backend/internal/infrastructure/database/redis"
	"github.com/your-org/coffeeshop-backend/internal/interfaces/http/middleware"
	"github.com/your-org/coffeeshop-backend/internal/pkg/email"
	"gorm.io/gorm"
)

// CheckoutHandler handles checkout endpoints
type CheckoutHandler struct {
	cartService     *cart.Service
	checkoutService *checkout.Service
	config          *config.Config
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(db *gorm.DB, redisClient *redisdb.Client, cfg *config.Config) *CheckoutHandler {
	cartService := cart.NewService(redisClient, catalog.NewService(db, cfg), cfg)
	userService := user.NewService(db, redisClient, cfg)

	return &CheckoutHandler{
		cartService: cartService,
		checkoutService: checkout.NewService(
			order.NewRepository(db),
			userService,
			cartService,
			email.NewService(cfg),
		),
		config: cfg,
	}
}

// Checkout handles POST /checkout
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	sessionID, err := c.Cookie("session_id")
	if err != nil || sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "No active cart session",
		})
		return
	}

	userCart, err := h.cartService.Get(c.Request.Context(), sessionID, &userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve cart",
		})
		return
	}

	placedOrder, err := h.checkoutService.Checkout(c.Request.Context(), userCart, userID)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Cart is empty",
			})
		case errors.Is(err, user.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "User not found",
			})
		case errors.Is(err, checkout.ErrOrderPersistence):
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to place order, please try again",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to place order",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"data":    placedOrder,
	})
}
