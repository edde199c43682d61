// internal/interfaces/http/handlers/admin_order.go
package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/your-org/coffeeshop-backend/internal/config"
	"github.com/your-org/coffeeshop-backend/internal/domain/order"
	"github.com/your-org/coffeeshop-backend/internal/domain/user"
	redisdb "github.com/your-org/coffeeshop-backend/internal/infrastructure/database/redis"
	"gorm.io/gorm"
)

// AdminOrderHandler handles admin transaction history and archival
type AdminOrderHandler struct {
	orderService *order.Service
	archiver     *order.Archiver
	config       *config.Config
}

// NewAdminOrderHandler creates a new admin order handler
func NewAdminOrderHandler(db *gorm.DB, redisClient *redisdb.Client, cfg *config.Config) *AdminOrderHandler {
	repo := order.NewRepository(db)

	return &AdminOrderHandler{
		orderService: order.NewService(repo, user.NewService(db, redisClient, cfg)),
		archiver:     order.NewArchiver(repo),
		config:       cfg,
	}
}

// ArchiveRequest selects the orders to move into the archive
type ArchiveRequest struct {
	OrderIDs []uint `json:"order_ids" binding:"required,min=1"`
}

// parseOrderListFilter builds a ListFilter from the request query string
func parseOrderListFilter(c *gin.Context) (*order.ListFilter, error) {
	filter := &order.ListFilter{
		Status:        c.Query("status"),
		CustomerEmail: c.Query("email"),
	}

	if userIDParam := c.Query("user_id"); userIDParam != "" {
		if parsed, err := strconv.ParseUint(userIDParam, 10, 32); err == nil {
			userID := uint(parsed)
			filter.UserID = &userID
		}
	}

	if fromParam := c.Query("from"); fromParam != "" {
		from, err := time.Parse("2006-01-02", fromParam)
		if err != nil {
			return nil, fmt.Errorf("invalid 'from' date, expected YYYY-MM-DD")
		}
		filter.From = &from
	}

	if toParam := c.Query("to"); toParam != "" {
		to, err := time.Parse("2006-01-02", toParam)
		if err != nil {
			return nil, fmt.Errorf("invalid 'to' date, expected YYYY-MM-DD")
		}
		filter.To = &to
	}

	if minParam := c.Query("min_total"); minParam != "" {
		minTotal, err := strconv.ParseInt(minParam, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid 'min_total', expected an amount in cents")
		}
		filter.MinTotal = &minTotal
	}

	if maxParam := c.Query("max_total"); maxParam != "" {
		maxTotal, err := strconv.ParseInt(maxParam, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid 'max_total', expected an amount in cents")
		}
		filter.MaxTotal = &maxTotal
	}

	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))

	return filter, nil
}

// ListOrders handles GET /admin/orders - full transaction history with filters
func (h *AdminOrderHandler) ListOrders(c *gin.Context) {
	filter, err := parseOrderListFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	orders, total, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve orders",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders retrieved successfully",
		"data": gin.H{
			"orders": orders,
			"total":  total,
			"page":   filter.Page,
			"limit":  filter.Limit,
		},
	})
}

// ArchiveOrders handles POST /admin/orders/archive. Orders are copied
// into the archive tables and removed from the live tables; IDs that no
// longer exist are counted as skipped.
func (h *AdminOrderHandler) ArchiveOrders(c *gin.Context) {
	var req ArchiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	result, err := h.archiver.Archive(c.Request.Context(), req.OrderIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to archive orders",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders archived successfully",
		"data":    result,
	})
}

// ListArchivedOrders handles GET /admin/orders/archived
func (h *AdminOrderHandler) ListArchivedOrders(c *gin.Context) {
	archived, err := h.archiver.ListArchived(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve archived orders",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Archived orders retrieved successfully",
		"data":    archived,
	})
}
