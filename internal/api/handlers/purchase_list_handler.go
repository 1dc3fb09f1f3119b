package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/arvella/stockroom/internal/api/middleware"
	"github.com/arvella/stockroom/internal/domain"
	"github.com/arvella/stockroom/internal/purchaselist"
	"github.com/arvella/stockroom/internal/repository"
	"github.com/arvella/stockroom/internal/service"
)

type PurchaseListHandler struct {
	purchases *service.PurchaseService
}

func NewPurchaseListHandler(purchases *service.PurchaseService) *PurchaseListHandler {
	return &PurchaseListHandler{purchases: purchases}
}

type addItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type updateItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	AddedAt   string `json:"added_at" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type checkoutSupplierRequest struct {
	SupplierID  string `json:"supplier_id" binding:"required"`
	Day         string `json:"day" binding:"required"`
	StoreID     int64  `json:"store_id" binding:"required"`
	CreatedByID string `json:"created_by_id" binding:"required"`
}

type checkoutAllRequest struct {
	Day         string `json:"day" binding:"required"`
	StoreID     int64  `json:"store_id" binding:"required"`
	CreatedByID string `json:"created_by_id" binding:"required"`
}

// GetCart returns the session's whole cart plus the entry count used
// for UI badges.
func (h *PurchaseListHandler) GetCart(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	entries := h.purchases.CartEntries(sessionID)

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"count":   len(entries),
	})
}

// GetCartForSupplier returns the session's entries for one supplier,
// any date, in cart order.
func (h *PurchaseListHandler) GetCartForSupplier(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	entries := h.purchases.CartEntriesForSupplier(sessionID, c.Param("supplier_id"))

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// AddItem puts a product on the cart under today's date.
func (h *PurchaseListHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sessionID := middleware.SessionID(c)
	if err := h.purchases.AddItem(c.Request.Context(), sessionID, req.ProductID, req.Quantity); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		log.Error().Err(err).Str("product_id", req.ProductID).Msg("failed to add cart item")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": h.purchases.CartCount(sessionID)})
}

// UpdateItem replaces an entry's quantity. Quantity 0 keeps the entry
// visible but excludes it from the next order.
func (h *PurchaseListHandler) UpdateItem(c *gin.Context) {
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	day, err := domain.ParseDay(req.AddedAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid added_at date"})
		return
	}

	sessionID := middleware.SessionID(c)
	h.purchases.UpdateQuantity(sessionID, req.ProductID, day, req.Quantity)

	c.JSON(http.StatusOK, gin.H{"count": h.purchases.CartCount(sessionID)})
}

// RemoveItem deletes the (product, added_at) entry. Removing an absent
// entry succeeds.
func (h *PurchaseListHandler) RemoveItem(c *gin.Context) {
	day, err := domain.ParseDay(c.Query("added_at"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid added_at date"})
		return
	}

	sessionID := middleware.SessionID(c)
	h.purchases.RemoveItem(sessionID, c.Param("product_id"), day)

	c.JSON(http.StatusOK, gin.H{"count": h.purchases.CartCount(sessionID)})
}

// CheckoutSupplier converts the (supplier, day) cart slice into one
// purchase order.
func (h *PurchaseListHandler) CheckoutSupplier(c *gin.Context) {
	var req checkoutSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	day, err := domain.ParseDay(req.Day)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid day"})
		return
	}

	sessionID := middleware.SessionID(c)
	order, err := h.purchases.CheckoutSupplier(c.Request.Context(), sessionID, req.SupplierID, req.CreatedByID, day, req.StoreID)
	if err != nil {
		h.renderCheckoutError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

// CheckoutAll converts every orderable entry of the day into orders,
// one per supplier. A 207 response means some supplier partitions
// failed; their ids are listed and the user re-adds those items.
func (h *PurchaseListHandler) CheckoutAll(c *gin.Context) {
	var req checkoutAllRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	day, err := domain.ParseDay(req.Day)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid day"})
		return
	}

	sessionID := middleware.SessionID(c)
	result, err := h.purchases.CheckoutAll(c.Request.Context(), sessionID, req.CreatedByID, day, req.StoreID)
	if err != nil {
		h.renderCheckoutError(c, err)
		return
	}

	status := http.StatusCreated
	if len(result.FailedSupplierIDs) > 0 {
		status = http.StatusMultiStatus
	}

	c.JSON(status, result)
}

func (h *PurchaseListHandler) renderCheckoutError(c *gin.Context, err error) {
	if errors.Is(err, purchaselist.ErrEmptyOrder) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no items with quantity ≥ 1 for this selection"})
		return
	}

	var creation *purchaselist.OrderCreationError
	if errors.As(err, &creation) {
		log.Error().Err(err).Str("supplier_id", creation.SupplierID).Msg("order creation failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "order store rejected the purchase order", "supplier_id": creation.SupplierID})
		return
	}

	log.Error().Err(err).Msg("checkout failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "checkout failed"})
}
