package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/arvella/stockroom/internal/repository"
	"github.com/arvella/stockroom/internal/service"
)

type SuggestionHandler struct {
	suggestions *service.SuggestionService
}

func NewSuggestionHandler(suggestions *service.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{suggestions: suggestions}
}

// GetSuggestions lists a store's below-minimum products, worst deficit
// first.
func (h *SuggestionHandler) GetSuggestions(c *gin.Context) {
	storeID, err := strconv.ParseInt(c.Query("store_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "store_id is required"})
		return
	}

	suggestions, err := h.suggestions.Suggestions(c.Request.Context(), storeID)
	if err != nil {
		log.Error().Err(err).Int64("store_id", storeID).Msg("failed to fetch reorder suggestions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch suggestions"})
		return
	}

	c.JSON(http.StatusOK, suggestions)
}

// GetStock returns the ledger's current stock for one product in one
// store.
func (h *SuggestionHandler) GetStock(c *gin.Context) {
	productID := c.Query("product_id")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_id is required"})
		return
	}

	storeID, err := strconv.ParseInt(c.Query("store_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "store_id is required"})
		return
	}

	stock, err := h.suggestions.StockOnHand(c.Request.Context(), productID, storeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no inventory record for this product/store"})
			return
		}
		log.Error().Err(err).Str("product_id", productID).Msg("failed to fetch stock")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch stock"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product_id": productID, "store_id": storeID, "current_stock": stock})
}
