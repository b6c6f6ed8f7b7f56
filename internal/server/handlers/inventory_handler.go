package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fridgeagent/internal/domain/models"
	"fridgeagent/internal/service/inventory"
)

const dateLayout = "2006-01-02"

// InventoryHandler handles the inventory CRUD and consumption endpoints.
type InventoryHandler struct {
	svc    *inventory.Service
	logger *zap.Logger
}

// NewInventoryHandler constructs the HTTP handler adapter.
func NewInventoryHandler(svc *inventory.Service, logger *zap.Logger) *InventoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryHandler{svc: svc, logger: logger}
}

type addItemRequest struct {
	Name       string   `json:"name" binding:"required"`
	Quantity   *float64 `json:"quantity" binding:"required"`
	Unit       string   `json:"unit"`
	ExpiryDate string   `json:"expiry_date" binding:"required"`
	Notes      string   `json:"notes"`
}

type updateItemRequest struct {
	Name       *string  `json:"name"`
	Quantity   *float64 `json:"quantity"`
	Unit       *string  `json:"unit"`
	ExpiryDate *string  `json:"expiry_date"`
	Notes      *string  `json:"notes"`
}

type consumeRequest struct {
	Name     string   `json:"name" binding:"required"`
	Quantity *float64 `json:"quantity" binding:"required"`
}

type deductRequest struct {
	Ingredients []models.IngredientUsage `json:"ingredients" binding:"required"`
}

// List returns the full inventory sorted by expiry date.
func (h *InventoryHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing inventory", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch inventory"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// Add creates a new inventory item.
func (h *InventoryHandler) Add(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid add payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	expiry, err := time.Parse(dateLayout, req.ExpiryDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expiry_date must be YYYY-MM-DD"})
		return
	}

	item, err := h.svc.Add(c.Request.Context(), models.ItemDraft{
		Name:       req.Name,
		Quantity:   req.Quantity,
		Unit:       req.Unit,
		ExpiryDate: &expiry,
		Notes:      req.Notes,
	})
	if err != nil {
		h.respondError(c, err, "failed to add item")
		return
	}

	c.JSON(http.StatusCreated, item)
}

// Update applies a partial edit to an existing item.
func (h *InventoryHandler) Update(c *gin.Context) {
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	update := models.ItemUpdate{
		Name:     req.Name,
		Quantity: req.Quantity,
		Unit:     req.Unit,
		Notes:    req.Notes,
	}
	if req.ExpiryDate != nil {
		expiry, err := time.Parse(dateLayout, *req.ExpiryDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "expiry_date must be YYYY-MM-DD"})
			return
		}
		update.ExpiryDate = &expiry
	}

	item, err := h.svc.Update(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		h.respondError(c, err, "failed to update item")
		return
	}

	c.JSON(http.StatusOK, item)
}

// Delete removes an item by id.
func (h *InventoryHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err, "failed to delete item")
		return
	}
	c.Status(http.StatusNoContent)
}

// Consume deducts a quantity from the first item matching the given name.
// An unmatched name is a 200 with matched=false, not an error.
func (h *InventoryHandler) Consume(c *gin.Context) {
	var req consumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid consume payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	outcome, err := h.svc.ConsumeByName(c.Request.Context(), req.Name, *req.Quantity)
	if err != nil {
		h.respondError(c, err, "failed to consume item")
		return
	}

	c.JSON(http.StatusOK, outcome)
}

// Deduct applies a recipe's ingredient usages as a best-effort batch.
func (h *InventoryHandler) Deduct(c *gin.Context) {
	var req deductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid deduct payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	results, err := h.svc.DeductForRecipe(c.Request.Context(), req.Ingredients)
	if err != nil {
		h.respondError(c, err, "failed to deduct ingredients")
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (h *InventoryHandler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, inventory.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, inventory.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
	default:
		h.logger.Error(fallback, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
