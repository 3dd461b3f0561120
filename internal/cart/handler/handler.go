package handler

import (
	"errors"
	"net/http"

	"github.com/fekuna/omnipos-storefront-service/internal/cart"
	"github.com/fekuna/omnipos-storefront-service/internal/cart/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/cart/usecase"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/cache"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CartHandler struct {
	uc     cart.UseCase
	logger logger.ZapLogger
}

func NewCartHandler(uc cart.UseCase, log logger.ZapLogger) *CartHandler {
	return &CartHandler{
		uc:     uc,
		logger: log,
	}
}

// RegisterRoutes mounts the cart under /stores/:storeID/cart. The group must
// already run middleware.Session.
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/stores/:storeID/cart")
	g.GET("", h.GetCart)
	g.POST("/items", h.AddItem)
	g.PATCH("/items/quantity", h.UpdateQuantity)
	g.PATCH("/items/notes", h.UpdateNotes)
	g.DELETE("/items", h.RemoveItem)
	g.DELETE("", h.ClearCart)
}

type addItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
	Notes     string `json:"notes"`
}

type lineRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Notes     string `json:"notes"`
}

type updateQuantityRequest struct {
	lineRequest
	Quantity int `json:"quantity"`
}

type updateNotesRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	NewNotes  string `json:"new_notes"`
}

func (h *CartHandler) GetCart(c *gin.Context) {
	v, err := h.uc.GetCart(c.Request.Context(), c.Param("storeID"), middleware.SessionID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	v, err := h.uc.AddItem(c.Request.Context(), &dto.AddItemInput{
		StoreID:   c.Param("storeID"),
		SessionID: middleware.SessionID(c),
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Notes:     req.Notes,
		Lang:      lang(c),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	if v.Rejected {
		c.JSON(http.StatusConflict, v)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	var req lineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	v, err := h.uc.RemoveItem(c.Request.Context(), h.line(c, req))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	v, err := h.uc.UpdateQuantity(c.Request.Context(), &dto.UpdateQuantityInput{
		LineInput: *h.line(c, req.lineRequest),
		Quantity:  req.Quantity,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *CartHandler) UpdateNotes(c *gin.Context) {
	var req updateNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	v, err := h.uc.UpdateNotes(c.Request.Context(), &dto.UpdateNotesInput{
		LineInput: *h.line(c, lineRequest{ProductID: req.ProductID}),
		NewNotes:  req.NewNotes,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	if err := h.uc.ClearCart(c.Request.Context(), c.Param("storeID"), middleware.SessionID(c)); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CartHandler) line(c *gin.Context, req lineRequest) *dto.LineInput {
	return &dto.LineInput{
		StoreID:   c.Param("storeID"),
		SessionID: middleware.SessionID(c),
		ProductID: req.ProductID,
		Notes:     req.Notes,
		Lang:      lang(c),
	}
}

func (h *CartHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, cache.ErrLockNotAcquired):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		h.logger.Error("cart request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func lang(c *gin.Context) string {
	return c.GetHeader("Accept-Language")
}
