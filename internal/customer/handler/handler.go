package handler

import (
	"errors"
	"net/http"

	"github.com/fekuna/omnipos-storefront-service/internal/customer"
	"github.com/fekuna/omnipos-storefront-service/internal/customer/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/customer/usecase"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CustomerHandler struct {
	uc     customer.UseCase
	logger logger.ZapLogger
}

func NewCustomerHandler(uc customer.UseCase, log logger.ZapLogger) *CustomerHandler {
	return &CustomerHandler{
		uc:     uc,
		logger: log,
	}
}

// RegisterRoutes expects the group to run middleware.Session.
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/stores/:storeID/customers/session", h.Register)
	rg.GET("/stores/:storeID/customers/me", h.Me)
	rg.GET("/contact", h.Contact)
}

type registerRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
}

func (h *CustomerHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.uc.Register(c.Request.Context(), &dto.RegisterInput{
		StoreID: c.Param("storeID"),
		Name:    req.Name,
		Phone:   req.Phone,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("customer registration failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *CustomerHandler) Me(c *gin.Context) {
	token := middleware.CustomerToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "customer not identified"})
		return
	}
	s, err := h.uc.Identify(c.Request.Context(), token, c.Param("storeID"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *CustomerHandler) Contact(c *gin.Context) {
	contact, err := h.uc.GetContact(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		h.logger.Error("failed to load contact", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if contact == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, contact)
}
