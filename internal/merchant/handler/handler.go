package handler

import (
	"errors"
	"net/http"

	"github.com/fekuna/omnipos-storefront-service/internal/merchant"
	"github.com/fekuna/omnipos-storefront-service/internal/merchant/usecase"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type MerchantHandler struct {
	uc     merchant.UseCase
	logger logger.ZapLogger
}

func NewMerchantHandler(uc merchant.UseCase, log logger.ZapLogger) *MerchantHandler {
	return &MerchantHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *MerchantHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stores/:storeID/payment-methods", h.PaymentMethods)
}

func (h *MerchantHandler) PaymentMethods(c *gin.Context) {
	methods, err := h.uc.PaymentMethods(c.Request.Context(), c.Param("storeID"))
	if err != nil {
		if errors.Is(err, usecase.ErrStoreNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed to list payment methods", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment_methods": methods})
}
