package handler

import (
	"errors"
	"net/http"

	"github.com/fekuna/omnipos-storefront-service/internal/checkout"
	"github.com/fekuna/omnipos-storefront-service/internal/checkout/dto"
	merchantUC "github.com/fekuna/omnipos-storefront-service/internal/merchant/usecase"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/cache"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CheckoutHandler struct {
	uc     checkout.UseCase
	logger logger.ZapLogger
}

func NewCheckoutHandler(uc checkout.UseCase, log logger.ZapLogger) *CheckoutHandler {
	return &CheckoutHandler{
		uc:     uc,
		logger: log,
	}
}

// RegisterRoutes mounts checkout under /stores/:storeID/checkout. The group must
// already run middleware.Session.
func (h *CheckoutHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/stores/:storeID/checkout")
	g.GET("/quote", h.Quote)
	g.POST("", h.Checkout)
}

type checkoutRequest struct {
	CustomerName    string           `json:"customer_name"`
	CustomerPhone   string           `json:"customer_phone"`
	CustomerAddress string           `json:"customer_address"`
	DeliveryType    string           `json:"delivery_type"`
	PaymentMethod   string           `json:"payment_method"`
	AmountGiven     *decimal.Decimal `json:"amount_given"`
	Notes           string           `json:"notes"`
}

func (h *CheckoutHandler) Quote(c *gin.Context) {
	res, err := h.uc.Quote(c.Request.Context(), &dto.QuoteInput{
		StoreID:      c.Param("storeID"),
		SessionID:    middleware.SessionID(c),
		DeliveryType: model.DeliveryType(c.DefaultQuery("delivery_type", string(model.DeliveryTypePickup))),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := &dto.CheckoutInput{
		StoreID:       c.Param("storeID"),
		SessionID:     middleware.SessionID(c),
		CustomerToken: middleware.CustomerToken(c),
		Name:          req.CustomerName,
		Phone:         req.CustomerPhone,
		Address:       req.CustomerAddress,
		DeliveryType:  model.DeliveryType(req.DeliveryType),
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		Lang:          c.GetHeader("Accept-Language"),
	}
	if req.AmountGiven != nil {
		in.AmountGiven = *req.AmountGiven
	}

	res, err := h.uc.Checkout(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *CheckoutHandler) fail(c *gin.Context, err error) {
	var verr *checkout.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "fields": verr.Fields})
	case errors.Is(err, merchantUC.ErrStoreNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, cache.ErrLockNotAcquired):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		h.logger.Error("checkout request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
