package usecase

import (
	"context"
	"strings"

	"github.com/fekuna/omnipos-storefront-service/internal/cart"
	cartdto "github.com/fekuna/omnipos-storefront-service/internal/cart/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/checkout"
	"github.com/fekuna/omnipos-storefront-service/internal/checkout/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/customer"
	"github.com/fekuna/omnipos-storefront-service/internal/merchant"
	"github.com/fekuna/omnipos-storefront-service/internal/message"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/order"
	orderdto "github.com/fekuna/omnipos-storefront-service/internal/order/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/middleware"
	"go.uber.org/zap"
)

type checkoutUseCase struct {
	carts     cart.UseCase
	stores    merchant.UseCase
	orders    order.UseCase
	customers customer.UseCase
	renderer  *checkout.Renderer
	logger    logger.ZapLogger
}

func NewCheckoutUseCase(
	carts cart.UseCase,
	stores merchant.UseCase,
	orders order.UseCase,
	customers customer.UseCase,
	renderer *checkout.Renderer,
	log logger.ZapLogger,
) checkout.UseCase {
	return &checkoutUseCase{
		carts:     carts,
		stores:    stores,
		orders:    orders,
		customers: customers,
		renderer:  renderer,
		logger:    log,
	}
}

func (uc *checkoutUseCase) Quote(ctx context.Context, input *dto.QuoteInput) (*dto.QuoteResult, error) {
	store, err := uc.stores.GetStore(ctx, input.StoreID)
	if err != nil {
		return nil, err
	}
	c, err := uc.carts.GetCart(ctx, input.StoreID, input.SessionID)
	if err != nil {
		return nil, err
	}

	fee, total := checkout.Totals(c.Subtotal, input.DeliveryType, store.DeliveryFee)
	return &dto.QuoteResult{
		Subtotal:       c.Subtotal,
		DeliveryFee:    fee,
		Total:          total,
		TotalItems:     c.TotalItems,
		PaymentMethods: merchant.AvailablePaymentMethods(store),
		StoreOpen:      store.IsOpen,
	}, nil
}

func (uc *checkoutUseCase) Checkout(ctx context.Context, input *dto.CheckoutInput) (*dto.CheckoutResult, error) {
	// 1. Load store and cart
	store, err := uc.stores.GetStore(ctx, input.StoreID)
	if err != nil {
		return nil, err
	}
	c, err := uc.carts.GetCart(ctx, input.StoreID, input.SessionID)
	if err != nil {
		return nil, err
	}

	// 2. Validate before anything is written
	form := checkout.Form{
		Name:          strings.TrimSpace(input.Name),
		Phone:         message.SanitizePhone(input.Phone),
		Address:       strings.TrimSpace(input.Address),
		DeliveryType:  input.DeliveryType,
		PaymentMethod: strings.TrimSpace(input.PaymentMethod),
	}
	offered := func(m string) bool { return merchant.IsOffered(store, m) }
	if err := checkout.Validate(form, len(c.Items) == 0, store, offered); err != nil {
		return nil, err
	}

	// 3. Identify the customer, anonymous when the token is missing or not for this store
	var session *model.CustomerSession
	if input.CustomerToken != "" {
		session, err = uc.customers.Identify(ctx, input.CustomerToken, input.StoreID)
		if err != nil {
			uc.logger.Warn("checkout with unusable customer token", zap.String("store_id", input.StoreID), zap.Error(err))
			session = nil
		}
	}

	// 4. Totals and cash change
	fee, total := checkout.Totals(c.Subtotal, form.DeliveryType, store.DeliveryFee)
	notes := strings.TrimSpace(input.Notes)
	persistedNotes := notes

	data := &checkout.MessageData{
		Store:         store,
		PaymentLabel:  uc.renderer.PaymentLabel(input.Lang, form.PaymentMethod),
		CustomerNotes: notes,
	}
	if merchant.IsCashLike(form.PaymentMethod) {
		if change, ok := checkout.ChangeToBring(total, input.AmountGiven); ok {
			given := input.AmountGiven
			data.ChangeFor = &given
			data.ChangeToBring = &change
			persistedNotes = joinNotes(notes, uc.renderer.ChangeNote(input.Lang, given, change))
		}
	}

	// 5. Persist the order
	orderInput := &orderdto.CreateOrderInput{
		StoreID:       input.StoreID,
		CustomerName:  form.Name,
		CustomerPhone: form.Phone,
		DeliveryType:  form.DeliveryType,
		PaymentMethod: form.PaymentMethod,
		Items:         orderItems(c.Items),
		Subtotal:      c.Subtotal,
		DeliveryFee:   fee,
		Total:         total,
	}
	if session != nil {
		orderInput.CustomerID = &session.ID
	}
	if form.DeliveryType == model.DeliveryTypeDelivery {
		orderInput.CustomerAddress = &form.Address
	}
	if persistedNotes != "" {
		orderInput.Notes = &persistedNotes
	}

	o, err := uc.orders.CreateOrder(ctx, orderInput)
	middleware.RecordOrderOperation("create", err == nil)
	if err != nil {
		return nil, err
	}

	// 6. Build the outbound message
	data.Order = o
	text := uc.renderer.Render(input.Lang, data)

	// 7. Remember the contact and take the ordered lines out of the cart; the order already exists
	if err := uc.customers.SaveContact(ctx, input.SessionID, &model.Contact{Name: form.Name, Phone: form.Phone}); err != nil {
		uc.logger.Error("failed to save contact", zap.String("order_id", o.ID), zap.Error(err))
	}
	if err := uc.carts.RemoveOrdered(ctx, input.StoreID, input.SessionID, c.Items); err != nil {
		uc.logger.Error("failed to clear cart after checkout", zap.String("order_id", o.ID), zap.Error(err))
	}

	flow := checkout.FlowRegistrationPrompt
	if session != nil {
		flow = checkout.FlowSuccess
	}

	uc.logger.Info("checkout completed",
		zap.String("order_id", o.ID),
		zap.String("store_id", o.StoreID),
		zap.String("total", o.Total.StringFixed(2)),
		zap.String("flow", string(flow)),
	)

	return &dto.CheckoutResult{
		Order:         o,
		Message:       text,
		WhatsAppURL:   message.WhatsAppURL(store.WhatsAppNumber, text),
		ChangeToBring: data.ChangeToBring,
		FlowState:     string(flow),
	}, nil
}

func orderItems(lines []cartdto.LineView) model.OrderItems {
	items := make(model.OrderItems, 0, len(lines))
	for _, l := range lines {
		items = append(items, model.OrderItem{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			TotalPrice:  l.Total,
			Notes:       l.Notes,
		})
	}
	return items
}

func joinNotes(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n")
}
