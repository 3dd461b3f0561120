package i18n

import goi18n "github.com/nicksnyder/go-i18n/v2/i18n"

// Message ids shared by the cart notices and the default order message.
const (
	CartAdded           = "cart.added"
	CartStockExhausted  = "cart.stock_exhausted"
	CartPartialAdd      = "cart.partial_add"
	CartQuantityLimited = "cart.quantity_limited"

	OrderHeader       = "order.header"
	OrderCustomer     = "order.customer"
	OrderPhone        = "order.phone"
	OrderDelivery     = "order.delivery"
	OrderPickup       = "order.pickup"
	OrderAddress      = "order.address"
	OrderItems        = "order.items"
	OrderSubtotal     = "order.subtotal"
	OrderDeliveryFee  = "order.delivery_fee"
	OrderTotal        = "order.total"
	OrderPayment      = "order.payment"
	OrderChangeFor    = "order.change_for"
	OrderChangeBring  = "order.change_to_bring"
	OrderNotes        = "order.notes"
	OrderPaymentLink  = "order.payment_link"
	OrderNotesChange  = "order.notes_change"
	PaymentPix        = "payment.pix"
	PaymentCredit     = "payment.credit"
	PaymentDebit      = "payment.debit"
	PaymentCash       = "payment.cash"
	NewOrderAlert     = "notify.new_order"
	NewOrderAlertBody = "notify.new_order_body"
)

var ptBR = []*goi18n.Message{
	{ID: CartAdded, Other: "{{.Name}} adicionado ao carrinho"},
	{ID: CartStockExhausted, Other: "Estoque esgotado para {{.Name}}"},
	{ID: CartPartialAdd, Other: "Apenas {{.Available}} disponíveis de {{.Name}}"},
	{ID: CartQuantityLimited, Other: "Quantidade limitada a {{.Available}} unidades"},

	{ID: OrderHeader, Other: "*Novo pedido - {{.Store}}*"},
	{ID: OrderCustomer, Other: "*Cliente:* {{.Value}}"},
	{ID: OrderPhone, Other: "*Telefone:* {{.Value}}"},
	{ID: OrderDelivery, Other: "*Entrega*"},
	{ID: OrderPickup, Other: "*Retirada no local*"},
	{ID: OrderAddress, Other: "*Endereço:* {{.Value}}"},
	{ID: OrderItems, Other: "*Itens:*"},
	{ID: OrderSubtotal, Other: "Subtotal: {{.Value}}"},
	{ID: OrderDeliveryFee, Other: "Taxa de entrega: {{.Value}}"},
	{ID: OrderTotal, Other: "*Total: {{.Value}}*"},
	{ID: OrderPayment, Other: "*Pagamento:* {{.Value}}"},
	{ID: OrderChangeFor, Other: "Troco para: {{.Value}}"},
	{ID: OrderChangeBring, Other: "Levar troco: {{.Value}}"},
	{ID: OrderNotes, Other: "*Observações:* {{.Value}}"},
	{ID: OrderPaymentLink, Other: "*Link de pagamento:* {{.Value}}"},
	{ID: OrderNotesChange, Other: "Troco para {{.Given}} (levar {{.Change}})"},
	{ID: PaymentPix, Other: "Pix"},
	{ID: PaymentCredit, Other: "Cartão de crédito"},
	{ID: PaymentDebit, Other: "Cartão de débito"},
	{ID: PaymentCash, Other: "Dinheiro"},
	{ID: NewOrderAlert, Other: "Novo pedido!"},
	{ID: NewOrderAlertBody, Other: "{{.Customer}} - {{.Total}}"},
}

var en = []*goi18n.Message{
	{ID: CartAdded, Other: "{{.Name}} added to cart"},
	{ID: CartStockExhausted, Other: "{{.Name}} is out of stock"},
	{ID: CartPartialAdd, Other: "Only {{.Available}} of {{.Name}} available"},
	{ID: CartQuantityLimited, Other: "Quantity limited to {{.Available}} units"},

	{ID: OrderHeader, Other: "*New order - {{.Store}}*"},
	{ID: OrderCustomer, Other: "*Customer:* {{.Value}}"},
	{ID: OrderPhone, Other: "*Phone:* {{.Value}}"},
	{ID: OrderDelivery, Other: "*Delivery*"},
	{ID: OrderPickup, Other: "*Pickup*"},
	{ID: OrderAddress, Other: "*Address:* {{.Value}}"},
	{ID: OrderItems, Other: "*Items:*"},
	{ID: OrderSubtotal, Other: "Subtotal: {{.Value}}"},
	{ID: OrderDeliveryFee, Other: "Delivery fee: {{.Value}}"},
	{ID: OrderTotal, Other: "*Total: {{.Value}}*"},
	{ID: OrderPayment, Other: "*Payment:* {{.Value}}"},
	{ID: OrderChangeFor, Other: "Change for: {{.Value}}"},
	{ID: OrderChangeBring, Other: "Bring change: {{.Value}}"},
	{ID: OrderNotes, Other: "*Notes:* {{.Value}}"},
	{ID: OrderPaymentLink, Other: "*Payment link:* {{.Value}}"},
	{ID: OrderNotesChange, Other: "Change for {{.Given}} (bring {{.Change}})"},
	{ID: PaymentPix, Other: "Pix"},
	{ID: PaymentCredit, Other: "Credit card"},
	{ID: PaymentDebit, Other: "Debit card"},
	{ID: PaymentCash, Other: "Cash"},
	{ID: NewOrderAlert, Other: "New order!"},
	{ID: NewOrderAlertBody, Other: "{{.Customer}} - {{.Total}}"},
}
