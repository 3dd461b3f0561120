package checkout

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/fekuna/omnipos-storefront-service/internal/merchant"
	"github.com/fekuna/omnipos-storefront-service/internal/message"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/i18n"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestTotals(t *testing.T) {
	fee, total := Totals(d("53.90"), model.DeliveryTypeDelivery, d("5.00"))
	assert.True(t, fee.Equal(d("5.00")))
	assert.Equal(t, "58.90", total.StringFixed(2))

	fee, total = Totals(d("53.90"), model.DeliveryTypePickup, d("5.00"))
	assert.True(t, fee.IsZero())
	assert.Equal(t, "53.90", total.StringFixed(2))
}

func TestChangeToBring(t *testing.T) {
	change, ok := ChangeToBring(d("58.90"), d("100"))
	require.True(t, ok)
	assert.Equal(t, "41.10", change.StringFixed(2))

	change, ok = ChangeToBring(d("58.90"), d("50"))
	require.True(t, ok)
	assert.True(t, change.IsZero())

	_, ok = ChangeToBring(d("58.90"), decimal.Zero)
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	store := &model.Store{IsOpen: true}
	offered := func(m string) bool { return merchant.IsOffered(store, m) }

	ok := Form{Name: "Ana", Phone: "5511", DeliveryType: model.DeliveryTypePickup, PaymentMethod: "pix"}
	assert.NoError(t, Validate(ok, false, store, offered))

	noAddress := ok
	noAddress.DeliveryType = model.DeliveryTypeDelivery
	err := Validate(noAddress, false, store, offered)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{FieldAddress}, verr.Fields)

	err = Validate(Form{DeliveryType: "drone", PaymentMethod: "bitcoin"}, true, &model.Store{}, offered)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{FieldStore, FieldCart, FieldName, FieldPhone, FieldDeliveryType, FieldPaymentMethod}, verr.Fields)
}

func sampleData() *MessageData {
	addr := "Rua A, 10"
	o := &model.Order{
		BaseModel:       model.BaseModel{ID: "ord-1"},
		CustomerName:    "Ana",
		CustomerPhone:   "5511987654321",
		CustomerAddress: &addr,
		DeliveryType:    model.DeliveryTypeDelivery,
		PaymentMethod:   merchant.PaymentCash,
		Items: model.OrderItems{
			{ProductName: "Coxinha", Quantity: 2, UnitPrice: d("12.50"), TotalPrice: d("25.00"), Notes: "sem cebola"},
			{ProductName: "Bolo", Quantity: 1, UnitPrice: d("28.90"), TotalPrice: d("28.90")},
		},
		Subtotal:    d("53.90"),
		DeliveryFee: d("5.00"),
		Total:       d("58.90"),
	}
	given, change := d("100"), d("41.10")
	return &MessageData{
		Order:         o,
		Store:         &model.Store{Name: "Empório"},
		PaymentLabel:  "Dinheiro",
		ChangeFor:     &given,
		ChangeToBring: &change,
	}
}

func newRenderer(maxLen int) *Renderer {
	return NewRenderer(i18n.New("pt-BR"), message.NewMoneyFormatter("pt-BR", "R$"), maxLen)
}

func TestRenderDefaultMessage(t *testing.T) {
	text := newRenderer(3500).Render("pt-BR", sampleData())

	want := strings.Join([]string{
		"*Novo pedido - Empório*",
		"",
		"*Cliente:* Ana",
		"*Telefone:* 5511987654321",
		"",
		"*Entrega*",
		"*Endereço:* Rua A, 10",
		"",
		"*Itens:*",
		"2x Coxinha - R$ 25,00",
		"   (sem cebola)",
		"1x Bolo - R$ 28,90",
		"",
		"Subtotal: R$ 53,90",
		"Taxa de entrega: R$ 5,00",
		"*Total: R$ 58,90*",
		"",
		"*Pagamento:* Dinheiro",
		"Troco para: R$ 100,00",
		"Levar troco: R$ 41,10",
	}, "\n")
	assert.Equal(t, want, text)
}

func TestRenderOmitsEmptyBlocks(t *testing.T) {
	data := sampleData()
	data.ChangeFor, data.ChangeToBring = nil, nil
	data.Order.DeliveryType = model.DeliveryTypePickup
	data.Order.CustomerAddress = nil
	data.CustomerNotes = "Tocar a campainha"
	link := "https://pay.example/abc"
	data.Store.PaymentLink = &link

	text := newRenderer(3500).Render("pt-BR", data)
	assert.NotContains(t, text, "Troco")
	assert.NotContains(t, text, "Taxa de entrega")
	assert.NotContains(t, text, "Endereço")
	assert.Contains(t, text, "*Retirada no local*")
	assert.Contains(t, text, "*Observações:* Tocar a campainha")
	assert.True(t, strings.HasSuffix(text, "*Link de pagamento:* https://pay.example/abc"))
}

func TestRenderStoreTemplate(t *testing.T) {
	data := sampleData()
	tpl := "Pedido {order_id} de {customer_name}: {total} troco {change_to_bring} {unknown}"
	data.Store.MessageTemplate = &tpl

	text := newRenderer(3500).Render("pt-BR", data)
	assert.Equal(t, "Pedido ord-1 de Ana: R$ 58,90 troco R$ 41,10 {unknown}", text)

	data.ChangeFor, data.ChangeToBring = nil, nil
	text = newRenderer(3500).Render("pt-BR", data)
	assert.Equal(t, "Pedido ord-1 de Ana: R$ 58,90 troco  {unknown}", text)
}

func TestRenderClamps(t *testing.T) {
	text := newRenderer(20).Render("pt-BR", sampleData())
	assert.Equal(t, 20, utf8.RuneCountInString(text))
}

func TestPaymentLabel(t *testing.T) {
	r := newRenderer(3500)
	assert.Equal(t, "Pix", r.PaymentLabel("pt-BR", "pix"))
	assert.Equal(t, "Credit card", r.PaymentLabel("en", "credit"))
	assert.Equal(t, "Vale refeição", r.PaymentLabel("pt-BR", "Vale refeição"))
}
