package checkout

import (
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-storefront-service/internal/merchant"
	"github.com/fekuna/omnipos-storefront-service/internal/message"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/i18n"
	"github.com/shopspring/decimal"
)

// MessageData is everything the outbound order message can mention.
type MessageData struct {
	Order         *model.Order
	Store         *model.Store
	PaymentLabel  string
	ChangeFor     *decimal.Decimal
	ChangeToBring *decimal.Decimal
	CustomerNotes string
}

// Renderer builds the WhatsApp text for an order.
type Renderer struct {
	tr     *i18n.Translator
	money  *message.MoneyFormatter
	maxLen int
}

func NewRenderer(tr *i18n.Translator, money *message.MoneyFormatter, maxLen int) *Renderer {
	return &Renderer{tr: tr, money: money, maxLen: maxLen}
}

// PaymentLabel localizes builtin methods; custom methods keep their name.
func (r *Renderer) PaymentLabel(lang, method string) string {
	switch method {
	case merchant.PaymentPix:
		return r.tr.T(lang, i18n.PaymentPix, nil)
	case merchant.PaymentCredit:
		return r.tr.T(lang, i18n.PaymentCredit, nil)
	case merchant.PaymentDebit:
		return r.tr.T(lang, i18n.PaymentDebit, nil)
	case merchant.PaymentCash:
		return r.tr.T(lang, i18n.PaymentCash, nil)
	}
	return method
}

// Vars exposes the order to merchant templates.
func (r *Renderer) Vars(d *MessageData) message.Vars {
	o := d.Order
	v := message.Vars{
		"order_id":        o.ID,
		"store_name":      d.Store.Name,
		"customer_name":   o.CustomerName,
		"customer_phone":  o.CustomerPhone,
		"address":         deref(o.CustomerAddress),
		"delivery_type":   string(o.DeliveryType),
		"items":           r.itemLines(o.Items),
		"subtotal":        r.money.Format(o.Subtotal),
		"delivery_fee":    r.money.Format(o.DeliveryFee),
		"total":           r.money.Format(o.Total),
		"payment_method":  d.PaymentLabel,
		"change_for":      "",
		"change_to_bring": "",
		"payment_link":    deref(d.Store.PaymentLink),
		"notes":           d.CustomerNotes,
	}
	if d.ChangeFor != nil && d.ChangeToBring != nil {
		v["change_for"] = r.money.Format(*d.ChangeFor)
		v["change_to_bring"] = r.money.Format(*d.ChangeToBring)
	}
	return v
}

// Render uses the store template when present, otherwise the default layout.
// The result is clamped to the configured maximum length.
func (r *Renderer) Render(lang string, d *MessageData) string {
	vars := r.Vars(d)
	var text string
	if tpl := strings.TrimSpace(deref(d.Store.MessageTemplate)); tpl != "" {
		text = message.ApplyTemplate(tpl, vars)
	} else {
		text = r.defaultMessage(lang, d, vars)
	}
	return message.ClampText(text, r.maxLen)
}

func (r *Renderer) defaultMessage(lang string, d *MessageData, vars message.Vars) string {
	t := func(id string, value string) string {
		return r.tr.T(lang, id, map[string]interface{}{"Value": value})
	}
	o := d.Order

	header := r.tr.T(lang, i18n.OrderHeader, map[string]interface{}{"Store": d.Store.Name})

	customer := lines(
		t(i18n.OrderCustomer, o.CustomerName),
		t(i18n.OrderPhone, o.CustomerPhone),
	)

	var delivery string
	if o.DeliveryType == model.DeliveryTypeDelivery {
		delivery = lines(r.tr.T(lang, i18n.OrderDelivery, nil), t(i18n.OrderAddress, vars["address"]))
	} else {
		delivery = r.tr.T(lang, i18n.OrderPickup, nil)
	}

	items := lines(r.tr.T(lang, i18n.OrderItems, nil), vars["items"])

	totals := []string{t(i18n.OrderSubtotal, vars["subtotal"])}
	if o.DeliveryType == model.DeliveryTypeDelivery {
		totals = append(totals, t(i18n.OrderDeliveryFee, vars["delivery_fee"]))
	}
	totals = append(totals, t(i18n.OrderTotal, vars["total"]))

	payment := []string{t(i18n.OrderPayment, vars["payment_method"])}
	if vars["change_for"] != "" {
		payment = append(payment,
			t(i18n.OrderChangeFor, vars["change_for"]),
			t(i18n.OrderChangeBring, vars["change_to_bring"]),
		)
	}

	var notes, link string
	if vars["notes"] != "" {
		notes = t(i18n.OrderNotes, vars["notes"])
	}
	if vars["payment_link"] != "" {
		link = t(i18n.OrderPaymentLink, vars["payment_link"])
	}

	return message.JoinBlocks(header, customer, delivery, items, lines(totals...), lines(payment...), notes, link)
}

func (r *Renderer) itemLines(items model.OrderItems) string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		line := fmt.Sprintf("%dx %s - %s", it.Quantity, it.ProductName, r.money.Format(it.TotalPrice))
		if it.Notes != "" {
			line += "\n   (" + it.Notes + ")"
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// ChangeNote is the cash change line appended to the persisted order notes.
func (r *Renderer) ChangeNote(lang string, given, change decimal.Decimal) string {
	return r.tr.T(lang, i18n.OrderNotesChange, map[string]interface{}{
		"Given":  r.money.Format(given),
		"Change": r.money.Format(change),
	})
}

func lines(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
