package merchant

import (
	"strings"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

const (
	PaymentPix    = "pix"
	PaymentCredit = "credit"
	PaymentDebit  = "debit"
	PaymentCash   = "cash"
)

// BuiltinPayments is the fixed set every store can accept, in display order.
var BuiltinPayments = []string{PaymentPix, PaymentCredit, PaymentDebit, PaymentCash}

type PaymentMethod struct {
	// ID is the builtin key, or the custom payment name.
	ID     string `json:"id"`
	Custom bool   `json:"custom"`
}

// AvailablePaymentMethods lists the builtin methods followed by the store's
// custom ones, keeping only those in the store's accepted list. An empty
// accepted list offers everything. Custom payments are matched by name.
func AvailablePaymentMethods(store *model.Store) []PaymentMethod {
	accepted := make(map[string]bool, len(store.AcceptedPayments))
	for _, p := range store.AcceptedPayments {
		accepted[strings.TrimSpace(p)] = true
	}
	allowed := func(id string) bool {
		return len(accepted) == 0 || accepted[id]
	}

	out := []PaymentMethod{}
	for _, id := range BuiltinPayments {
		if allowed(id) {
			out = append(out, PaymentMethod{ID: id})
		}
	}
	seen := map[string]bool{}
	for _, cp := range store.CustomPayments {
		name := strings.TrimSpace(cp.Name)
		if name == "" || seen[name] || !allowed(name) {
			continue
		}
		seen[name] = true
		out = append(out, PaymentMethod{ID: name, Custom: true})
	}
	return out
}

// IsOffered reports whether method is one of the store's available methods.
func IsOffered(store *model.Store, method string) bool {
	for _, m := range AvailablePaymentMethods(store) {
		if m.ID == method {
			return true
		}
	}
	return false
}

// IsCashLike reports whether the customer may ask for change.
func IsCashLike(method string) bool {
	m := strings.ToLower(strings.TrimSpace(method))
	return m == PaymentCash || m == "dinheiro" || m == "money"
}
