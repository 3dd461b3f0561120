package cart

import (
	"errors"
	"strings"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/shopspring/decimal"
)

var ErrStockExhausted = errors.New("cart: stock exhausted")

// LineKey identifies a line item: the same product with different notes is a
// different line.
type LineKey struct {
	ProductID string
	Notes     string
}

func NewLineKey(productID, notes string) LineKey {
	return LineKey{ProductID: productID, Notes: normalizeNotes(notes)}
}

func normalizeNotes(notes string) string {
	return strings.TrimSpace(notes)
}

// ProductSnapshot is the part of a product the cart keeps between requests.
type ProductSnapshot struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	MinQuantity   int             `json:"min_quantity"`
	StockEnabled  bool            `json:"stock_enabled"`
	StockQuantity *int            `json:"stock_quantity"`
}

func SnapshotOf(p *model.Product) ProductSnapshot {
	var stock *int
	if p.StockQuantity != nil {
		s := *p.StockQuantity
		stock = &s
	}
	return ProductSnapshot{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		MinQuantity:   p.MinQty(),
		StockEnabled:  p.StockEnabled,
		StockQuantity: stock,
	}
}

func (p ProductSnapshot) minQty() int {
	if p.MinQuantity < 1 {
		return 1
	}
	return p.MinQuantity
}

func (p ProductSnapshot) stockLimited() bool {
	return p.StockEnabled && p.StockQuantity != nil
}

type LineItem struct {
	Product  ProductSnapshot `json:"product"`
	Quantity int             `json:"quantity"`
	Notes    string          `json:"notes,omitempty"`
}

func (l LineItem) Key() LineKey {
	return NewLineKey(l.Product.ID, l.Notes)
}

func (l LineItem) Total() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type NoticeCode string

const (
	NoticeAdded           NoticeCode = "added"
	NoticeStockExhausted  NoticeCode = "stock_exhausted"
	NoticePartialAdd      NoticeCode = "partial_add"
	NoticeQuantityLimited NoticeCode = "quantity_limited"
)

// Notice is the user-visible signal produced by a mutation.
type Notice struct {
	Code        NoticeCode
	ProductID   string
	ProductName string
	// Available is the quantity that could actually be used (partial add / limit).
	Available int
}

// Cart is an ordered list of line items. It is not safe for concurrent use;
// callers serialize access per session.
type Cart struct {
	items []LineItem
}

// New builds a cart from persisted lines, dropping empty lines and merging
// duplicates by key.
func New(items []LineItem) *Cart {
	c := &Cart{}
	for _, it := range items {
		if it.Quantity <= 0 || it.Product.ID == "" {
			continue
		}
		it.Notes = normalizeNotes(it.Notes)
		if idx := c.indexOf(it.Key()); idx >= 0 {
			c.items[idx].Quantity += it.Quantity
			continue
		}
		c.items = append(c.items, it)
	}
	return c
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Len() int { return len(c.items) }

func (c *Cart) IsEmpty() bool { return len(c.items) == 0 }

// Subtotal is recomputed from the lines on every call.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(it.Total())
	}
	return total
}

func (c *Cart) TotalItems() int {
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// QuantityOf sums every line of productID, whatever the notes.
func (c *Cart) QuantityOf(productID string) int {
	return c.quantityOfExcept(productID, -1)
}

func (c *Cart) quantityOfExcept(productID string, skip int) int {
	n := 0
	for i, it := range c.items {
		if i != skip && it.Product.ID == productID {
			n += it.Quantity
		}
	}
	return n
}

func (c *Cart) indexOf(key LineKey) int {
	for i, it := range c.items {
		if it.Key() == key {
			return i
		}
	}
	return -1
}

// ProductIDs lists each product in the cart once, in line order.
func (c *Cart) ProductIDs() []string {
	seen := make(map[string]bool, len(c.items))
	ids := make([]string, 0, len(c.items))
	for _, it := range c.items {
		if !seen[it.Product.ID] {
			seen[it.Product.ID] = true
			ids = append(ids, it.Product.ID)
		}
	}
	return ids
}

// Refresh replaces the stored snapshot of every line of p with the latest one.
func (c *Cart) Refresh(p ProductSnapshot) {
	for i := range c.items {
		if c.items[i].Product.ID == p.ID {
			c.items[i].Product = p
		}
	}
}

// AddItem adds quantity units of p (0 means the product minimum). When stock
// control caps the add, only the remaining headroom is added and a partial_add
// notice is returned; with no headroom at all the add is rejected with
// ErrStockExhausted and the cart is unchanged.
func (c *Cart) AddItem(p ProductSnapshot, quantity int, notes string) (Notice, error) {
	step := p.minQty()
	if quantity <= 0 {
		quantity = step
	}
	quantity = roundToMultiple(quantity, step)

	notice := Notice{Code: NoticeAdded, ProductID: p.ID, ProductName: p.Name, Available: quantity}

	if p.stockLimited() {
		current := c.QuantityOf(p.ID)
		stock := *p.StockQuantity
		if current+quantity > stock {
			headroom := floorToMultiple(stock-current, step)
			if headroom <= 0 {
				return Notice{Code: NoticeStockExhausted, ProductID: p.ID, ProductName: p.Name}, ErrStockExhausted
			}
			quantity = headroom
			notice = Notice{Code: NoticePartialAdd, ProductID: p.ID, ProductName: p.Name, Available: headroom}
		}
	}

	c.Refresh(p)
	key := NewLineKey(p.ID, notes)
	if idx := c.indexOf(key); idx >= 0 {
		c.items[idx].Quantity += quantity
	} else {
		c.items = append(c.items, LineItem{Product: p, Quantity: quantity, Notes: key.Notes})
	}
	return notice, nil
}

// RemoveItem deletes the matching line. Missing lines are ignored.
func (c *Cart) RemoveItem(productID, notes string) {
	if idx := c.indexOf(NewLineKey(productID, notes)); idx >= 0 {
		c.items = append(c.items[:idx], c.items[idx+1:]...)
	}
}

// UpdateQuantity sets the quantity of one line. A quantity <= 0 removes it.
// The value is rounded to the nearest multiple of the product minimum and then
// capped by the stock left after the product's other lines; a cap produces a
// quantity_limited notice. p, when non-nil, is the current product state used
// for the cap; otherwise the stored snapshot is used.
func (c *Cart) UpdateQuantity(productID string, quantity int, notes string, p *ProductSnapshot) *Notice {
	idx := c.indexOf(NewLineKey(productID, notes))
	if idx < 0 {
		return nil
	}
	if quantity <= 0 {
		c.items = append(c.items[:idx], c.items[idx+1:]...)
		return nil
	}
	if p != nil {
		c.Refresh(*p)
	}
	line := c.items[idx]
	step := line.Product.minQty()
	quantity = roundToMultiple(quantity, step)

	var notice *Notice
	if line.Product.stockLimited() {
		ceiling := *line.Product.StockQuantity - c.quantityOfExcept(productID, idx)
		if quantity > ceiling {
			limited := floorToMultiple(ceiling, step)
			if limited < step {
				limited = step
			}
			quantity = limited
			notice = &Notice{Code: NoticeQuantityLimited, ProductID: productID, ProductName: line.Product.Name, Available: limited}
		}
	}

	c.items[idx].Quantity = quantity
	return notice
}

// UpdateNotes replaces the notes of the first line of productID. If that makes
// it collide with another line, the two are merged.
func (c *Cart) UpdateNotes(productID, notes string) {
	idx := -1
	for i, it := range c.items {
		if it.Product.ID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	c.items[idx].Notes = normalizeNotes(notes)

	key := c.items[idx].Key()
	for j := range c.items {
		if j != idx && c.items[j].Key() == key {
			c.items[idx].Quantity += c.items[j].Quantity
			c.items = append(c.items[:j], c.items[j+1:]...)
			return
		}
	}
}

// Deduct takes quantity units off one line and drops the line once nothing
// is left. It reports whether the line was found.
func (c *Cart) Deduct(productID, notes string, quantity int) bool {
	idx := c.indexOf(NewLineKey(productID, notes))
	if idx < 0 {
		return false
	}
	if c.items[idx].Quantity <= quantity {
		c.items = append(c.items[:idx], c.items[idx+1:]...)
		return true
	}
	c.items[idx].Quantity -= quantity
	return true
}

func (c *Cart) Clear() {
	c.items = nil
}

// roundToMultiple rounds q to the nearest multiple of m (ties go up), never
// below one multiple.
func roundToMultiple(q, m int) int {
	if m <= 1 {
		if q < 1 {
			return 1
		}
		return q
	}
	n := (q + m/2) / m
	if n < 1 {
		n = 1
	}
	return n * m
}

func floorToMultiple(q, m int) int {
	if q <= 0 {
		return 0
	}
	if m <= 1 {
		return q
	}
	return (q / m) * m
}
