package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/cart"
	"github.com/fekuna/omnipos-storefront-service/internal/cart/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/i18n"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/internal/product"
	"go.uber.org/zap"
)

var ErrProductNotFound = errors.New("product not found")

// Locker serializes mutations of one session's cart.
type Locker interface {
	Lock(ctx context.Context, key string, ttl time.Duration, attempts int, backoff time.Duration) (func(), error)
}

type cartUseCase struct {
	repo     cart.Repository
	products product.Repository
	locker   Locker
	tr       *i18n.Translator
	logger   logger.ZapLogger
}

func NewCartUseCase(repo cart.Repository, products product.Repository, locker Locker, tr *i18n.Translator, log logger.ZapLogger) cart.UseCase {
	return &cartUseCase{
		repo:     repo,
		products: products,
		locker:   locker,
		tr:       tr,
		logger:   log,
	}
}

func (uc *cartUseCase) GetCart(ctx context.Context, storeID, sessionID string) (*dto.CartView, error) {
	c, err := uc.load(ctx, storeID, sessionID)
	if err != nil {
		return nil, err
	}
	uc.refreshSnapshots(ctx, storeID, c)
	return uc.view(c, nil, ""), nil
}

func (uc *cartUseCase) AddItem(ctx context.Context, input *dto.AddItemInput) (*dto.CartView, error) {
	var (
		c        *cart.Cart
		notice   cart.Notice
		rejected bool
	)
	err := uc.mutate(ctx, input.StoreID, input.SessionID, func(loaded *cart.Cart) (bool, error) {
		c = loaded
		// Always clamp against the current stock, never the snapshot in the cart.
		snap, err := uc.snapshot(ctx, input.StoreID, input.ProductID)
		if err != nil {
			return false, err
		}

		notice, err = c.AddItem(snap, input.Quantity, input.Notes)
		if errors.Is(err, cart.ErrStockExhausted) {
			rejected = true
			return false, nil
		}
		return err == nil, err
	})
	if err != nil {
		return nil, err
	}

	v := uc.view(c, []cart.Notice{notice}, input.Lang)
	v.Rejected = rejected
	return v, nil
}

func (uc *cartUseCase) RemoveItem(ctx context.Context, input *dto.LineInput) (*dto.CartView, error) {
	var c *cart.Cart
	err := uc.mutate(ctx, input.StoreID, input.SessionID, func(loaded *cart.Cart) (bool, error) {
		c = loaded
		c.RemoveItem(input.ProductID, input.Notes)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return uc.view(c, nil, input.Lang), nil
}

func (uc *cartUseCase) UpdateQuantity(ctx context.Context, input *dto.UpdateQuantityInput) (*dto.CartView, error) {
	var (
		c       *cart.Cart
		notices []cart.Notice
	)
	err := uc.mutate(ctx, input.StoreID, input.SessionID, func(loaded *cart.Cart) (bool, error) {
		c = loaded
		var fresh *cart.ProductSnapshot
		if input.Quantity > 0 {
			snap, err := uc.snapshot(ctx, input.StoreID, input.ProductID)
			if err != nil {
				return false, err
			}
			fresh = &snap
		}
		if n := c.UpdateQuantity(input.ProductID, input.Quantity, input.Notes, fresh); n != nil {
			notices = append(notices, *n)
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return uc.view(c, notices, input.Lang), nil
}

func (uc *cartUseCase) UpdateNotes(ctx context.Context, input *dto.UpdateNotesInput) (*dto.CartView, error) {
	var c *cart.Cart
	err := uc.mutate(ctx, input.StoreID, input.SessionID, func(loaded *cart.Cart) (bool, error) {
		c = loaded
		c.UpdateNotes(input.ProductID, input.NewNotes)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return uc.view(c, nil, input.Lang), nil
}

func (uc *cartUseCase) ClearCart(ctx context.Context, storeID, sessionID string) error {
	return uc.mutate(ctx, storeID, sessionID, func(c *cart.Cart) (bool, error) {
		c.Clear()
		return true, nil
	})
}

func (uc *cartUseCase) RemoveOrdered(ctx context.Context, storeID, sessionID string, lines []dto.LineView) error {
	return uc.mutate(ctx, storeID, sessionID, func(c *cart.Cart) (bool, error) {
		changed := false
		for _, l := range lines {
			if c.Deduct(l.ProductID, l.Notes, l.Quantity) {
				changed = true
			}
		}
		return changed, nil
	})
}

// mutate runs fn on the session's cart under the session lock and persists
// the result when fn reports a change.
func (uc *cartUseCase) mutate(ctx context.Context, storeID, sessionID string, fn func(*cart.Cart) (bool, error)) error {
	lockKey := fmt.Sprintf("lock:cart:%s:%s", storeID, sessionID)
	release, err := uc.locker.Lock(ctx, lockKey, 5*time.Second, 3, 100*time.Millisecond)
	if err != nil {
		uc.logger.Error("failed to acquire cart lock", zap.String("session_id", sessionID), zap.Error(err))
		return err
	}
	defer release()

	c, err := uc.load(ctx, storeID, sessionID)
	if err != nil {
		return err
	}

	changed, err := fn(c)
	if err != nil || !changed {
		return err
	}

	if err := uc.repo.Save(ctx, storeID, sessionID, c.Items()); err != nil {
		uc.logger.Error("failed to persist cart", zap.String("session_id", sessionID), zap.Error(err))
		return err
	}
	return nil
}

func (uc *cartUseCase) load(ctx context.Context, storeID, sessionID string) (*cart.Cart, error) {
	items, err := uc.repo.Load(ctx, storeID, sessionID)
	if err != nil {
		return nil, err
	}
	return cart.New(items), nil
}

// refreshSnapshots reprices every line from the catalog in one query. Lines
// whose product is gone or inactive keep their stored snapshot.
func (uc *cartUseCase) refreshSnapshots(ctx context.Context, storeID string, c *cart.Cart) {
	ids := c.ProductIDs()
	if len(ids) == 0 {
		return
	}
	products, err := uc.products.FindByIDs(ctx, ids)
	if err != nil {
		uc.logger.Warn("product refresh failed, using cart snapshots", zap.String("store_id", storeID), zap.Error(err))
		return
	}
	for i := range products {
		p := &products[i]
		if p.StoreID != storeID || !p.IsActive {
			continue
		}
		c.Refresh(cart.SnapshotOf(p))
	}
}

func (uc *cartUseCase) snapshot(ctx context.Context, storeID, productID string) (cart.ProductSnapshot, error) {
	p, err := uc.products.FindByID(ctx, productID)
	if err != nil {
		return cart.ProductSnapshot{}, err
	}
	if p == nil || p.StoreID != storeID || !p.IsActive {
		return cart.ProductSnapshot{}, ErrProductNotFound
	}
	return cart.SnapshotOf(p), nil
}

func (uc *cartUseCase) view(c *cart.Cart, notices []cart.Notice, lang string) *dto.CartView {
	items := c.Items()
	v := &dto.CartView{
		Items:      make([]dto.LineView, 0, len(items)),
		Subtotal:   c.Subtotal(),
		TotalItems: c.TotalItems(),
	}
	for _, it := range items {
		v.Items = append(v.Items, dto.LineView{
			ProductID:   it.Product.ID,
			ProductName: it.Product.Name,
			UnitPrice:   it.Product.Price,
			Quantity:    it.Quantity,
			MinQuantity: it.Product.MinQuantity,
			Notes:       it.Notes,
			Total:       it.Total(),
		})
	}
	for _, n := range notices {
		v.Notices = append(v.Notices, dto.Notice{
			Code:      string(n.Code),
			ProductID: n.ProductID,
			Available: n.Available,
			Message:   uc.noticeMessage(n, lang),
		})
	}
	return v
}

func (uc *cartUseCase) noticeMessage(n cart.Notice, lang string) string {
	data := map[string]interface{}{"Name": n.ProductName, "Available": n.Available}
	switch n.Code {
	case cart.NoticeStockExhausted:
		return uc.tr.T(lang, i18n.CartStockExhausted, data)
	case cart.NoticePartialAdd:
		return uc.tr.T(lang, i18n.CartPartialAdd, data)
	case cart.NoticeQuantityLimited:
		return uc.tr.T(lang, i18n.CartQuantityLimited, data)
	default:
		return uc.tr.T(lang, i18n.CartAdded, data)
	}
}
