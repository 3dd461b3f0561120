package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/inventory"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/order"
	"github.com/fekuna/omnipos-storefront-service/internal/order/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/search"
	"github.com/fekuna/omnipos-storefront-service/internal/realtime"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stock struct {
	qty       int
	available bool
}

// memRepo mimics the conditional update of the Postgres repository.
type memRepo struct {
	mu          sync.Mutex
	orders      map[string]model.Order
	stock       map[string]*stock
	transitions int
	failStock   bool
	forceStale  bool
}

func newMemRepo() *memRepo {
	return &memRepo{orders: map[string]model.Order{}, stock: map[string]*stock{}}
}

func (m *memRepo) Create(_ context.Context, o *model.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[o.ID] = *o
	return nil
}

func (m *memRepo) FindByID(_ context.Context, id string) (*model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (m *memRepo) FindAllByStore(_ context.Context, f *dto.OrderFilters) ([]model.Order, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Order{}
	for _, o := range m.orders {
		if o.StoreID == f.StoreID {
			out = append(out, o)
		}
	}
	return out, len(out), nil
}

func (m *memRepo) TransitionStatus(_ context.Context, t *order.Transition) ([]model.StockMovement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o := m.orders[t.OrderID]
	if m.forceStale {
		// someone else already moved it to the target
		o.Status = t.To
		m.orders[t.OrderID] = o
		return nil, order.ErrStatusConflict
	}
	if o.Status != t.From {
		return nil, order.ErrStatusConflict
	}
	if m.failStock && len(t.Adjustments) > 0 {
		return nil, order.ErrStockUpdateFailed
	}
	movements := []model.StockMovement{}
	for _, adj := range t.Adjustments {
		s, ok := m.stock[adj.ProductID]
		if !ok {
			continue
		}
		before := s.qty
		s.qty, s.available = inventory.Apply(s.qty, adj)
		movements = append(movements, model.StockMovement{ProductID: adj.ProductID, QuantityBefore: before, QuantityAfter: s.qty})
	}
	o.Status = t.To
	o.UpdatedAt = t.At
	m.orders[t.OrderID] = o
	m.transitions++
	return movements, nil
}

func (m *memRepo) stockOf(id string) stock {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.stock[id]
}

type noopLocker struct{}

func (noopLocker) Lock(context.Context, string, time.Duration, int, time.Duration) (func(), error) {
	return func() {}, nil
}

type capturePublisher struct {
	mu     sync.Mutex
	events []*realtime.OrderEvent
}

func (c *capturePublisher) Publish(_ context.Context, e *realtime.OrderEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
	return nil
}

func (c *capturePublisher) Close() error { return nil }

func (c *capturePublisher) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events)
}

func setup(t *testing.T) (*memRepo, *capturePublisher, order.UseCase, *model.Order) {
	t.Helper()
	repo := newMemRepo()
	repo.stock["p1"] = &stock{qty: 10, available: true}
	repo.stock["p2"] = &stock{qty: 2, available: true}
	pub := &capturePublisher{}
	uc := NewOrderUseCase(repo, noopLocker{}, pub, nil, logger.NewNop())

	o, err := uc.CreateOrder(context.Background(), &dto.CreateOrderInput{
		StoreID:       "s1",
		CustomerName:  "Ana",
		CustomerPhone: "5511999990000",
		DeliveryType:  model.DeliveryTypePickup,
		PaymentMethod: "pix",
		Items: model.OrderItems{
			{ProductID: "p1", ProductName: "Coxinha", Quantity: 2, Notes: "frango"},
			{ProductID: "p1", ProductName: "Coxinha", Quantity: 1, Notes: "carne"},
			{ProductID: "p2", ProductName: "Bolo", Quantity: 5},
			{ProductID: "p3", ProductName: "Suco", Quantity: 1},
		},
		Subtotal: decimal.RequireFromString("53.90"),
		Total:    decimal.RequireFromString("53.90"),
	})
	require.NoError(t, err)
	return repo, pub, uc, o
}

func update(uc order.UseCase, o *model.Order, s model.OrderStatus) (*model.Order, error) {
	return uc.UpdateOrderStatus(context.Background(), &dto.UpdateStatusInput{StoreID: o.StoreID, OrderID: o.ID, Status: s})
}

func TestCreateOrder(t *testing.T) {
	_, pub, _, o := setup(t)
	assert.Equal(t, model.OrderStatusPending, o.Status)
	assert.NotEmpty(t, o.ID)
	require.Equal(t, 1, pub.count())
	assert.Equal(t, realtime.OrderCreated, pub.events[0].EventType)
	assert.Equal(t, "s1", pub.events[0].StoreID)
}

func TestConfirmDecrementsExactlyOnce(t *testing.T) {
	repo, pub, uc, o := setup(t)

	got, err := update(uc, o, model.OrderStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusConfirmed, got.Status)
	assert.Equal(t, stock{qty: 7, available: true}, repo.stockOf("p1"))
	assert.Equal(t, stock{qty: 0, available: false}, repo.stockOf("p2"), "floored at zero")

	// same status again: no-op
	got, err = update(uc, o, model.OrderStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusConfirmed, got.Status)
	assert.Equal(t, 7, repo.stockOf("p1").qty)
	assert.Equal(t, 1, repo.transitions)
	assert.Equal(t, 2, pub.count())
	assert.Equal(t, model.OrderStatusPending, pub.events[1].PreviousStatus)
}

func TestCancelAfterConfirmRestores(t *testing.T) {
	repo, _, uc, o := setup(t)

	_, err := update(uc, o, model.OrderStatusConfirmed)
	require.NoError(t, err)
	_, err = update(uc, o, model.OrderStatusPreparing)
	require.NoError(t, err)
	assert.Equal(t, 7, repo.stockOf("p1").qty)

	_, err = update(uc, o, model.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, stock{qty: 10, available: true}, repo.stockOf("p1"))
	assert.Equal(t, stock{qty: 5, available: true}, repo.stockOf("p2"))

	// terminal
	_, err = update(uc, o, model.OrderStatusConfirmed)
	assert.ErrorIs(t, err, order.ErrInvalidTransition)
	assert.Equal(t, 10, repo.stockOf("p1").qty)
}

func TestCancelPendingLeavesStock(t *testing.T) {
	repo, _, uc, o := setup(t)

	_, err := update(uc, o, model.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, stock{qty: 10, available: true}, repo.stockOf("p1"))
	assert.Equal(t, stock{qty: 2, available: true}, repo.stockOf("p2"))
}

func TestInvalidRequests(t *testing.T) {
	_, _, uc, o := setup(t)

	_, err := update(uc, o, model.OrderStatusReady)
	assert.ErrorIs(t, err, order.ErrInvalidTransition)

	_, err = update(uc, o, "shipped")
	assert.ErrorIs(t, err, order.ErrInvalidStatus)

	_, err = uc.UpdateOrderStatus(context.Background(), &dto.UpdateStatusInput{StoreID: "other", OrderID: o.ID, Status: model.OrderStatusConfirmed})
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

func TestStockFailureAbortsTransition(t *testing.T) {
	repo, pub, uc, o := setup(t)
	repo.failStock = true

	_, err := update(uc, o, model.OrderStatusConfirmed)
	assert.ErrorIs(t, err, order.ErrStockUpdateFailed)

	got, err := uc.GetOrder(context.Background(), "s1", o.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, got.Status)
	assert.Equal(t, 10, repo.stockOf("p1").qty)
	assert.Equal(t, 1, pub.count())
}

func TestConflictWithSameTargetIsNoop(t *testing.T) {
	repo, _, uc, o := setup(t)
	repo.forceStale = true

	got, err := update(uc, o, model.OrderStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusConfirmed, got.Status)
}

func TestConcurrentConfirmDecrementsOnce(t *testing.T) {
	repo, _, uc, o := setup(t)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := update(uc, o, model.OrderStatusConfirmed)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, 7, repo.stockOf("p1").qty)
	assert.Equal(t, 1, repo.transitions)
}

type fakeIndex struct {
	created   []string
	searchErr error
	hits      []model.Order
	indexed   chan string
}

func (f *fakeIndex) CreateIndex(_ context.Context, index, _ string) error {
	f.created = append(f.created, index)
	return nil
}

func (f *fakeIndex) Index(_ context.Context, _, id string, _ interface{}) error {
	f.indexed <- id
	return nil
}

func (f *fakeIndex) Search(_ context.Context, _ string, _ map[string]interface{}) (*search.SearchResponse, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	res := &search.SearchResponse{}
	res.Hits.Total.Value = len(f.hits)
	for _, o := range f.hits {
		src, _ := json.Marshal(o)
		res.Hits.Hits = append(res.Hits.Hits, struct {
			ID     string          `json:"_id"`
			Source json.RawMessage `json:"_source"`
		}{ID: o.ID, Source: src})
	}
	return res, nil
}

func TestSearchOrders(t *testing.T) {
	repo := newMemRepo()
	repo.orders["db-1"] = model.Order{BaseModel: model.BaseModel{ID: "db-1"}, StoreID: "s1"}
	idx := &fakeIndex{
		hits:    []model.Order{{BaseModel: model.BaseModel{ID: "es-1"}, StoreID: "s1", CustomerName: "Ana"}},
		indexed: make(chan string, 1),
	}
	uc := NewOrderUseCase(repo, noopLocker{}, nil, idx, logger.NewNop())
	ctx := context.Background()

	orders, total, err := uc.SearchOrders(ctx, &dto.OrderFilters{StoreID: "s1", SearchQuery: "ana"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "es-1", orders[0].ID)

	idx.searchErr = errors.New("cluster red")
	orders, _, err = uc.SearchOrders(ctx, &dto.OrderFilters{StoreID: "s1", SearchQuery: "ana"})
	require.NoError(t, err)
	assert.Equal(t, "db-1", orders[0].ID)

	// new orders are indexed in the background
	o, err := uc.CreateOrder(ctx, &dto.CreateOrderInput{
		StoreID:      "s1",
		DeliveryType: model.DeliveryTypePickup,
		Items:        model.OrderItems{{ProductID: "p1", Quantity: 1}},
	})
	require.NoError(t, err)
	select {
	case id := <-idx.indexed:
		assert.Equal(t, o.ID, id)
	case <-time.After(time.Second):
		t.Fatal("order was not indexed")
	}
	// the index is created at startup, not per document
	assert.Empty(t, idx.created)

	require.NoError(t, EnsureIndex(ctx, idx))
	assert.Equal(t, []string{indexName}, idx.created)
}
