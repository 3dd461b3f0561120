package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/inventory"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/order"
	"github.com/fekuna/omnipos-storefront-service/internal/order/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/search"
	"github.com/fekuna/omnipos-storefront-service/internal/realtime"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const indexName = "storefront-orders"

const indexMapping = `{
	"mappings": {
		"properties": {
			"store_id": { "type": "keyword" },
			"status": { "type": "keyword" },
			"customer_name": { "type": "text" },
			"customer_phone": { "type": "keyword" },
			"items": { "properties": { "product_name": { "type": "text" } } },
			"created_at": { "type": "date" }
		}
	}
}`

// Locker serializes status changes of one order.
type Locker interface {
	Lock(ctx context.Context, key string, ttl time.Duration, attempts int, backoff time.Duration) (func(), error)
}

// Index is the search backend. Nil disables indexing and search.
type Index interface {
	CreateIndex(ctx context.Context, index, mapping string) error
	Index(ctx context.Context, index, id string, doc interface{}) error
	Search(ctx context.Context, index string, query map[string]interface{}) (*search.SearchResponse, error)
}

// EnsureIndex creates the order index with its mapping. Run once at startup.
func EnsureIndex(ctx context.Context, es Index) error {
	return es.CreateIndex(ctx, indexName, indexMapping)
}

type orderUseCase struct {
	repo      order.Repository
	locker    Locker
	publisher realtime.Publisher
	es        Index
	logger    logger.ZapLogger
	now       func() time.Time
}

func NewOrderUseCase(repo order.Repository, locker Locker, publisher realtime.Publisher, es Index, log logger.ZapLogger) order.UseCase {
	if publisher == nil {
		publisher = realtime.NopPublisher{}
	}
	return &orderUseCase{
		repo:      repo,
		locker:    locker,
		publisher: publisher,
		es:        es,
		logger:    log,
		now:       time.Now,
	}
}

func (uc *orderUseCase) CreateOrder(ctx context.Context, input *dto.CreateOrderInput) (*model.Order, error) {
	if input.StoreID == "" || len(input.Items) == 0 || !input.DeliveryType.Valid() {
		return nil, fmt.Errorf("create order: incomplete payload")
	}

	now := uc.now()
	o := &model.Order{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		StoreID:         input.StoreID,
		CustomerID:      input.CustomerID,
		CustomerName:    input.CustomerName,
		CustomerPhone:   input.CustomerPhone,
		CustomerAddress: input.CustomerAddress,
		DeliveryType:    input.DeliveryType,
		PaymentMethod:   input.PaymentMethod,
		Items:           input.Items,
		Subtotal:        input.Subtotal,
		DeliveryFee:     input.DeliveryFee,
		Total:           input.Total,
		Notes:           input.Notes,
		Status:          model.OrderStatusPending,
	}

	if err := uc.repo.Create(ctx, o); err != nil {
		uc.logger.Error("failed to create order", zap.String("store_id", o.StoreID), zap.Error(err))
		return nil, err
	}

	uc.publish(ctx, realtime.NewOrderEvent(realtime.OrderCreated, o, ""))
	go uc.syncToElastic(context.Background(), *o)

	return o, nil
}

func (uc *orderUseCase) GetOrder(ctx context.Context, storeID, id string) (*model.Order, error) {
	o, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil || o.StoreID != storeID {
		return nil, order.ErrOrderNotFound
	}
	return o, nil
}

func (uc *orderUseCase) ListOrders(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error) {
	f := normalize(filters)
	return uc.repo.FindAllByStore(ctx, &f)
}

// SearchOrders goes to Elasticsearch when a query is given and falls back to
// the database listing when the index is missing or failing.
func (uc *orderUseCase) SearchOrders(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error) {
	f := normalize(filters)
	if f.SearchQuery == "" || uc.es == nil {
		return uc.repo.FindAllByStore(ctx, &f)
	}

	filter := []map[string]interface{}{
		{"term": map[string]interface{}{"store_id": f.StoreID}},
	}
	if f.Status != "" {
		filter = append(filter, map[string]interface{}{"term": map[string]interface{}{"status": string(f.Status)}})
	}
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": map[string]interface{}{
					"query_string": map[string]interface{}{
						"query":  fmt.Sprintf("*%s*", f.SearchQuery),
						"fields": []string{"customer_name^3", "customer_phone", "items.product_name"},
					},
				},
				"filter": filter,
			},
		},
		"sort": []map[string]interface{}{{"created_at": map[string]string{"order": "desc"}}},
		"from": (f.Page - 1) * f.PageSize,
		"size": f.PageSize,
	}

	res, err := uc.es.Search(ctx, indexName, q)
	if err == nil {
		orders := make([]model.Order, 0, len(res.Hits.Hits))
		for _, hit := range res.Hits.Hits {
			var o model.Order
			if err := json.Unmarshal(hit.Source, &o); err == nil {
				orders = append(orders, o)
			}
		}
		return orders, res.Hits.Total.Value, nil
	}
	uc.logger.Error("ES search failed, falling back to DB", zap.Error(err))
	return uc.repo.FindAllByStore(ctx, &f)
}

func (uc *orderUseCase) UpdateOrderStatus(ctx context.Context, input *dto.UpdateStatusInput) (*model.Order, error) {
	if !input.Status.Valid() {
		return nil, order.ErrInvalidStatus
	}

	// 0. Acquire Lock
	lockKey := fmt.Sprintf("lock:order:%s", input.OrderID)
	release, err := uc.locker.Lock(ctx, lockKey, 10*time.Second, 3, 100*time.Millisecond)
	if err != nil {
		uc.logger.Error("failed to acquire order lock", zap.String("order_id", input.OrderID), zap.Error(err))
		return nil, err
	}
	defer release()

	// 1. Read the current status
	o, err := uc.GetOrder(ctx, input.StoreID, input.OrderID)
	if err != nil {
		return nil, err
	}
	if o.Status == input.Status {
		return o, nil
	}
	if !order.CanTransition(o.Status, input.Status) {
		return nil, fmt.Errorf("%w: %s -> %s", order.ErrInvalidTransition, o.Status, input.Status)
	}

	// 2. Decide the stock effect from the previous status and apply it atomically
	from := o.Status
	dir := order.StockEffect(from, input.Status)
	now := uc.now()
	movements, err := uc.repo.TransitionStatus(ctx, &order.Transition{
		OrderID:     o.ID,
		StoreID:     o.StoreID,
		From:        from,
		To:          input.Status,
		Adjustments: inventory.Plan(o.Items, dir),
		At:          now,
	})
	if errors.Is(err, order.ErrStatusConflict) {
		// Another writer got there first; if it reached the same status this call is a no-op.
		latest, rerr := uc.GetOrder(ctx, input.StoreID, input.OrderID)
		if rerr == nil && latest.Status == input.Status {
			return latest, nil
		}
		return nil, err
	}
	if err != nil {
		uc.logger.Error("failed to transition order",
			zap.String("order_id", o.ID),
			zap.String("from", string(from)),
			zap.String("to", string(input.Status)),
			zap.Error(err),
		)
		return nil, err
	}

	uc.logger.Info("order status changed",
		zap.String("order_id", o.ID),
		zap.String("from", string(from)),
		zap.String("to", string(input.Status)),
		zap.String("stock", dir.String()),
		zap.Int("movements", len(movements)),
		zap.String("user_id", input.UserID),
	)

	o.Status = input.Status
	o.UpdatedAt = now
	uc.publish(ctx, realtime.NewOrderEvent(realtime.OrderStatusChanged, o, from))
	go uc.syncToElastic(context.Background(), *o)

	return o, nil
}

func (uc *orderUseCase) publish(ctx context.Context, e *realtime.OrderEvent) {
	if err := uc.publisher.Publish(ctx, e); err != nil {
		uc.logger.Error("failed to publish order event",
			zap.String("event_type", string(e.EventType)),
			zap.String("order_id", e.Order.ID),
			zap.Error(err),
		)
	}
}

func (uc *orderUseCase) syncToElastic(ctx context.Context, o model.Order) {
	if uc.es == nil {
		return
	}
	if err := uc.es.Index(ctx, indexName, o.ID, o); err != nil {
		uc.logger.Error("failed to index order", zap.String("order_id", o.ID), zap.Error(err))
	}
}

func normalize(filters *dto.OrderFilters) dto.OrderFilters {
	f := *filters
	f.SearchQuery = strings.TrimSpace(f.SearchQuery)
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize <= 0 || f.PageSize > 100 {
		f.PageSize = 20
	}
	return f
}
