package handler

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-storefront-service/internal/auth"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/order"
	"github.com/fekuna/omnipos-storefront-service/internal/order/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/cache"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/middleware"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/rpc"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "storefront.v1.OrderService"

type OrderServiceServer interface {
	GetOrder(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ListOrders(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	SearchOrders(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	UpdateOrderStatus(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*OrderServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(ServiceName, "GetOrder", func(srv interface{}, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
			return srv.(OrderServiceServer).GetOrder(ctx, req)
		}),
		rpc.Unary(ServiceName, "ListOrders", func(srv interface{}, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
			return srv.(OrderServiceServer).ListOrders(ctx, req)
		}),
		rpc.Unary(ServiceName, "SearchOrders", func(srv interface{}, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
			return srv.(OrderServiceServer).SearchOrders(ctx, req)
		}),
		rpc.Unary(ServiceName, "UpdateOrderStatus", func(srv interface{}, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
			return srv.(OrderServiceServer).UpdateOrderStatus(ctx, req)
		}),
	},
	Streams: []grpc.StreamDesc{},
}

type OrderHandler struct {
	uc     order.UseCase
	logger logger.ZapLogger
}

func NewOrderHandler(uc order.UseCase, log logger.ZapLogger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *OrderHandler) Register(s *grpc.Server) {
	s.RegisterService(&ServiceDesc, h)
}

type GetOrderRequest struct {
	ID string `json:"id"`
}

// GetOrderResponse carries the statuses the merchant may move the order to next.
type GetOrderResponse struct {
	model.Order
	AllowedTransitions []model.OrderStatus `json:"allowed_transitions"`
}

type ListOrdersRequest struct {
	Status      string `json:"status"`
	SearchQuery string `json:"search_query"`
	Page        int    `json:"page"`
	PageSize    int    `json:"page_size"`
}

type ListOrdersResponse struct {
	Orders []model.Order `json:"orders"`
	Total  int           `json:"total"`
}

type UpdateOrderStatusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func (h *OrderHandler) GetOrder(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in GetOrderRequest
	if err := rpc.Decode(req, &in); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	o, err := h.uc.GetOrder(ctx, auth.GetStoreID(ctx), in.ID)
	if err != nil {
		return nil, h.toStatus("get order", err)
	}

	next := order.AllowedTransitions(o.Status)
	if next == nil {
		next = []model.OrderStatus{}
	}
	return rpc.Encode(&GetOrderResponse{Order: *o, AllowedTransitions: next})
}

func (h *OrderHandler) ListOrders(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	in, err := decodeList(req)
	if err != nil {
		return nil, err
	}

	orders, total, err := h.uc.ListOrders(ctx, filters(ctx, in))
	if err != nil {
		return nil, h.toStatus("list orders", err)
	}
	return rpc.Encode(&ListOrdersResponse{Orders: orders, Total: total})
}

func (h *OrderHandler) SearchOrders(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	in, err := decodeList(req)
	if err != nil {
		return nil, err
	}

	orders, total, err := h.uc.SearchOrders(ctx, filters(ctx, in))
	if err != nil {
		return nil, h.toStatus("search orders", err)
	}
	return rpc.Encode(&ListOrdersResponse{Orders: orders, Total: total})
}

func (h *OrderHandler) UpdateOrderStatus(ctx context.Context, req *structpb.Struct) (res *structpb.Struct, err error) {
	defer func() {
		middleware.RecordOrderOperation("update_status", err == nil)
	}()

	var in UpdateOrderStatusRequest
	if err := rpc.Decode(req, &in); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	o, err := h.uc.UpdateOrderStatus(ctx, &dto.UpdateStatusInput{
		StoreID: auth.GetStoreID(ctx),
		OrderID: in.ID,
		Status:  model.OrderStatus(in.Status),
		UserID:  auth.GetUserID(ctx),
	})
	if err != nil {
		return nil, h.toStatus("update order status", err)
	}
	return rpc.Encode(o)
}

func decodeList(req *structpb.Struct) (*ListOrdersRequest, error) {
	var in ListOrdersRequest
	if err := rpc.Decode(req, &in); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if in.Status != "" && !model.OrderStatus(in.Status).Valid() {
		return nil, status.Error(codes.InvalidArgument, order.ErrInvalidStatus.Error())
	}
	return &in, nil
}

func filters(ctx context.Context, in *ListOrdersRequest) *dto.OrderFilters {
	return &dto.OrderFilters{
		StoreID:     auth.GetStoreID(ctx),
		Status:      model.OrderStatus(in.Status),
		SearchQuery: in.SearchQuery,
		Page:        in.Page,
		PageSize:    in.PageSize,
	}
}

func (h *OrderHandler) toStatus(op string, err error) error {
	switch {
	case errors.Is(err, order.ErrOrderNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, order.ErrInvalidStatus):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, order.ErrInvalidTransition):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, order.ErrStatusConflict):
		return status.Error(codes.Aborted, err.Error())
	case errors.Is(err, cache.ErrLockNotAcquired):
		return status.Error(codes.Unavailable, "order is busy, try again")
	}
	h.logger.Error("failed to "+op, zap.Error(err))
	return status.Error(codes.Internal, err.Error())
}
