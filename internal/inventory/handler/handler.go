package handler

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-storefront-service/internal/auth"
	"github.com/fekuna/omnipos-storefront-service/internal/inventory"
	"github.com/fekuna/omnipos-storefront-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/inventory/usecase"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/rpc"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "storefront.v1.InventoryService"

type InventoryServiceServer interface {
	ListStockMovements(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*InventoryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(ServiceName, "ListStockMovements", func(srv interface{}, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
			return srv.(InventoryServiceServer).ListStockMovements(ctx, req)
		}),
	},
	Streams: []grpc.StreamDesc{},
}

type InventoryHandler struct {
	uc     inventory.UseCase
	logger logger.ZapLogger
}

func NewInventoryHandler(uc inventory.UseCase, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *InventoryHandler) Register(s *grpc.Server) {
	s.RegisterService(&ServiceDesc, h)
}

type ListStockMovementsRequest struct {
	ProductID    string `json:"product_id"`
	OrderID      string `json:"order_id"`
	MovementType string `json:"movement_type"`
	Page         int    `json:"page"`
	PageSize     int    `json:"page_size"`
}

type ListStockMovementsResponse struct {
	Items []model.StockMovement `json:"items"`
	Total int                   `json:"total"`
}

func (h *InventoryHandler) ListStockMovements(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in ListStockMovementsRequest
	if err := rpc.Decode(req, &in); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	items, total, err := h.uc.ListMovements(ctx, &dto.MovementFilters{
		StoreID:      auth.GetStoreID(ctx),
		ProductID:    in.ProductID,
		OrderID:      in.OrderID,
		MovementType: in.MovementType,
		Page:         in.Page,
		PageSize:     in.PageSize,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrStoreRequired) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		h.logger.Error("failed to list stock movements", zap.Error(err))
		return nil, status.Error(codes.Internal, err.Error())
	}

	return rpc.Encode(&ListStockMovementsResponse{Items: items, Total: total})
}
