package handler

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-storefront-service/internal/auth"
	"github.com/fekuna/omnipos-storefront-service/internal/notification"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/rpc"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "storefront.v1.NotificationService"

type NotificationServiceServer interface {
	Subscribe(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetNewOrderCount(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	AcknowledgeNewOrders(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Unsubscribe(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	WatchAlerts(req *structpb.Struct, stream grpc.ServerStream) error
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*NotificationServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(ServiceName, "Subscribe", func(srv interface{}, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
			return srv.(NotificationServiceServer).Subscribe(ctx, req)
		}),
		rpc.Unary(ServiceName, "GetNewOrderCount", func(srv interface{}, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
			return srv.(NotificationServiceServer).GetNewOrderCount(ctx, req)
		}),
		rpc.Unary(ServiceName, "AcknowledgeNewOrders", func(srv interface{}, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
			return srv.(NotificationServiceServer).AcknowledgeNewOrders(ctx, req)
		}),
		rpc.Unary(ServiceName, "Unsubscribe", func(srv interface{}, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
			return srv.(NotificationServiceServer).Unsubscribe(ctx, req)
		}),
	},
	Streams: []grpc.StreamDesc{
		rpc.ServerStream("WatchAlerts", func(srv interface{}, req *structpb.Struct, stream grpc.ServerStream) error {
			return srv.(NotificationServiceServer).WatchAlerts(req, stream)
		}),
	},
}

type NotificationHandler struct {
	notifier *notification.Notifier
	logger   logger.ZapLogger
}

func NewNotificationHandler(n *notification.Notifier, log logger.ZapLogger) *NotificationHandler {
	return &NotificationHandler{
		notifier: n,
		logger:   log,
	}
}

func (h *NotificationHandler) Register(s *grpc.Server) {
	s.RegisterService(&ServiceDesc, h)
}

type SubscriptionRequest struct {
	SubscriptionID string `json:"subscription_id"`
}

type SubscriptionResponse struct {
	SubscriptionID string `json:"subscription_id"`
	StoreID        string `json:"store_id"`
	NewOrderCount  int    `json:"new_order_count"`
}

func (h *NotificationHandler) Subscribe(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	storeID := auth.GetStoreID(ctx)
	if storeID == "" {
		return nil, status.Error(codes.InvalidArgument, "store id is required")
	}
	sub := h.notifier.Subscribe(storeID)
	return rpc.Encode(&SubscriptionResponse{SubscriptionID: sub.ID, StoreID: storeID})
}

func (h *NotificationHandler) GetNewOrderCount(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sub, err := h.subscription(ctx, req)
	if err != nil {
		return nil, err
	}
	return rpc.Encode(&SubscriptionResponse{SubscriptionID: sub.ID, StoreID: sub.StoreID, NewOrderCount: sub.NewOrderCount()})
}

func (h *NotificationHandler) AcknowledgeNewOrders(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sub, err := h.subscription(ctx, req)
	if err != nil {
		return nil, err
	}
	sub.Acknowledge()
	return rpc.Encode(&SubscriptionResponse{SubscriptionID: sub.ID, StoreID: sub.StoreID})
}

func (h *NotificationHandler) Unsubscribe(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sub, err := h.subscription(ctx, req)
	if err != nil {
		return nil, err
	}
	h.notifier.Unsubscribe(sub.ID)
	return rpc.Encode(&SubscriptionResponse{SubscriptionID: sub.ID, StoreID: sub.StoreID})
}

// WatchAlerts streams alerts of an existing subscription until the client goes away.
func (h *NotificationHandler) WatchAlerts(req *structpb.Struct, stream grpc.ServerStream) error {
	ctx := stream.Context()
	sub, err := h.subscription(ctx, req)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case a, ok := <-sub.Alerts():
			if !ok {
				return nil
			}
			if err := rpc.Send(stream, a); err != nil {
				h.logger.Warn("failed to send alert", zap.String("subscription_id", sub.ID), zap.Error(err))
				return err
			}
		}
	}
}

func (h *NotificationHandler) subscription(ctx context.Context, req *structpb.Struct) (*notification.Subscription, error) {
	var in SubscriptionRequest
	if err := rpc.Decode(req, &in); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	sub, err := h.notifier.Get(auth.GetStoreID(ctx), in.SubscriptionID)
	if err != nil {
		if errors.Is(err, notification.ErrSubscriptionNotFound) {
			return nil, status.Error(codes.NotFound, err.Error())
		}
		return nil, status.Error(codes.Internal, err.Error())
	}
	return sub, nil
}
