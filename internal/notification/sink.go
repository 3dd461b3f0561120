package notification

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/pkg/logger"
	"go.uber.org/zap"
)

// LogSink writes every alert to the service log.
type LogSink struct {
	logger logger.ZapLogger
}

func NewLogSink(log logger.ZapLogger) *LogSink {
	return &LogSink{logger: log}
}

func (s *LogSink) Notify(_ context.Context, a Alert) error {
	s.logger.Info("new order alert",
		zap.String("store_id", a.StoreID),
		zap.String("order_id", a.OrderID),
		zap.String("title", a.Title),
		zap.String("body", a.Body),
		zap.Bool("chime", a.Chime),
		zap.Bool("system", a.System),
	)
	return nil
}
