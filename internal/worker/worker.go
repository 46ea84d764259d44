package worker

import (
	"context"
	"log"

	"backoffice/internal/broker"
	"backoffice/internal/models"
	"backoffice/internal/service"
)

// AnalyticsWorker drops the cached analytics overview whenever an
// order event arrives, so the dashboard picks up fresh numbers on
// the next request instead of waiting out the cache TTL.
type AnalyticsWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	analytics    *service.AnalyticsService
}

// NewAnalyticsWorker creates a new analytics worker
func NewAnalyticsWorker(
	consumer *broker.Consumer,
	analytics *service.AnalyticsService,
) *AnalyticsWorker {
	eventHandler := broker.NewEventHandler()

	eventHandler.OnOrderPlaced(func(ctx context.Context, event *models.OrderPlacedEvent) error {
		log.Printf("Invalidating analytics cache after order %d", event.OrderID)
		return analytics.InvalidateOverview(ctx)
	})

	eventHandler.OnOrderStatusChanged(func(ctx context.Context, event *models.OrderStatusChangedEvent) error {
		log.Printf("Invalidating analytics cache after order %d -> %s", event.OrderID, event.NewStatus)
		return analytics.InvalidateOverview(ctx)
	})

	return &AnalyticsWorker{
		consumer:     consumer,
		eventHandler: eventHandler,
		analytics:    analytics,
	}
}

// Start starts the worker
func (w *AnalyticsWorker) Start(ctx context.Context) error {
	log.Println("Starting analytics worker...")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *AnalyticsWorker) Stop() error {
	log.Println("Stopping analytics worker...")
	return w.consumer.Close()
}
