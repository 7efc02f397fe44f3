// Package inventory следит за остатками товаров.
package inventory

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/fitness-manager/internal/lib/sl"
	"github.com/magabrotheeeer/fitness-manager/internal/models"
)

// Publisher публикует доменные события.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, event any) error
}

// Notifier публикует событие product.low_stock, когда остаток товара
// после сохранения не превышает порог.
type Notifier struct {
	threshold int
	pub       Publisher
	log       *slog.Logger
	now       func() time.Time
}

// NewNotifier создаёт Notifier с порогом threshold.
func NewNotifier(threshold int, pub Publisher, log *slog.Logger) *Notifier {
	return &Notifier{
		threshold: threshold,
		pub:       pub,
		log:       log,
		now:       time.Now,
	}
}

// ProductSaved проверяет остаток сохранённого товара.
func (n *Notifier) ProductSaved(ctx context.Context, p *models.Product) {
	if p == nil || p.Stock > n.threshold {
		return
	}

	event := models.LowStockEvent{
		ProductID:  p.ID,
		Name:       p.Name,
		Stock:      p.Stock,
		Threshold:  n.threshold,
		OccurredAt: n.now().UTC(),
	}
	if err := n.pub.Publish(ctx, models.EventProductLowStock, event); err != nil {
		n.log.Warn("failed to publish event",
			slog.String("event", models.EventProductLowStock), slog.Int("product_id", p.ID), sl.Err(err))
		return
	}
	n.log.Info("product stock is low", slog.Int("product_id", p.ID), slog.Int("stock", p.Stock))
}
