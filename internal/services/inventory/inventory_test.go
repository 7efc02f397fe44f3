package inventory

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/fitness-manager/internal/models"
)

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(ctx context.Context, routingKey string, event any) error {
	return m.Called(ctx, routingKey, event).Error(0)
}

func newNotifier(pub *PublisherMock) *Notifier {
	n := NewNotifier(5, pub, slog.New(slog.NewTextHandler(io.Discard, nil)))
	n.now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
	return n
}

func TestNotifier_ProductSaved(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		product *models.Product
		publish bool
	}{
		{"above threshold", &models.Product{ID: 1, Name: "Whey", Stock: 6}, false},
		{"at threshold", &models.Product{ID: 2, Name: "Creatine", Stock: 5}, true},
		{"out of stock", &models.Product{ID: 3, Name: "Bar", Stock: 0}, true},
		{"nil product", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pub := new(PublisherMock)
			if tt.publish {
				pub.On("Publish", ctx, models.EventProductLowStock, models.LowStockEvent{
					ProductID:  tt.product.ID,
					Name:       tt.product.Name,
					Stock:      tt.product.Stock,
					Threshold:  5,
					OccurredAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				}).Return(nil)
			}

			newNotifier(pub).ProductSaved(ctx, tt.product)

			if tt.publish {
				pub.AssertExpectations(t)
			} else {
				pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestNotifier_PublishErrorDoesNotPanic(t *testing.T) {
	pub := new(PublisherMock)
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down"))

	assert.NotPanics(t, func() {
		newNotifier(pub).ProductSaved(context.Background(), &models.Product{ID: 1, Stock: 0})
	})
}
