package service

import (
	"context"
	"testing"

	"backoffice/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCalculateTotal(t *testing.T) {
	os := &OrderService{}

	items := []OrderItemRequest{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	}

	products := map[int64]*models.Product{
		1: {ID: 1, Price: 150000},
		2: {ID: 2, Price: 75000},
	}

	total := os.calculateTotal(items, products)

	assert.Equal(t, int64(2*150000+1*75000), total)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	os := &OrderService{}

	err := os.UpdateStatus(context.Background(), 1, "teleported")
	assert.Error(t, err)
}

func TestCancelledOrderCannotBeRevived(t *testing.T) {
	// Cancellation restocked the items, so a cancelled order must
	// stay cancelled: flipping it back to an active status would
	// count revenue for inventory that was already returned.
	for _, status := range []string{
		models.OrderStatusPending,
		models.OrderStatusPaid,
		models.OrderStatusShipped,
		models.OrderStatusCompleted,
	} {
		assert.ErrorIs(t, validTransition(models.OrderStatusCancelled, status), ErrOrderCancelled)
	}
}

func TestActiveOrderStatusTransitionsAllowed(t *testing.T) {
	assert.NoError(t, validTransition(models.OrderStatusPending, models.OrderStatusPaid))
	assert.NoError(t, validTransition(models.OrderStatusPaid, models.OrderStatusShipped))
	assert.NoError(t, validTransition(models.OrderStatusShipped, models.OrderStatusCompleted))
}
