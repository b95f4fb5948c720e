package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"backend/internal/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from models.OrderStatus
		to   models.OrderStatus
		want bool
	}{
		{"preparing to dispatched", models.StatusPreparing, models.StatusDispatched, true},
		{"preparing to cancelled", models.StatusPreparing, models.StatusCancelled, true},
		{"dispatched to delivered", models.StatusDispatched, models.StatusDelivered, true},
		{"preparing to delivered skips dispatch", models.StatusPreparing, models.StatusDelivered, false},
		{"dispatched to cancelled", models.StatusDispatched, models.StatusCancelled, false},
		{"dispatched to preparing", models.StatusDispatched, models.StatusPreparing, false},
		{"delivered is terminal", models.StatusDelivered, models.StatusCancelled, false},
		{"cancelled is terminal", models.StatusCancelled, models.StatusPreparing, false},
		{"cancelled cannot dispatch", models.StatusCancelled, models.StatusDispatched, false},
		{"unknown status", models.OrderStatus("pending"), models.StatusDispatched, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestCanCancelOnlyWhilePreparing(t *testing.T) {
	assert.True(t, CanCancel(models.StatusPreparing))
	assert.False(t, CanCancel(models.StatusDispatched))
	assert.False(t, CanCancel(models.StatusDelivered))
	assert.False(t, CanCancel(models.StatusCancelled))
}
