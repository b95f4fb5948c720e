package orders

import "backend/internal/models"

// Transition legality:
//
//	preparing -> dispatched -> delivered
//	preparing -> cancelled
//
// delivered and cancelled are terminal.
var transitions = map[models.OrderStatus][]models.OrderStatus{
	models.StatusPreparing:  {models.StatusDispatched, models.StatusCancelled},
	models.StatusDispatched: {models.StatusDelivered},
}

func CanTransition(from, to models.OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanCancel reports whether an order may still be cancelled. Only preparing
// orders qualify; dispatch closes the window.
func CanCancel(status models.OrderStatus) bool {
	return CanTransition(status, models.StatusCancelled)
}
