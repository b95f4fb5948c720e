package orders

import (
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrCannotCancel  = errors.New("cannot cancel order after dispatch")
	ErrEmptyOrder    = errors.New("at least one item is required")
)

// StockUnavailableError aggregates one message per failing cart line, in
// input order, so the buyer knows exactly what to remove or reduce.
type StockUnavailableError struct {
	Lines []string
}

func (e StockUnavailableError) Error() string {
	return "stock unavailable:\n" + strings.Join(e.Lines, "\n")
}

// ProductNotFoundError is a referential integrity violation: a cart line
// points at a product that no longer exists. The whole order fails.
type ProductNotFoundError struct {
	ProductID primitive.ObjectID
}

func (e ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID.Hex())
}
