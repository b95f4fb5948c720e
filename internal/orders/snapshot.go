package orders

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/internal/models"
)

// Line is one (product, requested quantity) pair from a cart.
type Line struct {
	ProductID primitive.ObjectID
	Quantity  int
}

// stockLineError renders the per-item message shown to the buyer. The same
// wording is used by the advisory pre-check and the authoritative
// in-transaction check.
func stockLineError(product *models.Product, productID primitive.ObjectID) string {
	if product == nil {
		return fmt.Sprintf("Product (ID: %s) - Product not found", productID.Hex())
	}
	if product.StockQuantity == 0 {
		return fmt.Sprintf("%s - Out of stock", product.Name)
	}
	return fmt.Sprintf("%s - Only %d left", product.Name, product.StockQuantity)
}

// buildOrderItems runs the authoritative validation over products read inside
// the transaction and produces the point-in-time item snapshots plus the
// recomputed total. Name, price and emoji come from the just-read product,
// never from the caller, so a tampered or stale cart cannot alter pricing.
//
// A missing product fails the whole order with ProductNotFoundError. Any
// insufficient line fails the whole order with StockUnavailableError carrying
// one message per failing line, in input order. No partial result is ever
// returned.
func buildOrderItems(lines []Line, products map[primitive.ObjectID]*models.Product) ([]models.OrderItem, float64, error) {
	if len(lines) == 0 {
		return nil, 0, ErrEmptyOrder
	}

	items := make([]models.OrderItem, 0, len(lines))
	var shortages []string
	total := 0.0

	for _, line := range lines {
		product := products[line.ProductID]
		if product == nil {
			return nil, 0, ProductNotFoundError{ProductID: line.ProductID}
		}

		if product.StockQuantity < line.Quantity {
			shortages = append(shortages, stockLineError(product, line.ProductID))
			continue
		}

		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  line.Quantity,
			Emoji:     product.Emoji,
		})
		total += product.Price * float64(line.Quantity)
	}

	if len(shortages) > 0 {
		return nil, 0, StockUnavailableError{Lines: shortages}
	}

	return items, total, nil
}

// planRestock computes the per-product stock increments for a cancellation.
// Products deleted from the catalog since the order was placed are skipped;
// restoring stock to a nonexistent product is a no-op, not an error.
func planRestock(items []models.OrderItem, existing map[primitive.ObjectID]bool) map[primitive.ObjectID]int {
	plan := make(map[primitive.ObjectID]int, len(items))
	for _, item := range items {
		if !existing[item.ProductID] {
			continue
		}
		plan[item.ProductID] += item.Quantity
	}
	return plan
}

// dedupeLines folds repeated productIds into a single line, summing
// quantities. The cart keys items by productId so duplicates should not
// occur, but the transaction must not decrement the same document twice on
// bad input.
func dedupeLines(lines []Line) []Line {
	index := make(map[primitive.ObjectID]int, len(lines))
	out := make([]Line, 0, len(lines))
	for _, line := range lines {
		if i, ok := index[line.ProductID]; ok {
			out[i].Quantity += line.Quantity
			continue
		}
		index[line.ProductID] = len(out)
		out = append(out, line)
	}
	return out
}
