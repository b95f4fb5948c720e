package orders

import (
	"context"
	"log"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"

	"backend/internal/models"
)

// StockValidationResult is the advisory verdict for a set of cart lines.
// Valid is true iff every line can be satisfied by current stock.
type StockValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ValidateStock is the read-only pre-check run before checkout. It may race
// with concurrent buyers and is never authoritative; order placement re-runs
// the same checks inside its transaction. Products are fetched concurrently.
//
// It never returns a Go error: when the store is unreachable the result is
// invalid with a single generic message, so callers can always branch on
// Valid.
func ValidateStock(ctx context.Context, db *mongo.Database, lines []Line) StockValidationResult {
	if len(lines) == 0 {
		return StockValidationResult{Valid: true, Errors: []string{}}
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// One slot per line keeps messages in input order regardless of which
	// fetch finishes first.
	slots := make([]string, len(lines))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for i, line := range lines {
		i, line := i, line
		g.Go(func() error {
			var product models.Product
			err := db.Collection("products").FindOne(
				gctx,
				bson.M{"_id": line.ProductID, "isActive": bson.M{"$ne": false}},
			).Decode(&product)

			switch {
			case err == mongo.ErrNoDocuments:
				mu.Lock()
				slots[i] = stockLineError(nil, line.ProductID)
				mu.Unlock()
				return nil
			case err != nil:
				return err
			}

			if product.StockQuantity < line.Quantity {
				mu.Lock()
				slots[i] = stockLineError(&product, line.ProductID)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Println("[STOCK] [ERROR] validation read failed:", err)
		return StockValidationResult{
			Valid:  false,
			Errors: []string{"Failed to validate stock availability. Please try again."},
		}
	}

	errs := make([]string, 0, len(lines))
	for _, msg := range slots {
		if msg != "" {
			errs = append(errs, msg)
		}
	}

	return StockValidationResult{Valid: len(errs) == 0, Errors: errs}
}
