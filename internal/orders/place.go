package orders

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"backend/internal/models"
)

// PlaceInput carries everything needed to turn a cart into an order. The
// delivery address is embedded into the order as a snapshot.
type PlaceInput struct {
	UserID          primitive.ObjectID
	Lines           []Line
	DeliveryAddress models.Address
	PaymentMethod   models.PaymentMethod
}

// Place executes the authoritative order transaction: re-read every product,
// validate stock, snapshot the items, deduct stock, insert the order and
// empty the cart, all atomically. On a write conflict the driver retries the
// whole callback against fresh reads, which is why the body must stay free of
// side effects outside the session.
//
// The transaction keeps a strict read-then-write phase split: every product
// document is read before the first write is staged. Interleaving a per-item
// read-decrement loop breaks down once two lines hit the same document.
func Place(ctx context.Context, db *mongo.Database, assigner PartnerAssigner, in PlaceInput) (*models.Order, error) {
	lines := dedupeLines(in.Lines)
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	session, err := db.Client().StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	var orderID primitive.ObjectID
	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		// Read phase: fetch every product before staging any write.
		products := make(map[primitive.ObjectID]*models.Product, len(lines))
		for _, line := range lines {
			var product models.Product
			err := db.Collection("products").FindOne(
				sessCtx,
				bson.M{"_id": line.ProductID, "isActive": bson.M{"$ne": false}},
			).Decode(&product)
			if err == mongo.ErrNoDocuments {
				continue // surfaces as ProductNotFoundError below
			}
			if err != nil {
				return nil, err
			}
			products[product.ID] = &product
		}

		items, total, err := buildOrderItems(lines, products)
		if err != nil {
			return nil, err
		}

		// Write phase: deduct stock. The stockQuantity guard in the filter
		// keeps the invariant stockQuantity >= 0 even if a concurrent commit
		// slips between our snapshot and this update.
		now := time.Now()
		for _, line := range lines {
			res, err := db.Collection("products").UpdateOne(
				sessCtx,
				bson.M{
					"_id":           line.ProductID,
					"stockQuantity": bson.M{"$gte": line.Quantity},
				},
				bson.M{
					"$inc": bson.M{"stockQuantity": -line.Quantity},
					"$set": bson.M{"updatedAt": now},
				},
			)
			if err != nil {
				return nil, err
			}
			if res.MatchedCount == 0 {
				return nil, StockUnavailableError{
					Lines: []string{stockLineError(products[line.ProductID], line.ProductID)},
				}
			}
		}

		partner := assigner.Assign()
		order := models.Order{
			UserID:          in.UserID,
			OrderNumber:     GenerateOrderNumber(),
			Items:           items,
			DeliveryAddress: in.DeliveryAddress,
			TotalAmount:     total,
			PaymentMethod:   in.PaymentMethod,
			Status:          models.StatusPreparing,
			DeliveryPartner: &partner,
			OrderDate:       now,
		}

		res, err := db.Collection("orders").InsertOne(sessCtx, order)
		if err != nil {
			return nil, err
		}
		orderID = res.InsertedID.(primitive.ObjectID)

		// Empty the cart, never delete it: the document survives with zero
		// items so the next read does not re-create it.
		_, err = db.Collection("carts").UpdateOne(
			sessCtx,
			bson.M{"userId": in.UserID},
			bson.M{"$set": bson.M{"items": []models.CartItem{}, "updatedAt": now}},
		)
		if err != nil {
			return nil, err
		}

		return nil, nil
	})
	if err != nil {
		return nil, err
	}

	// Re-fetch after commit so the caller sees the order exactly as stored.
	var created models.Order
	if err := db.Collection("orders").FindOne(ctx, bson.M{"_id": orderID}).Decode(&created); err != nil {
		return nil, err
	}

	log.Printf("[ORDER] [INFO] order %s placed for user %s", created.OrderNumber, in.UserID.Hex())
	return &created, nil
}
