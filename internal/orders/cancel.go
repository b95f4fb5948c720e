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

// Cancel reverses a placed order: restores stock for every line item and
// marks the order cancelled, atomically. Only preparing orders may be
// cancelled; the status is read inside the transaction so a concurrent
// dispatch cannot race past the check.
func Cancel(ctx context.Context, db *mongo.Database, orderID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	session, err := db.Client().StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		// Read phase: order first, then every referenced product.
		var order models.Order
		err := db.Collection("orders").FindOne(sessCtx, bson.M{"_id": orderID}).Decode(&order)
		if err == mongo.ErrNoDocuments {
			return nil, ErrOrderNotFound
		}
		if err != nil {
			return nil, err
		}

		if !CanCancel(order.Status) {
			return nil, ErrCannotCancel
		}

		productIDs := make([]primitive.ObjectID, 0, len(order.Items))
		for _, item := range order.Items {
			productIDs = append(productIDs, item.ProductID)
		}

		cursor, err := db.Collection("products").Find(sessCtx, bson.M{"_id": bson.M{"$in": productIDs}})
		if err != nil {
			return nil, err
		}
		var products []models.Product
		if err := cursor.All(sessCtx, &products); err != nil {
			return nil, err
		}

		existing := make(map[primitive.ObjectID]bool, len(products))
		for _, product := range products {
			existing[product.ID] = true
		}

		// Write phase: restore stock for products still in the catalog.
		now := time.Now()
		for productID, quantity := range planRestock(order.Items, existing) {
			_, err := db.Collection("products").UpdateOne(
				sessCtx,
				bson.M{"_id": productID},
				bson.M{
					"$inc": bson.M{"stockQuantity": quantity},
					"$set": bson.M{"updatedAt": now},
				},
			)
			if err != nil {
				return nil, err
			}
		}

		_, err = db.Collection("orders").UpdateOne(
			sessCtx,
			bson.M{"_id": orderID},
			bson.M{"$set": bson.M{"status": models.StatusCancelled, "cancelledAt": now}},
		)
		return nil, err
	})
	if err != nil {
		return err
	}

	log.Printf("[ORDER] [INFO] order %s cancelled, stock restored", orderID.Hex())
	return nil
}
