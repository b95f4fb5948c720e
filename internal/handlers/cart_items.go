package handlers

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/internal/models"
)

// upsertCartItem adds a product to the item list, summing quantities when the
// product is already present. Items stay keyed by productId.
func upsertCartItem(items []models.CartItem, productID primitive.ObjectID, quantity int, now time.Time) []models.CartItem {
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity += quantity
			return items
		}
	}
	return append(items, models.CartItem{
		ProductID: productID,
		Quantity:  quantity,
		AddedAt:   now,
	})
}

// setCartItemQuantity replaces a line's quantity; zero or less removes the
// line. Returns false when the product is not in the cart.
func setCartItemQuantity(items []models.CartItem, productID primitive.ObjectID, quantity int) ([]models.CartItem, bool) {
	for i := range items {
		if items[i].ProductID != productID {
			continue
		}
		if quantity <= 0 {
			return append(items[:i:i], items[i+1:]...), true
		}
		items[i].Quantity = quantity
		return items, true
	}
	return items, false
}

// removeCartItem drops a line. Returns false when the product is not in the
// cart.
func removeCartItem(items []models.CartItem, productID primitive.ObjectID) ([]models.CartItem, bool) {
	for i := range items {
		if items[i].ProductID == productID {
			return append(items[:i:i], items[i+1:]...), true
		}
	}
	return items, false
}
