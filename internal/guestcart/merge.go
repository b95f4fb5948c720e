package guestcart

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/internal/models"
)

// addItem is the guest-side upsert: quantities sum when the product is
// already in the cart.
func addItem(items []Item, productID string, quantity int, now time.Time) []Item {
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity += quantity
			items[i].AddedAt = now
			return items
		}
	}
	return append(items, Item{ProductID: productID, Quantity: quantity, AddedAt: now})
}

// MergeIntoCart folds guest items into a user's cart items, keyed by
// productId with quantities summed. Guest lines with unparseable product ids
// or non-positive quantities are dropped rather than failing the merge.
func MergeIntoCart(cartItems []models.CartItem, guestItems []Item, now time.Time) []models.CartItem {
	merged := make([]models.CartItem, len(cartItems))
	copy(merged, cartItems)

	index := make(map[primitive.ObjectID]int, len(merged))
	for i, item := range merged {
		index[item.ProductID] = i
	}

	for _, guest := range guestItems {
		if guest.Quantity <= 0 {
			continue
		}
		productID, err := primitive.ObjectIDFromHex(guest.ProductID)
		if err != nil {
			continue
		}
		if i, ok := index[productID]; ok {
			merged[i].Quantity += guest.Quantity
			continue
		}
		index[productID] = len(merged)
		merged = append(merged, models.CartItem{
			ProductID: productID,
			Quantity:  guest.Quantity,
			AddedAt:   now,
		})
	}

	return merged
}
