package guestcart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/internal/models"
)

func TestAddItemSumsExistingQuantity(t *testing.T) {
	now := time.Now()
	items := []Item{{ProductID: "abc", Quantity: 1, AddedAt: now.Add(-time.Hour)}}

	items = addItem(items, "abc", 2, now)

	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, now, items[0].AddedAt)
}

func TestAddItemAppendsNewProduct(t *testing.T) {
	now := time.Now()

	items := addItem(nil, "abc", 1, now)
	items = addItem(items, "def", 2, now)

	require.Len(t, items, 2)
	assert.Equal(t, "def", items[1].ProductID)
	assert.Equal(t, 2, items[1].Quantity)
}

func TestMergeIntoCartSumsByProduct(t *testing.T) {
	now := time.Now()
	sharedID := primitive.NewObjectID()
	guestOnlyID := primitive.NewObjectID()

	cartItems := []models.CartItem{
		{ProductID: sharedID, Quantity: 2, AddedAt: now.Add(-time.Hour)},
	}
	guestItems := []Item{
		{ProductID: sharedID.Hex(), Quantity: 3},
		{ProductID: guestOnlyID.Hex(), Quantity: 1},
	}

	merged := MergeIntoCart(cartItems, guestItems, now)

	require.Len(t, merged, 2)
	assert.Equal(t, sharedID, merged[0].ProductID)
	assert.Equal(t, 5, merged[0].Quantity)
	assert.Equal(t, guestOnlyID, merged[1].ProductID)
	assert.Equal(t, 1, merged[1].Quantity)
	assert.Equal(t, now, merged[1].AddedAt)
}

func TestMergeIntoCartDropsBadGuestLines(t *testing.T) {
	now := time.Now()
	validID := primitive.NewObjectID()

	guestItems := []Item{
		{ProductID: "not-an-object-id", Quantity: 2},
		{ProductID: validID.Hex(), Quantity: 0},
		{ProductID: validID.Hex(), Quantity: -1},
	}

	merged := MergeIntoCart(nil, guestItems, now)

	assert.Empty(t, merged)
}

func TestMergeIntoCartLeavesOriginalSliceAlone(t *testing.T) {
	now := time.Now()
	id := primitive.NewObjectID()

	cartItems := []models.CartItem{{ProductID: id, Quantity: 1}}
	guestItems := []Item{{ProductID: id.Hex(), Quantity: 4}}

	merged := MergeIntoCart(cartItems, guestItems, now)

	assert.Equal(t, 1, cartItems[0].Quantity)
	assert.Equal(t, 5, merged[0].Quantity)
}
