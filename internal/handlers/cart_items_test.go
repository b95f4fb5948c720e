package handlers

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/internal/models"
)

func TestUpsertCartItemAppendsNewProduct(t *testing.T) {
	productID := primitive.NewObjectID()
	now := time.Now()

	items := upsertCartItem(nil, productID, 2, now)

	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].ProductID != productID || items[0].Quantity != 2 {
		t.Fatalf("unexpected item %+v", items[0])
	}
	if !items[0].AddedAt.Equal(now) {
		t.Fatal("expected addedAt to be set")
	}
}

func TestUpsertCartItemSumsExistingQuantity(t *testing.T) {
	productID := primitive.NewObjectID()
	now := time.Now()

	items := upsertCartItem(nil, productID, 2, now)
	items = upsertCartItem(items, productID, 3, now)

	if len(items) != 1 {
		t.Fatalf("expected quantities to fold into one line, got %d items", len(items))
	}
	if items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", items[0].Quantity)
	}
}

func TestSetCartItemQuantityReplaces(t *testing.T) {
	productID := primitive.NewObjectID()
	items := []models.CartItem{{ProductID: productID, Quantity: 2}}

	items, found := setCartItemQuantity(items, productID, 7)
	if !found {
		t.Fatal("expected item to be found")
	}
	if items[0].Quantity != 7 {
		t.Fatalf("expected quantity 7, got %d", items[0].Quantity)
	}
}

func TestSetCartItemQuantityZeroRemovesLine(t *testing.T) {
	firstID := primitive.NewObjectID()
	secondID := primitive.NewObjectID()
	items := []models.CartItem{
		{ProductID: firstID, Quantity: 2},
		{ProductID: secondID, Quantity: 1},
	}

	items, found := setCartItemQuantity(items, firstID, 0)
	if !found {
		t.Fatal("expected item to be found")
	}
	if len(items) != 1 || items[0].ProductID != secondID {
		t.Fatalf("expected only the second item to remain, got %+v", items)
	}
}

func TestSetCartItemQuantityUnknownProduct(t *testing.T) {
	items := []models.CartItem{{ProductID: primitive.NewObjectID(), Quantity: 1}}

	_, found := setCartItemQuantity(items, primitive.NewObjectID(), 3)
	if found {
		t.Fatal("expected unknown product to report not found")
	}
}

func TestRemoveCartItem(t *testing.T) {
	firstID := primitive.NewObjectID()
	secondID := primitive.NewObjectID()
	items := []models.CartItem{
		{ProductID: firstID, Quantity: 2},
		{ProductID: secondID, Quantity: 1},
	}

	items, found := removeCartItem(items, firstID)
	if !found {
		t.Fatal("expected item to be found")
	}
	if len(items) != 1 || items[0].ProductID != secondID {
		t.Fatalf("expected only the second item to remain, got %+v", items)
	}

	_, found = removeCartItem(items, firstID)
	if found {
		t.Fatal("expected removed product to report not found")
	}
}
