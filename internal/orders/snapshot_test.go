package orders

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/internal/models"
)

func product(id primitive.ObjectID, name string, price float64, stock int) *models.Product {
	return &models.Product{
		ID:            id,
		Name:          name,
		Price:         price,
		StockQuantity: stock,
		Emoji:         "🍎",
	}
}

func TestBuildOrderItemsSnapshotsAndTotal(t *testing.T) {
	appleID := primitive.NewObjectID()
	milkID := primitive.NewObjectID()

	products := map[primitive.ObjectID]*models.Product{
		appleID: product(appleID, "Fresh Apple", 120, 50),
		milkID:  product(milkID, "Fresh Milk", 60, 80),
	}

	items, total, err := buildOrderItems([]Line{
		{ProductID: appleID, Quantity: 2},
		{ProductID: milkID, Quantity: 3},
	}, products)

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Fresh Apple", items[0].Name)
	assert.Equal(t, 120.0, items[0].Price)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "🍎", items[0].Emoji)
	assert.Equal(t, 120.0*2+60.0*3, total)
}

func TestBuildOrderItemsEmptyOrder(t *testing.T) {
	_, _, err := buildOrderItems(nil, nil)
	assert.ErrorIs(t, err, ErrEmptyOrder)
}

func TestBuildOrderItemsMissingProductFailsWholeOrder(t *testing.T) {
	knownID := primitive.NewObjectID()
	missingID := primitive.NewObjectID()

	products := map[primitive.ObjectID]*models.Product{
		knownID: product(knownID, "Fresh Apple", 120, 50),
	}

	items, total, err := buildOrderItems([]Line{
		{ProductID: knownID, Quantity: 1},
		{ProductID: missingID, Quantity: 1},
	}, products)

	var notFound ProductNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, missingID, notFound.ProductID)
	assert.Nil(t, items)
	assert.Zero(t, total)
}

func TestBuildOrderItemsAggregatesShortagesInInputOrder(t *testing.T) {
	emptyID := primitive.NewObjectID()
	lowID := primitive.NewObjectID()
	okID := primitive.NewObjectID()

	products := map[primitive.ObjectID]*models.Product{
		emptyID: product(emptyID, "Lobster Tail", 1200, 0),
		lowID:   product(lowID, "Strawberries", 200, 3),
		okID:    product(okID, "Fresh Milk", 60, 80),
	}

	items, total, err := buildOrderItems([]Line{
		{ProductID: emptyID, Quantity: 1},
		{ProductID: okID, Quantity: 1},
		{ProductID: lowID, Quantity: 5},
	}, products)

	var stockErr StockUnavailableError
	require.True(t, errors.As(err, &stockErr))
	require.Len(t, stockErr.Lines, 2)
	assert.Equal(t, "Lobster Tail - Out of stock", stockErr.Lines[0])
	assert.Equal(t, "Strawberries - Only 3 left", stockErr.Lines[1])
	assert.Nil(t, items)
	assert.Zero(t, total)
}

func TestBuildOrderItemsExactStockSucceeds(t *testing.T) {
	id := primitive.NewObjectID()
	products := map[primitive.ObjectID]*models.Product{
		id: product(id, "Pineapple", 100, 5),
	}

	items, total, err := buildOrderItems([]Line{{ProductID: id, Quantity: 5}}, products)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 500.0, total)
}

func TestStockLineErrorMissingProduct(t *testing.T) {
	id := primitive.NewObjectID()
	msg := stockLineError(nil, id)
	assert.Equal(t, "Product (ID: "+id.Hex()+") - Product not found", msg)
}

func TestPlanRestockSkipsDeletedProducts(t *testing.T) {
	keptID := primitive.NewObjectID()
	deletedID := primitive.NewObjectID()

	items := []models.OrderItem{
		{ProductID: keptID, Quantity: 2},
		{ProductID: deletedID, Quantity: 4},
		{ProductID: keptID, Quantity: 1},
	}

	plan := planRestock(items, map[primitive.ObjectID]bool{keptID: true})

	require.Len(t, plan, 1)
	assert.Equal(t, 3, plan[keptID])
}

func TestDedupeLinesSumsQuantities(t *testing.T) {
	firstID := primitive.NewObjectID()
	secondID := primitive.NewObjectID()

	lines := dedupeLines([]Line{
		{ProductID: firstID, Quantity: 1},
		{ProductID: secondID, Quantity: 2},
		{ProductID: firstID, Quantity: 3},
	})

	require.Len(t, lines, 2)
	assert.Equal(t, firstID, lines[0].ProductID)
	assert.Equal(t, 4, lines[0].Quantity)
	assert.Equal(t, secondID, lines[1].ProductID)
	assert.Equal(t, 2, lines[1].Quantity)
}
