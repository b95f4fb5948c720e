package handlers

import (
	"context"
	"errors"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
	"backend/internal/orders"
)

type createOrderRequest struct {
	AddressID     string  `json:"addressId" binding:"required"`
	PaymentMethod string  `json:"paymentMethod" binding:"required"`
	TotalAmount   float64 `json:"totalAmount"`
}

func cartLines(items []models.CartItem) []orders.Line {
	lines := make([]orders.Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, orders.Line{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return lines
}

/*
POST /user/cart/validate
- advisory pre-check only; placement re-validates inside its transaction
*/
func ValidateCartStock(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /user/cart/validate"
		defer handlePanic(c, route)

		userID, ok := userIDFromContext(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cart, err := loadOrCreateCart(ctx, db, userID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, orders.ValidateStock(ctx, db, cartLines(cart.Items)))
	}
}

func CreateOrder(db *mongo.Database, assigner orders.PartnerAssigner) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		userID, ok := userIDFromContext(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		paymentMethod := models.PaymentMethod(strings.TrimSpace(req.PaymentMethod))
		if !models.ValidPaymentMethod(paymentMethod) {
			respondWithError(c, http.StatusBadRequest, route, "invalid payment method")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 20*time.Second)
		defer cancel()

		user, err := loadUser(ctx, db, userID)
		if err != nil {
			respondWithError(c, http.StatusNotFound, route, "user not found")
			return
		}

		var address *models.Address
		for i := range user.Addresses {
			if user.Addresses[i].ID == req.AddressID {
				address = &user.Addresses[i]
				break
			}
		}
		if address == nil {
			respondWithError(c, http.StatusBadRequest, route, "address not found")
			return
		}

		cart, err := loadOrCreateCart(ctx, db, userID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		lines := cartLines(cart.Items)

		// Advisory pre-check for per-item messages before entering the
		// transaction. The in-transaction re-check is the source of truth.
		if result := orders.ValidateStock(ctx, db, lines); !result.Valid {
			c.JSON(http.StatusConflict, gin.H{
				"error":  "stock unavailable",
				"errors": result.Errors,
			})
			return
		}

		order, err := orders.Place(ctx, db, assigner, orders.PlaceInput{
			UserID:          userID,
			Lines:           lines,
			DeliveryAddress: *address,
			PaymentMethod:   paymentMethod,
		})
		if err != nil {
			respondOrderError(c, route, err)
			return
		}

		// The stored total is computed from the in-transaction snapshot; the
		// client total is advisory only.
		if req.TotalAmount != 0 && math.Abs(req.TotalAmount-order.TotalAmount) > 0.01 {
			log.Printf("[ORDER] [WARN] client total %.2f differs from computed %.2f for %s",
				req.TotalAmount, order.TotalAmount, order.OrderNumber)
		}

		c.JSON(http.StatusCreated, order)
	}
}

func respondOrderError(c *gin.Context, route string, err error) {
	var stockErr orders.StockUnavailableError
	if errors.As(err, &stockErr) {
		c.JSON(http.StatusConflict, gin.H{
			"error":  "stock unavailable",
			"errors": stockErr.Lines,
		})
		return
	}

	var notFoundErr orders.ProductNotFoundError
	if errors.As(err, &notFoundErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "product not found",
			"productId": notFoundErr.ProductID.Hex(),
		})
		return
	}

	if errors.Is(err, orders.ErrEmptyOrder) {
		respondWithError(c, http.StatusBadRequest, route, err.Error())
		return
	}

	log.Printf("[%s] order transaction failed: %v", route, err)
	respondWithError(c, http.StatusInternalServerError, route, "failed to place order")
}

func GetMyOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders"
		defer handlePanic(c, route)

		userID, ok := userIDFromContext(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("orders").Find(
			ctx,
			bson.M{"userId": userID},
			options.Find().SetSort(bson.D{{Key: "orderDate", Value: -1}}),
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		userOrders := make([]models.Order, 0)
		if err := cursor.All(ctx, &userOrders); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, userOrders)
	}
}

func GetOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/:id"
		defer handlePanic(c, route)

		userID, ok := userIDFromContext(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		err = db.Collection("orders").FindOne(ctx, bson.M{"_id": orderID, "userId": userID}).Decode(&order)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

func CancelOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders/:id/cancel"
		defer handlePanic(c, route)

		userID, ok := userIDFromContext(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 20*time.Second)
		defer cancel()

		// Ownership check outside the transaction; the status gate runs
		// inside it.
		err = db.Collection("orders").FindOne(ctx, bson.M{"_id": orderID, "userId": userID}).Err()
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if err := orders.Cancel(ctx, db, orderID); err != nil {
			switch {
			case errors.Is(err, orders.ErrOrderNotFound):
				respondWithError(c, http.StatusNotFound, route, "order not found")
			case errors.Is(err, orders.ErrCannotCancel):
				respondWithError(c, http.StatusConflict, route, "cannot cancel order after dispatch")
			default:
				log.Printf("[%s] cancel transaction failed: %v", route, err)
				respondWithError(c, http.StatusInternalServerError, route, "failed to cancel order")
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "order cancelled"})
	}
}
