package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"backend/internal/guestcart"
)

type guestCartAddRequest struct {
	Session   string `json:"session"`
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

type guestCartMergeRequest struct {
	Session string `json:"session" binding:"required"`
}

/*
POST /guest-cart
- no session in the body: a new session is created first
- response always carries the session id so the client can keep it
*/
func AddGuestCartItem(store *guestcart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /guest-cart"
		defer handlePanic(c, route)

		var req guestCartAddRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}
		if req.Quantity <= 0 {
			respondWithError(c, http.StatusBadRequest, route, "quantity must be greater than zero")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		session := strings.TrimSpace(req.Session)
		if session == "" {
			created, err := store.NewSession(ctx)
			if err != nil {
				respondWithError(c, http.StatusInternalServerError, route, "session store error")
				return
			}
			session = created
		}

		items, err := store.Add(ctx, session, strings.TrimSpace(req.ProductID), req.Quantity)
		if err == guestcart.ErrSessionNotFound {
			respondWithError(c, http.StatusNotFound, route, "guest cart session not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "session store error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"session": session, "items": items})
	}
}

func GetGuestCart(store *guestcart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /guest-cart/:session"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		items, err := store.Get(ctx, c.Param("session"))
		if err == guestcart.ErrSessionNotFound {
			respondWithError(c, http.StatusNotFound, route, "guest cart session not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "session store error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"session": c.Param("session"), "items": items})
	}
}

func DeleteGuestCart(store *guestcart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /guest-cart/:session"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := store.Delete(ctx, c.Param("session")); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "session store error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "guest cart cleared"})
	}
}

/*
POST /user/cart/merge (auth)
- folds the guest session into the user's cart, summing quantities per
  productId, then removes the session
*/
func MergeGuestCart(db *mongo.Database, store *guestcart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /user/cart/merge"
		defer handlePanic(c, route)

		userID, ok := userIDFromContext(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		var req guestCartMergeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		guestItems, err := store.Get(ctx, req.Session)
		if err == guestcart.ErrSessionNotFound {
			respondWithError(c, http.StatusNotFound, route, "guest cart session not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "session store error")
			return
		}

		cart, err := loadOrCreateCart(ctx, db, userID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		cart.Items = guestcart.MergeIntoCart(cart.Items, guestItems, time.Now())
		if err := saveCartItems(ctx, db, userID, cart.Items); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if err := store.Delete(ctx, req.Session); err != nil {
			// Cart already merged; a leftover session only costs its TTL.
			log.Printf("[CART] [ERROR] guest session cleanup failed: %v", err)
		}

		log.Printf("[CART] [INFO] merged %d guest items into cart for user %s", len(guestItems), userID.Hex())
		c.JSON(http.StatusOK, cart)
	}
}
