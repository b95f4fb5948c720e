// Package guestcart holds cart items for visitors who have not logged in.
// Each guest session is an addressable Redis entry keyed by a generated
// session id; on login the entry is merged into the user's cart and removed.
package guestcart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("guest cart session not found")

// Item mirrors a cart line without the owning user.
type Item struct {
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"addedAt"`
}

type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func key(session string) string {
	return "guestcart:" + session
}

// NewSession creates an empty guest cart and returns its session id.
func (s *Store) NewSession(ctx context.Context) (string, error) {
	session := uuid.NewString()
	if err := s.write(ctx, session, []Item{}); err != nil {
		return "", err
	}
	return session, nil
}

// Get returns the items for a session. A missing or expired session is
// ErrSessionNotFound, not an empty cart.
func (s *Store) Get(ctx context.Context, session string) ([]Item, error) {
	raw, err := s.client.Get(ctx, key(session)).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Add puts a product into the session cart, summing the quantity when the
// product is already present. Each write refreshes the TTL.
func (s *Store) Add(ctx context.Context, session, productID string, quantity int) ([]Item, error) {
	items, err := s.Get(ctx, session)
	if err != nil {
		return nil, err
	}

	items = addItem(items, productID, quantity, time.Now())
	if err := s.write(ctx, session, items); err != nil {
		return nil, err
	}
	return items, nil
}

// Delete removes the session entirely, typically after a merge.
func (s *Store) Delete(ctx context.Context, session string) error {
	return s.client.Del(ctx, key(session)).Err()
}

func (s *Store) write(ctx context.Context, session string, items []Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key(session), data, s.ttl).Err()
}
