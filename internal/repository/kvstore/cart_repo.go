package kvstore

import (
	"context"
	"fmt"

	"dashboard-client/internal/domain"
	"dashboard-client/pkg/logger"

	"github.com/goccy/go-json"
)

type cartRepository struct {
	store     domain.KeyValueStore
	namespace string
}

// NewCartRepository stores each collection as a JSON array under cartItems_<userId>.
func NewCartRepository(store domain.KeyValueStore, namespace string) domain.CartRepository {
	return &cartRepository{store: store, namespace: namespace}
}

func (r *cartRepository) Load(ctx context.Context, userID string) ([]domain.CartItem, error) {
	key := domain.CartKey(userID)
	raw, ok, err := r.store.Get(ctx, r.namespace, key)
	logger.StoreOp(ctx, "get", r.namespace, key, err)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if !ok || raw == "" {
		return []domain.CartItem{}, nil
	}

	var items []domain.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		logger.WithContext(ctx).Warn().Err(err).Str("key", key).Msg("Discarding unreadable cart")
		if delErr := r.store.Delete(ctx, r.namespace, key); delErr != nil {
			return nil, fmt.Errorf("drop corrupt cart: %w", delErr)
		}
		return []domain.CartItem{}, nil
	}
	if items == nil {
		items = []domain.CartItem{}
	}
	return items, nil
}

func (r *cartRepository) Save(ctx context.Context, userID string, items []domain.CartItem) error {
	key := domain.CartKey(userID)
	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	err = r.store.Set(ctx, r.namespace, key, string(b))
	logger.StoreOp(ctx, "set", r.namespace, key, err)
	if err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (r *cartRepository) Delete(ctx context.Context, userID string) error {
	key := domain.CartKey(userID)
	err := r.store.Delete(ctx, r.namespace, key)
	logger.StoreOp(ctx, "delete", r.namespace, key, err)
	if err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}
