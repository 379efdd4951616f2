package domain

import "context"

// CartItem is one locally sourced image in the user's collection.
// ImageURL is an ephemeral object URL and is not expected to resolve after a restart.
type CartItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"url"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity"`
}

// CartRepository persists one ordered collection per identity.
// Load of a missing collection returns an empty slice and no error.
type CartRepository interface {
	Load(ctx context.Context, userID string) ([]CartItem, error)
	Save(ctx context.Context, userID string, items []CartItem) error
	Delete(ctx context.Context, userID string) error
}
