package garden

import "context"

type SeedRepo interface {
	Upsert(ctx context.Context, seed *Seed) error
	Get(ctx context.Context, id string) (*Seed, error)
	Delete(ctx context.Context, id string) error
	ListForUser(ctx context.Context, userID string) ([]*Seed, error)
}

type PlantingRepo interface {
	Upsert(ctx context.Context, planting *Planting) error
	Get(ctx context.Context, id string) (*Planting, error)
	ListForUser(ctx context.Context, userID string) ([]*Planting, error)
}

type WishlistRepo interface {
	Upsert(ctx context.Context, item *WishlistItem) error
	Get(ctx context.Context, id string) (*WishlistItem, error)
	Delete(ctx context.Context, id string) error
	ListForUser(ctx context.Context, userID string) ([]*WishlistItem, error)
}
