package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seedvault/seedvault/garden"
	"github.com/seedvault/seedvault/internal/errors"
)

var _ garden.SeedRepo = (*SeedRepo)(nil)

type SeedRepo struct {
	pool *pgxpool.Pool
}

func NewSeedRepo(store *Store) *SeedRepo {
	return &SeedRepo{pool: store.Pool}
}

func (sr *SeedRepo) Upsert(ctx context.Context, seed *garden.Seed) error {
	if seed.ID == "" {
		seed.ID = uuid.New().String()
	}
	_, err := sr.pool.Exec(ctx, `
		INSERT INTO seeds (id, user_id, plant_id, name, variety, quantity, acquired_at, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			plant_id = EXCLUDED.plant_id,
			name = EXCLUDED.name,
			variety = EXCLUDED.variety,
			quantity = EXCLUDED.quantity,
			acquired_at = EXCLUDED.acquired_at,
			notes = EXCLUDED.notes`,
		seed.ID, seed.UserID, seed.PlantID, seed.Name, seed.Variety,
		seed.Quantity, seed.AcquiredAt, seed.Notes)
	return errors.Wrapf(err, "upsert seed %s", seed.ID)
}

func (sr *SeedRepo) Get(ctx context.Context, id string) (*garden.Seed, error) {
	var seed garden.Seed
	err := sr.pool.QueryRow(ctx, `
		SELECT id, user_id, plant_id, name, variety, quantity, acquired_at, notes
		FROM seeds WHERE id = $1`, id).
		Scan(&seed.ID, &seed.UserID, &seed.PlantID, &seed.Name, &seed.Variety,
			&seed.Quantity, &seed.AcquiredAt, &seed.Notes)
	if err == pgx.ErrNoRows {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get seed %s", id)
	}
	return &seed, nil
}

func (sr *SeedRepo) Delete(ctx context.Context, id string) error {
	tag, err := sr.pool.Exec(ctx, `DELETE FROM seeds WHERE id = $1`, id)
	if err != nil {
		return errors.Wrapf(err, "delete seed %s", id)
	}
	if tag.RowsAffected() == 0 {
		return errors.ErrNotFound
	}
	return nil
}

func (sr *SeedRepo) ListForUser(ctx context.Context, userID string) ([]*garden.Seed, error) {
	rows, err := sr.pool.Query(ctx, `
		SELECT id, user_id, plant_id, name, variety, quantity, acquired_at, notes
		FROM seeds WHERE user_id = $1 ORDER BY name`, userID)
	if err != nil {
		return nil, errors.Wrapf(err, "list seeds")
	}
	defer rows.Close()

	var list []*garden.Seed
	for rows.Next() {
		var seed garden.Seed
		if err := rows.Scan(&seed.ID, &seed.UserID, &seed.PlantID, &seed.Name, &seed.Variety,
			&seed.Quantity, &seed.AcquiredAt, &seed.Notes); err != nil {
			return nil, errors.Wrapf(err, "scan seed")
		}
		list = append(list, &seed)
	}
	return list, rows.Err()
}

var _ garden.PlantingRepo = (*PlantingRepo)(nil)

type PlantingRepo struct {
	pool *pgxpool.Pool
}

func NewPlantingRepo(store *Store) *PlantingRepo {
	return &PlantingRepo{pool: store.Pool}
}

func (pr *PlantingRepo) Upsert(ctx context.Context, planting *garden.Planting) error {
	if planting.ID == "" {
		planting.ID = uuid.New().String()
	}
	_, err := pr.pool.Exec(ctx, `
		INSERT INTO plantings (id, user_id, seed_id, planted_at, location, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			location = EXCLUDED.location,
			status = EXCLUDED.status`,
		planting.ID, planting.UserID, planting.SeedID, planting.PlantedAt,
		planting.Location, planting.Status)
	return errors.Wrapf(err, "upsert planting %s", planting.ID)
}

func (pr *PlantingRepo) Get(ctx context.Context, id string) (*garden.Planting, error) {
	var planting garden.Planting
	err := pr.pool.QueryRow(ctx, `
		SELECT id, user_id, seed_id, planted_at, location, status
		FROM plantings WHERE id = $1`, id).
		Scan(&planting.ID, &planting.UserID, &planting.SeedID, &planting.PlantedAt,
			&planting.Location, &planting.Status)
	if err == pgx.ErrNoRows {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get planting %s", id)
	}
	return &planting, nil
}

func (pr *PlantingRepo) ListForUser(ctx context.Context, userID string) ([]*garden.Planting, error) {
	rows, err := pr.pool.Query(ctx, `
		SELECT id, user_id, seed_id, planted_at, location, status
		FROM plantings WHERE user_id = $1 ORDER BY planted_at`, userID)
	if err != nil {
		return nil, errors.Wrapf(err, "list plantings")
	}
	defer rows.Close()

	var list []*garden.Planting
	for rows.Next() {
		var planting garden.Planting
		if err := rows.Scan(&planting.ID, &planting.UserID, &planting.SeedID, &planting.PlantedAt,
			&planting.Location, &planting.Status); err != nil {
			return nil, errors.Wrapf(err, "scan planting")
		}
		list = append(list, &planting)
	}
	return list, rows.Err()
}

var _ garden.WishlistRepo = (*WishlistRepo)(nil)

type WishlistRepo struct {
	pool *pgxpool.Pool
}

func NewWishlistRepo(store *Store) *WishlistRepo {
	return &WishlistRepo{pool: store.Pool}
}

func (wr *WishlistRepo) Upsert(ctx context.Context, item *garden.WishlistItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	_, err := wr.pool.Exec(ctx, `
		INSERT INTO wishlist_items (id, user_id, plant_id, name, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			note = EXCLUDED.note`,
		item.ID, item.UserID, item.PlantID, item.Name, item.Note, item.CreatedAt)
	return errors.Wrapf(err, "upsert wishlist item %s", item.ID)
}

func (wr *WishlistRepo) Get(ctx context.Context, id string) (*garden.WishlistItem, error) {
	var item garden.WishlistItem
	err := wr.pool.QueryRow(ctx, `
		SELECT id, user_id, plant_id, name, note, created_at
		FROM wishlist_items WHERE id = $1`, id).
		Scan(&item.ID, &item.UserID, &item.PlantID, &item.Name, &item.Note, &item.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get wishlist item %s", id)
	}
	return &item, nil
}

func (wr *WishlistRepo) Delete(ctx context.Context, id string) error {
	tag, err := wr.pool.Exec(ctx, `DELETE FROM wishlist_items WHERE id = $1`, id)
	if err != nil {
		return errors.Wrapf(err, "delete wishlist item %s", id)
	}
	if tag.RowsAffected() == 0 {
		return errors.ErrNotFound
	}
	return nil
}

func (wr *WishlistRepo) ListForUser(ctx context.Context, userID string) ([]*garden.WishlistItem, error) {
	rows, err := wr.pool.Query(ctx, `
		SELECT id, user_id, plant_id, name, note, created_at
		FROM wishlist_items WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, errors.Wrapf(err, "list wishlist items")
	}
	defer rows.Close()

	var list []*garden.WishlistItem
	for rows.Next() {
		var item garden.WishlistItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.PlantID, &item.Name, &item.Note, &item.CreatedAt); err != nil {
			return nil, errors.Wrapf(err, "scan wishlist item")
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}
