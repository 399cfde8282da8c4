package repofake

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/seedvault/seedvault/garden"
	"github.com/seedvault/seedvault/internal/errors"
)

var _ garden.SeedRepo = (*FakeSeedRepo)(nil)

type FakeSeedRepo struct {
	seeds map[string]*garden.Seed
	lock  sync.RWMutex
}

func NewFakeSeedRepo() *FakeSeedRepo {
	return &FakeSeedRepo{seeds: make(map[string]*garden.Seed)}
}

func (sr *FakeSeedRepo) Upsert(_ context.Context, seed *garden.Seed) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	if seed.ID == "" {
		seed.ID = uuid.New().String()
	}
	copied := *seed
	sr.seeds[seed.ID] = &copied
	return nil
}

func (sr *FakeSeedRepo) Get(_ context.Context, id string) (*garden.Seed, error) {
	sr.lock.RLock()
	defer sr.lock.RUnlock()

	seed, ok := sr.seeds[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	copied := *seed
	return &copied, nil
}

func (sr *FakeSeedRepo) Delete(_ context.Context, id string) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	if _, ok := sr.seeds[id]; !ok {
		return errors.ErrNotFound
	}
	delete(sr.seeds, id)
	return nil
}

func (sr *FakeSeedRepo) ListForUser(_ context.Context, userID string) ([]*garden.Seed, error) {
	sr.lock.RLock()
	defer sr.lock.RUnlock()

	matched := make([]*garden.Seed, 0)
	for _, s := range sr.seeds {
		if s.UserID != userID {
			continue
		}
		copied := *s
		matched = append(matched, &copied)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	return matched, nil
}

var _ garden.PlantingRepo = (*FakePlantingRepo)(nil)

type FakePlantingRepo struct {
	plantings map[string]*garden.Planting
	lock      sync.RWMutex
}

func NewFakePlantingRepo() *FakePlantingRepo {
	return &FakePlantingRepo{plantings: make(map[string]*garden.Planting)}
}

func (pr *FakePlantingRepo) Upsert(_ context.Context, planting *garden.Planting) error {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	if planting.ID == "" {
		planting.ID = uuid.New().String()
	}
	copied := *planting
	pr.plantings[planting.ID] = &copied
	return nil
}

func (pr *FakePlantingRepo) Get(_ context.Context, id string) (*garden.Planting, error) {
	pr.lock.RLock()
	defer pr.lock.RUnlock()

	planting, ok := pr.plantings[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	copied := *planting
	return &copied, nil
}

func (pr *FakePlantingRepo) ListForUser(_ context.Context, userID string) ([]*garden.Planting, error) {
	pr.lock.RLock()
	defer pr.lock.RUnlock()

	matched := make([]*garden.Planting, 0)
	for _, p := range pr.plantings {
		if p.UserID != userID {
			continue
		}
		copied := *p
		matched = append(matched, &copied)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].PlantedAt.Before(matched[j].PlantedAt) })
	return matched, nil
}

var _ garden.WishlistRepo = (*FakeWishlistRepo)(nil)

type FakeWishlistRepo struct {
	items map[string]*garden.WishlistItem
	lock  sync.RWMutex
}

func NewFakeWishlistRepo() *FakeWishlistRepo {
	return &FakeWishlistRepo{items: make(map[string]*garden.WishlistItem)}
}

func (wr *FakeWishlistRepo) Upsert(_ context.Context, item *garden.WishlistItem) error {
	wr.lock.Lock()
	defer wr.lock.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	copied := *item
	wr.items[item.ID] = &copied
	return nil
}

func (wr *FakeWishlistRepo) Get(_ context.Context, id string) (*garden.WishlistItem, error) {
	wr.lock.RLock()
	defer wr.lock.RUnlock()

	item, ok := wr.items[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	copied := *item
	return &copied, nil
}

func (wr *FakeWishlistRepo) Delete(_ context.Context, id string) error {
	wr.lock.Lock()
	defer wr.lock.Unlock()

	if _, ok := wr.items[id]; !ok {
		return errors.ErrNotFound
	}
	delete(wr.items, id)
	return nil
}

func (wr *FakeWishlistRepo) ListForUser(_ context.Context, userID string) ([]*garden.WishlistItem, error) {
	wr.lock.RLock()
	defer wr.lock.RUnlock()

	matched := make([]*garden.WishlistItem, 0)
	for _, i := range wr.items {
		if i.UserID != userID {
			continue
		}
		copied := *i
		matched = append(matched, &copied)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.Before(matched[j].CreatedAt) })
	return matched, nil
}
