package repofake

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/seedvault/seedvault/internal/errors"
	"github.com/seedvault/seedvault/plants"
)

var _ plants.Repo = (*FakePlantRepo)(nil)

type FakePlantRepo struct {
	plants map[string]*plants.Plant
	lock   sync.RWMutex
}

func NewFakePlantRepo() *FakePlantRepo {
	return &FakePlantRepo{plants: make(map[string]*plants.Plant)}
}

func (pr *FakePlantRepo) Upsert(_ context.Context, plant *plants.Plant) error {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	if plant.ID == "" {
		plant.ID = uuid.New().String()
	}
	copied := *plant
	pr.plants[plant.ID] = &copied
	return nil
}

func (pr *FakePlantRepo) Get(_ context.Context, id string) (*plants.Plant, error) {
	pr.lock.RLock()
	defer pr.lock.RUnlock()

	plant, ok := pr.plants[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	copied := *plant
	return &copied, nil
}

func (pr *FakePlantRepo) Delete(_ context.Context, id string) error {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	if _, ok := pr.plants[id]; !ok {
		return errors.ErrNotFound
	}
	delete(pr.plants, id)
	return nil
}

func (pr *FakePlantRepo) List(_ context.Context, offset, limit int) ([]*plants.Plant, error) {
	pr.lock.RLock()
	defer pr.lock.RUnlock()

	all := make([]*plants.Plant, 0, len(pr.plants))
	for _, p := range pr.plants {
		copied := *p
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CommonName < all[j].CommonName })

	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

var _ plants.SubmissionRepo = (*FakeSubmissionRepo)(nil)

type FakeSubmissionRepo struct {
	submissions map[string]*plants.Submission
	lock        sync.RWMutex
}

func NewFakeSubmissionRepo() *FakeSubmissionRepo {
	return &FakeSubmissionRepo{submissions: make(map[string]*plants.Submission)}
}

func (sr *FakeSubmissionRepo) Upsert(_ context.Context, submission *plants.Submission) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	if submission.ID == "" {
		submission.ID = uuid.New().String()
	}
	copied := *submission
	sr.submissions[submission.ID] = &copied
	return nil
}

func (sr *FakeSubmissionRepo) Get(_ context.Context, id string) (*plants.Submission, error) {
	sr.lock.RLock()
	defer sr.lock.RUnlock()

	submission, ok := sr.submissions[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	copied := *submission
	return &copied, nil
}

func (sr *FakeSubmissionRepo) ListByStatus(_ context.Context, status plants.SubmissionStatus, offset, limit int) ([]*plants.Submission, error) {
	sr.lock.RLock()
	defer sr.lock.RUnlock()

	matched := make([]*plants.Submission, 0)
	for _, s := range sr.submissions {
		if s.Status != status {
			continue
		}
		copied := *s
		matched = append(matched, &copied)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.Before(matched[j].CreatedAt) })

	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}
