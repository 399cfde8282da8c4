package repofake

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/seedvault/seedvault/internal/errors"
	"github.com/seedvault/seedvault/sessions"
)

var _ sessions.Repo = (*FakeSessionRepo)(nil)

type FakeSessionRepo struct {
	sessions map[string]*sessions.Session
	lock     sync.RWMutex
}

func NewFakeSessionRepo() *FakeSessionRepo {
	return &FakeSessionRepo{sessions: make(map[string]*sessions.Session)}
}

func (sr *FakeSessionRepo) Upsert(_ context.Context, session *sessions.Session) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	copied := *session
	sr.sessions[session.ID] = &copied
	return nil
}

func (sr *FakeSessionRepo) Get(_ context.Context, id string) (*sessions.Session, error) {
	sr.lock.RLock()
	defer sr.lock.RUnlock()

	session, ok := sr.sessions[id]
	if !ok {
		return nil, errors.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (sr *FakeSessionRepo) GetActiveForUser(_ context.Context, userID string, now time.Time) (*sessions.Session, error) {
	sr.lock.RLock()
	defer sr.lock.RUnlock()

	var canonical *sessions.Session
	for _, s := range sr.sessions {
		if s.UserID != userID || s.Expired(now) {
			continue
		}
		if canonical == nil || s.ExpiresAt.After(canonical.ExpiresAt) {
			canonical = s
		}
	}
	if canonical == nil {
		return nil, errors.ErrSessionNotFound
	}
	copied := *canonical
	return &copied, nil
}

func (sr *FakeSessionRepo) Extend(_ context.Context, id string, expiresAt time.Time) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	session, ok := sr.sessions[id]
	if !ok {
		return errors.ErrSessionNotFound
	}
	session.ExpiresAt = expiresAt
	return nil
}

func (sr *FakeSessionRepo) Delete(_ context.Context, id string) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	delete(sr.sessions, id)
	return nil
}

func (sr *FakeSessionRepo) DeleteForUser(_ context.Context, userID string) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	for id, s := range sr.sessions {
		if s.UserID == userID {
			delete(sr.sessions, id)
		}
	}
	return nil
}

func (sr *FakeSessionRepo) DeleteExpired(_ context.Context, now time.Time) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	for id, s := range sr.sessions {
		if s.Expired(now) {
			delete(sr.sessions, id)
		}
	}
	return nil
}
