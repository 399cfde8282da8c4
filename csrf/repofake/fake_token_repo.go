package repofake

import (
	"context"
	"sync"
	"time"

	"github.com/seedvault/seedvault/csrf"
	"github.com/seedvault/seedvault/internal/errors"
)

var _ csrf.TokenRepo = (*FakeTokenRepo)(nil)

type FakeTokenRepo struct {
	tokens map[string]*csrf.Token // token value -> token
	lock   sync.RWMutex
}

func NewFakeTokenRepo() *FakeTokenRepo {
	return &FakeTokenRepo{tokens: make(map[string]*csrf.Token)}
}

func (tr *FakeTokenRepo) Insert(_ context.Context, token *csrf.Token) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	copied := *token
	tr.tokens[token.Token] = &copied
	return nil
}

func (tr *FakeTokenRepo) Get(_ context.Context, token string) (*csrf.Token, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()

	stored, ok := tr.tokens[token]
	if !ok {
		return nil, errors.ErrNotFound
	}
	copied := *stored
	return &copied, nil
}

func (tr *FakeTokenRepo) ActiveForSession(_ context.Context, sessionID string, now time.Time) (*csrf.Token, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()

	var newest *csrf.Token
	for _, t := range tr.tokens {
		if t.SessionID != sessionID || t.Expired(now) {
			continue
		}
		if newest == nil || t.CreatedAt.After(newest.CreatedAt) {
			newest = t
		}
	}
	if newest == nil {
		return nil, errors.ErrNotFound
	}
	copied := *newest
	return &copied, nil
}

func (tr *FakeTokenRepo) DeleteForSession(_ context.Context, sessionID string) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	for value, t := range tr.tokens {
		if t.SessionID == sessionID {
			delete(tr.tokens, value)
		}
	}
	return nil
}

func (tr *FakeTokenRepo) DeleteExpired(_ context.Context, now time.Time) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	for value, t := range tr.tokens {
		if t.Expired(now) {
			delete(tr.tokens, value)
		}
	}
	return nil
}

// Count reports how many tokens are stored. Test helper.
func (tr *FakeTokenRepo) Count() int {
	tr.lock.RLock()
	defer tr.lock.RUnlock()
	return len(tr.tokens)
}
