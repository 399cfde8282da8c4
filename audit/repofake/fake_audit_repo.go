package repofake

import (
	"context"
	"sort"
	"sync"

	"github.com/seedvault/seedvault/audit"
)

var _ audit.Repo = (*FakeAuditRepo)(nil)

type FakeAuditRepo struct {
	entries []*audit.Entry
	lock    sync.RWMutex
}

func NewFakeAuditRepo() *FakeAuditRepo {
	return &FakeAuditRepo{}
}

func (ar *FakeAuditRepo) Insert(_ context.Context, entry *audit.Entry) error {
	ar.lock.Lock()
	defer ar.lock.Unlock()

	copied := *entry
	ar.entries = append(ar.entries, &copied)
	return nil
}

func (ar *FakeAuditRepo) Query(_ context.Context, filters audit.Filters) (*audit.QueryResult, error) {
	ar.lock.RLock()
	defer ar.lock.RUnlock()

	matched := make([]*audit.Entry, 0)
	for _, e := range ar.entries {
		if !matches(e, filters) {
			continue
		}
		copied := *e
		matched = append(matched, &copied)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	if filters.Offset >= total {
		return &audit.QueryResult{Total: total}, nil
	}
	end := filters.Offset + filters.Limit
	if filters.Limit <= 0 || end > total {
		end = total
	}

	return &audit.QueryResult{
		Entries: matched[filters.Offset:end],
		Total:   total,
		HasMore: end < total,
	}, nil
}

func matches(e *audit.Entry, f audit.Filters) bool {
	if f.AdminID != "" && e.AdminID != f.AdminID {
		return false
	}
	if f.TargetID != "" && e.TargetID != f.TargetID {
		return false
	}
	if f.TargetEmail != "" && e.TargetEmail != f.TargetEmail {
		return false
	}
	if f.Action != "" && e.Action != f.Action {
		return false
	}
	if !f.From.IsZero() && e.CreatedAt.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && e.CreatedAt.After(f.To) {
		return false
	}
	return true
}

// Count reports how many entries have been appended. Test helper.
func (ar *FakeAuditRepo) Count() int {
	ar.lock.RLock()
	defer ar.lock.RUnlock()
	return len(ar.entries)
}
