package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/seedvault/seedvault/internal/errors"
)

// Log wraps a Repo with the server-side paging policy and entry stamping.
type Log struct {
	repo            Repo
	defaultPageSize int
	maxPageSize     int
	nowTime         func() time.Time
}

// Option defines a function type to modify the Log instance.
type Option func(*Log)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) Option {
	return func(l *Log) {
		l.nowTime = nowFunc
	}
}

func NewLog(repo Repo, defaultPageSize, maxPageSize int, options ...Option) *Log {
	l := &Log{
		repo:            repo,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
		nowTime:         time.Now,
	}
	for _, option := range options {
		option(l)
	}
	return l
}

// Record appends one entry and returns its identifier. The action kind must
// be one of the known enumeration values.
func (l *Log) Record(ctx context.Context, entry *Entry) (string, error) {
	if !entry.Action.Valid() {
		return "", errors.Wrapf(errors.ErrValidationFailed, "unknown audit action %q", entry.Action)
	}
	if entry.AdminID == "" {
		return "", errors.Wrapf(errors.ErrValidationFailed, "audit entry requires an admin id")
	}

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = l.nowTime()
	}

	if err := l.repo.Insert(ctx, entry); err != nil {
		return "", errors.Wrapf(err, "append audit entry")
	}
	return entry.ID, nil
}

// Query returns matching entries newest first. A requested page size above
// the server cap is silently clamped to the cap.
func (l *Log) Query(ctx context.Context, filters Filters) (*QueryResult, error) {
	if filters.Limit <= 0 {
		filters.Limit = l.defaultPageSize
	}
	if filters.Limit > l.maxPageSize {
		filters.Limit = l.maxPageSize
	}
	if filters.Offset < 0 {
		filters.Offset = 0
	}
	return l.repo.Query(ctx, filters)
}
