package audit

import (
	"context"
	"time"
)

// Filters narrows a Query. Zero values mean "no filter". From/To bound
// CreatedAt inclusively on both ends.
type Filters struct {
	AdminID     string
	TargetID    string
	TargetEmail string
	Action      Action
	From        time.Time
	To          time.Time
	Limit       int
	Offset      int
}

// QueryResult is one page of entries, newest first.
type QueryResult struct {
	Entries []*Entry
	Total   int
	HasMore bool
}

// Repo is append-only storage for audit entries. There is deliberately no
// update or delete operation.
type Repo interface {
	// Insert durably appends one entry and fills in its ID and CreatedAt
	// if unset
	Insert(ctx context.Context, entry *Entry) error

	// Query returns matching entries ordered by CreatedAt descending
	Query(ctx context.Context, filters Filters) (*QueryResult, error)
}
