package plants

import "context"

type Repo interface {
	Upsert(ctx context.Context, plant *Plant) error
	Get(ctx context.Context, id string) (*Plant, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, offset, limit int) ([]*Plant, error)
}

type SubmissionRepo interface {
	Upsert(ctx context.Context, submission *Submission) error
	Get(ctx context.Context, id string) (*Submission, error)
	ListByStatus(ctx context.Context, status SubmissionStatus, offset, limit int) ([]*Submission, error)
}
