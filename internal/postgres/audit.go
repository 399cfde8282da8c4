package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seedvault/seedvault/audit"
	"github.com/seedvault/seedvault/internal/errors"
)

var _ audit.Repo = (*AuditRepo)(nil)

// AuditRepo is append-only by construction: it exposes no UPDATE or DELETE.
type AuditRepo struct {
	pool *pgxpool.Pool
}

func NewAuditRepo(store *Store) *AuditRepo {
	return &AuditRepo{pool: store.Pool}
}

func (ar *AuditRepo) Insert(ctx context.Context, entry *audit.Entry) error {
	_, err := ar.pool.Exec(ctx, `
		INSERT INTO admin_audit_logs
			(id, admin_id, admin_email, action, target_type, target_id, target_email,
			 reason, details, previous_state, new_state, ip_address, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		entry.ID, entry.AdminID, entry.AdminEmail, entry.Action, entry.TargetType,
		entry.TargetID, entry.TargetEmail, entry.Reason,
		nullableJSON(entry.Details), nullableJSON(entry.PreviousState), nullableJSON(entry.NewState),
		entry.IPAddress, entry.UserAgent, entry.CreatedAt)
	return errors.Wrapf(err, "insert audit entry")
}

func (ar *AuditRepo) Query(ctx context.Context, filters audit.Filters) (*audit.QueryResult, error) {
	where, args := buildAuditWhere(filters)

	var total int
	if err := ar.pool.QueryRow(ctx, `SELECT count(*) FROM admin_audit_logs`+where, args...).Scan(&total); err != nil {
		return nil, errors.Wrapf(err, "count audit entries")
	}

	query := fmt.Sprintf(`
		SELECT id, admin_id, admin_email, action, target_type, target_id, target_email,
		       reason, details, previous_state, new_state, ip_address, user_agent, created_at
		FROM admin_audit_logs%s
		ORDER BY created_at DESC
		OFFSET $%d LIMIT $%d`, where, len(args)+1, len(args)+2)
	args = append(args, filters.Offset, filters.Limit)

	rows, err := ar.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "query audit entries")
	}
	defer rows.Close()

	var entries []*audit.Entry
	for rows.Next() {
		var e audit.Entry
		if err := rows.Scan(&e.ID, &e.AdminID, &e.AdminEmail, &e.Action, &e.TargetType,
			&e.TargetID, &e.TargetEmail, &e.Reason,
			&e.Details, &e.PreviousState, &e.NewState,
			&e.IPAddress, &e.UserAgent, &e.CreatedAt); err != nil {
			return nil, errors.Wrapf(err, "scan audit entry")
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "iterate audit entries")
	}

	return &audit.QueryResult{
		Entries: entries,
		Total:   total,
		HasMore: filters.Offset+len(entries) < total,
	}, nil
}

func buildAuditWhere(filters audit.Filters) (string, []any) {
	var (
		clauses []string
		args    []any
	)
	add := func(clause string, arg any) {
		args = append(args, arg)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if filters.AdminID != "" {
		add("admin_id = $%d", filters.AdminID)
	}
	if filters.TargetID != "" {
		add("target_id = $%d", filters.TargetID)
	}
	if filters.TargetEmail != "" {
		add("target_email = $%d", filters.TargetEmail)
	}
	if filters.Action != "" {
		add("action = $%d", filters.Action)
	}
	if !filters.From.IsZero() {
		add("created_at >= $%d", filters.From)
	}
	if !filters.To.IsZero() {
		add("created_at <= $%d", filters.To)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	where := " WHERE " + clauses[0]
	for _, c := range clauses[1:] {
		where += " AND " + c
	}
	return where, args
}

// nullableJSON maps an absent payload to SQL NULL instead of the empty string
func nullableJSON(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return raw
}
