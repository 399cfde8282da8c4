package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seedvault/seedvault/internal/errors"
	"github.com/seedvault/seedvault/plants"
)

var _ plants.Repo = (*PlantRepo)(nil)

type PlantRepo struct {
	pool *pgxpool.Pool
}

func NewPlantRepo(store *Store) *PlantRepo {
	return &PlantRepo{pool: store.Pool}
}

func (pr *PlantRepo) Upsert(ctx context.Context, plant *plants.Plant) error {
	if plant.ID == "" {
		plant.ID = uuid.New().String()
	}
	_, err := pr.pool.Exec(ctx, `
		INSERT INTO plants (id, common_name, species, description, sun_requirement, days_to_harvest, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			common_name = EXCLUDED.common_name,
			species = EXCLUDED.species,
			description = EXCLUDED.description,
			sun_requirement = EXCLUDED.sun_requirement,
			days_to_harvest = EXCLUDED.days_to_harvest,
			updated_at = EXCLUDED.updated_at`,
		plant.ID, plant.CommonName, plant.Species, plant.Description,
		plant.SunRequirement, plant.DaysToHarvest, plant.CreatedAt, plant.UpdatedAt)
	return errors.Wrapf(err, "upsert plant %s", plant.ID)
}

func (pr *PlantRepo) Get(ctx context.Context, id string) (*plants.Plant, error) {
	var plant plants.Plant
	err := pr.pool.QueryRow(ctx, `
		SELECT id, common_name, species, description, sun_requirement, days_to_harvest, created_at, updated_at
		FROM plants WHERE id = $1`, id).
		Scan(&plant.ID, &plant.CommonName, &plant.Species, &plant.Description,
			&plant.SunRequirement, &plant.DaysToHarvest, &plant.CreatedAt, &plant.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get plant %s", id)
	}
	return &plant, nil
}

func (pr *PlantRepo) Delete(ctx context.Context, id string) error {
	tag, err := pr.pool.Exec(ctx, `DELETE FROM plants WHERE id = $1`, id)
	if err != nil {
		return errors.Wrapf(err, "delete plant %s", id)
	}
	if tag.RowsAffected() == 0 {
		return errors.ErrNotFound
	}
	return nil
}

func (pr *PlantRepo) List(ctx context.Context, offset, limit int) ([]*plants.Plant, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := pr.pool.Query(ctx, `
		SELECT id, common_name, species, description, sun_requirement, days_to_harvest, created_at, updated_at
		FROM plants ORDER BY common_name OFFSET $1 LIMIT $2`, offset, limit)
	if err != nil {
		return nil, errors.Wrapf(err, "list plants")
	}
	defer rows.Close()

	var list []*plants.Plant
	for rows.Next() {
		var plant plants.Plant
		if err := rows.Scan(&plant.ID, &plant.CommonName, &plant.Species, &plant.Description,
			&plant.SunRequirement, &plant.DaysToHarvest, &plant.CreatedAt, &plant.UpdatedAt); err != nil {
			return nil, errors.Wrapf(err, "scan plant")
		}
		list = append(list, &plant)
	}
	return list, rows.Err()
}

var _ plants.SubmissionRepo = (*SubmissionRepo)(nil)

type SubmissionRepo struct {
	pool *pgxpool.Pool
}

func NewSubmissionRepo(store *Store) *SubmissionRepo {
	return &SubmissionRepo{pool: store.Pool}
}

func (sr *SubmissionRepo) Upsert(ctx context.Context, submission *plants.Submission) error {
	if submission.ID == "" {
		submission.ID = uuid.New().String()
	}
	_, err := sr.pool.Exec(ctx, `
		INSERT INTO plant_submissions
			(id, user_id, user_email, common_name, species, description, sun_requirement, days_to_harvest, status, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			reason = EXCLUDED.reason`,
		submission.ID, submission.UserID, submission.UserEmail, submission.CommonName,
		submission.Species, submission.Description, submission.SunRequirement,
		submission.DaysToHarvest, submission.Status, submission.Reason, submission.CreatedAt)
	return errors.Wrapf(err, "upsert submission %s", submission.ID)
}

func (sr *SubmissionRepo) Get(ctx context.Context, id string) (*plants.Submission, error) {
	var s plants.Submission
	err := sr.pool.QueryRow(ctx, `
		SELECT id, user_id, user_email, common_name, species, description, sun_requirement, days_to_harvest, status, reason, created_at
		FROM plant_submissions WHERE id = $1`, id).
		Scan(&s.ID, &s.UserID, &s.UserEmail, &s.CommonName, &s.Species, &s.Description,
			&s.SunRequirement, &s.DaysToHarvest, &s.Status, &s.Reason, &s.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get submission %s", id)
	}
	return &s, nil
}

func (sr *SubmissionRepo) ListByStatus(ctx context.Context, status plants.SubmissionStatus, offset, limit int) ([]*plants.Submission, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := sr.pool.Query(ctx, `
		SELECT id, user_id, user_email, common_name, species, description, sun_requirement, days_to_harvest, status, reason, created_at
		FROM plant_submissions WHERE status = $1 ORDER BY created_at OFFSET $2 LIMIT $3`,
		status, offset, limit)
	if err != nil {
		return nil, errors.Wrapf(err, "list submissions")
	}
	defer rows.Close()

	var list []*plants.Submission
	for rows.Next() {
		var s plants.Submission
		if err := rows.Scan(&s.ID, &s.UserID, &s.UserEmail, &s.CommonName, &s.Species, &s.Description,
			&s.SunRequirement, &s.DaysToHarvest, &s.Status, &s.Reason, &s.CreatedAt); err != nil {
			return nil, errors.Wrapf(err, "scan submission")
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
