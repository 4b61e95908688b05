package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// sanitizeFilterValue strips SQL LIKE wildcards from user-supplied
// filter text so it can be safely embedded in an ILIKE pattern.
func sanitizeFilterValue(value string) string {
	value = strings.ReplaceAll(value, "%", "")
	value = strings.ReplaceAll(value, "_", "")
	return strings.TrimSpace(value)
}

// buildListJobsQuery assembles the filtered job-pool query. Split out of
// ListJobs so the WHERE-clause assembly is testable without a database.
func buildListJobsQuery(filters JobFilters, limit int) (string, []any) {
	var sb strings.Builder
	sb.WriteString(
		`SELECT id, title, company, description, requirements, location,
		        work_type, salary_min, salary_max, tags, created_at
		 FROM jobs`)

	var conditions []string
	var args []any

	if filters.WorkType != "" {
		args = append(args, filters.WorkType)
		conditions = append(conditions, fmt.Sprintf("work_type = $%d", len(args)))
	}
	if loc := sanitizeFilterValue(filters.Location); loc != "" {
		args = append(args, "%"+loc+"%")
		conditions = append(conditions, fmt.Sprintf("location ILIKE $%d", len(args)))
	}
	if filters.SalaryMin > 0 {
		args = append(args, filters.SalaryMin)
		conditions = append(conditions, fmt.Sprintf("salary_max >= $%d", len(args)))
	}

	if len(conditions) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}

	args = append(args, limit)
	sb.WriteString(fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args)))

	return sb.String(), args
}

// ListJobs returns up to limit jobs matching the filters, most recent
// first. The ordering matters downstream: the fallback scorer breaks
// score ties by fetch order.
func (db *DB) ListJobs(ctx context.Context, filters JobFilters, limit int) ([]Job, error) {
	query, args := buildListJobsQuery(filters, limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	return scanJobs(rows)
}

// SearchJobs performs a title search for the initial-search surface.
// The query string is validated upstream; wildcards are stripped here
// as a second line of defense.
func (db *DB) SearchJobs(ctx context.Context, query string, limit int) ([]Job, error) {
	sanitized := sanitizeFilterValue(query)
	if sanitized == "" {
		return []Job{}, nil
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, title, company, description, requirements, location,
		        work_type, salary_min, salary_max, tags, created_at
		 FROM jobs
		 WHERE title ILIKE $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		"%"+sanitized+"%", limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search jobs: %w", err)
	}
	defer rows.Close()

	return scanJobs(rows)
}

// GetJobByID fetches a single posting. Returns nil (no error) when the
// job does not exist.
func (db *DB) GetJobByID(ctx context.Context, jobID uuid.UUID) (*Job, error) {
	var j Job
	err := db.pool.QueryRow(ctx,
		`SELECT id, title, company, description, requirements, location,
		        work_type, salary_min, salary_max, tags, created_at
		 FROM jobs
		 WHERE id = $1`,
		jobID,
	).Scan(
		&j.ID, &j.Title, &j.Company, &j.Description, &j.Requirements, &j.Location,
		&j.WorkType, &j.SalaryMin, &j.SalaryMax, &j.Tags, &j.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &j, nil
}

func scanJobs(rows pgx.Rows) ([]Job, error) {
	jobs := make([]Job, 0)
	for rows.Next() {
		var j Job
		if err := rows.Scan(
			&j.ID, &j.Title, &j.Company, &j.Description, &j.Requirements, &j.Location,
			&j.WorkType, &j.SalaryMin, &j.SalaryMax, &j.Tags, &j.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read jobs: %w", err)
	}
	return jobs, nil
}
