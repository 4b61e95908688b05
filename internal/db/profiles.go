package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrProfileNotFound indicates no matching profile exists for a user.
var ErrProfileNotFound = errors.New("user profile not found")

// GetUserProfile fetches a candidate's matching profile, including the
// monthly quota counters. Returns ErrProfileNotFound when the user has
// not completed onboarding.
func (db *DB) GetUserProfile(ctx context.Context, userID uuid.UUID) (*UserProfile, error) {
	var p UserProfile
	err := db.pool.QueryRow(ctx,
		`SELECT user_id, skills, target_roles, experience_level, years_of_experience,
		        work_style, industries, location, salary_min, salary_max, goal,
		        monthly_job_matches_used, monthly_job_matches_limit, updated_at
		 FROM user_profiles
		 WHERE user_id = $1`,
		userID,
	).Scan(
		&p.UserID, &p.Skills, &p.TargetRoles, &p.ExperienceLevel, &p.YearsOfExperience,
		&p.WorkStyle, &p.Industries, &p.Location, &p.SalaryMin, &p.SalaryMax, &p.Goal,
		&p.MatchesUsed, &p.MatchesLimit, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}
	return &p, nil
}

// UpsertUserProfile creates or replaces the onboarding profile for a
// user. Quota counters are preserved on update and start at zero on
// first insert.
func (db *DB) UpsertUserProfile(ctx context.Context, p *UserProfile) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO user_profiles
		   (user_id, skills, target_roles, experience_level, years_of_experience,
		    work_style, industries, location, salary_min, salary_max, goal, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		 ON CONFLICT (user_id) DO UPDATE SET
		   skills = $2, target_roles = $3, experience_level = $4, years_of_experience = $5,
		   work_style = $6, industries = $7, location = $8, salary_min = $9,
		   salary_max = $10, goal = $11, updated_at = NOW()`,
		p.UserID, p.Skills, p.TargetRoles, p.ExperienceLevel, p.YearsOfExperience,
		p.WorkStyle, p.Industries, p.Location, p.SalaryMin, p.SalaryMax, p.Goal,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert user profile: %w", err)
	}
	return nil
}

// IncrementMatchesUsed bumps the monthly usage counter by one, as a
// single atomic update. Concurrent match requests from the same user
// therefore never under-count; reading the counter back for display is
// the caller's concern.
func (db *DB) IncrementMatchesUsed(ctx context.Context, userID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE user_profiles
		 SET monthly_job_matches_used = monthly_job_matches_used + 1
		 WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to increment matches used: %w", err)
	}
	return nil
}
