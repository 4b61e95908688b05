package db

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account row. PasswordHash never leaves this layer.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserProfile is a candidate's matching profile: declared skills, target
// roles, preferences, and the monthly match quota counters.
type UserProfile struct {
	UserID            uuid.UUID `json:"user_id"`
	Skills            []string  `json:"skills"`
	TargetRoles       []string  `json:"target_roles"`
	ExperienceLevel   string    `json:"experience_level,omitempty"`
	YearsOfExperience int       `json:"years_of_experience,omitempty"`
	WorkStyle         string    `json:"work_style,omitempty"`
	Industries        []string  `json:"industries,omitempty"`
	Location          string    `json:"location,omitempty"`
	SalaryMin         int       `json:"salary_min,omitempty"`
	SalaryMax         int       `json:"salary_max,omitempty"`
	Goal              string    `json:"goal,omitempty"`
	MatchesUsed       int       `json:"monthly_job_matches_used"`
	MatchesLimit      int       `json:"monthly_job_matches_limit"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// QuotaExhausted reports whether the profile has used up its monthly
// match allowance. A non-positive limit means unlimited.
func (p *UserProfile) QuotaExhausted() bool {
	if p.MatchesLimit <= 0 {
		return false
	}
	return p.MatchesUsed >= p.MatchesLimit
}

// Job is one posting in the match pool.
type Job struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	Description  string    `json:"description"`
	Requirements []string  `json:"requirements"`
	Location     string    `json:"location,omitempty"`
	WorkType     string    `json:"work_type,omitempty"`
	SalaryMin    int       `json:"salary_min,omitempty"`
	SalaryMax    int       `json:"salary_max,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// JobFilters narrows the job pool before matching. Values are passed
// through to the fetch, not interpreted by the matcher.
type JobFilters struct {
	Location  string
	WorkType  string
	SalaryMin int
}
