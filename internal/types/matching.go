package types

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// DefaultMatchLimit is the result-list size used when a find-matches
// request does not specify one.
const DefaultMatchLimit = 6

// MatchFilters narrows the candidate job pool. Values pass straight
// through to the job fetch; the matcher does not interpret them.
type MatchFilters struct {
	Location  string `json:"location,omitempty"`
	WorkType  string `json:"workType,omitempty" validate:"omitempty,oneof=remote hybrid onsite"`
	SalaryMin int    `json:"salaryMin,omitempty" validate:"omitempty,min=0"`
}

// FindMatchesRequest is the body of POST /api/jobs/find-matches.
type FindMatchesRequest struct {
	UserID  string        `json:"userId" validate:"required,uuid"`
	Limit   int           `json:"limit,omitempty" validate:"omitempty,min=1,max=20"`
	Filters *MatchFilters `json:"filters,omitempty"`
}

// Validate checks the request and applies the default limit.
func (r *FindMatchesRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	if r.Limit == 0 {
		r.Limit = DefaultMatchLimit
	}
	return nil
}

// searchQueryPattern restricts initial-search queries to a conservative
// charset before the value goes anywhere near a LIKE pattern.
var searchQueryPattern = regexp.MustCompile(`^[a-zA-Z0-9\s\-_.]+$`)

// InitialSearchRequest is the body of POST /api/jobs/initial-search.
type InitialSearchRequest struct {
	Query    string `json:"query" validate:"required,min=1,max=100"`
	Location string `json:"location,omitempty" validate:"omitempty,max=100"`
}

// Validate checks length bounds via struct tags plus the query charset.
func (r *InitialSearchRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	if !searchQueryPattern.MatchString(r.Query) {
		return fmt.Errorf("invalid characters in query")
	}
	return nil
}

// OnboardingRequest is the body of POST /api/profile/onboarding.
type OnboardingRequest struct {
	Skills            []string `json:"skills" validate:"required,min=1,dive,min=1"`
	TargetRoles       []string `json:"targetRoles" validate:"required,min=1,dive,min=1"`
	ExperienceLevel   string   `json:"experienceLevel,omitempty" validate:"omitempty,oneof=entry mid senior executive"`
	YearsOfExperience int      `json:"yearsOfExperience,omitempty" validate:"omitempty,min=0,max=60"`
	WorkStyle         string   `json:"workStyle,omitempty" validate:"omitempty,oneof=remote hybrid onsite flexible"`
	Industries        []string `json:"industries,omitempty"`
	Location          string   `json:"location,omitempty" validate:"omitempty,max=100"`
	SalaryMin         int      `json:"salaryMin,omitempty" validate:"omitempty,min=0"`
	SalaryMax         int      `json:"salaryMax,omitempty" validate:"omitempty,min=0"`
	Goal              string   `json:"goal,omitempty" validate:"omitempty,max=500"`
}

// Validate checks field constraints and the salary range ordering.
func (r *OnboardingRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	if r.SalaryMax > 0 && r.SalaryMin > r.SalaryMax {
		return fmt.Errorf("salaryMin must not exceed salaryMax")
	}
	return nil
}
