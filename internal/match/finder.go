// Package match orchestrates one job-matching request: fetch the
// candidate's profile and a bounded job pool, score the pool through the
// external AI engine when it is healthy or through the local heuristic
// otherwise, and account the usage quota.
package match

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ori-labs/aura-api/internal/db"
	"github.com/ori-labs/aura-api/internal/engine"
	"github.com/ori-labs/aura-api/internal/matching"
)

// DefaultPoolSize caps how many jobs one request evaluates. This bounds
// matching cost per request; it is backpressure, not a business rule.
const DefaultPoolSize = 50

// Scoring sources reported alongside results so callers can tell
// AI-backed scores from heuristic ones without treating either as an
// error state.
const (
	SourceAI       = "ai"
	SourceFallback = "fallback"
)

// ErrQuotaExhausted indicates the user has no monthly matches left.
var ErrQuotaExhausted = errors.New("monthly match quota exhausted")

// ProfileSource supplies candidate profiles.
type ProfileSource interface {
	GetUserProfile(ctx context.Context, userID uuid.UUID) (*db.UserProfile, error)
}

// JobSource supplies the candidate job pool, most recent first.
type JobSource interface {
	ListJobs(ctx context.Context, filters db.JobFilters, limit int) ([]db.Job, error)
}

// UsageRecorder persists the per-user match counter.
type UsageRecorder interface {
	IncrementMatchesUsed(ctx context.Context, userID uuid.UUID) error
}

// Delegate is the external AI matcher.
type Delegate interface {
	HealthCheck(ctx context.Context) bool
	GenerateMatches(ctx context.Context, req engine.MatchRequest) ([]engine.MatchResult, error)
}

// Input is one orchestration request.
type Input struct {
	UserID  uuid.UUID
	Limit   int
	Filters db.JobFilters
}

// Candidate is one scored job in the response. SkillsGap is populated on
// the AI path only; the fallback path reports the heuristic score alone.
type Candidate struct {
	Job        db.Job              `json:"job"`
	MatchScore int                 `json:"matchScore"`
	Reasoning  string              `json:"reasoning,omitempty"`
	KeyMatches []string            `json:"keyMatches,omitempty"`
	SkillsGap  *matching.SkillsGap `json:"skillsGap,omitempty"`
}

// Usage reports the quota state after this call.
type Usage struct {
	Used  int `json:"used"`
	Limit int `json:"limit"`
}

// Output is the ranked, size-bounded match list.
type Output struct {
	Matches []Candidate `json:"matches"`
	Usage   Usage       `json:"usage"`
	Source  string      `json:"source"`
}

// Finder runs match requests. All collaborators are injected; Finder
// holds no mutable state of its own, so one instance serves concurrent
// requests.
type Finder struct {
	profiles ProfileSource
	jobs     JobSource
	usage    UsageRecorder
	delegate Delegate
	logger   *zap.Logger
	poolSize int
}

// NewFinder wires a Finder. poolSize <= 0 selects DefaultPoolSize.
func NewFinder(profiles ProfileSource, jobs JobSource, usage UsageRecorder, delegate Delegate, logger *zap.Logger, poolSize int) *Finder {
	if poolSize <= 0 {
		poolSize = DefaultPoolSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Finder{
		profiles: profiles,
		jobs:     jobs,
		usage:    usage,
		delegate: delegate,
		logger:   logger,
		poolSize: poolSize,
	}
}

// FindMatches produces a ranked list of at most in.Limit jobs for one
// user.
//
// Profile and job-pool fetches are hard preconditions: either failing
// fails the whole call with no partial results. Every failure past that
// point degrades to the local heuristic for the entire batch, so a
// single response never mixes AI-derived and locally-derived scores.
func (f *Finder) FindMatches(ctx context.Context, in Input) (*Output, error) {
	profile, err := f.profiles.GetUserProfile(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	if profile.QuotaExhausted() {
		return nil, ErrQuotaExhausted
	}

	jobs, err := f.jobs.ListJobs(ctx, in.Filters, f.poolSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load job pool: %w", err)
	}

	var matches []Candidate
	source := SourceFallback

	if len(jobs) > 0 && f.delegate.HealthCheck(ctx) {
		matches, err = f.delegateMatches(ctx, profile, jobs, in.Limit)
		if err != nil {
			// Degrade the whole batch; never mix scoring methodologies
			// within one response.
			f.logger.Warn("ai matching failed, falling back to local scoring",
				zap.String("user_id", in.UserID.String()),
				zap.Error(err),
			)
		} else {
			source = SourceAI
		}
	}

	if source != SourceAI {
		matches = f.localMatches(profile.Skills, jobs, in.Limit)
	}

	// One increment per orchestration call, regardless of path. The
	// counter lives in the persistence layer and is updated atomically
	// there; a failed increment is logged, not surfaced, because the
	// matches themselves are already computed.
	if err := f.usage.IncrementMatchesUsed(ctx, in.UserID); err != nil {
		f.logger.Error("failed to record match usage",
			zap.String("user_id", in.UserID.String()),
			zap.Error(err),
		)
	}

	return &Output{
		Matches: matches,
		Usage:   Usage{Used: profile.MatchesUsed + 1, Limit: profile.MatchesLimit},
		Source:  source,
	}, nil
}

// delegateMatches scores the pool through the AI engine, then augments
// each returned match with a locally computed skills gap. The engine's
// score is authoritative; the gap is supplementary explanation.
func (f *Finder) delegateMatches(ctx context.Context, profile *db.UserProfile, jobs []db.Job, limit int) ([]Candidate, error) {
	byID := make(map[string]db.Job, len(jobs))
	engineJobs := make([]engine.Job, 0, len(jobs))
	for _, job := range jobs {
		byID[job.ID.String()] = job
		engineJobs = append(engineJobs, engine.Job{
			JobID:        job.ID.String(),
			Title:        job.Title,
			Company:      job.Company,
			Description:  job.Description,
			Requirements: job.Requirements,
			Location:     job.Location,
			WorkType:     job.WorkType,
			SalaryMin:    job.SalaryMin,
			SalaryMax:    job.SalaryMax,
			Tags:         job.Tags,
		})
	}

	results, err := f.delegate.GenerateMatches(ctx, engine.MatchRequest{
		Profile: engine.UserProfile{
			UserID:            profile.UserID.String(),
			Skills:            profile.Skills,
			Roles:             profile.TargetRoles,
			ExperienceLevel:   profile.ExperienceLevel,
			YearsOfExperience: profile.YearsOfExperience,
			WorkStyle:         profile.WorkStyle,
			Industries:        profile.Industries,
			Location:          profile.Location,
			SalaryMin:         profile.SalaryMin,
			SalaryMax:         profile.SalaryMax,
			Goal:              profile.Goal,
		},
		Jobs:  engineJobs,
		Limit: limit,
	})
	if err != nil {
		return nil, err
	}

	matches := make([]Candidate, 0, len(results))
	for _, result := range results {
		job, ok := byID[result.JobID]
		if !ok {
			f.logger.Warn("ai engine returned unknown job id", zap.String("job_id", result.JobID))
			continue
		}
		matches = append(matches, Candidate{
			Job:        job,
			MatchScore: result.MatchScore,
			Reasoning:  result.Reasoning,
			KeyMatches: result.KeyMatches,
		})
	}

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	// Gap computations are pure and independent per job; run them
	// concurrently once the full result list is in hand.
	g, _ := errgroup.WithContext(ctx)
	for i := range matches {
		g.Go(func() error {
			matches[i].SkillsGap = matching.Gap(profile.Skills, matches[i].Job.Requirements)
			return nil
		})
	}
	_ = g.Wait()

	return matches, nil
}

// localMatches is the deterministic fallback: heuristic score for every
// pooled job, descending order, ties kept in fetch order (most recent
// job first), truncated to limit.
func (f *Finder) localMatches(skills []string, jobs []db.Job, limit int) []Candidate {
	matches := make([]Candidate, 0, len(jobs))
	for _, job := range jobs {
		matches = append(matches, Candidate{
			Job:        job,
			MatchScore: matching.Score(skills, job.Requirements),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
