package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ori-labs/aura-api/internal/db"
	"github.com/ori-labs/aura-api/internal/match"
	"github.com/ori-labs/aura-api/internal/matching"
	"github.com/ori-labs/aura-api/internal/server/middleware"
	"github.com/ori-labs/aura-api/internal/types"
)

const (
	jobListLimit   = 100
	jobSearchLimit = 20
)

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleMe returns the authenticated user's account, profile, and
// current quota usage. A missing profile is not an error: the user
// simply has not completed onboarding yet.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := s.store.GetUserByID(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load user")
		return
	}
	if user == nil {
		writeError(w, HTTPStatus(&ErrUserNotFound{UserID: userID}), "User not found")
		return
	}

	response := map[string]any{
		"user": convertDBUserToTypesUser(user),
	}

	profile, err := s.store.GetUserProfile(r.Context(), userID)
	switch {
	case err == nil:
		response["profile"] = profile
		response["usage"] = match.Usage{Used: profile.MatchesUsed, Limit: profile.MatchesLimit}
	case errors.Is(err, db.ErrProfileNotFound):
		response["profile"] = nil
	default:
		writeError(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// handleOnboarding upserts the authenticated user's matching profile.
func (s *Server) handleOnboarding(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.OnboardingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		verr := validationError(err)
		writeError(w, HTTPStatus(verr), verr.Error())
		return
	}

	profile := &db.UserProfile{
		UserID:            userID,
		Skills:            req.Skills,
		TargetRoles:       req.TargetRoles,
		ExperienceLevel:   req.ExperienceLevel,
		YearsOfExperience: req.YearsOfExperience,
		WorkStyle:         req.WorkStyle,
		Industries:        req.Industries,
		Location:          req.Location,
		SalaryMin:         req.SalaryMin,
		SalaryMax:         req.SalaryMax,
		Goal:              req.Goal,
	}

	if err := s.store.UpsertUserProfile(r.Context(), profile); err != nil {
		s.logger.Error("failed to upsert profile", zap.String("user_id", userID.String()), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to save profile")
		return
	}

	saved, err := s.store.GetUserProfile(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"profile": saved})
}

// handleListJobs returns the most recent postings.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.store.ListJobs(r.Context(), db.JobFilters{}, jobListLimit)
	if err != nil {
		s.logger.Error("failed to list jobs", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to load jobs")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"jobs": jobs})
}

// handleInitialSearch performs a validated title search.
func (s *Server) handleInitialSearch(w http.ResponseWriter, r *http.Request) {
	var req types.InitialSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		verr := validationError(err)
		writeError(w, HTTPStatus(verr), verr.Error())
		return
	}

	jobs, err := s.store.SearchJobs(r.Context(), req.Query, jobSearchLimit)
	if err != nil {
		s.logger.Error("job search failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to search jobs")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"jobs": jobs})
}

// handleFindMatches runs the matching orchestration for the
// authenticated user.
func (s *Server) handleFindMatches(w http.ResponseWriter, r *http.Request) {
	authedUserID, err := middleware.GetUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.FindMatchesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		verr := validationError(err)
		writeError(w, HTTPStatus(verr), verr.Error())
		return
	}

	requestedUserID, err := uuid.Parse(req.UserID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid userId")
		return
	}
	if requestedUserID != authedUserID {
		ferr := &ErrForbidden{Message: "Forbidden - Can only request your own matches"}
		writeError(w, HTTPStatus(ferr), ferr.Error())
		return
	}

	in := match.Input{UserID: requestedUserID, Limit: req.Limit}
	if req.Filters != nil {
		in.Filters = db.JobFilters{
			Location:  req.Filters.Location,
			WorkType:  req.Filters.WorkType,
			SalaryMin: req.Filters.SalaryMin,
		}
	}

	out, err := s.finder.FindMatches(r.Context(), in)
	if err != nil {
		if errors.Is(err, match.ErrQuotaExhausted) {
			writeError(w, http.StatusTooManyRequests, "Monthly match limit reached")
			return
		}
		// Collaborator failures stay behind a generic message.
		s.logger.Error("find matches failed", zap.String("user_id", authedUserID.String()), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not load matches")
		return
	}

	writeJSON(w, http.StatusOK, out)
}

// handleSkillsGap computes the authenticated user's skill gap for one
// posting. The AI engine is asked first; when it cannot answer, the
// local classifier produces the same shape. A job with no listed
// requirements has no gap to report, so skillsGap is null.
func (s *Server) handleSkillsGap(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	job, err := s.store.GetJobByID(r.Context(), jobID)
	if err != nil {
		s.logger.Error("failed to load job", zap.String("job_id", jobID.String()), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to load job")
		return
	}
	if job == nil {
		writeError(w, http.StatusNotFound, "Job not found")
		return
	}

	profile, err := s.store.GetUserProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, db.ErrProfileNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}

	var gap *matching.SkillsGap
	if len(job.Requirements) > 0 {
		if resp := s.gaps.GetSkillGap(r.Context(), profile.Skills, job.Requirements); resp != nil {
			gap = &matching.SkillsGap{
				UserSkills:     resp.UserSkills,
				RequiredSkills: resp.RequiredSkills,
				MissingSkills:  resp.MissingSkills,
			}
		} else {
			gap = matching.Gap(profile.Skills, job.Requirements)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"skillsGap": gap})
}
