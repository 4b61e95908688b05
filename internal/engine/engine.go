// Package engine provides the HTTP client for the external AI matching
// service. All calls are JSON over HTTP with explicit per-call timeouts
// so a stuck engine degrades to the local scoring path instead of
// hanging a request.
package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Per-call deadlines. Health checks must be cheap; batch matching and
// full analysis are allowed to think.
const (
	healthTimeout   = 5 * time.Second
	matchTimeout    = 30 * time.Second
	skillGapTimeout = 10 * time.Second
	analysisTimeout = 30 * time.Second
	rolesTimeout    = 15 * time.Second
)

// Error represents a failed engine call.
type Error struct {
	Endpoint string
	Message  string
	Cause    error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ai engine %s: %s: %v", e.Endpoint, e.Message, e.Cause)
	}
	return fmt.Sprintf("ai engine %s: %s", e.Endpoint, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Client talks to one AI engine instance. It is safe for concurrent use
// and is injected into the orchestrator explicitly; there is no package
// level singleton.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// New creates a client for the engine at baseURL.
func New(baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// HealthCheck reports whether the engine is ready to take matching
// traffic. A degraded engine still counts as available; any transport
// error, non-2xx status, or unknown status string counts as down.
func (c *Client) HealthCheck(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("ai engine health check failed", zap.Error(err))
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("ai engine health check returned non-2xx", zap.Int("status", resp.StatusCode))
		return false
	}

	var health healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return false
	}

	return health.Status == "healthy" || health.Status == "degraded"
}

// GenerateMatches scores a batch of jobs against one profile. The
// response body is validated against the embedded match-result schema
// before it is trusted.
func (c *Client) GenerateMatches(ctx context.Context, req MatchRequest) ([]MatchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, matchTimeout)
	defer cancel()

	body, err := c.postJSON(ctx, "/api/v1/match", req)
	if err != nil {
		return nil, err
	}

	if err := validateMatchResults(body); err != nil {
		return nil, &Error{Endpoint: "/api/v1/match", Message: "response failed schema validation", Cause: err}
	}

	var results []MatchResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, &Error{Endpoint: "/api/v1/match", Message: "failed to decode response", Cause: err}
	}

	return results, nil
}

// GetSkillGap asks the engine which required skills the user lacks.
// Returns nil (no result) rather than an error when the call fails;
// gap lookups are explanation only and callers degrade gracefully.
func (c *Client) GetSkillGap(ctx context.Context, userSkills, requiredSkills []string) *SkillGapResponse {
	ctx, cancel := context.WithTimeout(ctx, skillGapTimeout)
	defer cancel()

	body, err := c.postJSON(ctx, "/api/v1/skill-gap", SkillGapRequest{
		UserSkills:     userSkills,
		RequiredSkills: requiredSkills,
	})
	if err != nil {
		c.logger.Warn("skill gap request failed", zap.Error(err))
		return nil
	}

	var gap SkillGapResponse
	if err := json.Unmarshal(body, &gap); err != nil {
		c.logger.Warn("skill gap response malformed", zap.Error(err))
		return nil
	}

	return &gap
}

// AnalyzeSkills runs the full readiness analysis for a profile against
// a set of target jobs.
func (c *Client) AnalyzeSkills(ctx context.Context, profile UserProfile, targetJobs []Job) (*SkillAnalysisResult, error) {
	ctx, cancel := context.WithTimeout(ctx, analysisTimeout)
	defer cancel()

	payload := struct {
		Profile    UserProfile `json:"profile"`
		TargetJobs []Job       `json:"target_jobs"`
	}{Profile: profile, TargetJobs: targetJobs}

	body, err := c.postJSON(ctx, "/api/v1/analyze-skills", payload)
	if err != nil {
		return nil, err
	}

	var result SkillAnalysisResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &Error{Endpoint: "/api/v1/analyze-skills", Message: "failed to decode response", Cause: err}
	}

	return &result, nil
}

// RecommendRoles returns suggested target roles for a profile.
func (c *Client) RecommendRoles(ctx context.Context, profile UserProfile) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, rolesTimeout)
	defer cancel()

	body, err := c.postJSON(ctx, "/api/v1/recommend-roles", profile)
	if err != nil {
		return nil, err
	}

	var roles roleRecommendationResponse
	if err := json.Unmarshal(body, &roles); err != nil {
		return nil, &Error{Endpoint: "/api/v1/recommend-roles", Message: "failed to decode response", Cause: err}
	}

	return roles.SuggestedRoles, nil
}

// postJSON sends a JSON POST and returns the raw response body for 2xx
// responses. Non-2xx responses become an *Error carrying a best-effort
// message extracted from the body.
func (c *Client) postJSON(ctx context.Context, endpoint string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, &Error{Endpoint: endpoint, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, &Error{Endpoint: endpoint, Message: "failed to build request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Endpoint: endpoint, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Endpoint: endpoint, Message: "failed to read response", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{Endpoint: endpoint, Message: extractErrorMessage(body, resp.Status)}
	}

	return body, nil
}

// extractErrorMessage pulls the engine's error string out of a failure
// body, falling back to the HTTP status line.
func extractErrorMessage(body []byte, status string) string {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Error != "" {
		return er.Error
	}
	return status
}
