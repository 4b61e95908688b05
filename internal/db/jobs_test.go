package db

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilterValue(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain text untouched", "Berlin", "Berlin"},
		{"percent stripped", "Ber%lin", "Berlin"},
		{"underscore stripped", "Ber_lin", "Berlin"},
		{"wildcards only", "%_%", ""},
		{"trimmed", "  Berlin  ", "Berlin"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeFilterValue(tt.input))
		})
	}
}

func TestBuildListJobsQuery_NoFilters(t *testing.T) {
	query, args := buildListJobsQuery(JobFilters{}, 50)

	assert.NotContains(t, query, "WHERE")
	assert.Contains(t, query, "ORDER BY created_at DESC")
	assert.Contains(t, query, "LIMIT $1")
	require.Len(t, args, 1)
	assert.Equal(t, 50, args[0])
}

func TestBuildListJobsQuery_AllFilters(t *testing.T) {
	filters := JobFilters{
		Location:  "Berlin",
		WorkType:  "remote",
		SalaryMin: 70000,
	}

	query, args := buildListJobsQuery(filters, 10)

	assert.Contains(t, query, "work_type = $1")
	assert.Contains(t, query, "location ILIKE $2")
	assert.Contains(t, query, "salary_max >= $3")
	assert.Contains(t, query, "LIMIT $4")
	require.Len(t, args, 4)
	assert.Equal(t, "remote", args[0])
	assert.Equal(t, "%Berlin%", args[1])
	assert.Equal(t, 70000, args[2])
	assert.Equal(t, 10, args[3])
}

func TestBuildListJobsQuery_LocationWildcardsStripped(t *testing.T) {
	query, args := buildListJobsQuery(JobFilters{Location: "%Ber_lin%"}, 5)

	assert.Contains(t, query, "location ILIKE $1")
	require.Len(t, args, 2)
	assert.Equal(t, "%Berlin%", args[0])
}

func TestBuildListJobsQuery_WildcardOnlyLocationDropped(t *testing.T) {
	query, args := buildListJobsQuery(JobFilters{Location: "%%%"}, 5)

	assert.NotContains(t, query, "location")
	require.Len(t, args, 1)
}

func TestBuildListJobsQuery_PlaceholdersSequential(t *testing.T) {
	query, _ := buildListJobsQuery(JobFilters{WorkType: "hybrid", SalaryMin: 1}, 5)

	// No placeholder gaps regardless of which filters are present.
	assert.Contains(t, query, "$1")
	assert.Contains(t, query, "$2")
	assert.Contains(t, query, "$3")
	assert.False(t, strings.Contains(query, "$4"))
}

func TestUserProfile_QuotaExhausted(t *testing.T) {
	tests := []struct {
		name     string
		used     int
		limit    int
		expected bool
	}{
		{"under limit", 3, 10, false},
		{"at limit", 10, 10, true},
		{"over limit", 11, 10, true},
		{"zero limit means unlimited", 100, 0, false},
		{"negative limit means unlimited", 100, -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &UserProfile{MatchesUsed: tt.used, MatchesLimit: tt.limit}
			assert.Equal(t, tt.expected, p.QuotaExhausted())
		})
	}
}
