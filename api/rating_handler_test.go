package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingOverwriteAndAverage(t *testing.T) {
	env := newTestEnv(t)
	_, alice := env.register("alice@example.com")
	_, bob := env.register("bob@example.com")
	projectID := env.createProject(alice, "Planter")
	path := "/api/ratings/" + itoa(projectID)
	avgPath := "/api/ratings/average/" + itoa(projectID)

	rec := env.do(http.MethodGet, avgPath, nil, alice)
	require.Equal(t, http.StatusOK, rec.Code)
	var avg AverageRatingResponse
	decode(t, rec, &avg)
	assert.Zero(t, avg.AverageRating)

	rec = env.do(http.MethodGet, path, nil, alice)
	assert.JSONEq(t, `{"rating":null}`, rec.Body.String())

	rate := func(token string, score int) {
		rec := env.do(http.MethodPost, "/api/ratings", map[string]any{"target_id": projectID, "rating": score}, token)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var resp RatingResponse
		decode(t, rec, &resp)
		assert.Equal(t, "Rating added/updated successfully", resp.Message)
		assert.Equal(t, score, resp.Rating.Rating)
	}
	rate(alice, 2)
	rate(alice, 4)
	rate(bob, 5)

	rec = env.do(http.MethodGet, path, nil, alice)
	assert.JSONEq(t, `{"rating":4}`, rec.Body.String())

	rec = env.do(http.MethodGet, avgPath, nil, alice)
	decode(t, rec, &avg)
	assert.Equal(t, 5, avg.AverageRating)
}

func TestRatingValidation(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.register("val@example.com")
	projectID := env.createProject(token, "Planter")

	tests := []struct {
		name   string
		body   map[string]any
		status int
	}{
		{"zero", map[string]any{"target_id": projectID, "rating": 0}, http.StatusBadRequest},
		{"six", map[string]any{"target_id": projectID, "rating": 6}, http.StatusBadRequest},
		{"missing target", map[string]any{"rating": 3}, http.StatusBadRequest},
		{"unknown project", map[string]any{"target_id": 999, "rating": 3}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(http.MethodPost, "/api/ratings", tt.body, token)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}
