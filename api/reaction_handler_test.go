package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/diyhub/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) react(token, targetType string, targetID uint, kind any) *ReactionCountsResponse {
	e.t.Helper()
	rec := e.do(http.MethodPost, "/api/reactions", map[string]any{
		"target_id":     targetID,
		"target_type":   targetType,
		"reaction_type": kind,
	}, token)
	require.Equal(e.t, http.StatusOK, rec.Code, rec.Body.String())

	var resp ReactionCountsResponse
	decode(e.t, rec, &resp)
	return &resp
}

func TestReactionLifecycle(t *testing.T) {
	env := newTestEnv(t)
	_, alice := env.register("alice@example.com")
	_, bob := env.register("bob@example.com")
	projectID := env.createProject(alice, "Stool")

	rec := env.do(http.MethodGet, fmt.Sprintf("/api/reactions?target_type=project&target_id=%d", projectID), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var empty ReactionCountsResponse
	decode(t, rec, &empty)
	assert.Equal(t, models.ReactionCounts{}, empty.Counts)

	env.react(alice, "project", projectID, "like")
	resp := env.react(bob, "project", projectID, "LIKE")
	assert.Equal(t, models.ReactionCounts{Like: 2}, resp.Counts)

	resp = env.react(alice, "project", projectID, "love")
	assert.Equal(t, models.ReactionCounts{Like: 1, Love: 1}, resp.Counts)

	resp = env.react(bob, "project", projectID, nil)
	assert.Equal(t, models.ReactionCounts{Love: 1}, resp.Counts)

	resp = env.react(alice, "project", projectID, "")
	assert.Equal(t, models.ReactionCounts{}, resp.Counts)
}

func TestReactionValidation(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.register("val@example.com")
	projectID := env.createProject(token, "Stool")
	top := env.comment(token, "project", projectID, "top", nil)
	reply := env.comment(token, "project", projectID, "reply", &top.ID)

	tests := []struct {
		name       string
		targetType string
		targetID   uint
		kind       any
		status     int
	}{
		{"invalid kind", "project", projectID, "meh", http.StatusBadRequest},
		{"forum is not reactable", "forum", projectID, "like", http.StatusBadRequest},
		{"missing project", "project", 999, "like", http.StatusNotFound},
		{"reply addressed as comment", "comment", reply.ID, "like", http.StatusNotFound},
		{"comment addressed as reply", "reply", top.ID, "like", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(http.MethodPost, "/api/reactions", map[string]any{
				"target_id":     tt.targetID,
				"target_type":   tt.targetType,
				"reaction_type": tt.kind,
			}, token)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}

	assert.Equal(t, models.ReactionCounts{Dislike: 1}, env.react(token, "comment", top.ID, "dislike").Counts)
	assert.Equal(t, models.ReactionCounts{Like: 1}, env.react(token, "reply", reply.ID, "like").Counts)
}
