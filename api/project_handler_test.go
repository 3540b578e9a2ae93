package api

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPNG = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01")

func TestCreateProjectStartsWithZeroCounters(t *testing.T) {
	env := newTestEnv(t)
	userID, token := env.register("maker@example.com")

	rec := env.do(http.MethodPost, "/api/projects", map[string]any{
		"title":       "Desk Lamp",
		"tags":        []string{"Wood", "lighting", "wood"},
		"level":       "intermediate",
		"description": "<p>Cut, glue, wire.</p>",
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp ProjectResponse
	decode(t, rec, &resp)
	assert.Equal(t, "Project created successfully!", resp.Message)
	assert.NotZero(t, resp.Project.ID)
	assert.Equal(t, userID, resp.Project.UserID)
	assert.Equal(t, []string{"wood", "lighting"}, resp.Project.Tags)
	assert.Zero(t, resp.Project.Likes)
	assert.Zero(t, resp.Project.Views)
	assert.Zero(t, resp.Project.Comments)
	assert.Nil(t, resp.Project.CoverImage)
}

func TestCreateProjectValidation(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.register("v@example.com")

	tests := []struct {
		name  string
		body  map[string]any
		field string
	}{
		{"missing title", map[string]any{"tags": []string{"a"}, "level": "easy", "description": "d"}, "title"},
		{"empty tags", map[string]any{"title": "t", "tags": []string{" "}, "level": "easy", "description": "d"}, "tags"},
		{"bad level", map[string]any{"title": "t", "tags": []string{"a"}, "level": "expert", "description": "d"}, "level"},
		{"missing description", map[string]any{"title": "t", "tags": []string{"a"}, "level": "easy"}, "description"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(http.MethodPost, "/api/projects", tt.body, token)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.field, decodeMap(t, rec)["field"])
		})
	}
}

func multipartProject(t *testing.T, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("title", "Bird House"))
	require.NoError(t, mw.WriteField("tags", `["outdoor","wood"]`))
	require.NoError(t, mw.WriteField("level", "easy"))
	require.NoError(t, mw.WriteField("description", "nail it"))

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="cover_image"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func TestCreateProjectWithCoverImage(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.register("img@example.com")

	body, contentType := multipartProject(t, "bird house.png", "image/png", testPNG)
	req := httptest.NewRequest(http.MethodPost, "/api/projects", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp ProjectResponse
	decode(t, rec, &resp)
	require.NotNil(t, resp.Project.CoverImage)
	assert.Contains(t, *resp.Project.CoverImage, "-bird-house.png")
	assert.ElementsMatch(t, []string{"outdoor", "wood"}, resp.Project.Tags)

	_, err := os.Stat(filepath.Join(env.uploadDir, *resp.Project.CoverImage))
	assert.NoError(t, err)

	served := env.do(http.MethodGet, "/uploads/"+*resp.Project.CoverImage, nil, "")
	assert.Equal(t, http.StatusOK, served.Code)
	assert.Equal(t, testPNG, served.Body.Bytes())
}

func TestCreateProjectRejectsNonImage(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.register("gif@example.com")

	body, contentType := multipartProject(t, "anim.gif", "image/gif", []byte("GIF89a"))
	req := httptest.NewRequest(http.MethodPost, "/api/projects", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestListProjectsWithEngagement(t *testing.T) {
	env := newTestEnv(t)
	_, alice := env.register("alice@example.com")
	_, bob := env.register("bob@example.com")

	lamp := env.createProject(alice, "Desk Lamp", "wood")
	env.createProject(alice, "Shelf", "metal")

	for _, token := range []string{alice, bob} {
		rec := env.do(http.MethodPost, "/api/reactions", map[string]any{
			"target_id": lamp, "target_type": "project", "reaction_type": "like",
		}, token)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}
	rec := env.do(http.MethodPost, "/api/comments", map[string]any{
		"target_id": lamp, "target_type": "project", "content": "nice",
	}, bob)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.do(http.MethodGet, "/api/projects/all", nil, bob)
	require.Equal(t, http.StatusOK, rec.Code)

	var list ProjectCollection
	decode(t, rec, &list)
	require.Len(t, list.Projects, 2)

	byID := map[uint]ProjectView{}
	for _, p := range list.Projects {
		byID[p.ID] = p
	}
	assert.EqualValues(t, 2, byID[lamp].Likes)
	assert.EqualValues(t, 1, byID[lamp].Comments)
	assert.Equal(t, "Grace Hopper", byID[lamp].UserName)

	rec = env.do(http.MethodGet, "/api/projects/all?tag=metal", nil, bob)
	decode(t, rec, &list)
	require.Len(t, list.Projects, 1)
	assert.Equal(t, "Shelf", list.Projects[0].Title)

	rec = env.do(http.MethodGet, "/api/projects/all?level=impossible", nil, bob)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodGet, "/api/projects/tags", nil, bob)
	var tags TagsResponse
	decode(t, rec, &tags)
	assert.Equal(t, []string{"metal", "wood"}, tags.Tags)
}

func TestGetProjectCountsViews(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.register("views@example.com")
	id := env.createProject(token, "Clock")

	var resp ProjectResponse
	for i := 0; i < 2; i++ {
		rec := env.do(http.MethodGet, "/api/projects/"+itoa(id), nil, token)
		require.Equal(t, http.StatusOK, rec.Code)
		decode(t, rec, &resp)
	}
	assert.EqualValues(t, 2, resp.Project.Views)

	rec := env.do(http.MethodGet, "/api/projects/999", nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodGet, "/api/projects/abc", nil, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
