package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/diyhub/backend/events"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialWS(t *testing.T, srv *httptest.Server, query string, header http.Header) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws" + query
	conn, resp, err := websocket.DefaultDialer.Dial(url, header)
	if conn != nil {
		t.Cleanup(func() { conn.Close() })
	}
	return conn, resp, err
}

func TestWebsocketReceivesCommentEvents(t *testing.T) {
	env := newTestEnv(t)
	srv := httptest.NewServer(env.handler)
	t.Cleanup(srv.Close)

	_, token := env.register("ws@example.com")
	projectID := env.createProject(token, "Radio")
	topic := "project_" + itoa(projectID) + "_comments"

	conn, _, err := dialWS(t, srv, "?topic="+topic, nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return env.hub.Subscribers(topic) == 1 }, time.Second, 10*time.Millisecond)

	created := env.comment(token, "project", projectID, "live!", nil)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg struct {
		Event string `json:"event"`
		Data  struct {
			ID      uint   `json:"comment_id"`
			Content string `json:"content"`
		} `json:"data"`
	}
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, topic, msg.Event)
	assert.Equal(t, created.ID, msg.Data.ID)
	assert.Equal(t, "live!", msg.Data.Content)
}

func TestWebsocketWithoutTopicSeesEverything(t *testing.T) {
	env := newTestEnv(t)
	srv := httptest.NewServer(env.handler)
	t.Cleanup(srv.Close)

	conn, _, err := dialWS(t, srv, "", nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return env.hub.Subscribers(events.AllTopics) == 1 }, time.Second, 10*time.Millisecond)

	env.hub.Publish("forum_7_comments", map[string]string{"content": "hi"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event map[string]any
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "forum_7_comments", event["event"])
}

func TestWebsocketUnsubscribesOnClose(t *testing.T) {
	env := newTestEnv(t)
	srv := httptest.NewServer(env.handler)
	t.Cleanup(srv.Close)

	conn, _, err := dialWS(t, srv, "?topic=project_1_comments", nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return env.hub.Subscribers("project_1_comments") == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return env.hub.Subscribers("project_1_comments") == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestWebsocketRejectsForeignOrigin(t *testing.T) {
	env := newTestEnv(t)
	srv := httptest.NewServer(env.handler)
	t.Cleanup(srv.Close)

	_, resp, err := dialWS(t, srv, "", http.Header{"Origin": []string{"http://evil.test"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Zero(t, env.hub.Subscribers(events.AllTopics))
}
