package events

import (
	"sync"
	"testing"

	"github.com/diyhub/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentTopic(t *testing.T) {
	assert.Equal(t, "project_12_comments", CommentTopic(models.ProjectCommentTarget(12)))
	assert.Equal(t, "forum_3_comments", CommentTopic(models.ForumCommentTarget(3)))
}

func TestPublishReachesOnlyTopicSubscribers(t *testing.T) {
	hub := NewHub()
	_, a := hub.Subscribe("project_1_comments", 1)
	_, b := hub.Subscribe("project_1_comments", 1)
	_, other := hub.Subscribe("forum_1_comments", 1)

	delivered := hub.Publish("project_1_comments", "hello")
	assert.Equal(t, 2, delivered)

	assert.Equal(t, Event{Topic: "project_1_comments", Payload: "hello"}, <-a)
	assert.Equal(t, Event{Topic: "project_1_comments", Payload: "hello"}, <-b)
	assert.Len(t, other, 0)
}

func TestPublishDropsWhenBufferFull(t *testing.T) {
	hub := NewHub()
	_, ch := hub.Subscribe("t", 1)

	assert.Equal(t, 1, hub.Publish("t", 1))
	assert.Equal(t, 0, hub.Publish("t", 2))

	got := <-ch
	assert.Equal(t, 1, got.Payload)
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	hub := NewHub()
	id, ch := hub.Subscribe("t", 1)
	require.Equal(t, 1, hub.Subscribers("t"))

	hub.Unsubscribe("t", id)
	hub.Unsubscribe("t", id)

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, hub.Subscribers("t"))
	assert.Equal(t, 0, hub.Publish("t", "nobody"))
}

func TestConcurrentPublishAndSubscribe(t *testing.T) {
	hub := NewHub()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			id, _ := hub.Subscribe("t", 4)
			hub.Unsubscribe("t", id)
		}()
		go func() {
			defer wg.Done()
			hub.Publish("t", "x")
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, hub.Subscribers("t"))
}

func TestAllTopicsSubscriberSeesEverything(t *testing.T) {
	hub := NewHub()
	_, all := hub.Subscribe(AllTopics, 2)

	assert.Equal(t, 1, hub.Publish("project_1_comments", "a"))
	assert.Equal(t, 1, hub.Publish("forum_9_comments", "b"))

	assert.Equal(t, "project_1_comments", (<-all).Topic)
	assert.Equal(t, "forum_9_comments", (<-all).Topic)
}
