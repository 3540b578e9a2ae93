package events

import (
	"fmt"
	"sync"

	"github.com/diyhub/backend/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Event is one message fanned out to the subscribers of Topic.
type Event struct {
	Topic   string `json:"event"`
	Payload any    `json:"data"`
}

// Hub keeps the live subscribers per topic. Delivery is at-most-once: a subscriber whose
// buffer is full misses the event.
type Hub struct {
	mu sync.RWMutex
	//   map[topic] map[subscriberID] channel
	subs map[string]map[string]chan Event
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[string]map[string]chan Event),
	}
}

// AllTopics subscribes to every published event.
const AllTopics = "*"

// CommentTopic is the topic new comments on target are published under.
func CommentTopic(target models.CommentTarget) string {
	return fmt.Sprintf("%s_%d_comments", target.Kind(), target.ID())
}

// Subscribe registers a new subscriber on topic and returns its id and receive channel.
func (h *Hub) Subscribe(topic string, buffer int) (string, <-chan Event) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	id := uuid.NewString()

	h.mu.Lock()
	if h.subs[topic] == nil {
		h.subs[topic] = make(map[string]chan Event)
	}
	h.subs[topic][id] = ch
	h.mu.Unlock()

	return id, ch
}

// Unsubscribe removes the subscriber and closes its channel. Unknown ids are ignored.
func (h *Hub) Unsubscribe(topic, id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	topicSubs, ok := h.subs[topic]
	if !ok {
		return
	}
	if ch, ok := topicSubs[id]; ok {
		delete(topicSubs, id)
		close(ch)
	}
	if len(topicSubs) == 0 {
		delete(h.subs, topic)
	}
}

// Publish hands payload to every subscriber of topic, and of AllTopics, without blocking and
// returns how many received it.
func (h *Hub) Publish(topic string, payload any) int {
	event := Event{Topic: topic, Payload: payload}

	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := h.deliver(h.subs[topic], event)
	if topic != AllTopics {
		delivered += h.deliver(h.subs[AllTopics], event)
	}
	return delivered
}

func (h *Hub) deliver(subs map[string]chan Event, event Event) int {
	delivered := 0
	for id, ch := range subs {
		select {
		case ch <- event:
			delivered++
		default:
			log.Warn().Str("topic", event.Topic).Str("subscriber", id).Msg("subscriber buffer full, dropping event")
		}
	}
	return delivered
}

// Subscribers returns the number of live subscribers on topic.
func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[topic])
}
