package realtime

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryChannel is an in-process NotificationChannel used when Redis is not configured
// and in tests. Slow subscribers drop messages rather than block publishers.
type MemoryChannel struct {
	mu     sync.RWMutex
	topics map[string]map[*memorySubscription]struct{}
}

func NewMemoryChannel() *MemoryChannel {
	return &MemoryChannel{topics: make(map[string]map[*memorySubscription]struct{})}
}

func (m *MemoryChannel) Publish(_ context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for sub := range m.topics[topic] {
		select {
		case sub.out <- data:
		default:
		}
	}
	return nil
}

func (m *MemoryChannel) Subscribe(_ context.Context, topic string) (Subscription, error) {
	sub := &memorySubscription{owner: m, topic: topic, out: make(chan []byte, 16)}
	m.mu.Lock()
	if m.topics[topic] == nil {
		m.topics[topic] = make(map[*memorySubscription]struct{})
	}
	m.topics[topic][sub] = struct{}{}
	m.mu.Unlock()
	return sub, nil
}

type memorySubscription struct {
	owner *MemoryChannel
	topic string
	out   chan []byte
	once  sync.Once
}

func (s *memorySubscription) Messages() <-chan []byte {
	return s.out
}

func (s *memorySubscription) Close() error {
	s.once.Do(func() {
		s.owner.mu.Lock()
		delete(s.owner.topics[s.topic], s)
		if len(s.owner.topics[s.topic]) == 0 {
			delete(s.owner.topics, s.topic)
		}
		s.owner.mu.Unlock()
		close(s.out)
	})
	return nil
}
