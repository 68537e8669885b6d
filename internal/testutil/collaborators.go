package testutil

import (
	"context"
	"sync"

	"github.com/leaseflow/leaseflow/internal/types"
)

// RecordingStatusSyncer implements property.StatusSyncer and records every
// status it receives. Err, when set, makes every call fail.
type RecordingStatusSyncer struct {
	mu       sync.Mutex
	statuses map[string]types.PropertyStatus
	calls    int

	Err error
}

// NewRecordingStatusSyncer creates a new recording status syncer
func NewRecordingStatusSyncer() *RecordingStatusSyncer {
	return &RecordingStatusSyncer{
		statuses: make(map[string]types.PropertyStatus),
	}
}

func (s *RecordingStatusSyncer) SetPropertyStatus(ctx context.Context, propertyID string, status types.PropertyStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	if s.Err != nil {
		return s.Err
	}
	s.statuses[propertyID] = status
	return nil
}

// StatusOf returns the last status recorded for a property
func (s *RecordingStatusSyncer) StatusOf(propertyID string) (types.PropertyStatus, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	status, ok := s.statuses[propertyID]
	return status, ok
}

// Calls returns how many times the syncer was invoked
func (s *RecordingStatusSyncer) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// PublishedEvent is one event captured by the CapturingPublisher
type PublishedEvent struct {
	Topic   string
	Payload interface{}
}

// CapturingPublisher implements events.Publisher and captures everything
// published for assertions.
type CapturingPublisher struct {
	mu     sync.Mutex
	events []PublishedEvent
}

// NewCapturingPublisher creates a new capturing publisher
func NewCapturingPublisher() *CapturingPublisher {
	return &CapturingPublisher{}
}

func (p *CapturingPublisher) Publish(ctx context.Context, topic string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, PublishedEvent{Topic: topic, Payload: payload})
	return nil
}

// Events returns a copy of everything published so far
func (p *CapturingPublisher) Events() []PublishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]PublishedEvent, len(p.events))
	copy(out, p.events)
	return out
}
