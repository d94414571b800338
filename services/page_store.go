package services

import (
	"revenue_leak_audit/config"
	"sync"
	"time"

	"github.com/google/uuid"
)

// pageEntry tracks one visitor's flow and when it was last used
type pageEntry struct {
	flow     *ApplicationFlow
	lastSeen time.Time
}

// PageStore keeps visitor page states in memory, keyed by session ID.
// Expired entries are torn down so their scroll locks and timers are released.
type PageStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	newFlow func() *ApplicationFlow
	pages   map[string]*pageEntry
	now     func() time.Time
}

// NewFlowFactory returns a constructor for visitor flows sharing one relay
func NewFlowFactory(cfg *config.Config, relay Relay) func() *ApplicationFlow {
	return func() *ApplicationFlow {
		return NewApplicationFlow(FlowOptions{
			Relay:     relay,
			RelayName: cfg.RelayProvider,
			Settings: RelaySettings{
				AccessKey: cfg.RelayAccessKey,
				FromName:  cfg.RelayFromName,
			},
			ResetDelay:   cfg.SuccessResetDelay,
			SubmissionID: func() string { return uuid.New().String() },
		})
	}
}

// NewPageStore creates a store whose entries expire after ttl of inactivity
func NewPageStore(ttl time.Duration, newFlow func() *ApplicationFlow) *PageStore {
	return &PageStore{
		ttl:     ttl,
		newFlow: newFlow,
		pages:   make(map[string]*pageEntry),
		now:     time.Now,
	}
}

// Get returns the flow for id without creating one
func (s *PageStore) Get(id string) (*ApplicationFlow, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.pages[id]
	if !ok {
		return nil, false
	}
	entry.lastSeen = s.now()
	return entry.flow, true
}

// GetOrCreate returns the flow for id, creating a fresh one if needed
func (s *PageStore) GetOrCreate(id string) *ApplicationFlow {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if entry, ok := s.pages[id]; ok {
		entry.lastSeen = now
		return entry.flow
	}

	flow := s.newFlow()
	s.pages[id] = &pageEntry{flow: flow, lastSeen: now}
	ActiveVisitors.Set(float64(len(s.pages)))
	return flow
}

// Remove tears down and forgets the flow for id
func (s *PageStore) Remove(id string) {
	s.mu.Lock()
	entry, ok := s.pages[id]
	if ok {
		delete(s.pages, id)
		ActiveVisitors.Set(float64(len(s.pages)))
	}
	s.mu.Unlock()

	if ok {
		entry.flow.Teardown()
	}
}

// Sweep tears down every entry idle for longer than the TTL and returns how many were removed
func (s *PageStore) Sweep() int {
	s.mu.Lock()
	now := s.now()
	var expired []*ApplicationFlow
	for id, entry := range s.pages {
		if now.Sub(entry.lastSeen) > s.ttl {
			expired = append(expired, entry.flow)
			delete(s.pages, id)
		}
	}
	ActiveVisitors.Set(float64(len(s.pages)))
	s.mu.Unlock()

	for _, flow := range expired {
		flow.Teardown()
	}
	return len(expired)
}

// Len returns the number of tracked visitors
func (s *PageStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pages)
}

// Close tears down every tracked flow
func (s *PageStore) Close() {
	s.mu.Lock()
	pages := s.pages
	s.pages = make(map[string]*pageEntry)
	ActiveVisitors.Set(0)
	s.mu.Unlock()

	for _, entry := range pages {
		entry.flow.Teardown()
	}
}
