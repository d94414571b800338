package services

import "sync"

// ScrollLock tracks whether page scrolling is suspended for one visitor page
type ScrollLock struct {
	mu        sync.Mutex
	suspended bool
	restores  int
}

// Acquire suspends scrolling and returns the release function.
// Release restores scrolling once; further calls are no-ops.
func (l *ScrollLock) Acquire() (release func()) {
	l.mu.Lock()
	l.suspended = true
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			l.suspended = false
			l.restores++
			l.mu.Unlock()
		})
	}
}

// Suspended reports whether scrolling is currently suspended
func (l *ScrollLock) Suspended() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.suspended
}

// Restores returns how many times scrolling has been restored
func (l *ScrollLock) Restores() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.restores
}
