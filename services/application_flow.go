package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"revenue_leak_audit/models"
	"sync"
	"time"
)

// ErrUnknownField is returned when a field update names no application field
var ErrUnknownField = errors.New("unknown application field")

// Timer is the part of *time.Timer the flow needs
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc is the production implementation.
type AfterFunc func(d time.Duration, f func()) Timer

func defaultAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// FlowOptions configures an ApplicationFlow
type FlowOptions struct {
	Relay        Relay
	RelayName    string
	Settings     RelaySettings
	ResetDelay   time.Duration
	AfterFunc    AfterFunc
	ScrollLock   *ScrollLock
	SubmissionID func() string
}

// ApplicationFlow is the page-level state scope of one visitor: the form record,
// the submission status, the in-flight flag and the modal with its scroll lock.
type ApplicationFlow struct {
	mu sync.Mutex

	relay        Relay
	relayName    string
	settings     RelaySettings
	resetDelay   time.Duration
	afterFunc    AfterFunc
	submissionID func() string

	record    models.FormRecord
	status    models.SubmissionStatus
	inFlight  bool
	modalOpen bool

	scroll        *ScrollLock
	releaseScroll func()
	resetTimer    Timer
	resetGen      uint64 // bumped by every submit; a reset only applies to its own generation
	tornDown      bool
}

// NewApplicationFlow creates an idle flow with a closed modal and an empty record
func NewApplicationFlow(opts FlowOptions) *ApplicationFlow {
	if opts.AfterFunc == nil {
		opts.AfterFunc = defaultAfterFunc
	}
	if opts.ScrollLock == nil {
		opts.ScrollLock = &ScrollLock{}
	}
	if opts.ResetDelay <= 0 {
		opts.ResetDelay = 2000 * time.Millisecond
	}
	if opts.RelayName == "" {
		opts.RelayName = "relay"
	}
	if opts.SubmissionID == nil {
		opts.SubmissionID = func() string { return "" }
	}

	return &ApplicationFlow{
		relay:        opts.Relay,
		relayName:    opts.RelayName,
		settings:     opts.Settings,
		resetDelay:   opts.ResetDelay,
		afterFunc:    opts.AfterFunc,
		submissionID: opts.SubmissionID,
		scroll:       opts.ScrollLock,
		status:       models.StatusIdle,
	}
}

// OpenModal shows the application modal and suspends page scrolling
func (f *ApplicationFlow) OpenModal() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.tornDown || f.modalOpen {
		return
	}
	f.modalOpen = true
	f.releaseScroll = f.scroll.Acquire()
	ModalOpens.Inc()
}

// CloseModal hides the modal and restores page scrolling
func (f *ApplicationFlow) CloseModal() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closeModalLocked()
}

func (f *ApplicationFlow) closeModalLocked() {
	f.modalOpen = false
	if f.releaseScroll != nil {
		f.releaseScroll()
		f.releaseScroll = nil
	}
}

// Teardown releases the scroll lock and cancels the pending success reset.
// An in-flight request is not cancelled; its outcome is recorded but schedules nothing.
func (f *ApplicationFlow) Teardown() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.tornDown = true
	f.cancelResetLocked()
	f.closeModalLocked()
}

// cancelResetLocked drops any pending success reset, including one whose callback already started
func (f *ApplicationFlow) cancelResetLocked() {
	f.resetGen++
	if f.resetTimer != nil {
		f.resetTimer.Stop()
		f.resetTimer = nil
	}
}

// UpdateRecord replaces the live form record
func (f *ApplicationFlow) UpdateRecord(record models.FormRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record = record
}

// SetField updates a single field of the live record
func (f *ApplicationFlow) SetField(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.record.Set(name, value) {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	return nil
}

// State returns a snapshot of the page state
func (f *ApplicationFlow) State() models.ApplicationState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return models.ApplicationState{
		Record:          f.record,
		Status:          f.status,
		InFlight:        f.inFlight,
		ModalOpen:       f.modalOpen,
		ScrollSuspended: f.scroll.Suspended(),
	}
}

// Submit sends the live record through the relay and returns the resulting status.
// Relay failures never escape: they become StatusError. The only returned error is
// ErrIncompleteApplication, in which case nothing was sent.
func (f *ApplicationFlow) Submit(ctx context.Context) (models.SubmissionStatus, error) {
	f.mu.Lock()
	record := f.record
	if !record.Complete() {
		status := f.status
		f.mu.Unlock()
		ApplicationsSubmitted.WithLabelValues(outcomeBlocked).Inc()
		return status, ErrIncompleteApplication
	}
	f.inFlight = true
	f.status = models.StatusIdle
	f.cancelResetLocked()
	gen := f.resetGen
	f.mu.Unlock()

	ApplicationsInFlight.Inc()
	defer func() {
		f.mu.Lock()
		f.inFlight = false
		f.mu.Unlock()
		ApplicationsInFlight.Dec()
	}()

	id := f.submissionID()
	err := f.send(context.WithoutCancel(ctx), record)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		f.status = models.StatusError
		outcome := outcomeFailed
		if errors.Is(err, ErrRelayRejected) {
			outcome = outcomeRejected
		}
		ApplicationsSubmitted.WithLabelValues(outcome).Inc()
		log.Printf("[WARNING] Application %s from %q (%s) failed: %v", id, record.Company, f.relayName, err)
		return f.status, nil
	}

	f.status = models.StatusSuccess
	ApplicationsSubmitted.WithLabelValues(outcomeSuccess).Inc()
	log.Printf("[INFO] Application %s from %q sent via %s", id, record.Company, f.relayName)

	if !f.tornDown && gen == f.resetGen {
		f.resetTimer = f.afterFunc(f.resetDelay, func() { f.resetAfterSuccess(gen) })
	}
	return f.status, nil
}

// send performs the single outbound request and folds every failure cause into an error
func (f *ApplicationFlow) send(ctx context.Context, record models.FormRecord) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("relay panicked: %v", r)
		}
	}()

	if f.relay == nil {
		return fmt.Errorf("no relay configured")
	}

	start := time.Now()
	resp, err := f.relay.Submit(ctx, BuildPayload(f.settings, record))
	RelayRequestDuration.WithLabelValues(f.relayName).Observe(time.Since(start).Seconds())
	if err != nil {
		return err
	}
	if resp == nil || !resp.Success {
		message := ""
		if resp != nil {
			message = resp.Message
		}
		return fmt.Errorf("%w: %s", ErrRelayRejected, message)
	}
	return nil
}

// resetAfterSuccess closes the modal and clears the record once the success message has been shown
func (f *ApplicationFlow) resetAfterSuccess(gen uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.tornDown || gen != f.resetGen {
		return
	}
	f.resetTimer = nil
	f.closeModalLocked()
	f.status = models.StatusIdle
	f.record = models.FormRecord{}
}

// ResetDelay is how long the success state stays visible
func (f *ApplicationFlow) ResetDelay() time.Duration {
	return f.resetDelay
}
