package services

import (
	"context"
	"errors"
	"revenue_leak_audit/models"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRelay records payloads and answers with a fixed response or error
type stubRelay struct {
	mu       sync.Mutex
	payloads []*Payload
	response *RelayResponse
	err      error
	release  chan struct{} // when set, Submit blocks until closed
	started  chan struct{}
}

func (r *stubRelay) Submit(ctx context.Context, payload *Payload) (*RelayResponse, error) {
	r.mu.Lock()
	r.payloads = append(r.payloads, payload)
	r.mu.Unlock()

	if r.started != nil {
		r.started <- struct{}{}
	}
	if r.release != nil {
		<-r.release
	}
	return r.response, r.err
}

func (r *stubRelay) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.payloads)
}

// fakeTimer captures a scheduled callback so tests can fire it
type fakeTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	t.stopped = true
	return true
}

type fakeClock struct {
	timers []*fakeTimer
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	t := &fakeTimer{delay: d, fn: f}
	c.timers = append(c.timers, t)
	return t
}

func completeRecord() models.FormRecord {
	return models.FormRecord{
		FullName:       "John Doe",
		Company:        "Acme Inc.",
		Email:          "john@acme.com",
		BrandChannel:   "https://acme.com",
		Offer:          "Consulting",
		Implementation: models.ImplementationYes,
	}
}

func newTestFlow(relay Relay, clock *fakeClock) *ApplicationFlow {
	return NewApplicationFlow(FlowOptions{
		Relay:      relay,
		RelayName:  "stub",
		Settings:   RelaySettings{AccessKey: "test-key", FromName: "Audit Bot"},
		ResetDelay: 2000 * time.Millisecond,
		AfterFunc:  clock.AfterFunc,
	})
}

func TestApplicationFlowSubmitSuccess(t *testing.T) {
	relay := &stubRelay{response: &RelayResponse{Success: true}}
	clock := &fakeClock{}
	flow := newTestFlow(relay, clock)

	flow.OpenModal()
	flow.UpdateRecord(completeRecord())

	status, err := flow.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.StatusSuccess, status)

	state := flow.State()
	assert.Equal(t, models.StatusSuccess, state.Status)
	assert.False(t, state.InFlight)
	assert.True(t, state.ModalOpen)
	assert.Equal(t, completeRecord(), state.Record, "record must be unchanged until the reset fires")
	assert.Equal(t, models.ButtonLabelSent, state.ButtonLabel())

	require.Equal(t, 1, relay.calls())
	payload := relay.payloads[0]
	assert.Equal(t, "test-key", payload.Get(FieldAccessKey))
	assert.Equal(t, "New Revenue Leak Audit Application - John Doe (Acme Inc.)", payload.Get(FieldSubject))
	assert.Equal(t, "Audit Bot", payload.Get(FieldFromName))
	assert.Equal(t, "Consulting", payload.Get(models.FieldOffer))

	require.Len(t, clock.timers, 1)
	assert.Equal(t, 2000*time.Millisecond, clock.timers[0].delay)

	clock.timers[0].fn()

	state = flow.State()
	assert.False(t, state.ModalOpen)
	assert.False(t, state.ScrollSuspended)
	assert.Equal(t, models.StatusIdle, state.Status)
	assert.True(t, state.Record.IsEmpty())
}

func TestApplicationFlowSubmitRemoteFailure(t *testing.T) {
	relay := &stubRelay{response: &RelayResponse{Success: false, Message: "invalid access key"}}
	clock := &fakeClock{}
	flow := newTestFlow(relay, clock)

	flow.OpenModal()
	flow.UpdateRecord(completeRecord())

	status, err := flow.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.StatusError, status)

	state := flow.State()
	assert.True(t, state.ModalOpen)
	assert.True(t, state.ScrollSuspended)
	assert.Equal(t, completeRecord(), state.Record)
	assert.False(t, state.ButtonDisabled())
	assert.Equal(t, models.ButtonLabelFailed, state.ButtonLabel())
	assert.Empty(t, clock.timers, "failure must not schedule a reset")
}

func TestApplicationFlowSubmitNetworkFailure(t *testing.T) {
	logical := newTestFlow(&stubRelay{response: &RelayResponse{Success: false}}, &fakeClock{})
	network := newTestFlow(&stubRelay{err: errors.New("dial tcp: no such host")}, &fakeClock{})

	for _, flow := range []*ApplicationFlow{logical, network} {
		flow.OpenModal()
		flow.UpdateRecord(completeRecord())
		_, err := flow.Submit(context.Background())
		require.NoError(t, err)
	}

	assert.Equal(t, logical.State(), network.State())
	assert.Equal(t, models.StatusError, network.State().Status)
}

func TestApplicationFlowSubmitNilResponse(t *testing.T) {
	flow := newTestFlow(&stubRelay{}, &fakeClock{})
	flow.UpdateRecord(completeRecord())

	status, err := flow.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.StatusError, status)
}

func TestApplicationFlowSubmitIncomplete(t *testing.T) {
	relay := &stubRelay{response: &RelayResponse{Success: true}}
	flow := newTestFlow(relay, &fakeClock{})

	for _, name := range models.ApplicationFields {
		t.Run(name, func(t *testing.T) {
			record := completeRecord()
			record.Set(name, "")
			flow.UpdateRecord(record)

			status, err := flow.Submit(context.Background())
			assert.ErrorIs(t, err, ErrIncompleteApplication)
			assert.Equal(t, models.StatusIdle, status)
		})
	}

	t.Run("InvalidSelector", func(t *testing.T) {
		record := completeRecord()
		record.Implementation = "maybe"
		flow.UpdateRecord(record)

		_, err := flow.Submit(context.Background())
		assert.ErrorIs(t, err, ErrIncompleteApplication)
	})

	assert.Equal(t, 0, relay.calls(), "blocked submissions must not reach the relay")
}

func TestApplicationFlowInFlight(t *testing.T) {
	relay := &stubRelay{
		response: &RelayResponse{Success: false},
		release:  make(chan struct{}),
		started:  make(chan struct{}, 1),
	}
	flow := newTestFlow(relay, &fakeClock{})
	flow.UpdateRecord(completeRecord())

	done := make(chan models.SubmissionStatus)
	go func() {
		status, _ := flow.Submit(context.Background())
		done <- status
	}()

	<-relay.started
	state := flow.State()
	assert.True(t, state.InFlight)
	assert.True(t, state.ButtonDisabled())
	assert.Equal(t, models.ButtonLabelSending, state.ButtonLabel())
	assert.Equal(t, models.StatusIdle, state.Status)

	close(relay.release)
	assert.Equal(t, models.StatusError, <-done)

	state = flow.State()
	assert.False(t, state.InFlight)
	assert.False(t, state.ButtonDisabled())
}

func TestApplicationFlowResubmitAfterError(t *testing.T) {
	relay := &stubRelay{
		response: &RelayResponse{Success: false},
		started:  make(chan struct{}, 1),
	}
	flow := newTestFlow(relay, &fakeClock{})
	flow.UpdateRecord(completeRecord())

	_, _ = flow.Submit(context.Background())
	<-relay.started
	require.Equal(t, models.StatusError, flow.State().Status)

	// Edit the live record, then retry while the relay is held
	require.NoError(t, flow.SetField(models.FieldOffer, "Coaching"))
	relay.release = make(chan struct{})

	done := make(chan struct{})
	go func() {
		_, _ = flow.Submit(context.Background())
		close(done)
	}()

	<-relay.started
	assert.Equal(t, models.StatusIdle, flow.State().Status, "status must leave error before the new request")
	close(relay.release)
	<-done

	require.Equal(t, 2, relay.calls())
	assert.Equal(t, "Coaching", relay.payloads[1].Get(models.FieldOffer))
}

func TestApplicationFlowResubmitDuringSuccessWindow(t *testing.T) {
	relay := &stubRelay{
		response: &RelayResponse{Success: true},
		started:  make(chan struct{}, 1),
	}
	clock := &fakeClock{}
	flow := newTestFlow(relay, clock)
	flow.OpenModal()
	flow.UpdateRecord(completeRecord())

	status, err := flow.Submit(context.Background())
	require.NoError(t, err)
	<-relay.started
	require.Equal(t, models.StatusSuccess, status)
	require.Len(t, clock.timers, 1)

	// Click "Sent!" again before the reset fires; hold the second request in the relay
	relay.release = make(chan struct{})
	done := make(chan models.SubmissionStatus)
	go func() {
		status, _ := flow.Submit(context.Background())
		done <- status
	}()
	<-relay.started

	assert.True(t, clock.timers[0].stopped, "the earlier reset is cancelled when the new submit starts")

	// A reset callback that was already running when it was stopped must not apply
	clock.timers[0].fn()
	state := flow.State()
	assert.True(t, state.InFlight)
	assert.True(t, state.ModalOpen)
	assert.True(t, state.ScrollSuspended)
	assert.Equal(t, completeRecord(), state.Record)

	close(relay.release)
	assert.Equal(t, models.StatusSuccess, <-done)

	// Only the second success schedules a live reset
	require.Len(t, clock.timers, 2)
	clock.timers[1].fn()
	state = flow.State()
	assert.False(t, state.ModalOpen)
	assert.Equal(t, models.StatusIdle, state.Status)
	assert.True(t, state.Record.IsEmpty())
}

func TestApplicationFlowDetachesCallerCancellation(t *testing.T) {
	var seen context.Context
	relay := relayFunc(func(ctx context.Context, p *Payload) (*RelayResponse, error) {
		seen = ctx
		return &RelayResponse{Success: true}, nil
	})
	flow := newTestFlow(relay, &fakeClock{})
	flow.UpdateRecord(completeRecord())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	status, err := flow.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSuccess, status)
	require.NotNil(t, seen)
	assert.NoError(t, seen.Err())
}

func TestApplicationFlowRecoversRelayPanic(t *testing.T) {
	relay := relayFunc(func(ctx context.Context, p *Payload) (*RelayResponse, error) {
		panic("boom")
	})
	flow := newTestFlow(relay, &fakeClock{})
	flow.UpdateRecord(completeRecord())

	status, err := flow.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.StatusError, status)
	assert.False(t, flow.State().InFlight)
}

func TestApplicationFlowModalScrollLock(t *testing.T) {
	t.Run("ExplicitClose", func(t *testing.T) {
		lock := &ScrollLock{}
		flow := NewApplicationFlow(FlowOptions{ScrollLock: lock})

		flow.OpenModal()
		flow.OpenModal()
		assert.True(t, lock.Suspended())

		flow.CloseModal()
		flow.CloseModal()
		assert.False(t, lock.Suspended())
		assert.Equal(t, 1, lock.Restores())
	})

	t.Run("SuccessAutoClose", func(t *testing.T) {
		lock := &ScrollLock{}
		clock := &fakeClock{}
		flow := NewApplicationFlow(FlowOptions{
			Relay:      &stubRelay{response: &RelayResponse{Success: true}},
			AfterFunc:  clock.AfterFunc,
			ScrollLock: lock,
		})
		flow.OpenModal()
		flow.UpdateRecord(completeRecord())
		_, _ = flow.Submit(context.Background())
		require.Len(t, clock.timers, 1)

		clock.timers[0].fn()
		flow.Teardown()
		assert.False(t, lock.Suspended())
		assert.Equal(t, 1, lock.Restores())
	})

	t.Run("TeardownWhileOpen", func(t *testing.T) {
		lock := &ScrollLock{}
		flow := NewApplicationFlow(FlowOptions{ScrollLock: lock})

		flow.OpenModal()
		flow.Teardown()
		flow.Teardown()
		assert.False(t, lock.Suspended())
		assert.Equal(t, 1, lock.Restores())

		flow.OpenModal()
		assert.False(t, lock.Suspended(), "a torn-down flow must not reacquire the lock")
	})
}

func TestApplicationFlowTeardownCancelsReset(t *testing.T) {
	clock := &fakeClock{}
	flow := newTestFlow(&stubRelay{response: &RelayResponse{Success: true}}, clock)
	flow.OpenModal()
	flow.UpdateRecord(completeRecord())
	_, _ = flow.Submit(context.Background())
	require.Len(t, clock.timers, 1)

	flow.Teardown()
	assert.True(t, clock.timers[0].stopped)

	// A late fire after teardown leaves the record alone
	clock.timers[0].fn()
	assert.Equal(t, completeRecord(), flow.State().Record)
}

func TestApplicationFlowSetFieldUnknown(t *testing.T) {
	flow := NewApplicationFlow(FlowOptions{})
	err := flow.SetField("phone", "123")
	assert.ErrorIs(t, err, ErrUnknownField)
}

type relayFunc func(ctx context.Context, p *Payload) (*RelayResponse, error)

func (f relayFunc) Submit(ctx context.Context, p *Payload) (*RelayResponse, error) {
	return f(ctx, p)
}
