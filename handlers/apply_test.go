package handlers

import (
	"errors"
	"net/http"
	"revenue_leak_audit/models"
	"revenue_leak_audit/services"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenApplicationHandler(t *testing.T) {
	t.Run("HTMX request renders the modal and suspends scrolling", func(t *testing.T) {
		flow := newTestFlow(&stubRelay{})
		c, rec := setupHTMX(http.MethodPost, "/apply/open", nil)
		attachFlow(c, flow)

		require.NoError(t, OpenApplicationHandler(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `class="modal-backdrop"`)
		assert.Contains(t, rec.Body.String(), `id="application-form"`)
		assert.JSONEq(t, `{"scroll-lock":{"suspended":true}}`, rec.Header().Get("HX-Trigger"))

		state := flow.State()
		assert.True(t, state.ModalOpen)
		assert.True(t, state.ScrollSuspended)
	})

	t.Run("plain form post redirects back to the page", func(t *testing.T) {
		flow := newTestFlow(&stubRelay{})
		_, c, rec := setupEcho(http.MethodPost, "/apply/open", nil)
		attachFlow(c, flow)

		require.NoError(t, OpenApplicationHandler(c))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
		assert.True(t, flow.State().ModalOpen)
	})

	t.Run("missing flow is a server error", func(t *testing.T) {
		c, _ := setupHTMX(http.MethodPost, "/apply/open", nil)

		err := OpenApplicationHandler(c)
		require.Error(t, err)
	})
}

func TestCloseApplicationHandler(t *testing.T) {
	flow := newTestFlow(&stubRelay{})
	flow.OpenModal()
	flow.UpdateRecord(models.FormRecord{FullName: "Jane"})

	c, rec := setupHTMX(http.MethodPost, "/apply/close", nil)
	attachFlow(c, flow)

	require.NoError(t, CloseApplicationHandler(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `<div id="application-modal"></div>`, rec.Body.String())
	assert.JSONEq(t, `{"scroll-lock":{"suspended":false}}`, rec.Header().Get("HX-Trigger"))

	state := flow.State()
	assert.False(t, state.ModalOpen)
	assert.False(t, state.ScrollSuspended)
	assert.Equal(t, "Jane", state.Record.FullName, "closing keeps the draft")
}

func TestSaveDraftHandler(t *testing.T) {
	flow := newTestFlow(&stubRelay{})
	record := models.FormRecord{FullName: "Jane Doe", Company: "Acme Inc"}

	c, rec := setupHTMX(http.MethodPost, "/apply/draft", applicationForm(record))
	attachFlow(c, flow)

	require.NoError(t, SaveDraftHandler(c))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, record, flow.State().Record)
}

func TestSubmitApplicationHandler(t *testing.T) {
	t.Run("successful relay shows the sent state", func(t *testing.T) {
		relay := &stubRelay{resp: &services.RelayResponse{Success: true}}
		flow := newTestFlow(relay)
		flow.OpenModal()

		c, rec := setupHTMX(http.MethodPost, "/apply", applicationForm(completeRecord()))
		attachFlow(c, flow)

		require.NoError(t, SubmitApplicationHandler(c))

		body := rec.Body.String()
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, relay.Calls())
		assert.Contains(t, body, models.ButtonLabelSent)
		assert.Contains(t, body, models.SuccessMessage)
		assert.Contains(t, body, `hx-get="/apply/modal"`)
		assert.Contains(t, body, "load delay:2100ms")

		state := flow.State()
		assert.Equal(t, models.StatusSuccess, state.Status)
		assert.False(t, state.InFlight)
		assert.True(t, state.ModalOpen, "modal stays open until the reset fires")
		assert.Equal(t, completeRecord(), state.Record)

		payload := relay.payloads[0]
		assert.Equal(t, "Jane Doe", payload.Get(models.FieldFullName))
		assert.Equal(t, models.ImplementationYes, payload.Get(models.FieldImplementation))
	})

	t.Run("rejected relay shows the failure state", func(t *testing.T) {
		relay := &stubRelay{resp: &services.RelayResponse{Success: false, Message: "invalid key"}}
		flow := newTestFlow(relay)

		c, rec := setupHTMX(http.MethodPost, "/apply", applicationForm(completeRecord()))
		attachFlow(c, flow)

		require.NoError(t, SubmitApplicationHandler(c))

		body := rec.Body.String()
		assert.Contains(t, body, models.ButtonLabelFailed)
		assert.Contains(t, body, models.ErrorMessage(testContactEmail))
		assert.NotContains(t, body, `hx-get="/apply/modal"`)
		assert.Equal(t, models.StatusError, flow.State().Status)
		assert.Equal(t, completeRecord(), flow.State().Record, "record is kept for retry")
	})

	t.Run("transport error shows the failure state", func(t *testing.T) {
		relay := &stubRelay{err: errors.New("connection refused")}
		flow := newTestFlow(relay)

		c, rec := setupHTMX(http.MethodPost, "/apply", applicationForm(completeRecord()))
		attachFlow(c, flow)

		require.NoError(t, SubmitApplicationHandler(c))

		assert.Contains(t, rec.Body.String(), models.ButtonLabelFailed)
		assert.Equal(t, models.StatusError, flow.State().Status)
	})

	t.Run("incomplete application is not sent", func(t *testing.T) {
		relay := &stubRelay{resp: &services.RelayResponse{Success: true}}
		flow := newTestFlow(relay)
		record := completeRecord()
		record.Offer = ""

		c, rec := setupHTMX(http.MethodPost, "/apply", applicationForm(record))
		attachFlow(c, flow)

		require.NoError(t, SubmitApplicationHandler(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 0, relay.Calls())
		assert.Contains(t, rec.Body.String(), models.ButtonLabelDefault)
		assert.Equal(t, models.StatusIdle, flow.State().Status)
	})

	t.Run("plain form post redirects after sending", func(t *testing.T) {
		relay := &stubRelay{resp: &services.RelayResponse{Success: true}}
		flow := newTestFlow(relay)

		c, rec := setupHTMX(http.MethodPost, "/apply", applicationForm(completeRecord()))
		c.Request().Header.Del("HX-Request")
		attachFlow(c, flow)

		require.NoError(t, SubmitApplicationHandler(c))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, 1, relay.Calls())
	})
}

func TestApplicationModalHandler(t *testing.T) {
	t.Run("closed modal renders an empty slot", func(t *testing.T) {
		flow := newTestFlow(&stubRelay{})
		c, rec := setupHTMX(http.MethodGet, "/apply/modal", nil)
		attachFlow(c, flow)

		require.NoError(t, ApplicationModalHandler(c))

		assert.Equal(t, `<div id="application-modal"></div>`, rec.Body.String())
		assert.JSONEq(t, `{"scroll-lock":{"suspended":false}}`, rec.Header().Get("HX-Trigger"))
	})

	t.Run("open modal renders the form with the live record", func(t *testing.T) {
		flow := newTestFlow(&stubRelay{})
		flow.OpenModal()
		flow.UpdateRecord(models.FormRecord{Company: "Acme Inc"})

		c, rec := setupHTMX(http.MethodGet, "/apply/modal", nil)
		attachFlow(c, flow)

		require.NoError(t, ApplicationModalHandler(c))

		assert.Contains(t, rec.Body.String(), `value="Acme Inc"`)
		assert.JSONEq(t, `{"scroll-lock":{"suspended":true}}`, rec.Header().Get("HX-Trigger"))
	})
}
