package handlers

import (
	"errors"
	"net/http"
	"revenue_leak_audit/models"
	"revenue_leak_audit/services"
	"revenue_leak_audit/templates/partials"

	"github.com/labstack/echo/v4"
)

// OpenApplicationHandler opens the application modal and suspends page scrolling
func OpenApplicationHandler(c echo.Context) error {
	flow, err := currentFlow(c)
	if err != nil {
		return err
	}

	flow.OpenModal()

	if !isHTMX(c) {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	view := applicationView(c, flow)
	triggerScrollLock(c, view.State.ScrollSuspended)
	return render(c, http.StatusOK, partials.ApplicationModal(view))
}

// CloseApplicationHandler closes the modal. The record and status are kept.
func CloseApplicationHandler(c echo.Context) error {
	flow, err := currentFlow(c)
	if err != nil {
		return err
	}

	flow.CloseModal()

	if !isHTMX(c) {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	view := applicationView(c, flow)
	triggerScrollLock(c, view.State.ScrollSuspended)
	return render(c, http.StatusOK, partials.ApplicationModal(view))
}

// SaveDraftHandler stores the form as the visitor edits it
func SaveDraftHandler(c echo.Context) error {
	flow, err := currentFlow(c)
	if err != nil {
		return err
	}

	var record models.FormRecord
	if err := c.Bind(&record); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form data")
	}
	flow.UpdateRecord(record)

	return c.NoContent(http.StatusNoContent)
}

// SubmitApplicationHandler relays the application and re-renders the form with the outcome.
// The request blocks until the relay answers; HTMX shows the sending label meanwhile.
func SubmitApplicationHandler(c echo.Context) error {
	flow, err := currentFlow(c)
	if err != nil {
		return err
	}

	var record models.FormRecord
	if err := c.Bind(&record); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form data")
	}
	flow.UpdateRecord(record)

	status, err := flow.Submit(c.Request().Context())
	if err != nil {
		if !errors.Is(err, services.ErrIncompleteApplication) {
			return err
		}
		c.Logger().Infof("Incomplete application blocked for session %s", sessionID(c))
	} else {
		c.Logger().Infof("Application submission finished with status %s", status)
	}

	if !isHTMX(c) {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return render(c, http.StatusOK, partials.ApplicationForm(applicationView(c, flow)))
}

// ApplicationModalHandler renders the modal slot in its current state
func ApplicationModalHandler(c echo.Context) error {
	flow, err := currentFlow(c)
	if err != nil {
		return err
	}

	if !isHTMX(c) {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	view := applicationView(c, flow)
	triggerScrollLock(c, view.State.ScrollSuspended)
	return render(c, http.StatusOK, partials.ApplicationModal(view))
}
