package partials

import (
	"fmt"
	"revenue_leak_audit/models"
	"time"
)

// Element IDs targeted by HTMX swaps
const (
	ModalSlotID = "application-modal"
	FormID      = "application-form"
)

// ApplicationView is everything the modal and form need to render
type ApplicationView struct {
	State        models.ApplicationState
	CSRFToken    string
	ContactEmail string
	ResetDelay   time.Duration
}

// formField describes one text input of the application form
type formField struct {
	Name        string
	Label       string
	Type        string
	Placeholder string
}

var textFields = []formField{
	{Name: models.FieldFullName, Label: "Full Name", Type: "text", Placeholder: "John Doe"},
	{Name: models.FieldCompany, Label: "Company Name", Type: "text", Placeholder: "Acme Inc."},
	{Name: models.FieldEmail, Label: "Work Email", Type: "email", Placeholder: "john@company.com"},
	{Name: models.FieldBrandChannel, Label: "Main Brand Channel", Type: "text", Placeholder: "e.g. Website URL, Instagram, or LinkedIn link"},
	{Name: models.FieldOffer, Label: "Primary Offer", Type: "text", Placeholder: "What is your core product or service?"},
}

type choiceOption struct {
	Value string
	Label string
}

var implementationOptions = []choiceOption{
	{Value: models.ImplementationYes, Label: "Yes"},
	{Value: models.ImplementationNo, Label: "No"},
}

// resetPollMargin lets the server-side reset timer fire before the client re-fetches the modal
const resetPollMargin = 100 * time.Millisecond

// htmxDelay formats a duration for hx-trigger modifiers ("delay:2000ms")
func htmxDelay(d time.Duration) string {
	return fmt.Sprintf("%dms", d.Milliseconds())
}

func submitButtonClass(state models.ApplicationState) string {
	if state.InFlight {
		return "submit submit-busy"
	}
	return "submit"
}
