package models

// SubmissionStatus is the result of the most recent submission attempt
type SubmissionStatus string

const (
	StatusIdle    SubmissionStatus = "idle"
	StatusSuccess SubmissionStatus = "success"
	StatusError   SubmissionStatus = "error"
)

// Submit button labels
const (
	ButtonLabelDefault = "Request My Audit Review"
	ButtonLabelSending = "Sending..."
	ButtonLabelSent    = "Sent!"
	ButtonLabelFailed  = "Failed - Try Again"
)

// SuccessMessage is shown under the button after a successful send
const SuccessMessage = "Application sent successfully!"

// SubmitButtonLabel returns the submit button label for the given flow state
func SubmitButtonLabel(inFlight bool, status SubmissionStatus) string {
	if inFlight {
		return ButtonLabelSending
	}
	switch status {
	case StatusSuccess:
		return ButtonLabelSent
	case StatusError:
		return ButtonLabelFailed
	default:
		return ButtonLabelDefault
	}
}

// ErrorMessage builds the failure message pointing at the fallback contact address
func ErrorMessage(contactEmail string) string {
	return "Failed to send. Please try again or contact " + contactEmail
}
