package models

// ApplicationState is a point-in-time snapshot of one visitor's page state
type ApplicationState struct {
	Record          FormRecord
	Status          SubmissionStatus
	InFlight        bool
	ModalOpen       bool
	ScrollSuspended bool
}

// ButtonLabel returns the submit button label for this state
func (s ApplicationState) ButtonLabel() string {
	return SubmitButtonLabel(s.InFlight, s.Status)
}

// ButtonDisabled reports whether the submit button is disabled. Only in-flight requests disable it.
func (s ApplicationState) ButtonDisabled() bool {
	return s.InFlight
}
