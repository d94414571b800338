package components

// LayoutOptions carries the per-request values of the page shell
type LayoutOptions struct {
	CSRFToken       string
	ScrollSuspended bool
}

// BodyClass returns the body class list. overflow-hidden suspends page scrolling while the modal is open.
func (o LayoutOptions) BodyClass() string {
	if o.ScrollSuspended {
		return "page overflow-hidden"
	}
	return "page"
}
