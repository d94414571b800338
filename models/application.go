package models

// Implementation willingness options
const (
	ImplementationYes = "yes"
	ImplementationNo  = "no"
)

// Relayed field names. These are sent verbatim to the form relay.
const (
	FieldFullName       = "fullName"
	FieldCompany        = "company"
	FieldEmail          = "email"
	FieldBrandChannel   = "brandChannel"
	FieldOffer          = "offer"
	FieldImplementation = "implementation"
)

// ApplicationFields lists the form fields in the order they are relayed
var ApplicationFields = []string{
	FieldFullName,
	FieldCompany,
	FieldEmail,
	FieldBrandChannel,
	FieldOffer,
	FieldImplementation,
}

// FormRecord holds one visitor's audit application
type FormRecord struct {
	FullName       string `json:"fullName" form:"fullName"`
	Company        string `json:"company" form:"company"`
	Email          string `json:"email" form:"email"`
	BrandChannel   string `json:"brandChannel" form:"brandChannel"`
	Offer          string `json:"offer" form:"offer"`
	Implementation string `json:"implementation" form:"implementation"`
}

// IsValidImplementation checks the binary selector value
func IsValidImplementation(value string) bool {
	return value == ImplementationYes || value == ImplementationNo
}

// Complete reports whether every field is filled and the selector holds one of its two values.
// This mirrors the browser's required-field gate; no format checks are made.
func (r FormRecord) Complete() bool {
	for _, name := range ApplicationFields {
		if r.Get(name) == "" {
			return false
		}
	}
	return IsValidImplementation(r.Implementation)
}

// Get returns the value of a field by its relayed name
func (r FormRecord) Get(name string) string {
	switch name {
	case FieldFullName:
		return r.FullName
	case FieldCompany:
		return r.Company
	case FieldEmail:
		return r.Email
	case FieldBrandChannel:
		return r.BrandChannel
	case FieldOffer:
		return r.Offer
	case FieldImplementation:
		return r.Implementation
	}
	return ""
}

// Set updates a field by its relayed name. Unknown names report false.
func (r *FormRecord) Set(name, value string) bool {
	switch name {
	case FieldFullName:
		r.FullName = value
	case FieldCompany:
		r.Company = value
	case FieldEmail:
		r.Email = value
	case FieldBrandChannel:
		r.BrandChannel = value
	case FieldOffer:
		r.Offer = value
	case FieldImplementation:
		r.Implementation = value
	default:
		return false
	}
	return true
}

// IsEmpty reports whether all fields are blank
func (r FormRecord) IsEmpty() bool {
	return r == FormRecord{}
}
