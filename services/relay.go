package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"revenue_leak_audit/config"
	"revenue_leak_audit/models"
	"strings"
)

// Payload metadata field names
const (
	FieldAccessKey = "access_key"
	FieldSubject   = "subject"
	FieldFromName  = "from_name"
)

// SubjectTemplate is filled with the applicant's full name and company
const SubjectTemplate = "New Revenue Leak Audit Application - %s (%s)"

var (
	// ErrRelayRejected is returned when the relay answers with success=false
	ErrRelayRejected = errors.New("relay reported failure")
	// ErrIncompleteApplication blocks a submit before any network call
	ErrIncompleteApplication = errors.New("application is incomplete")
)

// PayloadField is one name/value pair of the outbound form
type PayloadField struct {
	Name  string
	Value string
}

// Payload is the ordered multipart body sent to the form relay
type Payload struct {
	Fields []PayloadField
}

// Add appends a field to the payload
func (p *Payload) Add(name, value string) {
	p.Fields = append(p.Fields, PayloadField{Name: name, Value: value})
}

// Get returns the first value stored under name
func (p *Payload) Get(name string) string {
	for _, f := range p.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

// RelayResponse is the structured answer of the form relay
type RelayResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Relay delivers an application payload to the remote form-processing service
type Relay interface {
	Submit(ctx context.Context, payload *Payload) (*RelayResponse, error)
}

// RelaySettings carries the fixed metadata added to every payload
type RelaySettings struct {
	AccessKey string
	FromName  string
}

// BuildSubject formats the notification subject line
func BuildSubject(record models.FormRecord) string {
	return fmt.Sprintf(SubjectTemplate, record.FullName, record.Company)
}

// BuildPayload combines the fixed metadata with the six form fields, verbatim
func BuildPayload(settings RelaySettings, record models.FormRecord) *Payload {
	payload := &Payload{}
	payload.Add(FieldAccessKey, settings.AccessKey)
	payload.Add(FieldSubject, BuildSubject(record))
	payload.Add(FieldFromName, settings.FromName)
	for _, name := range models.ApplicationFields {
		payload.Add(name, record.Get(name))
	}
	return payload
}

// NewRelay builds the relay selected by the configuration
func NewRelay(cfg *config.Config) (Relay, error) {
	switch cfg.RelayProvider {
	case config.RelayWeb3Forms:
		return NewWeb3FormsRelay(cfg.RelayEndpoint, cfg.RelayTimeout), nil
	case config.RelayResend:
		return NewResendRelay(cfg), nil
	case config.RelayLog:
		return &LogRelay{}, nil
	default:
		return nil, fmt.Errorf("unknown relay provider %q", cfg.RelayProvider)
	}
}

// LogRelay logs payloads to the console instead of sending them (development mode)
type LogRelay struct{}

// Submit logs the payload and always reports success
func (r *LogRelay) Submit(ctx context.Context, payload *Payload) (*RelayResponse, error) {
	separator := strings.Repeat("=", 80)
	log.Printf("\n%s\n📨 APPLICATION (Development Mode - Not Actually Sent)\n%s", separator, separator)
	for _, f := range payload.Fields {
		value := f.Value
		if f.Name == FieldAccessKey {
			value = maskSecret(value)
		}
		log.Printf("%s: %s", f.Name, value)
	}
	log.Printf("%s\n", separator)
	return &RelayResponse{Success: true, Message: "logged"}, nil
}

// maskSecret keeps the first four characters of a credential
func maskSecret(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return s[:4] + strings.Repeat("*", len(s)-4)
}
