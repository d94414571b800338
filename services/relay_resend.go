package services

import (
	"context"
	"fmt"
	"revenue_leak_audit/config"
	"revenue_leak_audit/models"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/resend/resend-go/v2"
)

// applicationFieldLabels are the human labels used in the notification email
var applicationFieldLabels = map[string]string{
	models.FieldFullName:       "Full Name",
	models.FieldCompany:        "Company Name",
	models.FieldEmail:          "Work Email",
	models.FieldBrandChannel:   "Main Brand Channel",
	models.FieldOffer:          "Primary Offer",
	models.FieldImplementation: "Open to implementation",
}

// ResendRelay delivers applications as notification emails through Resend
type ResendRelay struct {
	client   *resend.Client
	from     string
	to       []string
	sanitize *bluemonday.Policy
}

// NewResendRelay creates a relay from the email settings of cfg
func NewResendRelay(cfg *config.Config) *ResendRelay {
	return NewResendRelayWithClient(resend.NewClient(cfg.ResendAPIKey), cfg)
}

// NewResendRelayWithClient uses a preconfigured Resend client
func NewResendRelayWithClient(client *resend.Client, cfg *config.Config) *ResendRelay {
	return &ResendRelay{
		client:   client,
		from:     fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom),
		to:       []string{cfg.NotifyEmail},
		sanitize: bluemonday.StrictPolicy(),
	}
}

// Submit sends the notification email. The access key is not used by this relay.
func (r *ResendRelay) Submit(ctx context.Context, payload *Payload) (*RelayResponse, error) {
	params := &resend.SendEmailRequest{
		From:    r.from,
		To:      r.to,
		Subject: payload.Get(FieldSubject),
		Html:    r.htmlBody(payload),
		Text:    textBody(payload),
	}

	sent, err := r.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to send application via Resend: %w", err)
	}
	if sent == nil || sent.Id == "" {
		return &RelayResponse{Success: false, Message: "resend returned no message id"}, nil
	}

	return &RelayResponse{Success: true, Message: sent.Id}, nil
}

func (r *ResendRelay) htmlBody(payload *Payload) string {
	var b strings.Builder
	b.WriteString("<h2>")
	b.WriteString(r.sanitize.Sanitize(payload.Get(FieldSubject)))
	b.WriteString("</h2><table>")
	for _, name := range models.ApplicationFields {
		b.WriteString("<tr><th align=\"left\">")
		b.WriteString(applicationFieldLabels[name])
		b.WriteString("</th><td>")
		b.WriteString(r.sanitize.Sanitize(payload.Get(name)))
		b.WriteString("</td></tr>")
	}
	b.WriteString("</table><p>Sent by ")
	b.WriteString(r.sanitize.Sanitize(payload.Get(FieldFromName)))
	b.WriteString("</p>")
	return b.String()
}

func textBody(payload *Payload) string {
	var b strings.Builder
	b.WriteString(payload.Get(FieldSubject))
	b.WriteString("\n\n")
	for _, name := range models.ApplicationFields {
		fmt.Fprintf(&b, "%s: %s\n", applicationFieldLabels[name], payload.Get(name))
	}
	return b.String()
}
