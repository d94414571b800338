package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"revenue_leak_audit/config"
	"revenue_leak_audit/models"
	"testing"

	"github.com/resend/resend-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPayload(t *testing.T) {
	payload := BuildPayload(RelaySettings{AccessKey: "key-123", FromName: "Markethunterz Audit Bot"}, completeRecord())

	names := make([]string, 0, len(payload.Fields))
	for _, f := range payload.Fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{
		"access_key", "subject", "from_name",
		"fullName", "company", "email", "brandChannel", "offer", "implementation",
	}, names)

	assert.Equal(t, "key-123", payload.Get(FieldAccessKey))
	assert.Equal(t, "New Revenue Leak Audit Application - John Doe (Acme Inc.)", payload.Get(FieldSubject))
	assert.Equal(t, "Markethunterz Audit Bot", payload.Get(FieldFromName))
	assert.Equal(t, "yes", payload.Get(models.FieldImplementation))
	assert.Equal(t, "", payload.Get("missing"))
}

func TestWeb3FormsRelaySubmit(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var received url.Values
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Contains(t, r.Header.Get("Content-Type"), "multipart/form-data")
			require.NoError(t, r.ParseMultipartForm(1<<20))
			received = r.MultipartForm.Value

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(RelayResponse{Success: true, Message: "Email sent successfully!"})
		}))
		defer server.Close()

		relay := NewWeb3FormsRelay(server.URL, 0)
		resp, err := relay.Submit(context.Background(), BuildPayload(RelaySettings{AccessKey: "key", FromName: "Bot"}, completeRecord()))
		require.NoError(t, err)
		assert.True(t, resp.Success)

		assert.Equal(t, []string{"key"}, received["access_key"])
		assert.Equal(t, []string{"John Doe"}, received["fullName"])
		assert.Equal(t, []string{"Acme Inc."}, received["company"])
		assert.Equal(t, []string{"john@acme.com"}, received["email"])
		assert.Equal(t, []string{"https://acme.com"}, received["brandChannel"])
		assert.Equal(t, []string{"Consulting"}, received["offer"])
		assert.Equal(t, []string{"yes"}, received["implementation"])
	})

	t.Run("Remote failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(RelayResponse{Success: false, Message: "Invalid access key"})
		}))
		defer server.Close()

		resp, err := NewWeb3FormsRelay(server.URL, 0).Submit(context.Background(), &Payload{})
		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, "Invalid access key", resp.Message)
	})

	t.Run("Malformed JSON response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte("<html>gateway error</html>"))
		}))
		defer server.Close()

		resp, err := NewWeb3FormsRelay(server.URL, 0).Submit(context.Background(), &Payload{})
		assert.Nil(t, resp)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode")
	})

	t.Run("Unreachable endpoint", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		endpoint := server.URL
		server.Close()

		_, err := NewWeb3FormsRelay(endpoint, 0).Submit(context.Background(), &Payload{})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to reach relay")
	})

	t.Run("Missing endpoint", func(t *testing.T) {
		_, err := NewWeb3FormsRelay("", 0).Submit(context.Background(), &Payload{})
		assert.Error(t, err)
	})
}

func TestResendRelaySubmit(t *testing.T) {
	var sent map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"email_123"}`))
	}))
	defer server.Close()

	client := resend.NewClient("re_test")
	base, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	client.BaseURL = base

	cfg := &config.Config{
		EmailFrom:     "audit@example.com",
		EmailFromName: "Audit Bot",
		NotifyEmail:   "owner@example.com",
	}
	relay := NewResendRelayWithClient(client, cfg)

	record := completeRecord()
	record.Offer = "<script>alert(1)</script>Consulting"
	resp, err := relay.Submit(context.Background(), BuildPayload(RelaySettings{FromName: "Audit Bot"}, record))
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "email_123", resp.Message)

	assert.Equal(t, "Audit Bot <audit@example.com>", sent["from"])
	assert.Equal(t, "New Revenue Leak Audit Application - John Doe (Acme Inc.)", sent["subject"])
	html, _ := sent["html"].(string)
	assert.Contains(t, html, "Acme Inc.")
	assert.NotContains(t, html, "<script>")
}

func TestNewRelay(t *testing.T) {
	relay, err := NewRelay(&config.Config{RelayProvider: config.RelayWeb3Forms, RelayEndpoint: "https://example.com"})
	require.NoError(t, err)
	assert.IsType(t, &Web3FormsRelay{}, relay)

	relay, err = NewRelay(&config.Config{RelayProvider: config.RelayResend, ResendAPIKey: "re_test"})
	require.NoError(t, err)
	assert.IsType(t, &ResendRelay{}, relay)

	relay, err = NewRelay(&config.Config{RelayProvider: config.RelayLog})
	require.NoError(t, err)
	assert.IsType(t, &LogRelay{}, relay)

	_, err = NewRelay(&config.Config{RelayProvider: "carrier-pigeon"})
	assert.Error(t, err)
}

func TestLogRelay(t *testing.T) {
	resp, err := (&LogRelay{}).Submit(context.Background(), BuildPayload(RelaySettings{AccessKey: "secret-key"}, completeRecord()))
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "secr******", maskSecret("secret-key"))
	assert.Equal(t, "***", maskSecret("abc"))
}
