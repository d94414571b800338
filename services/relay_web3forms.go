package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"
)

// Web3FormsRelay posts applications as multipart form data to a Web3Forms-compatible endpoint
type Web3FormsRelay struct {
	Endpoint string
	Client   *http.Client
}

// NewWeb3FormsRelay creates a relay for the given endpoint. A zero timeout leaves
// failure detection to the transport.
func NewWeb3FormsRelay(endpoint string, timeout time.Duration) *Web3FormsRelay {
	return &Web3FormsRelay{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: timeout},
	}
}

// Submit sends one POST request and decodes the JSON answer
func (r *Web3FormsRelay) Submit(ctx context.Context, payload *Payload) (*RelayResponse, error) {
	if r.Endpoint == "" {
		return nil, fmt.Errorf("missing relay endpoint")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for _, f := range payload.Fields {
		if err := writer.WriteField(f.Name, f.Value); err != nil {
			return nil, fmt.Errorf("failed to write field %s: %w", f.Name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.Endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build relay request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach relay: %w", err)
	}
	defer resp.Body.Close()

	var result RelayResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode relay response (status %d): %w", resp.StatusCode, err)
	}

	return &result, nil
}
