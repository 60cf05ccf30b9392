/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package frontend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gojek/heimdall/v7"
	"github.com/gojek/heimdall/v7/httpclient"

	"github.com/fortuneworks/fortune/pkg/fortune"
)

// BackendClient talks to the fortune backend with a heimdall-backed HTTP
// client so transient failures are retried with a constant backoff.
type BackendClient struct {
	baseURL string
	client  *httpclient.Client
}

func NewBackendClient(dns string, port int, timeout time.Duration) *BackendClient {
	client := httpclient.NewClient(
		httpclient.WithHTTPTimeout(timeout),
		httpclient.WithRetrier(heimdall.NewRetrier(heimdall.NewConstantBackoff(100*time.Millisecond, 50*time.Millisecond))),
		httpclient.WithRetryCount(3),
	)
	return &BackendClient{
		baseURL: fmt.Sprintf("http://%s:%d", dns, port),
		client:  client,
	}
}

// RandomFortune fetches a random fortune from the backend.
func (b *BackendClient) RandomFortune(ctx context.Context) (fortune.Fortune, error) {
	var f fortune.Fortune
	body, err := b.get(ctx, b.baseURL+"/fortunes/random")
	if err != nil {
		return f, err
	}
	if err := json.Unmarshal(body, &f); err != nil {
		return f, fmt.Errorf("failed to parse backend response: %w", err)
	}
	return f, nil
}

// ListFortunes fetches every fortune from the backend.
func (b *BackendClient) ListFortunes(ctx context.Context) ([]fortune.Fortune, error) {
	body, err := b.get(ctx, b.baseURL+"/fortunes")
	if err != nil {
		return nil, err
	}
	var fortunes []fortune.Fortune
	if err := json.Unmarshal(body, &fortunes); err != nil {
		return nil, fmt.Errorf("failed to parse backend response: %w", err)
	}
	return fortunes, nil
}

// CreateFortune posts a new fortune to the backend.
func (b *BackendClient) CreateFortune(ctx context.Context, f fortune.Fortune) error {
	payload, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to encode fortune: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/fortunes", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}
	return nil
}

func (b *BackendClient) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("backend returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
