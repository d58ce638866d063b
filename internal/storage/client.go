// Package storage provides the public object storage client used for
// tourist photos and identity documents. It speaks the Supabase Storage
// REST API but only depends on its URL shape, so any compatible service
// works.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const defaultBucket = "tourist-assets"

// Client talks to a Supabase-compatible storage REST API.
type Client struct {
	baseURL    string
	serviceKey string
	bucket     string
	httpClient *http.Client
}

// NewClient creates a storage client from SUPABASE_URL and
// SUPABASE_SERVICE_ROLE_KEY. Returns nil, nil when the URL is not set
// (graceful degradation: uploads are skipped and photo URLs stay null).
func NewClient() (*Client, error) {
	base := os.Getenv("SUPABASE_URL")
	if base == "" {
		return nil, nil
	}
	key := os.Getenv("SUPABASE_SERVICE_ROLE_KEY")
	if key == "" {
		return nil, fmt.Errorf("SUPABASE_SERVICE_ROLE_KEY is required when SUPABASE_URL is set")
	}
	bucket := os.Getenv("STORAGE_BUCKET")
	if bucket == "" {
		bucket = defaultBucket
	}
	return &Client{
		baseURL:    strings.TrimRight(base, "/"),
		serviceKey: key,
		bucket:     bucket,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Bucket returns the bucket name uploads go to.
func (c *Client) Bucket() string { return c.bucket }

type bucketInfo struct {
	Name string `json:"name"`
}

// EnsureBucket creates the public bucket if it does not exist yet.
// Idempotent; called best-effort at every startup.
func (c *Client) EnsureBucket(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/storage/v1/bucket", nil, "")
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("list buckets: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("list buckets: status %d: %s", resp.StatusCode, body)
	}

	var buckets []bucketInfo
	if err := json.NewDecoder(resp.Body).Decode(&buckets); err != nil {
		return fmt.Errorf("decode bucket list: %w", err)
	}
	for _, b := range buckets {
		if b.Name == c.bucket {
			return nil
		}
	}

	payload, err := json.Marshal(map[string]any{
		"id":     c.bucket,
		"name":   c.bucket,
		"public": true,
	})
	if err != nil {
		return err
	}
	req, err = c.newRequest(ctx, http.MethodPost, "/storage/v1/bucket", bytes.NewReader(payload), "application/json")
	if err != nil {
		return err
	}
	resp, err = c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("create bucket: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("create bucket: status %d: %s", resp.StatusCode, body)
	}
	return nil
}

// Upload stores data at path inside the bucket and returns the public
// URL the file is served from.
func (c *Client) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	object := fmt.Sprintf("/storage/v1/object/%s/%s", c.bucket, path)
	req, err := c.newRequest(ctx, http.MethodPost, object, bytes.NewReader(data), contentType)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("upload %s: status %d: %s", path, resp.StatusCode, body)
	}
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, c.bucket, path), nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("apikey", c.serviceKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req, nil
}
