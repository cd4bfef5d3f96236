package utils

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/heatmapp/heatmapp/config"
)

// DefaultImageContentType is assumed when the client does not say otherwise.
const DefaultImageContentType = "image/jpeg"

var (
	// ErrStorageNotConfigured is returned when Supabase credentials are absent.
	ErrStorageNotConfigured = errors.New("object storage is not configured")
	// ErrInvalidImage is returned for payloads that are not valid base64.
	ErrInvalidImage = errors.New("invalid base64 image payload")
)

// StorageClient uploads green-area images to a Supabase storage bucket over
// its REST API. It is constructed once at startup from configuration and
// injected into the controllers that need it.
type StorageClient struct {
	baseURL    string
	publicURL  string
	serviceKey string
	bucket     string
	httpClient *http.Client
}

// NewStorageClient builds a client from configuration. Missing credentials
// are tolerated here; uploads will fail with ErrStorageNotConfigured.
func NewStorageClient(cfg config.AppConfig) *StorageClient {
	return &StorageClient{
		baseURL:    strings.TrimRight(cfg.SupabaseURL, "/"),
		publicURL:  strings.TrimRight(cfg.SupabasePublicURL, "/"),
		serviceKey: cfg.SupabaseServiceKey,
		bucket:     cfg.SupabaseAreasBucket,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// DecodeBase64Image strips an optional data-URI prefix and decodes the payload.
func DecodeBase64Image(payload string) ([]byte, error) {
	if payload == "" {
		return nil, ErrInvalidImage
	}
	if idx := strings.Index(payload, ","); idx >= 0 {
		payload = payload[idx+1:]
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalidImage
	}
	return raw, nil
}

// Upload stores the object in the configured bucket under objectName.
func (c *StorageClient) Upload(ctx context.Context, objectName string, content []byte, contentType string) error {
	if c.baseURL == "" || c.serviceKey == "" || c.bucket == "" {
		return ErrStorageNotConfigured
	}
	if objectName == "" {
		return errors.New("object name is required")
	}
	if contentType == "" {
		contentType = DefaultImageContentType
	}

	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, objectName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(content))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("storage upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("storage upload failed: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

// PublicURL derives the public URL for an uploaded object, or "" when the
// public base is not configured.
func (c *StorageClient) PublicURL(objectName string) string {
	if c.publicURL == "" || c.bucket == "" || objectName == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s", c.publicURL, c.bucket, objectName)
}
