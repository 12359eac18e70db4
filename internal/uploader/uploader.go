// Package uploader posts images to an sm.ms compatible image host.
package uploader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// DefaultEndpoint is the public sm.ms upload API.
const DefaultEndpoint = "https://sm.ms/api/v2/upload"

const fieldName = "smfile"

// Client uploads image files. A single attempt is made per call; callers
// decide whether to retry.
type Client struct {
	endpoint string
	http     *http.Client
}

func New(endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

type uploadResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Images  string `json:"images"`
	Data    struct {
		URL string `json:"url"`
	} `json:"data"`
}

// Upload posts the file and returns the hosted URL. When the host reports
// the image was uploaded before, the existing URL is returned instead of
// an error.
func (c *Client) Upload(ctx context.Context, path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(fieldName, filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("network error: decode upload response: %w", err)
	}

	switch {
	case parsed.Success:
		return parsed.Data.URL, nil
	case parsed.Code == "image_repeated":
		return parsed.Images, nil
	case parsed.Message != "":
		return "", fmt.Errorf("upload rejected: %s", parsed.Message)
	default:
		return "", fmt.Errorf("upload rejected")
	}
}
