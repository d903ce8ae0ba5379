package relay

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
	"strings"

	"complaintbox/internal/api/v1/dto"
)

// defaultUploadName mirrors the mobile client, which always names its
// capture audio.m4a.
const defaultUploadName = "audio.m4a"

// Client talks to the relay service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a relay client for baseURL. No client-side timeout
// is set; the transcription call is allowed to take as long as the
// relay does.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// Upload posts the audio file as the multipart field "audio" and
// returns the transcript.
func (c *Client) Upload(ctx context.Context, audioPath string) (string, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("failed to open recording: %w", err)
	}
	defer file.Close()

	name := filepath.Base(audioPath)
	if filepath.Ext(name) == "" {
		name = defaultUploadName
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("audio", name)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("failed to read recording: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", decodeError(resp)
	}

	var result dto.TranscriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("unexpected response from relay: %w", err)
	}
	return result.Transcription, nil
}

// Register creates a new identity on the relay.
func (c *Client) Register(ctx context.Context, name, email, password string) (*dto.AuthResponse, error) {
	return c.postAuth(ctx, "/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
}

// Login exchanges credentials for a fresh token.
func (c *Client) Login(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	return c.postAuth(ctx, "/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

// Ping checks relay liveness.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/ping", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("relay not healthy: %s", resp.Status)
	}
	return nil
}

func (c *Client) postAuth(ctx context.Context, path string, payload map[string]string) (*dto.AuthResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var result dto.AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("unexpected response from relay: %w", err)
	}
	return &result, nil
}

// decodeError extracts the relay's error message from a non-2xx
// response. Both {"message": ...} and {"error": ...} shapes appear on
// the wire.
func decodeError(resp *http.Response) error {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		if body.Message != "" {
			return fmt.Errorf("%s", body.Message)
		}
		if body.Error != "" {
			return fmt.Errorf("%s", body.Error)
		}
	}
	return fmt.Errorf("relay returned %s", resp.Status)
}
