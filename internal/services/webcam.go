package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"farmpanel/internal/config"
)

// rawExcerptLimit caps how much of an unparseable backend body is
// surfaced for diagnostics.
const rawExcerptLimit = 200

// WebcamEnvelope is the uniform response shape returned to the browser
// for every webcam request, regardless of how the backend behaved.
type WebcamEnvelope struct {
	Success     bool           `json:"success"`
	ImageData   string         `json:"image_data,omitempty"`
	Data        map[string]any `json:"data,omitempty"`
	CameraID    string         `json:"camera_id,omitempty"`
	Error       string         `json:"error,omitempty"`
	RawResponse string         `json:"raw_response,omitempty"`
	Timestamp   string         `json:"timestamp"`
}

// WebcamService proxies image requests to the external camera backend.
// It issues a single GET per request with a fixed timeout; backend
// failures of any kind are normalized into an envelope, never returned
// as an error.
type WebcamService struct {
	baseURL string
	client  *http.Client
}

func NewWebcamService(cfg *config.Config) *WebcamService {
	return &WebcamService{
		baseURL: strings.TrimRight(cfg.Webcam.BackendURL, "/"),
		client:  &http.Client{Timeout: cfg.Webcam.RequestTimeout()},
	}
}

// RequestImage forwards a camera request to the backend and normalizes
// the reply. requestType "image" uses the image-fetch endpoint; any
// other type hits get_<type> with the extra form fields as query
// parameters. The envelope timestamp is always proxy-local time.
func (s *WebcamService) RequestImage(cameraID, requestType string, extra url.Values) *WebcamEnvelope {
	backendURL := s.buildURL(cameraID, requestType, extra)

	resp, err := s.client.Get(backendURL)
	if err != nil {
		return &WebcamEnvelope{
			Success:   false,
			Error:     fmt.Sprintf("Connection failed: %v", err),
			Timestamp: now(),
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &WebcamEnvelope{
			Success:   false,
			Error:     fmt.Sprintf("Connection failed: %v", err),
			Timestamp: now(),
		}
	}

	if resp.StatusCode != http.StatusOK {
		return &WebcamEnvelope{
			Success:   false,
			Error:     fmt.Sprintf("Backend returned status %d", resp.StatusCode),
			Timestamp: now(),
		}
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		// Truncate on characters, not bytes, so a multibyte rune is
		// never split mid-sequence.
		excerpt := string(body)
		if runes := []rune(excerpt); len(runes) > rawExcerptLimit {
			excerpt = string(runes[:rawExcerptLimit])
		}
		return &WebcamEnvelope{
			Success:     false,
			Error:       "Invalid response format from backend",
			RawResponse: excerpt,
			Timestamp:   now(),
		}
	}

	success, _ := payload["success"].(bool)
	if !success {
		backendErr, _ := payload["error"].(string)
		if backendErr == "" {
			backendErr = "Backend error"
		}
		return &WebcamEnvelope{
			Success:   false,
			Error:     backendErr,
			Timestamp: now(),
		}
	}

	if imageData, ok := payload["image_data"].(string); ok {
		echoed, _ := payload["camera_id"].(string)
		if echoed == "" {
			echoed = cameraID
		}
		return &WebcamEnvelope{
			Success:   true,
			ImageData: imageData,
			CameraID:  echoed,
			Timestamp: now(),
		}
	}

	// Successful reply without image data: hand the whole backend body
	// through untouched.
	return &WebcamEnvelope{
		Success:   true,
		Data:      payload,
		Timestamp: now(),
	}
}

// buildURL selects the backend endpoint and encodes every parameter.
// Values go through url.Values/QueryEscape so form input cannot inject
// into the outbound request line.
func (s *WebcamService) buildURL(cameraID, requestType string, extra url.Values) string {
	if requestType == "image" {
		return s.baseURL + "/get_image?camera=" + url.QueryEscape(cameraID)
	}

	backendURL := s.baseURL + "/get_" + url.PathEscape(requestType)
	if query := extra.Encode(); query != "" {
		backendURL += "?" + query
	}
	return backendURL
}

func now() string {
	return time.Now().Format(time.RFC3339)
}
