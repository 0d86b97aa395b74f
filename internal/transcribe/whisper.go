package transcribe

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

const defaultBaseURL = "https://api.openai.com/v1"

// Whisper transcribes audio via the OpenAI Whisper API.
type Whisper struct {
	APIKey  string
	Model   string
	BaseURL string // overridable for tests
	Client  *http.Client
}

func NewWhisper(apiKey string) *Whisper {
	return &Whisper{
		APIKey:  apiKey,
		Model:   "whisper-1",
		BaseURL: defaultBaseURL,
		Client:  &http.Client{Timeout: 10 * time.Minute},
	}
}

// Transcribe sends the audio file, requesting verbose JSON so segment
// timings are available for the timestamped transcript.
func (t *Whisper) Transcribe(ctx context.Context, audioPath string) (*Result, error) {
	if t.APIKey == "" {
		return nil, fmt.Errorf("API key not set: set MEETING_RECORDER_API_KEY or add api_key to config")
	}

	// Build multipart request
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if err := writer.WriteField("model", t.Model); err != nil {
		return nil, err
	}
	if err := writer.WriteField("response_format", "verbose_json"); err != nil {
		return nil, err
	}

	file, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("opening audio file: %w", err)
	}
	defer file.Close()

	part, err := writer.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, err
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.BaseURL+"/audio/transcriptions", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+t.APIKey)

	resp, err := t.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling Whisper API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("whisper API error (HTTP %d): %s", resp.StatusCode, string(respBody))
	}

	var apiResp transcriptionAPIResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, fmt.Errorf("parsing Whisper response: %w", err)
	}

	result := &Result{
		Text:     apiResp.Text,
		Duration: apiResp.Duration,
	}
	for _, seg := range apiResp.Segments {
		result.Segments = append(result.Segments, Segment{
			Start: seg.Start,
			End:   seg.End,
			Text:  seg.Text,
		})
	}

	return result, nil
}

// transcriptionAPIResponse matches the Whisper verbose_json response.
type transcriptionAPIResponse struct {
	Text     string  `json:"text"`
	Duration float64 `json:"duration"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}
