package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	_ "image/png"
	"io"
	"net/http"
	"strings"
	"time"
)

// RasterService captures HTML documents as images through an external rendering service.
type RasterService struct {
	client  *http.Client
	baseURL string
}

type CaptureRequest struct {
	HTML   string  `json:"html"`
	Width  int     `json:"width"`
	Scale  float64 `json:"scale"`
	Format string  `json:"format"`
}

type CaptureErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func NewRasterService(baseURL string, timeout time.Duration) *RasterService {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RasterService{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Capture renders html at widthPx CSS pixels and scale device pixels per CSS pixel
func (s *RasterService) Capture(ctx context.Context, html []byte, widthPx int, scale float64) (image.Image, error) {
	jsonData, err := json.Marshal(CaptureRequest{
		HTML:   string(html),
		Width:  widthPx,
		Scale:  scale,
		Format: "png",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal capture request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/capture", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to build capture request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "image/png")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send capture request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var captureErr CaptureErrorResponse
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if json.Unmarshal(body, &captureErr) == nil && captureErr.Message != "" {
			return nil, fmt.Errorf("capture failed: %s", captureErr.Message)
		}
		return nil, fmt.Errorf("capture failed: status %d", resp.StatusCode)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode captured image: %w", err)
	}
	return img, nil
}
