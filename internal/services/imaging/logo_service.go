package imaging

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	defaultPollinationsURL = "https://image.pollinations.ai/prompt"
	defaultImgBBURL        = "https://api.imgbb.com/1/upload"
	logoSize               = 1024
)

// Config holds the image endpoints
type Config struct {
	PollinationsURL string
	ImgBBURL        string
	ImgBBKey        string
}

// LogoService generates campaign logos and hosts them on ImgBB
type LogoService struct {
	pollinationsURL string
	imgbbURL        string
	imgbbKey        string
	httpClient      *http.Client
}

// NewLogoService creates a new logo service
func NewLogoService(cfg Config) *LogoService {
	if cfg.PollinationsURL == "" {
		cfg.PollinationsURL = defaultPollinationsURL
	}
	if cfg.ImgBBURL == "" {
		cfg.ImgBBURL = defaultImgBBURL
	}
	return &LogoService{
		pollinationsURL: strings.TrimSuffix(cfg.PollinationsURL, "/"),
		imgbbURL:        cfg.ImgBBURL,
		imgbbKey:        cfg.ImgBBKey,
		httpClient:      &http.Client{Timeout: 60 * time.Second},
	}
}

// Enabled reports whether hosting is configured
func (s *LogoService) Enabled() bool {
	return s.imgbbKey != ""
}

// Generate renders an image for prompt
func (s *LogoService) Generate(ctx context.Context, prompt string) ([]byte, error) {
	q := url.Values{}
	q.Set("width", fmt.Sprint(logoSize))
	q.Set("height", fmt.Sprint(logoSize))
	q.Set("nologo", "true")
	q.Set("model", "flux")
	endpoint := fmt.Sprintf("%s/%s?%s", s.pollinationsURL, url.PathEscape(prompt), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to generate logo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("logo generation returned status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read generated logo: %w", err)
	}
	return data, nil
}

type imgbbResponse struct {
	Success bool `json:"success"`
	Data    struct {
		URL string `json:"url"`
	} `json:"data"`
}

// Upload hosts image on ImgBB and returns its public URL
func (s *LogoService) Upload(ctx context.Context, image []byte) (string, error) {
	if !s.Enabled() {
		return "", fmt.Errorf("imgbb api key is not configured")
	}

	form := url.Values{}
	form.Set("key", s.imgbbKey)
	form.Set("image", base64.StdEncoding.EncodeToString(image))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.imgbbURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload logo: %w", err)
	}
	defer resp.Body.Close()

	var out imgbbResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || !out.Success || out.Data.URL == "" {
		return "", fmt.Errorf("logo upload failed with status %d", resp.StatusCode)
	}

	logrus.Infof("Logo hosted at %s", out.Data.URL)
	return out.Data.URL, nil
}

// GenerateAndHost renders a logo for prompt and uploads it
func (s *LogoService) GenerateAndHost(ctx context.Context, prompt string) (string, error) {
	image, err := s.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return s.Upload(ctx, image)
}
