package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/example/gearmart/internal/models"
)

// MediaService uploads and destroys externally hosted images through the
// asset host's HTTP API.
type MediaService struct {
	baseURL string
	apiKey  string
	folder  string
	client  *http.Client
}

// NewMediaService creates a MediaService.
func NewMediaService(baseURL, apiKey, folder string) *MediaService {
	return &MediaService{
		baseURL: baseURL,
		apiKey:  apiKey,
		folder:  folder,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type uploadRequest struct {
	File     string `json:"file"`
	PublicID string `json:"public_id"`
}

type uploadResponse struct {
	PublicID string `json:"public_id"`
	URL      string `json:"secure_url"`
}

// Upload pushes a file (data URI or remote URL) to the asset host and
// returns the stored reference. Unconfigured hosts return a placeholder
// reference so local development works without credentials.
func (s *MediaService) Upload(file string) (models.Image, error) {
	if s.baseURL == "" || s.apiKey == "" {
		log.Println("[Media] asset host not configured, using placeholder")
		return models.Image{
			PublicID: s.folder + "/sample",
			URL:      "https://media.example.com/" + s.folder + "/sample.jpg",
		}, nil
	}

	body, err := json.Marshal(uploadRequest{
		File:     file,
		PublicID: s.folder + "/" + uuid.NewString(),
	})
	if err != nil {
		return models.Image{}, err
	}

	req, err := http.NewRequest(http.MethodPost, s.baseURL+"/upload", bytes.NewReader(body))
	if err != nil {
		return models.Image{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("[Media] upload failed: %v", err)
		return models.Image{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("[Media] unexpected upload status: %d", resp.StatusCode)
		return models.Image{}, fmt.Errorf("asset host returned status %d", resp.StatusCode)
	}

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return models.Image{}, err
	}

	return models.Image{PublicID: parsed.PublicID, URL: parsed.URL}, nil
}

type destroyRequest struct {
	PublicID string `json:"public_id"`
}

// Destroy removes a hosted image by its public id.
func (s *MediaService) Destroy(publicID string) error {
	if s.baseURL == "" || s.apiKey == "" {
		return nil
	}

	body, err := json.Marshal(destroyRequest{PublicID: publicID})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, s.baseURL+"/destroy", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("[Media] destroy failed: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("[Media] unexpected destroy status: %d", resp.StatusCode)
		return fmt.Errorf("asset host returned status %d", resp.StatusCode)
	}

	return nil
}
