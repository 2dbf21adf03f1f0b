package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// MailService sends transactional email through the configured mail
// provider's HTTP API.
type MailService struct {
	baseURL  string
	apiToken string
	from     string
	client   *http.Client
}

// NewMailService creates a MailService.
func NewMailService(baseURL, apiToken, from string) *MailService {
	return &MailService{
		baseURL:  baseURL,
		apiToken: apiToken,
		from:     from,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type mailMessage struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// Send delivers a single plain-text message. An unconfigured provider is a
// no-op so local development works without credentials.
func (s *MailService) Send(to, subject, text string) error {
	if s.baseURL == "" || s.apiToken == "" {
		log.Println("[Mail] provider not configured, skipping send")
		return nil
	}

	body, err := json.Marshal(mailMessage{
		From:    s.from,
		To:      to,
		Subject: subject,
		Text:    text,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, s.baseURL+"/api/send", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiToken)

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("[Mail] failed to send message: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("[Mail] unexpected status: %d", resp.StatusCode)
		return fmt.Errorf("mail provider returned status %d", resp.StatusCode)
	}

	return nil
}
