package mailer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"travelgo/internal/config"
)

// Sender is the outbound email port. Implementations must be safe for
// concurrent use. Sends are best-effort: callers log failures and move
// on, they never roll back state because of one.
type Sender interface {
	Send(toName, toEmail, subject, htmlContent string) error
}

// Client talks to a transactional email HTTP API (Brevo-compatible).
type Client struct {
	apiKey     string
	apiURL     string
	sender     string
	senderName string
	httpClient *http.Client
}

// New builds a mail client from config. When no API key is configured
// the client degrades to a logged no-op so local development works
// without a mail account.
func New(env config.Env) *Client {
	if env.MailAPIKey == "" {
		log.Println("mailer: no API key configured, outbound email disabled")
	}
	return &Client{
		apiKey:     env.MailAPIKey,
		apiURL:     env.MailAPIURL,
		sender:     env.MailSender,
		senderName: env.MailSenderName,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type apiPayload struct {
	Sender      map[string]string   `json:"sender"`
	To          []map[string]string `json:"to"`
	Subject     string              `json:"subject"`
	HTMLContent string              `json:"htmlContent"`
}

func (c *Client) Send(toName, toEmail, subject, htmlContent string) error {
	if c.apiKey == "" {
		log.Printf("mailer: skipping send to %s (%q), not configured", toEmail, subject)
		return nil
	}
	if toEmail == "" || !strings.Contains(toEmail, "@") {
		return fmt.Errorf("invalid recipient email: %q", toEmail)
	}
	if toName == "" {
		toName = toEmail[:strings.Index(toEmail, "@")]
	}

	payload := apiPayload{
		Sender:      map[string]string{"name": c.senderName, "email": c.sender},
		To:          []map[string]string{{"email": toEmail, "name": toName}},
		Subject:     subject,
		HTMLContent: htmlContent,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("content-type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("mail API status %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
