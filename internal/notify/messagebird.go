package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultBaseURL is the MessageBird conversations endpoint.
const DefaultBaseURL = "https://conversations.messagebird.com"

// Sender delivers one message to one recipient. Implemented by Client;
// tests substitute a recorder.
type Sender interface {
	Send(ctx context.Context, msg Message, to string) error
}

// Client sends templated WhatsApp messages via the MessageBird
// conversations API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	channelID  string
	namespace  string
	template   string
}

// ClientConfig configures a MessageBird client.
type ClientConfig struct {
	BaseURL      string // defaults to DefaultBaseURL
	APIKey       string
	ChannelID    string
	Namespace    string
	TemplateName string
}

// NewClient builds a Client. A nil httpClient gets a 15s-timeout default.
func NewClient(cfg ClientConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		channelID:  cfg.ChannelID,
		namespace:  cfg.Namespace,
		template:   cfg.TemplateName,
	}
}

// API payload shapes for the conversations "send" call.
type sendRequest struct {
	To        string      `json:"to"`
	ChannelID string      `json:"channelId"`
	Type      string      `json:"type"`
	Content   sendContent `json:"content"`
}

type sendContent struct {
	HSM hsmContent `json:"hsm"`
}

type hsmContent struct {
	Namespace    string         `json:"namespace"`
	TemplateName string         `json:"templateName"`
	Language     hsmLanguage    `json:"language"`
	Components   []hsmComponent `json:"components"`
}

type hsmLanguage struct {
	Code   string `json:"code"`
	Policy string `json:"policy"`
}

type hsmComponent struct {
	Type       string     `json:"type"`
	Parameters []hsmParam `json:"parameters"`
}

type hsmParam struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type apiError struct {
	Errors []struct {
		Description string `json:"description"`
	} `json:"errors"`
}

// Send posts one templated message. Non-2xx responses are returned as
// errors carrying the provider's description when one is present.
func (c *Client) Send(ctx context.Context, msg Message, to string) error {
	params := make([]hsmParam, 0, 5)
	for _, p := range msg.templateParams() {
		params = append(params, hsmParam{Type: "text", Text: p})
	}

	payload := sendRequest{
		To:        to,
		ChannelID: c.channelID,
		Type:      "hsm",
		Content: sendContent{
			HSM: hsmContent{
				Namespace:    c.namespace,
				TemplateName: c.template,
				Language:     hsmLanguage{Code: "en", Policy: "deterministic"},
				Components: []hsmComponent{
					{Type: "body", Parameters: params},
				},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/send", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build notification request: %w", err)
	}
	req.Header.Set("Authorization", "AccessKey "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var apiErr apiError
	if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && len(apiErr.Errors) > 0 {
		return fmt.Errorf("send notification: %s (status %d)", apiErr.Errors[0].Description, resp.StatusCode)
	}
	return fmt.Errorf("send notification: status %d", resp.StatusCode)
}
