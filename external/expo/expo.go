package expo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const (
	DefaultURL = "https://exp.host/--/api/v2/push/send"

	PriorityHigh = "high"
	SoundDefault = "default"

	statusOK = "ok"
)

var (
	ErrEmptyMessages  = fmt.Errorf("no messages to send")
	ErrResponseStatus = fmt.Errorf("unexpected response status")
)

// Message is one push notification addressed to one device token
type Message struct {
	To        string                 `json:"to"`
	Title     string                 `json:"title,omitempty"`
	Body      string                 `json:"body,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Sound     string                 `json:"sound,omitempty"`
	Priority  string                 `json:"priority,omitempty"`
	ChannelID string                 `json:"channelId,omitempty"`
}

// Ticket is the gateway acknowledgement of a single message. Tickets are
// returned in the order messages were sent.
type Ticket struct {
	ID      string                 `json:"id,omitempty"`
	Status  string                 `json:"status"`
	Message string                 `json:"message,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (t Ticket) OK() bool {
	return t.Status == statusOK
}

type gatewayError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type jsonResponse struct {
	Data   []Ticket       `json:"data"`
	Errors []gatewayError `json:"errors"`
}

type Client struct {
	httpClient  *http.Client
	url         string
	accessToken string
}

func NewClient(httpClient *http.Client, url, accessToken string) *Client {
	u := DefaultURL
	if url != "" {
		u = url
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		httpClient:  httpClient,
		url:         u,
		accessToken: accessToken,
	}
}

// Push submits all messages in a single request
func (c *Client) Push(ctx context.Context, messages []Message) ([]Ticket, error) {
	if len(messages) == 0 {
		return nil, ErrEmptyMessages
	}

	body, err := json.Marshal(messages)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	d, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var r jsonResponse
	if err := json.Unmarshal(d, &r); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%w: %d", ErrResponseStatus, resp.StatusCode)
		}
		return nil, err
	}

	if len(r.Errors) > 0 {
		return nil, fmt.Errorf("%w: %d %s: %s", ErrResponseStatus, resp.StatusCode, r.Errors[0].Code, r.Errors[0].Message)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrResponseStatus, resp.StatusCode)
	}

	return r.Data, nil
}
