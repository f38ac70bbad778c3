package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Client talks to the hosted backend's REST API (accounts, document
// database, blob storage). It is stateless apart from its credentials;
// per-user calls go through a session-bound copy from WithSession.
type Client struct {
	BaseURL    string
	Project    string
	APIKey     string
	Session    string
	HTTPClient *http.Client
}

func NewClient(baseURL, project, apiKey string) *Client {
	return &Client{
		BaseURL:    baseURL,
		Project:    project,
		APIKey:     apiKey,
		HTTPClient: &http.Client{},
	}
}

// WithSession returns a copy of the client that authenticates as the
// session's user instead of with the server API key.
func (c *Client) WithSession(secret string) *Client {
	copied := *c
	copied.Session = secret
	return &copied
}

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend: %s (status %d)", e.Message, e.Code)
}

func IsNotFound(err error) bool {
	var be *Error
	return errors.As(err, &be) && be.Code == http.StatusNotFound
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	target := c.BaseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.setAuthHeaders(req)

	return c.send(req, out)
}

func (c *Client) setAuthHeaders(req *http.Request) {
	req.Header.Set("X-Appwrite-Project", c.Project)
	if c.Session != "" {
		req.Header.Set("X-Appwrite-Session", c.Session)
	} else if c.APIKey != "" {
		req.Header.Set("X-Appwrite-Key", c.APIKey)
	}
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{Code: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		_ = json.Unmarshal(payload, apiErr)
		apiErr.Code = resp.StatusCode
		return apiErr
	}
	if out == nil || len(payload) == 0 {
		return nil
	}
	return json.Unmarshal(payload, out)
}
