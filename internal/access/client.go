package access

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// MessageRetry is shown when the gate cannot be reached or answers
// unexpectedly.
const MessageRetry = "Unable to verify code. Please try again."

// ErrUnavailable wraps every failure that is not a definite answer.
var ErrUnavailable = errors.New(MessageRetry)

// Client submits codes to a remote gate. It never retries: one call, one
// answer, and anything other than a definite answer is unauthorized.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient returns a Client for the gate at endpoint, e.g.
// "http://localhost:8080/access".
func NewClient(endpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{endpoint: endpoint, http: httpClient}
}

// Check submits code. A 200 or 401 reply yields a Response and a nil error;
// any other outcome returns ErrUnavailable.
func (c *Client) Check(ctx context.Context, code string) (Response, error) {
	payload, err := json.Marshal(map[string]string{"code": code})
	if err != nil {
		return Response{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusUnauthorized:
	default:
		return Response{}, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Response{}, fmt.Errorf("%w: decoding reply: %v", ErrUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		out.Authorized = false
		if strings.TrimSpace(out.Message) == "" {
			out.Message = MessageInvalid
		}
	}
	return out, nil
}
