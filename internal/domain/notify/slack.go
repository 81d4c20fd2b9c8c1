package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// SlackSender posts incoming-webhook messages. A 429 is retried once after
// the advertised Retry-After delay; every other failure is returned as-is.
type SlackSender struct {
	Client *http.Client
}

func NewSlackSender() *SlackSender {
	return &SlackSender{Client: &http.Client{Timeout: 10 * time.Second}}
}

func (s *SlackSender) Send(ctx context.Context, webhookURL, text string) error {
	if webhookURL == "" {
		return errors.New("slack webhook not configured")
	}

	retryable, err := s.post(ctx, webhookURL, text)
	if err == nil || !retryable {
		return err
	}
	_, err = s.post(ctx, webhookURL, text)
	return err
}

func (s *SlackSender) post(ctx context.Context, webhookURL, text string) (retryable bool, err error) {
	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(payload))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode == http.StatusOK:
		return false, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		wait := time.Second
		if seconds, convErr := strconv.Atoi(resp.Header.Get("Retry-After")); convErr == nil && seconds >= 0 {
			wait = time.Duration(seconds) * time.Second
		}
		select {
		case <-time.After(wait):
			return true, fmt.Errorf("slack webhook rate limited")
		case <-ctx.Done():
			return false, ctx.Err()
		}
	default:
		return false, fmt.Errorf("slack webhook returned status %d", resp.StatusCode)
	}
}
