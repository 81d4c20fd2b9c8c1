package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestSlackSendOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("expected json content type, got %s", r.Header.Get("Content-Type"))
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sender := &SlackSender{Client: srv.Client()}
	if err := sender.Send(context.Background(), srv.URL, "hello"); err != nil {
		t.Fatalf("send: %v", err)
	}
}

func TestSlackSendRetriesOnceOn429(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sender := &SlackSender{Client: srv.Client()}
	if err := sender.Send(context.Background(), srv.URL, "hello"); err != nil {
		t.Fatalf("send after retry: %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected exactly 2 attempts, got %d", calls.Load())
	}
}

func TestSlackSendGivesUpAfterSecond429(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	sender := &SlackSender{Client: srv.Client()}
	if err := sender.Send(context.Background(), srv.URL, "hello"); err == nil {
		t.Fatal("expected error after repeated rate limiting")
	}
	if calls.Load() != 2 {
		t.Fatalf("expected exactly 2 attempts, got %d", calls.Load())
	}
}

func TestSlackSendServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	sender := &SlackSender{Client: srv.Client()}
	if err := sender.Send(context.Background(), srv.URL, "hello"); err == nil {
		t.Fatal("expected error on 500")
	}
}

func TestSlackSendEmptyURL(t *testing.T) {
	sender := NewSlackSender()
	if err := sender.Send(context.Background(), "", "hello"); err == nil {
		t.Fatal("expected error when webhook is not configured")
	}
}
