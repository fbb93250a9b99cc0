package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestExchangeCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/access_token" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		query := r.URL.Query()
		if query.Get("code") != "code123" {
			t.Errorf("code = %q, want code123", query.Get("code"))
		}
		if query.Get("client_id") != "app" || query.Get("client_secret") != "secret" {
			t.Error("client credentials not forwarded")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok_abc","expires_in":86400,"user_id":12345}`))
	}))
	defer server.Close()

	client := NewClient("app", "secret", "http://localhost/callback")
	client.SetBaseURLs(server.URL, server.URL)

	token, err := client.ExchangeCode(context.Background(), "code123")
	if err != nil {
		t.Fatalf("ExchangeCode failed: %v", err)
	}

	if token.AccessToken != "tok_abc" {
		t.Errorf("access token = %q", token.AccessToken)
	}
	if token.UserID != 12345 {
		t.Errorf("user id = %d, want 12345", token.UserID)
	}
}

func TestExchangeCodeRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer server.Close()

	client := NewClient("app", "secret", "http://localhost/callback")
	client.SetBaseURLs(server.URL, server.URL)

	if _, err := client.ExchangeCode(context.Background(), "bad"); err == nil {
		t.Error("expected an error for a rejected code")
	}
}

func TestFetchProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users.get" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("access_token") != "tok_abc" {
			t.Error("access token not forwarded")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"response":[{"id":12345,"first_name":"Alice","last_name":"Ivanova","screen_name":"alice","photo_100":"https://vk.com/p.jpg"}]}`))
	}))
	defer server.Close()

	client := NewClient("app", "secret", "http://localhost/callback")
	client.SetBaseURLs(server.URL, server.URL)

	profile, err := client.FetchProfile(context.Background(), "tok_abc", 12345)
	if err != nil {
		t.Fatalf("FetchProfile failed: %v", err)
	}

	if profile.ID != 12345 {
		t.Errorf("profile id = %d", profile.ID)
	}
	if profile.DisplayName() != "Alice Ivanova" {
		t.Errorf("display name = %q", profile.DisplayName())
	}
}

func TestFetchProfileAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error":{"error_code":5,"error_msg":"User authorization failed"}}`))
	}))
	defer server.Close()

	client := NewClient("app", "secret", "http://localhost/callback")
	client.SetBaseURLs(server.URL, server.URL)

	if _, err := client.FetchProfile(context.Background(), "stale", 12345); err == nil {
		t.Error("expected an error from the API error envelope")
	}
}
