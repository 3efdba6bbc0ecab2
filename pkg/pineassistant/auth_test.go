package pineassistant

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
)

func TestAuthFlow(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/request-code":
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			if body["email"] != "dev@example.com" {
				t.Errorf("email = %q", body["email"])
			}
			json.NewEncoder(w).Encode(CodeRequest{RequestToken: "req-abc"})
		case "/api/v1/auth/verify-code":
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			if body["request_token"] != "req-abc" || body["code"] != "123456" {
				t.Errorf("body = %v", body)
			}
			json.NewEncoder(w).Encode(Verification{
				AccessToken: "tok-xyz",
				UserID:      "user-7",
				Email:       "dev@example.com",
			})
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
	}))

	code, err := client.Auth.RequestCode(context.Background(), "dev@example.com")
	if err != nil {
		t.Fatalf("RequestCode() error = %v", err)
	}
	if code.RequestToken != "req-abc" {
		t.Errorf("RequestToken = %q", code.RequestToken)
	}

	verified, err := client.Auth.VerifyCode(context.Background(), "dev@example.com", "123456", code.RequestToken)
	if err != nil {
		t.Fatalf("VerifyCode() error = %v", err)
	}
	if verified.AccessToken != "tok-xyz" || verified.UserID != "user-7" {
		t.Errorf("Verification = %+v", verified)
	}
}

func TestRequestCodeRejectsBadEmail(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("server should not be reached")
	}))

	if _, err := client.Auth.RequestCode(context.Background(), "not-an-email"); err == nil {
		t.Error("RequestCode() expected error for invalid email")
	}
}
