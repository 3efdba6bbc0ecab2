package pineassistant

import (
	"context"
	"fmt"
	"strings"
)

// AuthService provides the email-verification login flow.
//
// The flow is two steps: RequestCode sends a verification code to the
// account email, VerifyCode exchanges that code for an access token.
type AuthService struct {
	client *Client
}

// newAuthService creates an auth service.
func newAuthService(c *Client) *AuthService {
	return &AuthService{client: c}
}

// CodeRequest is the result of RequestCode.
type CodeRequest struct {
	// RequestToken ties the later VerifyCode call to this code request.
	RequestToken string `json:"request_token"`
}

// Verification is the result of a successful VerifyCode.
type Verification struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"id"`
	Email       string `json:"email"`
}

// RequestCode asks the backend to email a verification code.
func (s *AuthService) RequestCode(ctx context.Context, email string) (*CodeRequest, error) {
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email address: %q", email)
	}

	body := map[string]string{"email": email}
	var resp CodeRequest
	if err := s.client.http.request(ctx, "POST", "/api/v1/auth/request-code", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// VerifyCode exchanges an emailed verification code for credentials.
// requestToken must come from the matching RequestCode call.
func (s *AuthService) VerifyCode(ctx context.Context, email, code, requestToken string) (*Verification, error) {
	body := map[string]string{
		"email":         email,
		"code":          code,
		"request_token": requestToken,
	}
	var resp Verification
	if err := s.client.http.request(ctx, "POST", "/api/v1/auth/verify-code", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
