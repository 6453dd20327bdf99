package services

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// GoogleOAuthService exchanges authorization codes from the admin SPA and
// verifies the resulting ID token against the configured client ID.
type GoogleOAuthService struct {
	clientID     string
	oauth2Config *oauth2.Config
}

// NewGoogleOAuthService creates a new GoogleOAuthService.
func NewGoogleOAuthService(clientID, clientSecret, redirectURL string) *GoogleOAuthService {
	return &GoogleOAuthService{
		clientID: clientID,
		oauth2Config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// VerifyCode exchanges the authorization code, validates the ID token it
// carries and returns the verified email address.
func (s *GoogleOAuthService) VerifyCode(ctx context.Context, code string) (string, error) {
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("failed to exchange oauth code: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return "", fmt.Errorf("oauth token response is missing id_token")
	}

	payload, err := idtoken.Validate(ctx, rawIDToken, s.clientID)
	if err != nil {
		return "", fmt.Errorf("google ID token validation failed: %w", err)
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return "", fmt.Errorf("google ID token has no email claim")
	}
	if verified, _ := payload.Claims["email_verified"].(bool); !verified {
		return "", fmt.Errorf("google account email is not verified")
	}

	return email, nil
}
