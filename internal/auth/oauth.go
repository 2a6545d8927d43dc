package auth

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// OAuth2Config configures the client_credentials grant. AccessToken seeds the
// store with a token obtained elsewhere.
type OAuth2Config struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scopes       []string
	AccessToken  string
	HTTPClient   *http.Client
}

// OAuth2TokenManager obtains and caches tokens with the client_credentials grant.
type OAuth2TokenManager struct {
	config *OAuth2Config
	store  *TokenStore
	mu     sync.Mutex
}

var _ TokenManager = (*OAuth2TokenManager)(nil)

// NewOAuth2TokenManager creates a manager for config.
func NewOAuth2TokenManager(config *OAuth2Config) *OAuth2TokenManager {
	manager := &OAuth2TokenManager{
		config: config,
		store:  NewTokenStore(),
	}

	if config.AccessToken != "" {
		manager.store.Set(&Token{AccessToken: config.AccessToken, TokenType: "bearer"})
	}

	return manager
}

// GetToken returns a valid access token, requesting a new one when needed.
func (m *OAuth2TokenManager) GetToken(ctx context.Context) (string, error) {
	token := m.store.Get()
	if token.Valid() {
		return token.AccessToken, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Another caller may have refreshed while we waited.
	token = m.store.Get()
	if token.Valid() {
		return token.AccessToken, nil
	}

	err := m.requestToken(ctx)
	if err != nil {
		return "", err
	}

	return m.store.Get().AccessToken, nil
}

// RefreshToken forces a new token request.
func (m *OAuth2TokenManager) RefreshToken(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.requestToken(ctx)
}

// SetToken stores a token obtained elsewhere.
func (m *OAuth2TokenManager) SetToken(token string, expiresAt time.Time) {
	m.store.Set(&Token{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
	})
}

// Current returns the stored token, or nil.
func (m *OAuth2TokenManager) Current() *Token {
	return m.store.Get()
}

func (m *OAuth2TokenManager) requestToken(ctx context.Context) error {
	if m.config.TokenURL == "" || m.config.ClientID == "" {
		return ErrNoCredentials
	}

	credentials := clientcredentials.Config{
		ClientID:     m.config.ClientID,
		ClientSecret: m.config.ClientSecret,
		TokenURL:     m.config.TokenURL,
		Scopes:       m.config.Scopes,
	}

	if m.config.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, m.config.HTTPClient)
	}

	token, err := credentials.Token(ctx)
	if err != nil {
		return fmt.Errorf("requesting client credentials token: %w", err)
	}

	m.store.Set(&Token{
		AccessToken:  token.AccessToken,
		TokenType:    token.TokenType,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    token.Expiry,
	})

	return nil
}
