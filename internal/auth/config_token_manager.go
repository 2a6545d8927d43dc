package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Static errors for err113 compliance.
var (
	ErrNoConfigPersister = errors.New("no config persister configured")
)

// ConfigPersister saves tokens so later runs can reuse them.
type ConfigPersister interface {
	SaveToken(token string, expiresAt time.Time) error
}

// ConfigTokenManager wraps OAuth2TokenManager and persists every newly
// obtained token. Persistence failures are reported through onPersistError
// and never fail the request.
type ConfigTokenManager struct {
	oauth2Manager   *OAuth2TokenManager
	configPersister ConfigPersister
	onPersistError  func(error)
	mutex           sync.Mutex
	lastToken       string
}

var _ TokenManager = (*ConfigTokenManager)(nil)

// NewConfigTokenManager creates a config-persisting token manager seeded with
// a previously saved token.
func NewConfigTokenManager(config *OAuth2Config, persister ConfigPersister, savedToken string, savedExpiry time.Time, onPersistError func(error)) *ConfigTokenManager {
	oauth2Manager := NewOAuth2TokenManager(config)

	if savedToken != "" {
		oauth2Manager.SetToken(savedToken, savedExpiry)
	}

	return &ConfigTokenManager{
		oauth2Manager:   oauth2Manager,
		configPersister: persister,
		onPersistError:  onPersistError,
		lastToken:       savedToken,
	}
}

// GetToken returns a valid access token, persisting it when it changed.
func (m *ConfigTokenManager) GetToken(ctx context.Context) (string, error) {
	token, err := m.oauth2Manager.GetToken(ctx)
	if err != nil {
		return "", err
	}

	m.persistIfChanged()

	return token, nil
}

// RefreshToken forces a token refresh and persists the result.
func (m *ConfigTokenManager) RefreshToken(ctx context.Context) error {
	err := m.oauth2Manager.RefreshToken(ctx)
	if err != nil {
		return err
	}

	m.persistIfChanged()

	return nil
}

// SetToken manually sets the access token without persisting it.
func (m *ConfigTokenManager) SetToken(token string, expiresAt time.Time) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.oauth2Manager.SetToken(token, expiresAt)
	m.lastToken = token
}

func (m *ConfigTokenManager) persistIfChanged() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	current := m.oauth2Manager.Current()
	if current == nil || current.AccessToken == m.lastToken {
		return
	}

	m.lastToken = current.AccessToken

	err := m.persistToken(current)
	if err != nil && m.onPersistError != nil {
		m.onPersistError(err)
	}
}

func (m *ConfigTokenManager) persistToken(token *Token) error {
	if m.configPersister == nil {
		return ErrNoConfigPersister
	}

	err := m.configPersister.SaveToken(token.AccessToken, token.ExpiresAt)
	if err != nil {
		return fmt.Errorf("saving token: %w", err)
	}

	return nil
}
