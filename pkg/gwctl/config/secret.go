package config

import (
	"fmt"

	"github.com/zalando/go-keyring"
)

// keyringService namespaces gwctl entries in the OS keychain; entries are
// keyed by client id.
const keyringService = "gwctl"

// KeychainSecret reads the client secret for a client id from the OS
// keychain.
func KeychainSecret(clientID string) (string, error) {
	secret, err := keyring.Get(keyringService, clientID)
	if err != nil {
		return "", fmt.Errorf("failed to read client secret from keychain: %w", err)
	}
	return secret, nil
}

// StoreKeychainSecret stores the client secret for a client id in the OS
// keychain.
func StoreKeychainSecret(clientID, secret string) error {
	if err := keyring.Set(keyringService, clientID, secret); err != nil {
		return fmt.Errorf("failed to store client secret in keychain: %w", err)
	}
	return nil
}

// DeleteKeychainSecret removes the stored client secret for a client id.
func DeleteKeychainSecret(clientID string) error {
	if err := keyring.Delete(keyringService, clientID); err != nil {
		return fmt.Errorf("failed to delete client secret from keychain: %w", err)
	}
	return nil
}
