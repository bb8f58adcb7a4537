package config

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// KeyringService is the service name under which secrets are stored.
const KeyringService = "autoapply"

const gmailPasswordKey = "gmail-app-password:"

// ErrNoSecret is returned when the keyring holds no password for the user.
var ErrNoSecret = errors.New("no password stored in keyring")

func keyringPassword(user string) (string, error) {
	pw, err := keyring.Get(KeyringService, gmailPasswordKey+user)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNoSecret
	}
	if err != nil {
		return "", fmt.Errorf("keyring lookup: %w", err)
	}
	return pw, nil
}

// StoreGmailPassword saves the Gmail app password for user in the OS keyring.
func StoreGmailPassword(user, password string) error {
	if user == "" || password == "" {
		return errors.New("user and password are required")
	}
	if err := keyring.Set(KeyringService, gmailPasswordKey+user, password); err != nil {
		return fmt.Errorf("keyring store: %w", err)
	}
	return nil
}

// DeleteGmailPassword removes the stored Gmail app password for user.
func DeleteGmailPassword(user string) error {
	err := keyring.Delete(KeyringService, gmailPasswordKey+user)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNoSecret
	}
	if err != nil {
		return fmt.Errorf("keyring delete: %w", err)
	}
	return nil
}
