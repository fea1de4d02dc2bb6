package crypto

import (
	"errors"
	"fmt"
	"os"
)

// Keyring provides secure key storage abstraction
type Keyring interface {
	GetKey() (string, error)
	SetKey(password string) error
	DeleteKey() error
	IsAvailable() bool
}

const (
	ServiceName = "clientdesk"
	KeyName     = "db-encryption-key"

	// KeyEnvVar holds the database key when no system keyring is reachable.
	// When set it takes precedence over the system keyring.
	KeyEnvVar = "CLIENTDESK_DB_KEY"
)

// ErrKeyNotFound is returned by GetKey when no key has been stored yet
var ErrKeyNotFound = errors.New("encryption key not found")

// NewKeyring returns the environment keyring when KeyEnvVar is set, otherwise the
// system keyring (macOS Keychain, Secret Service, Windows Credential Manager) if it
// responds, otherwise the environment keyring.
func NewKeyring() Keyring {
	env := &envKeyring{}
	if env.IsAvailable() {
		return env
	}
	sys := newSystemKeyring(ServiceName, KeyName)
	if sys.IsAvailable() {
		return sys
	}
	return env
}

// ResolveKey returns the stored database key. When none is stored it asks prompt for a
// new one and stores it. A key that cannot be stored is not returned, so a database is
// never created with a key that is lost on exit.
func ResolveKey(kr Keyring, prompt func() (string, error)) (string, error) {
	key, err := kr.GetKey()
	if err == nil {
		return key, nil
	}
	if !errors.Is(err, ErrKeyNotFound) {
		return "", err
	}

	key, err = prompt()
	if err != nil {
		return "", fmt.Errorf("failed to set password: %w", err)
	}
	if key == "" {
		return "", errors.New("password cannot be empty")
	}

	if err := kr.SetKey(key); err != nil {
		return "", fmt.Errorf("failed to store encryption key: %w", err)
	}
	return key, nil
}

// envKeyring reads the key from KeyEnvVar; it cannot store anything
type envKeyring struct{}

// GetKey retrieves the encryption key from the CLIENTDESK_DB_KEY environment variable
func (k *envKeyring) GetKey() (string, error) {
	key := os.Getenv(KeyEnvVar)
	if key == "" {
		return "", fmt.Errorf("%w: %s environment variable not set", ErrKeyNotFound, KeyEnvVar)
	}
	return key, nil
}

// SetKey tells the user which variable to export
func (k *envKeyring) SetKey(password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}
	return fmt.Errorf("no system keyring available: export %s with the chosen password and run again", KeyEnvVar)
}

// DeleteKey returns an error suggesting to unset the environment variable
func (k *envKeyring) DeleteKey() error {
	return fmt.Errorf("no system keyring available: unset %s manually", KeyEnvVar)
}

// IsAvailable checks if the environment variable is set
func (k *envKeyring) IsAvailable() bool {
	return os.Getenv(KeyEnvVar) != ""
}
