package crypto

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// systemKeyring stores the key in the OS credential store under service/user
type systemKeyring struct {
	service string
	user    string
}

func newSystemKeyring(service, user string) *systemKeyring {
	return &systemKeyring{service: service, user: user}
}

// GetKey retrieves the encryption key from the system keyring
func (k *systemKeyring) GetKey() (string, error) {
	key, err := keyring.Get(k.service, k.user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("%w in system keyring", ErrKeyNotFound)
		}
		return "", fmt.Errorf("failed to retrieve key from system keyring: %w", err)
	}

	if key == "" {
		return "", errors.New("encryption key is empty")
	}
	return key, nil
}

// SetKey stores the encryption key in the system keyring
func (k *systemKeyring) SetKey(password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}

	if err := keyring.Set(k.service, k.user, password); err != nil {
		return fmt.Errorf("failed to store key in system keyring: %w", err)
	}
	return nil
}

// DeleteKey removes the encryption key from the system keyring
func (k *systemKeyring) DeleteKey() error {
	if err := keyring.Delete(k.service, k.user); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("%w in system keyring", ErrKeyNotFound)
		}
		return fmt.Errorf("failed to delete key from system keyring: %w", err)
	}
	return nil
}

// IsAvailable probes the keyring by writing and removing a throwaway entry
func (k *systemKeyring) IsAvailable() bool {
	probe := "__" + k.service + "_availability_test__"
	if err := keyring.Set(k.service, probe, "test"); err != nil {
		return false
	}
	_ = keyring.Delete(k.service, probe)
	return true
}
