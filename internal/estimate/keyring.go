package estimate

import "github.com/zalando/go-keyring"

const keyringService = "quotebuilder"
const keyringUser = "pricing-api"

// SaveAPIKey stores the pricing service API key in the OS credential
// manager.
func SaveAPIKey(key string) error {
	return keyring.Set(keyringService, keyringUser, key)
}

// LoadAPIKey retrieves the stored pricing service API key. Returns "" if
// none is stored.
func LoadAPIKey() (string, error) {
	key, err := keyring.Get(keyringService, keyringUser)
	if err == keyring.ErrNotFound {
		return "", nil
	}
	return key, err
}

// DeleteAPIKey removes the stored pricing service API key.
func DeleteAPIKey() error {
	return keyring.Delete(keyringService, keyringUser)
}
