package account

import (
	"context"
	"strings"
)

const (
	StorageKey          = "novaStreamAccount"
	activeProfileSuffix = "_activeProfile"
)

// Storage is a string key-value store. Get reports found=false for absent keys.
type Storage interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Keys are the two storage keys backing one account.
type Keys struct {
	Account       string
	ActiveProfile string
}

// KeysFor namespaces the account keys by client id; an empty id maps to the legacy keys.
func KeysFor(clientID string) Keys {
	base := StorageKey
	if clientID = strings.TrimSpace(clientID); clientID != "" {
		base = StorageKey + ":" + clientID
	}
	return Keys{Account: base, ActiveProfile: base + activeProfileSuffix}
}
