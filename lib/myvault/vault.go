package myvault

import (
	"context"

	"github.com/MarcGrol/storefront/lib/mystore"
)

const (
	// CurrentAPIKey is the uid under which the commerce-gateway credential is stored.
	CurrentAPIKey = "currentApiKey"
)

type Credential struct {
	APIKey string
}

//go:generate mockgen -source=vault.go -package myvault -destination vault_mock.go Vault
type VaultReader interface {
	Get(c context.Context, uid string) (Credential, bool, error)
}

type Vault interface {
	VaultReader
	Put(c context.Context, uid string, value Credential) error
}

func New(c context.Context) (Vault, func(), error) {
	return mystore.New[Credential](c)
}
