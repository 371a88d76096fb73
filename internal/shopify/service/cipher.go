// Package service provides the Shopify credential cipher and the Admin API client.
package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"gocloud.dev/secrets"

	// Register the keeper drivers selectable through SECRETS_KEEPER_URL
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// Cipher protects credentials at rest.
type Cipher interface {
	Encrypt(ctx context.Context, plaintext string) (string, error)
	Decrypt(ctx context.Context, ciphertext string) (string, error)
	Close() error
}

// OpenCipher opens a keeper-backed Cipher for keeperURL (base64key://, hashivault://,
// awskms://, gcpkms://, azurekeyvault://). An empty URL stores values unchanged.
func OpenCipher(ctx context.Context, keeperURL string) (Cipher, error) {
	if keeperURL == "" {
		return PlainCipher{}, nil
	}
	keeper, err := secrets.OpenKeeper(ctx, keeperURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open secrets keeper: %w", err)
	}
	return &KeeperCipher{keeper: keeper}, nil
}

// KeeperCipher encrypts with a gocloud secrets.Keeper and base64-encodes the result.
type KeeperCipher struct {
	keeper *secrets.Keeper
}

// NewKeeperCipher wraps an opened keeper.
func NewKeeperCipher(keeper *secrets.Keeper) *KeeperCipher {
	return &KeeperCipher{keeper: keeper}
}

func (k *KeeperCipher) Encrypt(ctx context.Context, plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}
	ciphertext, err := k.keeper.Encrypt(ctx, []byte(plaintext))
	if err != nil {
		return "", fmt.Errorf("failed to encrypt credential: %w", err)
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

func (k *KeeperCipher) Decrypt(ctx context.Context, ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", nil
	}
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("failed to decode credential: %w", err)
	}
	plaintext, err := k.keeper.Decrypt(ctx, raw)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt credential: %w", err)
	}
	return string(plaintext), nil
}

func (k *KeeperCipher) Close() error {
	return k.keeper.Close()
}

// PlainCipher stores credentials as given.
type PlainCipher struct{}

func (PlainCipher) Encrypt(_ context.Context, plaintext string) (string, error) { return plaintext, nil }

func (PlainCipher) Decrypt(_ context.Context, ciphertext string) (string, error) { return ciphertext, nil }

func (PlainCipher) Close() error { return nil }
