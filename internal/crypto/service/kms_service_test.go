package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"testing"

	"gocloud.dev/secrets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// generateLocalSecretsURI generates a base64key:// URI for testing.
func generateLocalSecretsURI(t *testing.T) string {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return "base64key://" + base64.URLEncoding.EncodeToString(key)
}

func TestKMSService_OpenKeeper(t *testing.T) {
	ctx := context.Background()
	kmsService := NewKMSService()

	t.Run("Success_LocalSecrets", func(t *testing.T) {
		keeper, err := kmsService.OpenKeeper(ctx, generateLocalSecretsURI(t))
		require.NoError(t, err)
		require.NotNil(t, keeper)
		defer func() {
			assert.NoError(t, keeper.Close())
		}()

		_, ok := keeper.(*secrets.Keeper)
		assert.True(t, ok, "keeper should be *secrets.Keeper")
	})

	t.Run("Error_InvalidURI", func(t *testing.T) {
		keeper, err := kmsService.OpenKeeper(ctx, "invalid://uri")
		assert.Error(t, err)
		assert.Nil(t, keeper)
		assert.Contains(t, err.Error(), "failed to open KMS keeper")
	})

	t.Run("Error_EmptyURI", func(t *testing.T) {
		keeper, err := kmsService.OpenKeeper(ctx, "")
		assert.Error(t, err)
		assert.Nil(t, keeper)
	})
}

func TestKMSService_SealAndOpenSecret(t *testing.T) {
	ctx := context.Background()
	kmsService := NewKMSService()
	keyURI := generateLocalSecretsURI(t)

	testCases := []struct {
		name   string
		secret []byte
	}{
		{name: "HexPrivateKey", secret: []byte("3945208f7b2144b13f36e38ac6d39f95889393692860b51a42fb81ef4df7c5b8")},
		{name: "BinaryData", secret: []byte{0x00, 0x01, 0x02, 0xFF, 0xFE}},
		{name: "ScalarSize", secret: make([]byte, 32)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sealed, err := kmsService.SealSecret(ctx, keyURI, tc.secret)
			require.NoError(t, err)
			assert.NotEmpty(t, sealed)

			opened, err := kmsService.OpenSecret(ctx, keyURI, sealed)
			require.NoError(t, err)
			assert.Equal(t, tc.secret, opened)
		})
	}
}

func TestKMSService_OpenSecretErrors(t *testing.T) {
	ctx := context.Background()
	kmsService := NewKMSService()
	keyURI := generateLocalSecretsURI(t)

	t.Run("Error_NotBase64", func(t *testing.T) {
		opened, err := kmsService.OpenSecret(ctx, keyURI, "%%%")
		assert.Error(t, err)
		assert.Nil(t, opened)
		assert.Contains(t, err.Error(), "not base64")
	})

	t.Run("Error_WrongKey", func(t *testing.T) {
		sealed, err := kmsService.SealSecret(ctx, keyURI, []byte("secret"))
		require.NoError(t, err)

		opened, err := kmsService.OpenSecret(ctx, generateLocalSecretsURI(t), sealed)
		assert.Error(t, err)
		assert.Nil(t, opened)
		assert.Contains(t, err.Error(), "failed to decrypt secret with KMS")
	})

	t.Run("Error_InvalidURI", func(t *testing.T) {
		_, err := kmsService.SealSecret(ctx, "invalid://uri", []byte("secret"))
		assert.Error(t, err)
	})
}
