package jwtx_test

import (
	"sync"
	"testing"

	"github.com/dev-gonzo/system-rpg-backend-sub000/pkg/cryptox"
	"github.com/dev-gonzo/system-rpg-backend-sub000/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestKeyProviderLoadsConfiguredPair(t *testing.T) {
	key, err := cryptox.GenerateRSAKey(2048)
	require.NoError(t, err)

	privB64, err := cryptox.EncodeRSAPrivateKeyBase64(key)
	require.NoError(t, err)
	pubB64, err := cryptox.EncodeRSAPublicKeyBase64(&key.PublicKey)
	require.NoError(t, err)

	provider := jwtx.NewKeyProvider(jwtx.KeyProviderConfig{
		PrivateKeyBase64: privB64,
		PublicKeyBase64:  pubB64,
		KeyID:            "configured-kid",
	}, nil)

	pair, err := provider.KeyPair()
	require.NoError(t, err)
	require.Equal(t, "configured-kid", pair.KID)
	require.Equal(t, "RS256", pair.Alg)
	require.True(t, key.Equal(pair.Private))
	require.True(t, key.PublicKey.Equal(pair.Public))
}

func TestKeyProviderGeneratesWhenUnconfigured(t *testing.T) {
	provider := jwtx.NewKeyProvider(jwtx.KeyProviderConfig{KeyID: "gen-kid"}, nil)

	pair, err := provider.KeyPair()
	require.NoError(t, err)
	require.NotNil(t, pair.Private)
	require.Equal(t, "gen-kid", pair.KID)
	require.GreaterOrEqual(t, pair.Private.N.BitLen(), 2048)
}

func TestKeyProviderFallsBackOnCorruptMaterial(t *testing.T) {
	provider := jwtx.NewKeyProvider(jwtx.KeyProviderConfig{
		PrivateKeyBase64: "!!!not-base64!!!",
		PublicKeyBase64:  "!!!not-base64!!!",
		KeyID:            "fallback-kid",
	}, nil)

	pair, err := provider.KeyPair()
	require.NoError(t, err)
	require.NotNil(t, pair.Private)
	require.Equal(t, "fallback-kid", pair.KID)
}

func TestKeyProviderFallsBackOnMismatchedPair(t *testing.T) {
	keyA, err := cryptox.GenerateRSAKey(2048)
	require.NoError(t, err)
	keyB, err := cryptox.GenerateRSAKey(2048)
	require.NoError(t, err)

	privB64, err := cryptox.EncodeRSAPrivateKeyBase64(keyA)
	require.NoError(t, err)
	pubB64, err := cryptox.EncodeRSAPublicKeyBase64(&keyB.PublicKey)
	require.NoError(t, err)

	provider := jwtx.NewKeyProvider(jwtx.KeyProviderConfig{
		PrivateKeyBase64: privB64,
		PublicKeyBase64:  pubB64,
	}, nil)

	pair, err := provider.KeyPair()
	require.NoError(t, err)
	// Neither configured key survives: a fresh consistent pair replaces them.
	require.False(t, keyA.Equal(pair.Private))
	require.True(t, pair.Private.PublicKey.Equal(pair.Public))
}

func TestKeyProviderResolvesOnce(t *testing.T) {
	provider := jwtx.NewKeyProvider(jwtx.KeyProviderConfig{}, nil)

	const callers = 16
	pairs := make([]*jwtx.KeyPair, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			pair, err := provider.KeyPair()
			require.NoError(t, err)
			pairs[i] = pair
		}(i)
	}
	wg.Wait()

	for i := 1; i < callers; i++ {
		require.Same(t, pairs[0], pairs[i])
	}
}
