package jwtx_test

import (
	"encoding/json"
	"testing"

	"github.com/dev-gonzo/system-rpg-backend-sub000/pkg/cryptox"
	"github.com/dev-gonzo/system-rpg-backend-sub000/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestEmptyJWKSSerializesWithEmptyKeysArray(t *testing.T) {
	out, err := json.Marshal(jwtx.EmptyJWKS())
	require.NoError(t, err)
	require.JSONEq(t, `{"keys":[]}`, string(out))
}

func TestNewRSAJWK(t *testing.T) {
	key, err := cryptox.GenerateRSAKey(2048)
	require.NoError(t, err)

	jwk := jwtx.NewRSAJWK("kid-1", "sig", "RS256", &key.PublicKey)
	require.Equal(t, "RSA", jwk.Kty)
	require.Equal(t, "sig", jwk.Use)
	require.Equal(t, "RS256", jwk.Alg)
	require.Equal(t, "kid-1", jwk.Kid)
	require.NotEmpty(t, jwk.N)
	// 65537 is 0x010001, base64url "AQAB".
	require.Equal(t, "AQAB", jwk.E)

	// base64url without padding, no leading zero byte in the modulus.
	require.NotContains(t, jwk.N, "=")
	require.NotEqual(t, "A", jwk.N[:1])
}
