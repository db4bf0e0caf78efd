package jwtx_test

import (
	"testing"
	"time"

	"github.com/dev-gonzo/system-rpg-backend-sub000/pkg/cryptox"
	"github.com/dev-gonzo/system-rpg-backend-sub000/pkg/idx"
	"github.com/dev-gonzo/system-rpg-backend-sub000/pkg/jwtx"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const (
	testKID    = "test-key-2025"
	testSecret = "0123456789abcdef0123456789abcdef"
)

func newRSACodec(t *testing.T) *jwtx.Codec {
	t.Helper()

	key, err := cryptox.GenerateRSAKey(2048)
	require.NoError(t, err)

	signer, err := jwtx.NewSignerRS256(testKID, key)
	require.NoError(t, err)

	codec, err := jwtx.NewCodec(signer,
		jwtx.NewVerifierRS256(testKID, &key.PublicKey),
		jwtx.NewVerifierHS256([]byte(testSecret)),
	)
	require.NoError(t, err)
	return codec
}

func newHMACCodec(t *testing.T, secret string) *jwtx.Codec {
	t.Helper()

	signer, err := jwtx.NewSignerHS256([]byte(secret))
	require.NoError(t, err)

	codec, err := jwtx.NewCodec(signer, jwtx.NewVerifierHS256([]byte(secret)))
	require.NoError(t, err)
	return codec
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	userID := uuid.NewString()
	now := time.Now().UTC()

	for name, codec := range map[string]*jwtx.Codec{
		"RS256": newRSACodec(t),
		"HS256": newHMACCodec(t, testSecret),
	} {
		t.Run(name, func(t *testing.T) {
			claims := jwtx.NewAccessClaims(
				"alice", userID, "alice@example.com", "Alice Silva",
				[]string{"USER", "GAME_MASTER"},
				15*time.Minute, now,
			)

			token, err := codec.Encode(claims)
			require.NoError(t, err)
			require.NotEmpty(t, token)

			parsed, err := codec.Decode(token)
			require.NoError(t, err)

			require.Equal(t, "alice", parsed.Subject)
			require.Equal(t, userID, parsed.UserID)
			require.Equal(t, "alice@example.com", parsed.Email)
			require.Equal(t, "Alice Silva", parsed.FullName)
			require.ElementsMatch(t, []string{"USER", "GAME_MASTER"}, parsed.Roles)
			require.Equal(t, jwtx.KindAccess, parsed.Kind)
			// The jti is a ULID.
			_, err = idx.Parse(parsed.ID)
			require.NoError(t, err)

			iat, err := parsed.Issued()
			require.NoError(t, err)
			require.WithinDuration(t, now, iat, time.Second)

			exp, err := parsed.Expiry()
			require.NoError(t, err)
			require.WithinDuration(t, now.Add(15*time.Minute), exp, time.Second)
		})
	}
}

func TestRefreshClaimsCarryOnlyIdentity(t *testing.T) {
	codec := newRSACodec(t)
	userID := uuid.NewString()

	claims := jwtx.NewRefreshClaims("alice", userID, 7*24*time.Hour, time.Now().UTC())
	token, err := codec.Encode(claims)
	require.NoError(t, err)

	parsed, err := codec.Decode(token)
	require.NoError(t, err)
	require.Equal(t, jwtx.KindRefresh, parsed.Kind)
	require.Equal(t, userID, parsed.UserID)
	require.Empty(t, parsed.Email)
	require.Empty(t, parsed.Roles)
}

func TestDecodeRejectsExpiredToken(t *testing.T) {
	codec := newRSACodec(t)

	claims := jwtx.NewAccessClaims("alice", uuid.NewString(), "", "", nil,
		-1*time.Second, time.Now().UTC())
	token, err := codec.Encode(claims)
	require.NoError(t, err)

	_, err = codec.Decode(token)
	require.ErrorIs(t, err, jwtx.ErrVerification)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}

// An RS256-primary codec must still accept HS256 tokens minted before an
// algorithm migration. The reverse is intentionally unsupported: an
// HS256-primary codec has no public key to verify RSA signatures with.
func TestVerificationFallbackIsAsymmetric(t *testing.T) {
	rsaCodec := newRSACodec(t)
	hmacCodec := newHMACCodec(t, testSecret)

	claims := jwtx.NewAccessClaims("bob", uuid.NewString(), "", "", nil,
		time.Minute, time.Now().UTC())

	t.Run("HMAC token accepted by RSA-primary codec", func(t *testing.T) {
		token, err := hmacCodec.Encode(claims)
		require.NoError(t, err)

		parsed, err := rsaCodec.Decode(token)
		require.NoError(t, err)
		require.Equal(t, "bob", parsed.Subject)
	})

	t.Run("RSA token rejected by HMAC-primary codec", func(t *testing.T) {
		token, err := rsaCodec.Encode(claims)
		require.NoError(t, err)

		_, err = hmacCodec.Decode(token)
		require.ErrorIs(t, err, jwtx.ErrVerification)
	})
}

func TestDecodeRejectsForeignSecret(t *testing.T) {
	codec := newHMACCodec(t, testSecret)
	foreign := newHMACCodec(t, "another-secret-another-secret!!!")

	claims := jwtx.NewAccessClaims("eve", uuid.NewString(), "", "", nil,
		time.Minute, time.Now().UTC())
	token, err := foreign.Encode(claims)
	require.NoError(t, err)

	_, err = codec.Decode(token)
	require.ErrorIs(t, err, jwtx.ErrVerification)
}

func TestDecodeRejectsUnknownKID(t *testing.T) {
	key, err := cryptox.GenerateRSAKey(2048)
	require.NoError(t, err)

	signer, err := jwtx.NewSignerRS256("other-kid", key)
	require.NoError(t, err)
	foreign, err := jwtx.NewCodec(signer, jwtx.NewVerifierRS256("other-kid", &key.PublicKey))
	require.NoError(t, err)

	claims := jwtx.NewAccessClaims("mallory", uuid.NewString(), "", "", nil,
		time.Minute, time.Now().UTC())
	token, err := foreign.Encode(claims)
	require.NoError(t, err)

	// Same key material, but the verifier expects a different kid.
	verifier := jwtx.NewVerifierRS256(testKID, &key.PublicKey)
	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrUnknownKID)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	codec := newRSACodec(t)

	for _, in := range []string{"", "garbage", "a.b.c", "ey.ey.ey"} {
		_, err := codec.Decode(in)
		require.ErrorIs(t, err, jwtx.ErrVerification)
	}
}

func TestClaimAccessorsFailOnMissingData(t *testing.T) {
	var empty jwtx.Claims

	_, err := empty.Username()
	require.ErrorIs(t, err, jwtx.ErrMissingSubject)

	_, err = empty.UserUUID()
	require.ErrorIs(t, err, jwtx.ErrMissingUserID)

	_, err = empty.TokenKind()
	require.ErrorIs(t, err, jwtx.ErrMissingKind)

	_, err = empty.Expiry()
	require.ErrorIs(t, err, jwtx.ErrMissingExpiry)

	malformed := jwtx.Claims{UserID: "not-a-uuid"}
	_, err = malformed.UserUUID()
	require.ErrorIs(t, err, jwtx.ErrMissingUserID)
}
