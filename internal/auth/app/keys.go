package app

import (
	"fmt"
	"log/slog"

	"github.com/dev-gonzo/system-rpg-backend-sub000/pkg/jwtx"
)

// initCodec builds the token codec for the configured algorithm.
//
// RS256 signs with the resolved RSA key and still verifies HS256 tokens
// minted before a migration to asymmetric signing. HS256 verifies only
// itself; there is no public key to check RSA signatures with. The
// returned signer is non-nil only for RS256, and feeds the JWKS endpoint.
func initCodec(cfg Config, logger *slog.Logger) (*jwtx.Codec, *jwtx.RS256Signer, error) {
	hmacVerifier := jwtx.NewVerifierHS256([]byte(cfg.JWTSecret))

	if cfg.Algorithm == "HS256" {
		signer, err := jwtx.NewSignerHS256([]byte(cfg.JWTSecret))
		if err != nil {
			return nil, nil, fmt.Errorf("init HS256 signer: %w", err)
		}
		codec, err := jwtx.NewCodec(signer, hmacVerifier)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("token codec initialized", "alg", "HS256")
		return codec, nil, nil
	}

	provider := jwtx.NewKeyProvider(jwtx.KeyProviderConfig{
		PrivateKeyBase64: cfg.PrivateKeyBase64,
		PublicKeyBase64:  cfg.PublicKeyBase64,
		KeyID:            cfg.KeyID,
		RSABits:          cfg.RSABits,
	}, logger)

	pair, err := provider.KeyPair()
	if err != nil {
		return nil, nil, fmt.Errorf("init RSA key pair: %w", err)
	}

	signer, err := jwtx.NewSignerRS256(pair.KID, pair.Private)
	if err != nil {
		return nil, nil, err
	}

	codec, err := jwtx.NewCodec(signer,
		jwtx.NewVerifierRS256(pair.KID, pair.Public),
		hmacVerifier,
	)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("token codec initialized", "alg", "RS256", "kid", pair.KID)
	return codec, signer, nil
}
