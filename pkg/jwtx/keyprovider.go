package jwtx

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dev-gonzo/system-rpg-backend-sub000/pkg/cryptox"
)

// ErrKeyMaterial is fatal: configured key material failed to decode AND
// in-process generation failed. Without a signing key the service cannot
// issue or verify asymmetric tokens.
var ErrKeyMaterial = errors.New("jwtx: no usable signing key material")

const defaultRSABits = 2048

// KeyPair is the immutable key material handed to every dependent once
// initialization succeeds. The same pair backs every sign/verify call for
// the rest of the process lifetime, so every token issued by this instance
// stays verifiable by it.
type KeyPair struct {
	Private *rsa.PrivateKey
	Public  *rsa.PublicKey
	KID     string
	Alg     string
}

// KeyProviderConfig carries the deployment's key material. Both key fields
// are base64-encoded DER (PKCS8 private, PKIX public); when either is
// empty or fails to decode, a fresh pair is generated in-process instead.
type KeyProviderConfig struct {
	PrivateKeyBase64 string
	PublicKeyBase64  string
	KeyID            string
	RSABits          int
}

// KeyProvider lazily resolves the process-wide RSA key pair. The once
// guard makes the single-initialization invariant structural: concurrent
// first callers block on one resolution attempt, and both the pair and
// any fatal error are latched for every later call.
type KeyProvider struct {
	cfg    KeyProviderConfig
	logger *slog.Logger

	once sync.Once
	pair *KeyPair
	err  error
}

func NewKeyProvider(cfg KeyProviderConfig, logger *slog.Logger) *KeyProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &KeyProvider{cfg: cfg, logger: logger}
}

// KeyPair returns the cached pair, resolving it on first use.
func (p *KeyProvider) KeyPair() (*KeyPair, error) {
	p.once.Do(p.resolve)
	return p.pair, p.err
}

func (p *KeyProvider) resolve() {
	if p.cfg.PrivateKeyBase64 != "" && p.cfg.PublicKeyBase64 != "" {
		pair, err := p.loadConfigured()
		if err == nil {
			p.pair = pair
			p.logger.Info("RSA key pair loaded from configuration", "kid", pair.KID)
			return
		}
		p.logger.Warn("configured RSA key material is unusable, generating an ephemeral pair",
			"error", err)
	} else {
		p.logger.Warn("no RSA key material configured, generating an ephemeral pair; " +
			"tokens will not survive a restart")
	}

	bits := p.cfg.RSABits
	if bits == 0 {
		bits = defaultRSABits
	}
	key, err := cryptox.GenerateRSAKey(bits)
	if err != nil {
		p.err = fmt.Errorf("%w: %w", ErrKeyMaterial, err)
		return
	}

	p.pair = &KeyPair{
		Private: key,
		Public:  &key.PublicKey,
		KID:     p.cfg.KeyID,
		Alg:     "RS256",
	}
	p.logger.Info("ephemeral RSA key pair generated", "kid", p.pair.KID, "bits", bits)
}

func (p *KeyProvider) loadConfigured() (*KeyPair, error) {
	priv, err := cryptox.DecodeRSAPrivateKeyBase64(p.cfg.PrivateKeyBase64)
	if err != nil {
		return nil, err
	}
	pub, err := cryptox.DecodeRSAPublicKeyBase64(p.cfg.PublicKeyBase64)
	if err != nil {
		return nil, err
	}
	if !priv.PublicKey.Equal(pub) {
		return nil, errors.New("jwtx: configured public key does not match private key")
	}

	return &KeyPair{
		Private: priv,
		Public:  pub,
		KID:     p.cfg.KeyID,
		Alg:     "RS256",
	}, nil
}
