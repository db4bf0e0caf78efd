package jwtx

import (
	"crypto/rsa"
)

// Signer is our interface for anything that can sign token claims into a
// compact JWT string. The signing strategy (asymmetric vs shared-secret)
// is chosen once at construction; call sites never branch on algorithm.
type Signer interface {
	Alg() string
	KID() string
	Sign(Claims) (string, error)
}

// NewSignerRS256 creates an RS256 signer over an in-memory RSA key pair.
func NewSignerRS256(kid string, key *rsa.PrivateKey) (*RS256Signer, error) {
	return newRS256Signer(kid, key)
}

// NewSignerHS256 creates an HS256 signer over a shared secret.
func NewSignerHS256(secret []byte) (*HS256Signer, error) {
	return newHS256Signer(secret)
}
