package jwtx

import (
	"crypto/rsa"
	"encoding/base64"
	"math/big"
)

// JWK represents a public key in JSON Web Key format (RFC 7517). Only RSA
// signing keys are published here; a shared HMAC secret has no public half
// and must never appear in a key set.
type JWK struct {
	Kty string `json:"kty"`           // key type: "RSA"
	Use string `json:"use,omitempty"` // what we use it for: "sig"
	Alg string `json:"alg,omitempty"` // algorithm: "RS256"
	Kid string `json:"kid,omitempty"` // key ID

	N string `json:"n,omitempty"` // modulus (base64url)
	E string `json:"e,omitempty"` // exponent (base64url)
}

// JWKS is a JSON Web Key Set (RFC 7517).
type JWKS struct {
	Keys []JWK `json:"keys"`
}

// EmptyJWKS returns a well-formed key set with zero keys. Discovery
// consumers always get valid JSON even when nothing is publishable.
func EmptyJWKS() JWKS {
	return JWKS{Keys: []JWK{}}
}

// NewRSAJWK builds a JWK for an RSA public key. big.Int.Bytes already
// yields unsigned big-endian bytes with leading zero bytes stripped, which
// is exactly the encoding RFC 7518 wants for n and e.
func NewRSAJWK(kid, use, alg string, pub *rsa.PublicKey) JWK {
	return JWK{
		Kty: "RSA",
		Use: use,
		Alg: alg,
		Kid: kid,
		N:   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
		E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
	}
}
