package cryptox

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"fmt"
)

// GenerateRSAKey generates a new RSA private key with the specified bit size.
// Common bit sizes are 2048, 3072, or 4096 bits.
func GenerateRSAKey(bits int) (*rsa.PrivateKey, error) {
	if bits < 2048 {
		return nil, fmt.Errorf("cryptox: RSA key size must be at least 2048 bits")
	}

	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("cryptox: failed to generate RSA key: %w", err)
	}
	return key, nil
}

// DecodeRSAPrivateKeyBase64 decodes a base64-encoded PKCS8 DER private key.
// This is the format the deployment config carries key material in.
func DecodeRSAPrivateKeyBase64(encoded string) (*rsa.PrivateKey, error) {
	der, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("cryptox: decode private key base64: %w", err)
	}

	parsed, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("cryptox: parse PKCS8 private key: %w", err)
	}

	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("cryptox: private key is not RSA")
	}
	return key, nil
}

// DecodeRSAPublicKeyBase64 decodes a base64-encoded PKIX DER public key.
func DecodeRSAPublicKeyBase64(encoded string) (*rsa.PublicKey, error) {
	der, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("cryptox: decode public key base64: %w", err)
	}

	parsed, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("cryptox: parse PKIX public key: %w", err)
	}

	key, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("cryptox: public key is not RSA")
	}
	return key, nil
}

// EncodeRSAPrivateKeyBase64 serializes a private key to base64 PKCS8 DER,
// the inverse of DecodeRSAPrivateKeyBase64. Used by tooling and tests to
// produce config values.
func EncodeRSAPrivateKeyBase64(key *rsa.PrivateKey) (string, error) {
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return "", fmt.Errorf("cryptox: marshal PKCS8 private key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(der), nil
}

// EncodeRSAPublicKeyBase64 serializes a public key to base64 PKIX DER.
func EncodeRSAPublicKeyBase64(key *rsa.PublicKey) (string, error) {
	der, err := x509.MarshalPKIXPublicKey(key)
	if err != nil {
		return "", fmt.Errorf("cryptox: marshal PKIX public key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(der), nil
}
